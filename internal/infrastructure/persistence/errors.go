package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the stores care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver and GORM failures onto domain error codes.
// resource and key only feed the message. Errors that carry no meaning for
// the domain come back wrapped but uncoded.
func translateError(err error, resource string, key any) error {
	if err == nil {
		return nil
	}
	if shared.CodeOf(err) != "" {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.WrapDomainError(shared.CodeNotFound, fmt.Sprintf("%s %v not found", resource, key), err)
	case isUniqueViolation(err):
		return shared.NewConflictError(fmt.Sprintf("%s %v already exists", resource, key), err)
	case isForeignKeyViolation(err):
		return shared.WrapDomainError(shared.CodeNotFound, fmt.Sprintf("%s %v references a missing row", resource, key), err)
	}
	return fmt.Errorf("%s %v: %w", resource, key, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
