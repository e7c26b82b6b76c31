package reconcile

import (
	"context"
	"errors"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
)

// Tx is the set of writes available inside one transaction.
// Implementations report a unique-key violation as a CONFLICT DomainError and
// a missing parent as NOT_FOUND.
type Tx[P any, T any] interface {
	UpdateParent(ctx context.Context, parent P) error
	Insert(ctx context.Context, child T) error
	Update(ctx context.Context, child T) error
	Delete(ctx context.Context, child T) error
}

// Store loads aggregates and runs transactions. InTx commits when fn returns
// nil and rolls back otherwise, including when ctx is cancelled.
type Store[ID any, P any, T any] interface {
	Load(ctx context.Context, id ID) (P, []T, error)
	InTx(ctx context.Context, fn func(tx Tx[P, T]) error) error
}

// Execute applies plan through tx: parent first, then deletes, updates, inserts.
// It stops at the first failure; the caller's transaction is expected to roll back.
func Execute[P any, T any](ctx context.Context, tx Tx[P, T], parent P, plan Plan[T]) error {
	if err := tx.UpdateParent(ctx, parent); err != nil {
		return classify(err)
	}
	for _, child := range plan.Deletes {
		if err := tx.Delete(ctx, child); err != nil {
			return classify(err)
		}
	}
	for _, u := range plan.Updates {
		if err := tx.Update(ctx, u.After); err != nil {
			return classify(err)
		}
	}
	for _, child := range plan.Inserts {
		if err := tx.Insert(ctx, child); err != nil {
			return classify(err)
		}
	}
	return nil
}

// classify keeps NOT_FOUND and CONFLICT and folds everything else into
// TRANSACTION_FAILURE.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch shared.CodeOf(err) {
	case shared.CodeNotFound, shared.CodeConflict, shared.CodeTransactionFailure:
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return shared.NewTransactionFailure("reconciliation cancelled", err)
	}
	return shared.NewTransactionFailure("reconciliation failed", err)
}
