package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Error(t *testing.T) {
	assert.Equal(t, "order 7 not found", NewNotFoundError("order", 7).Error())

	cause := errors.New("deadlock detected")
	assert.Equal(t, "commit failed: deadlock detected", NewTransactionFailure("commit failed", cause).Error())
}

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("reconcile lines: %w", NewNotFoundError("order line", 3))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, errors.New("NOT_FOUND")))
}

func TestDomainError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := NewConflictError("line 3 already exists", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), ""},
		{"validation", NewValidationError("bad", "SALAD"), CodeValidation},
		{"wrapped", fmt.Errorf("outer: %w", NewTransactionFailure("x", nil)), CodeTransactionFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
			if tt.want != "" {
				assert.True(t, IsCode(tt.err, tt.want))
			}
		})
	}
}

func TestNewValidationError_Details(t *testing.T) {
	err := NewValidationError("accompaniment products not found", "FRIES-XL", "SALAD")

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{"FRIES-XL", "SALAD"}, de.Details)
	assert.Nil(t, de.Cause)
}
