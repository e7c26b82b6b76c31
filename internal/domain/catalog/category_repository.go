package catalog

import (
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
)

// CategoryRepository loads and reconciles the accompaniment slots of a category.
type CategoryRepository interface {
	reconcile.Store[string, Category, CategoryAccompaniment]
}
