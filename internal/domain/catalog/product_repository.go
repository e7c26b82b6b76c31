package catalog

import (
	"context"

	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
)

// ProductRepository reads products and exposes one store per owned collection.
type ProductRepository interface {
	// FindDetail loads a product with its materials and accompaniments.
	FindDetail(ctx context.Context, itemCode string) (*ProductDetail, error)

	// ExistingItemCodes returns the subset of codes that name a product.
	ExistingItemCodes(ctx context.Context, codes []string) ([]string, error)

	Materials() reconcile.Store[string, Product, ProductMaterial]
	Accompaniments() reconcile.Store[string, Product, ProductAccompaniment]
}

// ProductTreeRepository loads, creates and reconciles product trees.
type ProductTreeRepository interface {
	reconcile.Store[string, ProductTree, ProductTreeItem]

	// Create inserts a tree with already numbered items in one transaction.
	// An existing tree with the same item code is a CONFLICT.
	Create(ctx context.Context, tree ProductTree, items []ProductTreeItem) error
}
