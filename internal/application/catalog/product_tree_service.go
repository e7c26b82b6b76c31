package catalog

import (
	"context"
	"sort"

	"github.com/blueselfcheckout/backend/internal/domain/catalog"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/blueselfcheckout/backend/internal/infrastructure/telemetry"
)

// ProductTreeService reads and edits product trees
type ProductTreeService struct {
	repo       catalog.ProductTreeRepository
	reconciler *reconcile.Reconciler[string, catalog.ProductTree, catalog.ProductTreeItem, int]
}

// NewProductTreeService creates a new ProductTreeService
func NewProductTreeService(repo catalog.ProductTreeRepository, opts ...reconcile.Option) *ProductTreeService {
	return &ProductTreeService{
		repo:       repo,
		reconciler: reconcile.New[string, catalog.ProductTree, catalog.ProductTreeItem, int](repo, opts...),
	}
}

// Get returns the tree with its items ordered by line number
func (s *ProductTreeService) Get(ctx context.Context, itemCode string) (*ProductTreeResponse, error) {
	tree, items, err := s.repo.Load(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	return ToProductTreeResponse(tree, items), nil
}

// Create inserts a new tree with its items numbered in submission order
func (s *ProductTreeService) Create(ctx context.Context, req CreateProductTreeRequest) (resp *ProductTreeResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product_tree", "create", "item_code", req.ItemCode, "items", len(req.Items))
	defer func() { telemetry.EndSpan(span, err) }()

	tree := req.toDomain()
	tree.ApplyDefaults()
	if err := tree.Validate(); err != nil {
		return nil, err
	}

	items, err := catalog.NumberNewTreeItems(tree.ItemCode, treeItemsToDomain(req.Items))
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tree, items); err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].LineNumber < items[j].LineNumber })
	return ToProductTreeResponse(tree, items), nil
}

// Update applies header changes and reconciles the items in one transaction
func (s *ProductTreeService) Update(ctx context.Context, itemCode string, req UpdateProductTreeRequest) (resp *ProductTreeResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product_tree", "update", "item_code", itemCode)
	defer func() { telemetry.EndSpan(span, err) }()

	mutate := func(t *catalog.ProductTree, _ []catalog.ProductTreeItem) error {
		req.applyTo(t)
		return t.Validate()
	}

	tree, items, err := s.reconciler.Reconcile(ctx, itemCode, catalog.TreeItemCollection(itemCode), mutate, treeItemsToDomain(req.Items))
	if err != nil {
		return nil, err
	}
	return ToProductTreeResponse(tree, items), nil
}
