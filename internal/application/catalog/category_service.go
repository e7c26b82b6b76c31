package catalog

import (
	"context"
	"sort"

	"github.com/blueselfcheckout/backend/internal/domain/catalog"
	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/blueselfcheckout/backend/internal/infrastructure/telemetry"
)

// CategoryService manages the accompaniment slots of categories
type CategoryService struct {
	repo       catalog.CategoryRepository
	products   catalog.ProductRepository
	reconciler *reconcile.Reconciler[string, catalog.Category, catalog.CategoryAccompaniment, int]
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(repo catalog.CategoryRepository, products catalog.ProductRepository, opts ...reconcile.Option) *CategoryService {
	return &CategoryService{
		repo:       repo,
		products:   products,
		reconciler: reconcile.New[string, catalog.Category, catalog.CategoryAccompaniment, int](repo, opts...),
	}
}

// GetAccompaniments returns the slots of a category ordered by line number
func (s *CategoryService) GetAccompaniments(ctx context.Context, categoryCode string) (*CategorySlotsResponse, error) {
	category, slots, err := s.repo.Load(ctx, categoryCode)
	if err != nil {
		return nil, err
	}
	return ToCategorySlotsResponse(category, slots), nil
}

// ReconcileAccompaniments replaces the slots of a category with the submitted
// list. Every referenced product must exist.
func (s *CategoryService) ReconcileAccompaniments(ctx context.Context, categoryCode string, req ReconcileSlotsRequest) (resp *CategorySlotsResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "reconcile_accompaniments", "item_code", categoryCode)
	defer func() { telemetry.EndSpan(span, err) }()

	desired := slotsToDomain(req.Accompaniments)
	if err := s.checkReferences(ctx, desired); err != nil {
		return nil, err
	}

	category, slots, err := s.reconciler.Reconcile(ctx, categoryCode, catalog.AccompanimentSlotCollection(categoryCode), nil, desired)
	if err != nil {
		return nil, err
	}
	return ToCategorySlotsResponse(category, slots), nil
}

// NextLineNumber returns the line number the next new slot would get
func (s *CategoryService) NextLineNumber(ctx context.Context, categoryCode string) (*NextLineNumberResponse, error) {
	_, slots, err := s.repo.Load(ctx, categoryCode)
	if err != nil {
		return nil, err
	}
	next := 1
	for _, slot := range slots {
		if slot.LineNumber >= next {
			next = slot.LineNumber + 1
		}
	}
	return &NextLineNumberResponse{CategoryItemCode: categoryCode, NextLineNumber: next}, nil
}

// checkReferences fails with a validation error listing every referenced
// item code that names no product.
func (s *CategoryService) checkReferences(ctx context.Context, slots []catalog.CategoryAccompaniment) error {
	seen := make(map[string]struct{})
	var codes []string
	for _, slot := range slots {
		for _, code := range slot.ReferencedItemCodes() {
			if code == "" {
				continue
			}
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return nil
	}

	found, err := s.products.ExistingItemCodes(ctx, codes)
	if err != nil {
		return err
	}
	for _, code := range found {
		delete(seen, code)
	}
	if len(seen) == 0 {
		return nil
	}

	missing := make([]string, 0, len(seen))
	for code := range seen {
		missing = append(missing, code)
	}
	sort.Strings(missing)
	return shared.NewValidationError("accompaniment products not found", missing...)
}
