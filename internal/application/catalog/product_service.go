// Package catalog implements the product, product tree and category use
// cases of the kiosk menu.
package catalog

import (
	"context"

	"github.com/blueselfcheckout/backend/internal/domain/catalog"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	productcache "github.com/blueselfcheckout/backend/internal/infrastructure/cache"
	"github.com/blueselfcheckout/backend/internal/infrastructure/logger"
	"github.com/blueselfcheckout/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductService reads products through the cache and reconciles their
// recipe materials and accompaniments.
type ProductService struct {
	repo           catalog.ProductRepository
	cache          catalog.ProductCache
	materials      *reconcile.Reconciler[string, catalog.Product, catalog.ProductMaterial, string]
	accompaniments *reconcile.Reconciler[string, catalog.Product, catalog.ProductAccompaniment, string]
}

// NewProductService creates a new ProductService. A nil cache disables caching.
func NewProductService(repo catalog.ProductRepository, cache catalog.ProductCache, opts ...reconcile.Option) *ProductService {
	if cache == nil {
		cache = productcache.NopProductCache{}
	}
	return &ProductService{
		repo:           repo,
		cache:          cache,
		materials:      reconcile.New[string, catalog.Product, catalog.ProductMaterial, string](repo.Materials(), opts...),
		accompaniments: reconcile.New[string, catalog.Product, catalog.ProductAccompaniment, string](repo.Accompaniments(), opts...),
	}
}

// GetProduct returns the product with its materials and accompaniments.
// Cache failures fall through to the database.
func (s *ProductService) GetProduct(ctx context.Context, itemCode string) (*ProductDetailResponse, error) {
	cached, err := s.cache.Get(ctx, itemCode)
	if err != nil {
		logger.L(ctx).Warn("Product cache read failed", zap.String("item_code", itemCode), zap.Error(err))
	}
	if cached != nil {
		return ToProductDetailResponse(cached), nil
	}
	return s.loadAndCache(ctx, itemCode)
}

// ReplaceMaterials reconciles the recipe of a product with the submitted list
func (s *ProductService) ReplaceMaterials(ctx context.Context, itemCode string, req ReplaceMaterialsRequest) (resp *ProductDetailResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "replace_materials", "item_code", itemCode)
	defer func() { telemetry.EndSpan(span, err) }()

	if _, _, err := s.materials.Reconcile(ctx, itemCode, catalog.MaterialCollection(itemCode), nil, materialsToDomain(req.Materials)); err != nil {
		return nil, err
	}
	s.invalidate(ctx, itemCode)
	return s.loadAndCache(ctx, itemCode)
}

// ReplaceAccompaniments reconciles the side items of a product with the submitted list
func (s *ProductService) ReplaceAccompaniments(ctx context.Context, itemCode string, req ReplaceAccompanimentsRequest) (resp *ProductDetailResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "replace_accompaniments", "item_code", itemCode)
	defer func() { telemetry.EndSpan(span, err) }()

	if _, _, err := s.accompaniments.Reconcile(ctx, itemCode, catalog.AccompanimentCollection(itemCode), nil, accompanimentsToDomain(req.Accompaniments)); err != nil {
		return nil, err
	}
	s.invalidate(ctx, itemCode)
	return s.loadAndCache(ctx, itemCode)
}

func (s *ProductService) loadAndCache(ctx context.Context, itemCode string) (*ProductDetailResponse, error) {
	detail, err := s.repo.FindDetail(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, detail); err != nil {
		logger.L(ctx).Warn("Product cache write failed", zap.String("item_code", itemCode), zap.Error(err))
	}
	return ToProductDetailResponse(detail), nil
}

func (s *ProductService) invalidate(ctx context.Context, itemCode string) {
	if err := s.cache.Invalidate(ctx, itemCode); err != nil {
		logger.L(ctx).Warn("Product cache invalidation failed", zap.String("item_code", itemCode), zap.Error(err))
	}
}
