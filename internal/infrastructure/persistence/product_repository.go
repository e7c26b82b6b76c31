package persistence

import (
	"context"

	"github.com/blueselfcheckout/backend/internal/domain/catalog"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/blueselfcheckout/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

type (
	materialStore      = CollectionStore[string, catalog.Product, catalog.ProductMaterial, models.ProductModel, models.ProductMaterialModel]
	accompanimentStore = CollectionStore[string, catalog.Product, catalog.ProductAccompaniment, models.ProductModel, models.ProductAccompanimentModel]
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db             *gorm.DB
	materials      *materialStore
	accompaniments *accompanimentStore
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	byProduct := func(code string) map[string]any { return map[string]any{"product_item_code": code} }
	productWhere := func(code string) map[string]any { return map[string]any{"item_code": code} }
	productKey := func(p catalog.Product) any { return p.ItemCode }

	return &GormProductRepository{
		db: db,
		materials: newCollectionStore(db, collectionSchema[string, catalog.Product, catalog.ProductMaterial, models.ProductModel, models.ProductMaterialModel]{
			parentResource: "product",
			childResource:  "product material",
			parentWhere:    productWhere,
			childrenWhere:  byProduct,
			childOrder:     "item_code",
			parentKey:      productKey,
			childKey:       func(m catalog.ProductMaterial) any { return m.ProductItemCode + "/" + m.ItemCode },
			parentModel:    models.ProductModelFromDomain,
			parentDomain:   (*models.ProductModel).ToDomain,
			childModel:     models.ProductMaterialModelFromDomain,
			childDomain:    (*models.ProductMaterialModel).ToDomain,
		}),
		accompaniments: newCollectionStore(db, collectionSchema[string, catalog.Product, catalog.ProductAccompaniment, models.ProductModel, models.ProductAccompanimentModel]{
			parentResource: "product",
			childResource:  "product accompaniment",
			parentWhere:    productWhere,
			childrenWhere:  byProduct,
			childOrder:     "item_code",
			parentKey:      productKey,
			childKey:       func(a catalog.ProductAccompaniment) any { return a.ProductItemCode + "/" + a.ItemCode },
			parentModel:    models.ProductModelFromDomain,
			parentDomain:   (*models.ProductModel).ToDomain,
			childModel:     models.ProductAccompanimentModelFromDomain,
			childDomain:    (*models.ProductAccompanimentModel).ToDomain,
		}),
	}
}

// FindDetail loads a product with its materials and accompaniments
func (r *GormProductRepository) FindDetail(ctx context.Context, itemCode string) (*catalog.ProductDetail, error) {
	product, materials, err := r.materials.Load(ctx, itemCode)
	if err != nil {
		return nil, err
	}

	var rows []models.ProductAccompanimentModel
	if err := r.db.WithContext(ctx).
		Where("product_item_code = ?", itemCode).
		Order("item_code").
		Find(&rows).Error; err != nil {
		return nil, translateError(err, "product accompaniment", itemCode)
	}
	accompaniments := make([]catalog.ProductAccompaniment, len(rows))
	for i := range rows {
		accompaniments[i] = rows[i].ToDomain()
	}

	return &catalog.ProductDetail{
		Product:        product,
		Materials:      materials,
		Accompaniments: accompaniments,
	}, nil
}

// ExistingItemCodes returns the subset of codes that name a product
func (r *GormProductRepository) ExistingItemCodes(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var found []string
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("item_code IN ?", codes).
		Order("item_code").
		Pluck("item_code", &found).Error; err != nil {
		return nil, translateError(err, "product", codes)
	}
	return found, nil
}

// Materials returns the store for recipe materials
func (r *GormProductRepository) Materials() reconcile.Store[string, catalog.Product, catalog.ProductMaterial] {
	return r.materials
}

// Accompaniments returns the store for product accompaniments
func (r *GormProductRepository) Accompaniments() reconcile.Store[string, catalog.Product, catalog.ProductAccompaniment] {
	return r.accompaniments
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// GormProductTreeRepository implements catalog.ProductTreeRepository using GORM
type GormProductTreeRepository struct {
	*CollectionStore[string, catalog.ProductTree, catalog.ProductTreeItem, models.ProductTreeModel, models.ProductTreeItemModel]
}

// NewGormProductTreeRepository creates a new GormProductTreeRepository
func NewGormProductTreeRepository(db *gorm.DB) *GormProductTreeRepository {
	return &GormProductTreeRepository{
		CollectionStore: newCollectionStore(db, collectionSchema[string, catalog.ProductTree, catalog.ProductTreeItem, models.ProductTreeModel, models.ProductTreeItemModel]{
			parentResource: "product tree",
			childResource:  "product tree item",
			parentWhere:    func(code string) map[string]any { return map[string]any{"item_code": code} },
			childrenWhere:  func(code string) map[string]any { return map[string]any{"tree_item_code": code} },
			childOrder:     "line_number",
			parentKey:      func(t catalog.ProductTree) any { return t.ItemCode },
			childKey:       func(i catalog.ProductTreeItem) any { return i.TreeItemCode + "/" + itoa(i.LineNumber) },
			parentModel:    models.ProductTreeModelFromDomain,
			parentDomain:   (*models.ProductTreeModel).ToDomain,
			childModel:     models.ProductTreeItemModelFromDomain,
			childDomain:    (*models.ProductTreeItemModel).ToDomain,
		}),
	}
}

var _ catalog.ProductTreeRepository = (*GormProductTreeRepository)(nil)
