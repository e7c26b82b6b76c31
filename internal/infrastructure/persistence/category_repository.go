package persistence

import (
	"strconv"

	"github.com/blueselfcheckout/backend/internal/domain/catalog"
	"github.com/blueselfcheckout/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	*CollectionStore[string, catalog.Category, catalog.CategoryAccompaniment, models.CategoryModel, models.CategoryAccompanimentModel]
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{
		CollectionStore: newCollectionStore(db, collectionSchema[string, catalog.Category, catalog.CategoryAccompaniment, models.CategoryModel, models.CategoryAccompanimentModel]{
			parentResource: "category",
			childResource:  "category accompaniment",
			parentWhere:    func(code string) map[string]any { return map[string]any{"item_code": code} },
			childrenWhere:  func(code string) map[string]any { return map[string]any{"category_item_code": code} },
			childOrder:     "line_number",
			parentKey:      func(c catalog.Category) any { return c.ItemCode },
			childKey:       func(a catalog.CategoryAccompaniment) any { return a.CategoryItemCode + "/" + itoa(a.LineNumber) },
			parentModel:    models.CategoryModelFromDomain,
			parentDomain:   (*models.CategoryModel).ToDomain,
			childModel:     models.CategoryAccompanimentModelFromDomain,
			childDomain:    (*models.CategoryAccompanimentModel).ToDomain,
		}),
	}
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)

func itoa(n int) string {
	return strconv.Itoa(n)
}
