package models

import (
	"time"
)

// Timestamps are the audit columns every table carries. They are filled by
// GORM and never travel to the domain.
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// All lists every model, in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&OrderModel{}, &OrderLineModel{},
		&ProductModel{}, &ProductMaterialModel{}, &ProductAccompanimentModel{},
		&CategoryModel{}, &CategoryAccompanimentModel{},
		&ProductTreeModel{}, &ProductTreeItemModel{},
	}
}
