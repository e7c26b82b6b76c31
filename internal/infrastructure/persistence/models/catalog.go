package models

import (
	"github.com/blueselfcheckout/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for a catalog product.
type ProductModel struct {
	ItemCode         string          `gorm:"type:varchar(50);primaryKey"`
	EANCode          string          `gorm:"column:ean_code;type:varchar(50);index"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	FrgnName         string          `gorm:"type:varchar(200)"`
	Price            decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	Discount         decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	ImageURL         string          `gorm:"column:image_url;type:varchar(500)"`
	Description      string          `gorm:"type:text"`
	SellItem         string          `gorm:"type:varchar(1);not null;default:'Y'"`
	Available        string          `gorm:"type:varchar(1);not null;default:'Y'"`
	Enabled          string          `gorm:"type:varchar(1);not null;default:'Y'"`
	GroupItemCode    string          `gorm:"type:varchar(50);index"`
	CategoryItemCode string          `gorm:"type:varchar(50);index"`
	WaitingTime      int             `gorm:"not null;default:0"`
	Rating           decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	Timestamps
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product.
func (m *ProductModel) ToDomain() catalog.Product {
	return catalog.Product{
		ItemCode:         m.ItemCode,
		EANCode:          m.EANCode,
		ItemName:         m.ItemName,
		FrgnName:         m.FrgnName,
		Price:            m.Price,
		Discount:         m.Discount,
		ImageURL:         m.ImageURL,
		Description:      m.Description,
		SellItem:         m.SellItem,
		Available:        m.Available,
		Enabled:          m.Enabled,
		GroupItemCode:    m.GroupItemCode,
		CategoryItemCode: m.CategoryItemCode,
		WaitingTime:      m.WaitingTime,
		Rating:           m.Rating,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product.
func ProductModelFromDomain(p catalog.Product) *ProductModel {
	return &ProductModel{
		ItemCode:         p.ItemCode,
		EANCode:          p.EANCode,
		ItemName:         p.ItemName,
		FrgnName:         p.FrgnName,
		Price:            p.Price,
		Discount:         p.Discount,
		ImageURL:         p.ImageURL,
		Description:      p.Description,
		SellItem:         p.SellItem,
		Available:        p.Available,
		Enabled:          p.Enabled,
		GroupItemCode:    p.GroupItemCode,
		CategoryItemCode: p.CategoryItemCode,
		WaitingTime:      p.WaitingTime,
		Rating:           p.Rating,
	}
}

// ProductMaterialModel is one recipe component, keyed by (product, item).
type ProductMaterialModel struct {
	ProductItemCode string          `gorm:"type:varchar(50);primaryKey"`
	ItemCode        string          `gorm:"type:varchar(50);primaryKey"`
	ItemName        string          `gorm:"type:varchar(200)"`
	Quantity        decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	ImageURL        string          `gorm:"column:image_url;type:varchar(500)"`
	IsPrimary       string          `gorm:"type:varchar(1);not null;default:'N'"`
	Timestamps
}

// TableName returns the table name for GORM
func (ProductMaterialModel) TableName() string {
	return "product_materials"
}

// ToDomain converts the model to a domain ProductMaterial.
func (m *ProductMaterialModel) ToDomain() catalog.ProductMaterial {
	return catalog.ProductMaterial{
		ProductItemCode: m.ProductItemCode,
		ItemCode:        m.ItemCode,
		ItemName:        m.ItemName,
		Quantity:        m.Quantity,
		ImageURL:        m.ImageURL,
		IsPrimary:       m.IsPrimary,
	}
}

// ProductMaterialModelFromDomain creates a persistence model from a domain ProductMaterial.
func ProductMaterialModelFromDomain(pm catalog.ProductMaterial) *ProductMaterialModel {
	return &ProductMaterialModel{
		ProductItemCode: pm.ProductItemCode,
		ItemCode:        pm.ItemCode,
		ItemName:        pm.ItemName,
		Quantity:        pm.Quantity,
		ImageURL:        pm.ImageURL,
		IsPrimary:       pm.IsPrimary,
	}
}

// ProductAccompanimentModel is a side item of a product, keyed by (product, item).
type ProductAccompanimentModel struct {
	ProductItemCode string          `gorm:"type:varchar(50);primaryKey"`
	ItemCode        string          `gorm:"type:varchar(50);primaryKey"`
	ItemName        string          `gorm:"type:varchar(200)"`
	PriceOld        decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	Price           decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	ImageURL        string          `gorm:"column:image_url;type:varchar(500)"`
	Timestamps
}

// TableName returns the table name for GORM
func (ProductAccompanimentModel) TableName() string {
	return "product_accompaniments"
}

// ToDomain converts the model to a domain ProductAccompaniment.
func (m *ProductAccompanimentModel) ToDomain() catalog.ProductAccompaniment {
	return catalog.ProductAccompaniment{
		ProductItemCode: m.ProductItemCode,
		ItemCode:        m.ItemCode,
		ItemName:        m.ItemName,
		PriceOld:        m.PriceOld,
		Price:           m.Price,
		ImageURL:        m.ImageURL,
	}
}

// ProductAccompanimentModelFromDomain creates a persistence model from a domain ProductAccompaniment.
func ProductAccompanimentModelFromDomain(pa catalog.ProductAccompaniment) *ProductAccompanimentModel {
	return &ProductAccompanimentModel{
		ProductItemCode: pa.ProductItemCode,
		ItemCode:        pa.ItemCode,
		ItemName:        pa.ItemName,
		PriceOld:        pa.PriceOld,
		Price:           pa.Price,
		ImageURL:        pa.ImageURL,
	}
}

// CategoryModel is the persistence model for a menu category.
type CategoryModel struct {
	ItemCode      string `gorm:"type:varchar(50);primaryKey"`
	ItemName      string `gorm:"type:varchar(200);not null"`
	FrgnName      string `gorm:"type:varchar(200)"`
	ImageURL      string `gorm:"column:image_url;type:varchar(500)"`
	Description   string `gorm:"type:text"`
	VisOrder      int    `gorm:"not null;default:0"`
	Enabled       string `gorm:"type:varchar(1);not null;default:'Y'"`
	DataSource    string `gorm:"type:varchar(1)"`
	GroupItemCode string `gorm:"type:varchar(50);index"`
	Timestamps
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the model to a domain Category.
func (m *CategoryModel) ToDomain() catalog.Category {
	return catalog.Category{
		ItemCode:      m.ItemCode,
		ItemName:      m.ItemName,
		FrgnName:      m.FrgnName,
		ImageURL:      m.ImageURL,
		Description:   m.Description,
		VisOrder:      m.VisOrder,
		Enabled:       m.Enabled,
		DataSource:    m.DataSource,
		GroupItemCode: m.GroupItemCode,
	}
}

// CategoryModelFromDomain creates a persistence model from a domain Category.
func CategoryModelFromDomain(c catalog.Category) *CategoryModel {
	return &CategoryModel{
		ItemCode:      c.ItemCode,
		ItemName:      c.ItemName,
		FrgnName:      c.FrgnName,
		ImageURL:      c.ImageURL,
		Description:   c.Description,
		VisOrder:      c.VisOrder,
		Enabled:       c.Enabled,
		DataSource:    c.DataSource,
		GroupItemCode: c.GroupItemCode,
	}
}

// CategoryAccompanimentModel is an accompaniment slot of a category, keyed by
// (category, line number).
type CategoryAccompanimentModel struct {
	CategoryItemCode      string          `gorm:"type:varchar(50);primaryKey"`
	LineNumber            int             `gorm:"primaryKey;autoIncrement:false"`
	AccompanimentItemCode string          `gorm:"type:varchar(50);not null"`
	Discount              decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	EnlargementItemCode   string          `gorm:"type:varchar(50)"`
	EnlargementDiscount   decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	Timestamps
}

// TableName returns the table name for GORM
func (CategoryAccompanimentModel) TableName() string {
	return "category_accompaniments"
}

// ToDomain converts the model to a domain CategoryAccompaniment.
func (m *CategoryAccompanimentModel) ToDomain() catalog.CategoryAccompaniment {
	return catalog.CategoryAccompaniment{
		CategoryItemCode:      m.CategoryItemCode,
		LineNumber:            m.LineNumber,
		AccompanimentItemCode: m.AccompanimentItemCode,
		Discount:              m.Discount,
		EnlargementItemCode:   m.EnlargementItemCode,
		EnlargementDiscount:   m.EnlargementDiscount,
	}
}

// CategoryAccompanimentModelFromDomain creates a persistence model from a domain CategoryAccompaniment.
func CategoryAccompanimentModelFromDomain(a catalog.CategoryAccompaniment) *CategoryAccompanimentModel {
	return &CategoryAccompanimentModel{
		CategoryItemCode:      a.CategoryItemCode,
		LineNumber:            a.LineNumber,
		AccompanimentItemCode: a.AccompanimentItemCode,
		Discount:              a.Discount,
		EnlargementItemCode:   a.EnlargementItemCode,
		EnlargementDiscount:   a.EnlargementDiscount,
	}
}

// ProductTreeModel is the header of a bill of materials.
type ProductTreeModel struct {
	ItemCode   string          `gorm:"type:varchar(50);primaryKey"`
	ItemName   string          `gorm:"type:varchar(200);not null"`
	Quantity   decimal.Decimal `gorm:"type:numeric(19,6);not null;default:1"`
	Enabled    string          `gorm:"type:varchar(1);not null;default:'Y'"`
	DataSource string          `gorm:"type:varchar(1)"`
	Timestamps
}

// TableName returns the table name for GORM
func (ProductTreeModel) TableName() string {
	return "product_trees"
}

// ToDomain converts the model to a domain ProductTree.
func (m *ProductTreeModel) ToDomain() catalog.ProductTree {
	return catalog.ProductTree{
		ItemCode:   m.ItemCode,
		ItemName:   m.ItemName,
		Quantity:   m.Quantity,
		Enabled:    m.Enabled,
		DataSource: m.DataSource,
	}
}

// ProductTreeModelFromDomain creates a persistence model from a domain ProductTree.
func ProductTreeModelFromDomain(t catalog.ProductTree) *ProductTreeModel {
	return &ProductTreeModel{
		ItemCode:   t.ItemCode,
		ItemName:   t.ItemName,
		Quantity:   t.Quantity,
		Enabled:    t.Enabled,
		DataSource: t.DataSource,
	}
}

// ProductTreeItemModel is one component line of a tree, keyed by (tree, line number).
type ProductTreeItemModel struct {
	TreeItemCode string          `gorm:"type:varchar(50);primaryKey"`
	LineNumber   int             `gorm:"primaryKey;autoIncrement:false"`
	ItemCode     string          `gorm:"type:varchar(50);not null"`
	ItemName     string          `gorm:"type:varchar(200)"`
	Quantity     decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	ImageURL     string          `gorm:"column:image_url;type:varchar(500)"`
	Timestamps
}

// TableName returns the table name for GORM
func (ProductTreeItemModel) TableName() string {
	return "product_tree_items"
}

// ToDomain converts the model to a domain ProductTreeItem.
func (m *ProductTreeItemModel) ToDomain() catalog.ProductTreeItem {
	return catalog.ProductTreeItem{
		TreeItemCode: m.TreeItemCode,
		LineNumber:   m.LineNumber,
		ItemCode:     m.ItemCode,
		ItemName:     m.ItemName,
		Quantity:     m.Quantity,
		ImageURL:     m.ImageURL,
	}
}

// ProductTreeItemModelFromDomain creates a persistence model from a domain ProductTreeItem.
func ProductTreeItemModelFromDomain(i catalog.ProductTreeItem) *ProductTreeItemModel {
	return &ProductTreeItemModel{
		TreeItemCode: i.TreeItemCode,
		LineNumber:   i.LineNumber,
		ItemCode:     i.ItemCode,
		ItemName:     i.ItemName,
		Quantity:     i.Quantity,
		ImageURL:     i.ImageURL,
	}
}
