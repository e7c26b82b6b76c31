// Package catalog holds products, product trees and categories together with
// the child collections the kiosk edits as a whole.
package catalog

import (
	"errors"
	"strings"

	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/shopspring/decimal"
)

// Flag values stored in single-character columns.
const (
	FlagYes = "Y"
	FlagNo  = "N"
)

// Product is a sellable catalog item identified by its item code.
type Product struct {
	ItemCode         string
	EANCode          string
	ItemName         string
	FrgnName         string
	Price            decimal.Decimal
	Discount         decimal.Decimal
	ImageURL         string
	Description      string
	SellItem         string
	Available        string
	Enabled          string
	GroupItemCode    string
	CategoryItemCode string
	WaitingTime      int
	Rating           decimal.Decimal
}

// ProductMaterial is one recipe component of a product, keyed by item code.
type ProductMaterial struct {
	ProductItemCode string
	ItemCode        string
	ItemName        string
	Quantity        decimal.Decimal
	ImageURL        string
	IsPrimary       string
}

// Equal compares materials by value.
func (m ProductMaterial) Equal(o ProductMaterial) bool {
	return m.ProductItemCode == o.ProductItemCode &&
		m.ItemCode == o.ItemCode &&
		m.ItemName == o.ItemName &&
		m.Quantity.Equal(o.Quantity) &&
		m.ImageURL == o.ImageURL &&
		m.IsPrimary == o.IsPrimary
}

// ProductAccompaniment is a side item offered with a product, keyed by item code.
type ProductAccompaniment struct {
	ProductItemCode string
	ItemCode        string
	ItemName        string
	PriceOld        decimal.Decimal
	Price           decimal.Decimal
	ImageURL        string
}

// Equal compares accompaniments by value.
func (a ProductAccompaniment) Equal(o ProductAccompaniment) bool {
	return a.ProductItemCode == o.ProductItemCode &&
		a.ItemCode == o.ItemCode &&
		a.ItemName == o.ItemName &&
		a.PriceOld.Equal(o.PriceOld) &&
		a.Price.Equal(o.Price) &&
		a.ImageURL == o.ImageURL
}

// ProductDetail is a product with both of its owned collections.
type ProductDetail struct {
	Product        Product
	Materials      []ProductMaterial
	Accompaniments []ProductAccompaniment
}

func checkOwner(owner, parent string) error {
	if owner != "" && owner != parent {
		return errors.New("belongs to another product")
	}
	return nil
}

// MaterialCollection describes the recipe of productCode. Materials use the
// item code as a natural key.
func MaterialCollection(productCode string) reconcile.Collection[ProductMaterial, string] {
	return reconcile.Collection[ProductMaterial, string]{
		Name:     "materials",
		Key:      func(m ProductMaterial) string { return m.ItemCode },
		Sentinel: blank,
		Apply: func(existing *ProductMaterial, incoming ProductMaterial) {
			existing.ItemName = incoming.ItemName
			existing.Quantity = incoming.Quantity
			existing.ImageURL = incoming.ImageURL
			existing.IsPrimary = flagOrNo(incoming.IsPrimary)
		},
		Prepare: func(m *ProductMaterial) {
			m.ProductItemCode = productCode
			m.IsPrimary = flagOrNo(m.IsPrimary)
		},
		Validate: func(m ProductMaterial) error {
			if m.Quantity.IsNegative() {
				return errors.New("quantity must not be negative")
			}
			return checkOwner(m.ProductItemCode, productCode)
		},
		Equal: ProductMaterial.Equal,
	}
}

// AccompanimentCollection describes the side items of productCode.
func AccompanimentCollection(productCode string) reconcile.Collection[ProductAccompaniment, string] {
	return reconcile.Collection[ProductAccompaniment, string]{
		Name:     "accompaniments",
		Key:      func(a ProductAccompaniment) string { return a.ItemCode },
		Sentinel: blank,
		Apply: func(existing *ProductAccompaniment, incoming ProductAccompaniment) {
			existing.ItemName = incoming.ItemName
			existing.PriceOld = incoming.PriceOld
			existing.Price = incoming.Price
			existing.ImageURL = incoming.ImageURL
		},
		Prepare: func(a *ProductAccompaniment) {
			a.ProductItemCode = productCode
		},
		Validate: func(a ProductAccompaniment) error {
			if a.Price.IsNegative() || a.PriceOld.IsNegative() {
				return errors.New("price must not be negative")
			}
			return checkOwner(a.ProductItemCode, productCode)
		},
		Equal: ProductAccompaniment.Equal,
	}
}

func blank(code string) bool {
	return strings.TrimSpace(code) == ""
}

func flagOrNo(v string) string {
	if v == FlagYes {
		return FlagYes
	}
	return FlagNo
}
