package catalog

import (
	"errors"
	"strings"

	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/shopspring/decimal"
)

// Category groups products on the kiosk menu.
type Category struct {
	ItemCode      string
	ItemName      string
	FrgnName      string
	ImageURL      string
	Description   string
	VisOrder      int
	Enabled       string
	DataSource    string
	GroupItemCode string
}

// CategoryAccompaniment is a slot offering an accompaniment product to every
// product of a category, keyed by line number.
type CategoryAccompaniment struct {
	CategoryItemCode      string
	LineNumber            int
	AccompanimentItemCode string
	Discount              decimal.Decimal
	EnlargementItemCode   string
	EnlargementDiscount   decimal.Decimal
}

// CanBeEnlarged reports whether the slot offers a larger variant.
func (a CategoryAccompaniment) CanBeEnlarged() bool {
	return a.EnlargementItemCode != ""
}

// ReferencedItemCodes returns the product codes the slot points at.
func (a CategoryAccompaniment) ReferencedItemCodes() []string {
	codes := []string{a.AccompanimentItemCode}
	if a.EnlargementItemCode != "" {
		codes = append(codes, a.EnlargementItemCode)
	}
	return codes
}

// Equal compares slots by value.
func (a CategoryAccompaniment) Equal(o CategoryAccompaniment) bool {
	return a.CategoryItemCode == o.CategoryItemCode &&
		a.LineNumber == o.LineNumber &&
		a.AccompanimentItemCode == o.AccompanimentItemCode &&
		a.Discount.Equal(o.Discount) &&
		a.EnlargementItemCode == o.EnlargementItemCode &&
		a.EnlargementDiscount.Equal(o.EnlargementDiscount)
}

// AccompanimentSlotCollection describes the accompaniment slots of category categoryCode.
func AccompanimentSlotCollection(categoryCode string) reconcile.Collection[CategoryAccompaniment, int] {
	return reconcile.Collection[CategoryAccompaniment, int]{
		Name: "category_accompaniments",
		Key:  func(a CategoryAccompaniment) int { return a.LineNumber },
		Apply: func(existing *CategoryAccompaniment, incoming CategoryAccompaniment) {
			existing.AccompanimentItemCode = incoming.AccompanimentItemCode
			existing.Discount = incoming.Discount
			existing.EnlargementItemCode = incoming.EnlargementItemCode
			existing.EnlargementDiscount = incoming.EnlargementDiscount
		},
		Assigner: reconcile.Sequence[CategoryAccompaniment, int]{
			SetKey: func(a *CategoryAccompaniment, n int) { a.LineNumber = n },
		},
		Prepare: func(a *CategoryAccompaniment) {
			a.CategoryItemCode = categoryCode
		},
		Validate: func(a CategoryAccompaniment) error {
			switch {
			case a.LineNumber < 0:
				return errors.New("line_number must not be negative")
			case strings.TrimSpace(a.AccompanimentItemCode) == "":
				return errors.New("accompaniment_item_code is required")
			case a.Discount.IsNegative() || a.EnlargementDiscount.IsNegative():
				return errors.New("discount must not be negative")
			case a.EnlargementItemCode == "" && !a.EnlargementDiscount.IsZero():
				return errors.New("enlargement_discount requires enlargement_item_code")
			case a.CategoryItemCode != "" && a.CategoryItemCode != categoryCode:
				return errors.New("belongs to another category")
			}
			return nil
		},
		Equal: CategoryAccompaniment.Equal,
	}
}
