package catalog

import (
	"errors"
	"strings"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/shopspring/decimal"
)

// ProductTree is a bill of materials for an assembled product.
type ProductTree struct {
	ItemCode   string
	ItemName   string
	Quantity   decimal.Decimal
	Enabled    string
	DataSource string
}

// Validate checks the tree header.
func (t *ProductTree) Validate() error {
	var details []string
	if strings.TrimSpace(t.ItemCode) == "" {
		details = append(details, "item_code: is required")
	}
	if strings.TrimSpace(t.ItemName) == "" {
		details = append(details, "item_name: is required")
	}
	if t.Quantity.IsNegative() {
		details = append(details, "quantity: must not be negative")
	}
	if t.Enabled != FlagYes && t.Enabled != FlagNo {
		details = append(details, "enabled: must be Y or N")
	}
	if len(details) > 0 {
		return shared.NewValidationError("invalid product tree", details...)
	}
	return nil
}

// ApplyDefaults fills the header fields a new tree may omit.
func (t *ProductTree) ApplyDefaults() {
	if t.Enabled == "" {
		t.Enabled = FlagYes
	}
}

// ProductTreeItem is one component line of a tree, keyed by line number.
type ProductTreeItem struct {
	TreeItemCode string
	LineNumber   int
	ItemCode     string
	ItemName     string
	Quantity     decimal.Decimal
	ImageURL     string
}

// Equal compares tree items by value.
func (i ProductTreeItem) Equal(o ProductTreeItem) bool {
	return i.TreeItemCode == o.TreeItemCode &&
		i.LineNumber == o.LineNumber &&
		i.ItemCode == o.ItemCode &&
		i.ItemName == o.ItemName &&
		i.Quantity.Equal(o.Quantity) &&
		i.ImageURL == o.ImageURL
}

// TreeItemCollection describes the component lines of tree treeCode.
func TreeItemCollection(treeCode string) reconcile.Collection[ProductTreeItem, int] {
	return reconcile.Collection[ProductTreeItem, int]{
		Name: "tree_items",
		Key:  func(i ProductTreeItem) int { return i.LineNumber },
		Apply: func(existing *ProductTreeItem, incoming ProductTreeItem) {
			existing.ItemCode = incoming.ItemCode
			existing.ItemName = incoming.ItemName
			existing.Quantity = incoming.Quantity
			existing.ImageURL = incoming.ImageURL
		},
		Assigner: reconcile.Sequence[ProductTreeItem, int]{
			SetKey: func(i *ProductTreeItem, n int) { i.LineNumber = n },
		},
		Prepare: func(i *ProductTreeItem) {
			i.TreeItemCode = treeCode
		},
		Validate: func(i ProductTreeItem) error {
			if i.LineNumber < 0 {
				return errors.New("line_number must not be negative")
			}
			if strings.TrimSpace(i.ItemCode) == "" {
				return errors.New("item_code is required")
			}
			if i.TreeItemCode != "" && i.TreeItemCode != treeCode {
				return errors.New("belongs to another product tree")
			}
			return nil
		},
		Equal: ProductTreeItem.Equal,
	}
}

// NumberNewTreeItems validates the items of a tree that does not exist yet
// and numbers the unnumbered ones after the highest explicit line number, in
// submission order.
func NumberNewTreeItems(treeCode string, items []ProductTreeItem) ([]ProductTreeItem, error) {
	plan, err := reconcile.Compute(TreeItemCollection(treeCode), nil, items)
	if err != nil {
		return nil, err
	}
	return plan.Inserts, nil
}
