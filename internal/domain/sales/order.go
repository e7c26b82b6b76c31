// Package sales holds the order aggregate and its line collection.
package sales

import (
	"errors"
	"strings"
	"time"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/shopspring/decimal"
)

// Document status and flag values used by the kiosk clients.
const (
	StatusPending   = "P"
	StatusCompleted = "C"
	DocTypeOrder    = "O"
	FlagYes         = "Y"
	FlagNo          = "N"
)

// Order is the header of a sales document.
type Order struct {
	ID           int64
	FolioPrefix  string
	FolioNumber  string
	CustomerCode string
	CustomerName string
	NickName     string
	DeviceCode   string
	DocDate      *time.Time
	DocDueDate   *time.Time
	DocStatus    string
	DocType      string
	PaidType     string
	Transferred  string
	Printed      string
	DocRate      decimal.Decimal
	DocTotal     decimal.Decimal
	DocTotalFC   decimal.Decimal
	Comments     string
}

// Validate checks header fields that must hold before the order is persisted.
func (o *Order) Validate() error {
	var details []string
	if strings.TrimSpace(o.FolioNumber) == "" {
		details = append(details, "folio_number: is required")
	}
	if len(o.FolioPrefix) > 5 {
		details = append(details, "folio_prefix: must be at most 5 characters")
	}
	if len(o.Comments) > 254 {
		details = append(details, "comments: must be at most 254 characters")
	}
	if o.DocRate.IsNegative() {
		details = append(details, "doc_rate: must not be negative")
	}
	if len(details) > 0 {
		return shared.NewValidationError("invalid order", details...)
	}
	return nil
}

// ApplyDefaults fills the flags a freshly created order starts with.
func (o *Order) ApplyDefaults() {
	if o.DocStatus == "" {
		o.DocStatus = StatusPending
	}
	if o.DocType == "" {
		o.DocType = DocTypeOrder
	}
	if o.Transferred == "" {
		o.Transferred = FlagNo
	}
	if o.Printed == "" {
		o.Printed = FlagNo
	}
}

// RecalculateTotals sets DocTotal to the sum of the given line totals.
func (o *Order) RecalculateTotals(lines []OrderLine) {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	o.DocTotal = total
}

// OrderLine is one item on an order, keyed by (OrderID, LineID).
type OrderLine struct {
	OrderID    int64
	LineID     int
	ItemCode   string
	ItemName   string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	LineStatus string
	TaxCode    string
	LineTotal  decimal.Decimal
}

// Recalculate derives LineTotal from quantity and price.
func (l *OrderLine) Recalculate() {
	l.LineTotal = l.Quantity.Mul(l.Price)
}

// Equal compares lines by value, treating 1.50 and 1.5 as the same amount.
func (l OrderLine) Equal(other OrderLine) bool {
	return l.OrderID == other.OrderID &&
		l.LineID == other.LineID &&
		l.ItemCode == other.ItemCode &&
		l.ItemName == other.ItemName &&
		l.Quantity.Equal(other.Quantity) &&
		l.Price.Equal(other.Price) &&
		l.LineStatus == other.LineStatus &&
		l.TaxCode == other.TaxCode &&
		l.LineTotal.Equal(other.LineTotal)
}

func (l OrderLine) validate(orderID int64) error {
	var problems []string
	if l.LineID < 0 {
		problems = append(problems, "line_id must not be negative")
	}
	if l.OrderID != 0 && l.OrderID != orderID {
		problems = append(problems, "line belongs to another order")
	}
	if strings.TrimSpace(l.ItemCode) == "" {
		problems = append(problems, "item_code is required")
	}
	if l.Quantity.IsNegative() {
		problems = append(problems, "quantity must not be negative")
	}
	if l.Price.IsNegative() {
		problems = append(problems, "price must not be negative")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// LineCollection describes how the lines of order orderID are reconciled.
// Line ids are surrogate keys; zero means "new line".
func LineCollection(orderID int64) reconcile.Collection[OrderLine, int] {
	return reconcile.Collection[OrderLine, int]{
		Name: "order_lines",
		Key:  func(l OrderLine) int { return l.LineID },
		Apply: func(existing *OrderLine, incoming OrderLine) {
			existing.ItemCode = incoming.ItemCode
			existing.ItemName = incoming.ItemName
			existing.Quantity = incoming.Quantity
			existing.Price = incoming.Price
			if incoming.LineStatus != "" {
				existing.LineStatus = incoming.LineStatus
			}
			existing.TaxCode = incoming.TaxCode
			existing.Recalculate()
		},
		Assigner: reconcile.Sequence[OrderLine, int]{
			SetKey: func(l *OrderLine, id int) { l.LineID = id },
		},
		Prepare: func(l *OrderLine) {
			l.OrderID = orderID
			if l.LineStatus == "" {
				l.LineStatus = StatusPending
			}
			l.Recalculate()
		},
		Validate: func(l OrderLine) error { return l.validate(orderID) },
		Equal:    OrderLine.Equal,
	}
}
