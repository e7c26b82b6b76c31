package sales

import (
	"context"
	"time"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
)

// OrderFilter narrows an order listing. Search matches folio, customer,
// nickname, device and comments case-insensitively. From and To bound
// DocDate inclusively.
type OrderFilter struct {
	shared.Filter
	CustomerCode string
	DeviceCode   string
	DocStatus    string
	From         *time.Time
	To           *time.Time
}

// OrderWithLines is one listed order with its lines ordered by line id
type OrderWithLines struct {
	Order Order
	Lines []OrderLine
}

// OrderRepository persists orders together with their lines.
type OrderRepository interface {
	reconcile.Store[int64, Order, OrderLine]

	// Create inserts the order header and its already numbered lines in one
	// transaction, setting order.ID and each line's OrderID.
	Create(ctx context.Context, order *Order, lines []OrderLine) error

	// Delete removes the order; lines go with it.
	Delete(ctx context.Context, id int64) error

	// List returns one page of orders matching filter and the total match count.
	List(ctx context.Context, filter OrderFilter) ([]OrderWithLines, int64, error)
}

// NumberNewLines validates the lines of an order that does not exist yet and
// numbers them 1..n in submission order.
func NumberNewLines(lines []OrderLine) ([]OrderLine, error) {
	plan, err := reconcile.Compute(LineCollection(0), nil, lines)
	if err != nil {
		return nil, err
	}
	return plan.Inserts, nil
}
