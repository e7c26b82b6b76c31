// Package sales implements the order use cases on top of the line
// reconciler.
package sales

import (
	"context"

	"github.com/blueselfcheckout/backend/internal/domain/sales"
	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/blueselfcheckout/backend/internal/infrastructure/telemetry"
)

// OrderService handles order creation, edits and removal
type OrderService struct {
	repo       sales.OrderRepository
	reconciler *reconcile.Reconciler[int64, sales.Order, sales.OrderLine, int]
}

// NewOrderService creates a new OrderService. opts are passed to the line
// reconciler, typically an observer.
func NewOrderService(repo sales.OrderRepository, opts ...reconcile.Option) *OrderService {
	return &OrderService{
		repo:       repo,
		reconciler: reconcile.New[int64, sales.Order, sales.OrderLine, int](repo, opts...),
	}
}

// Create inserts a new order with lines numbered 1..n in submission order
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (resp *OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create", "lines", len(req.Lines))
	defer func() { telemetry.EndSpan(span, err) }()

	order := req.toDomain()
	order.ApplyDefaults()
	if err := order.Validate(); err != nil {
		return nil, err
	}

	lines, err := sales.NumberNewLines(linesToDomain(req.Lines))
	if err != nil {
		return nil, err
	}
	order.RecalculateTotals(lines)

	if err := s.repo.Create(ctx, &order, lines); err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span, "order_id", order.ID)
	return ToOrderResponse(order, lines), nil
}

// Get returns the order with its lines
func (s *OrderService) Get(ctx context.Context, id int64) (*OrderResponse, error) {
	order, lines, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order, lines), nil
}

// Update applies header changes and reconciles the lines in one transaction.
// DocTotal always reflects the lines as they are after the update.
func (s *OrderService) Update(ctx context.Context, id int64, req UpdateOrderRequest) (resp *OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update", "order_id", id)
	defer func() { telemetry.EndSpan(span, err) }()

	mutate := func(o *sales.Order, next []sales.OrderLine) error {
		req.applyTo(o)
		if err := o.Validate(); err != nil {
			return err
		}
		o.RecalculateTotals(next)
		return nil
	}

	order, lines, err := s.reconciler.Reconcile(ctx, id, sales.LineCollection(id), mutate, linesToDomain(req.Lines))
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order, lines), nil
}

// List returns one page of orders with their lines
func (s *OrderService) List(ctx context.Context, q ListOrdersQuery) (*OrderListResponse, error) {
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return nil, shared.NewValidationError("invalid date range", "from: must not be after to")
	}
	filter := q.toFilter()

	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]OrderResponse, len(rows))
	for i, row := range rows {
		items[i] = *ToOrderResponse(row.Order, row.Lines)
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	page.Search = filter.Search
	return &page, nil
}

// Delete removes the order and its lines
func (s *OrderService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "delete", "order_id", id)
	defer func() { telemetry.EndSpan(span, err) }()

	return s.repo.Delete(ctx, id)
}
