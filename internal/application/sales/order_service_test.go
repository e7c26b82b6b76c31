package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blueselfcheckout/backend/internal/domain/sales"
	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/blueselfcheckout/backend/internal/infrastructure/persistence"
	"github.com/blueselfcheckout/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Load(ctx context.Context, id int64) (sales.Order, []sales.OrderLine, error) {
	args := m.Called(ctx, id)
	lines, _ := args.Get(1).([]sales.OrderLine)
	return args.Get(0).(sales.Order), lines, args.Error(2)
}

func (m *MockOrderRepository) InTx(ctx context.Context, fn func(tx reconcile.Tx[sales.Order, sales.OrderLine]) error) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *sales.Order, lines []sales.OrderLine) error {
	args := m.Called(ctx, order, lines)
	if args.Error(0) == nil {
		order.ID = 11
	}
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, filter sales.OrderFilter) ([]sales.OrderWithLines, int64, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]sales.OrderWithLines)
	return rows, args.Get(1).(int64), args.Error(2)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestOrderService_Create(t *testing.T) {
	t.Run("numbers lines and computes totals", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(o *sales.Order) bool {
			return o.DocTotal.Equal(dec(25)) && o.DocStatus == sales.StatusPending
		}), mock.MatchedBy(func(lines []sales.OrderLine) bool {
			return len(lines) == 2 && lines[0].LineID == 1 && lines[1].LineID == 2
		})).Return(nil)

		resp, err := svc.Create(context.Background(), CreateOrderRequest{
			FolioNumber: "000001",
			Lines: []OrderLineRequest{
				{ItemCode: "BURGER", Quantity: dec(2), Price: dec(10)},
				{ItemCode: "SODA", Quantity: dec(1), Price: dec(5), LineID: 0},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(11), resp.ID)
		assert.True(t, resp.DocTotal.Equal(dec(25)))
		require.Len(t, resp.Lines, 2)
		assert.True(t, resp.Lines[0].LineTotal.Equal(dec(20)))
		repo.AssertExpectations(t)
	})

	t.Run("invalid header never reaches the repository", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo)

		_, err := svc.Create(context.Background(), CreateOrderRequest{})
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid line never reaches the repository", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo)

		_, err := svc.Create(context.Background(), CreateOrderRequest{
			FolioNumber: "000002",
			Lines:       []OrderLineRequest{{ItemCode: "A", Quantity: dec(-1)}},
		})
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository error is returned", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewOrderService(repo)
		repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(shared.NewTransactionFailure("failed to create order", errors.New("disk full")))

		_, err := svc.Create(context.Background(), CreateOrderRequest{FolioNumber: "000003"})
		assert.True(t, shared.IsCode(err, shared.CodeTransactionFailure))
	})
}

func TestOrderService_GetAndDelete(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo)
	ctx := context.Background()

	repo.On("Load", mock.Anything, int64(5)).Return(sales.Order{ID: 5, FolioNumber: "X"}, []sales.OrderLine{
		{OrderID: 5, LineID: 1, ItemCode: "A"},
	}, nil)
	repo.On("Load", mock.Anything, int64(6)).Return(sales.Order{}, nil, shared.NewNotFoundError("order", 6))
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)

	resp, err := svc.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "X", resp.FolioNumber)
	assert.Len(t, resp.Lines, 1)

	_, err = svc.Get(ctx, 6)
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))

	require.NoError(t, svc.Delete(ctx, 5))
	repo.AssertExpectations(t)
}

func newSQLiteService(t *testing.T) (*OrderService, *OrderResponse) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	svc := NewOrderService(persistence.NewGormOrderRepository(db))

	created, err := svc.Create(context.Background(), CreateOrderRequest{
		FolioNumber: "000100",
		Lines: []OrderLineRequest{
			{ItemCode: "A", Quantity: dec(1), Price: dec(10)},
			{ItemCode: "B", Quantity: dec(1), Price: dec(20)},
		},
	})
	require.NoError(t, err)
	return svc, created
}

func TestOrderService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("reconciles lines and recomputes the total", func(t *testing.T) {
		svc, created := newSQLiteService(t)
		status := sales.StatusCompleted

		resp, err := svc.Update(ctx, created.ID, UpdateOrderRequest{
			DocStatus: &status,
			Lines: []OrderLineRequest{
				{LineID: 1, ItemCode: "A", Quantity: dec(3), Price: dec(5)},
				{ItemCode: "C", Quantity: dec(1), Price: dec(10)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, sales.StatusCompleted, resp.DocStatus)
		require.Len(t, resp.Lines, 2)
		assert.Equal(t, 1, resp.Lines[0].LineID)
		assert.Equal(t, 3, resp.Lines[1].LineID)
		assert.True(t, resp.DocTotal.Equal(dec(25)))
	})

	t.Run("absent lines keep the lines", func(t *testing.T) {
		svc, created := newSQLiteService(t)
		comments := "no onions"

		resp, err := svc.Update(ctx, created.ID, UpdateOrderRequest{Comments: &comments})
		require.NoError(t, err)

		assert.Equal(t, "no onions", resp.Comments)
		assert.Len(t, resp.Lines, 2)
		assert.True(t, resp.DocTotal.Equal(dec(30)))
	})

	t.Run("empty lines clear the order", func(t *testing.T) {
		svc, created := newSQLiteService(t)

		resp, err := svc.Update(ctx, created.ID, UpdateOrderRequest{Lines: []OrderLineRequest{}})
		require.NoError(t, err)

		assert.Empty(t, resp.Lines)
		assert.True(t, resp.DocTotal.IsZero())
	})

	t.Run("invalid header is rejected before writing", func(t *testing.T) {
		svc, created := newSQLiteService(t)
		blank := " "

		_, err := svc.Update(ctx, created.ID, UpdateOrderRequest{FolioNumber: &blank, Lines: []OrderLineRequest{}})
		assert.True(t, shared.IsCode(err, shared.CodeValidation))

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Len(t, got.Lines, 2)
	})

	t.Run("missing order", func(t *testing.T) {
		svc, _ := newSQLiteService(t)

		_, err := svc.Update(ctx, 999, UpdateOrderRequest{})
		assert.True(t, shared.IsCode(err, shared.CodeNotFound))
	})
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the query and pages the result", func(t *testing.T) {
		repo := new(MockOrderRepository)
		from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

		repo.On("List", mock.Anything, mock.MatchedBy(func(f sales.OrderFilter) bool {
			return f.Page == 2 && f.PageSize == 10 && f.OrderBy == "id" && f.OrderDir == "asc" &&
				f.DeviceCode == "K1" && f.DocStatus == "P" &&
				f.From.Equal(from) && f.To.Equal(to.Add(24*time.Hour-time.Nanosecond))
		})).Return([]sales.OrderWithLines{
			{Order: sales.Order{ID: 11, FolioNumber: "000011"}, Lines: []sales.OrderLine{{OrderID: 11, LineID: 1, ItemCode: "SODA"}}},
		}, int64(11), nil)

		svc := NewOrderService(repo)
		resp, err := svc.List(ctx, ListOrdersQuery{Page: 2, DeviceCode: "K1", Status: "P", From: &from, To: &to, Search: "abc"})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "SODA", resp.Items[0].Lines[0].ItemCode)
		assert.Equal(t, int64(11), resp.Total)
		assert.Equal(t, 2, resp.TotalPages)
		assert.False(t, resp.HasNextPage)
		assert.True(t, resp.HasPreviousPage)
		assert.Equal(t, "abc", resp.Search)
		repo.AssertExpectations(t)
	})

	t.Run("inverted date range", func(t *testing.T) {
		repo := new(MockOrderRepository)
		from := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, -1)

		_, err := NewOrderService(repo).List(ctx, ListOrdersQuery{From: &from, To: &to})
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockOrderRepository)
		repo.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("boom"))

		_, err := NewOrderService(repo).List(ctx, ListOrdersQuery{})
		assert.EqualError(t, err, "boom")
	})

	t.Run("empty listing against sqlite", func(t *testing.T) {
		svc := NewOrderService(persistence.NewGormOrderRepository(testutil.NewSQLiteDB(t)))
		resp, err := svc.List(ctx, ListOrdersQuery{})
		require.NoError(t, err)
		assert.NotNil(t, resp.Items)
		assert.Zero(t, resp.TotalPages)
	})
}
