package sales

import (
	"testing"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id int, code string, qty, price int64) OrderLine {
	return OrderLine{
		LineID:   id,
		ItemCode: code,
		ItemName: code,
		Quantity: decimal.NewFromInt(qty),
		Price:    decimal.NewFromInt(price),
	}
}

func TestOrder_Validate(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		o := Order{FolioNumber: "000123", FolioPrefix: "K1"}
		assert.NoError(t, o.Validate())
	})

	t.Run("collects every problem", func(t *testing.T) {
		o := Order{FolioPrefix: "TOOLONG", DocRate: decimal.NewFromInt(-1)}
		err := o.Validate()
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeValidation, de.Code)
		assert.Len(t, de.Details, 3)
	})
}

func TestOrder_ApplyDefaults(t *testing.T) {
	o := Order{Printed: FlagYes}
	o.ApplyDefaults()

	assert.Equal(t, StatusPending, o.DocStatus)
	assert.Equal(t, DocTypeOrder, o.DocType)
	assert.Equal(t, FlagNo, o.Transferred)
	assert.Equal(t, FlagYes, o.Printed)
}

func TestOrder_RecalculateTotals(t *testing.T) {
	lines := []OrderLine{line(1, "A", 2, 10), line(2, "B", 1, 5)}
	for i := range lines {
		lines[i].Recalculate()
	}

	var o Order
	o.RecalculateTotals(lines)
	assert.True(t, o.DocTotal.Equal(decimal.NewFromInt(25)))
}

func TestLineCollection(t *testing.T) {
	existing := []OrderLine{line(1, "A", 1, 10), line(2, "B", 1, 20)}
	for i := range existing {
		existing[i].OrderID = 7
		existing[i].LineStatus = StatusPending
		existing[i].Recalculate()
	}

	t.Run("update recomputes line total and new line gets next id", func(t *testing.T) {
		desired := []OrderLine{line(1, "A", 3, 10), line(0, "C", 2, 4)}

		plan, err := reconcile.Compute(LineCollection(7), existing, desired)
		require.NoError(t, err)

		require.Len(t, plan.Updates, 1)
		assert.True(t, plan.Updates[0].After.LineTotal.Equal(decimal.NewFromInt(30)))
		require.Len(t, plan.Deletes, 1)
		assert.Equal(t, 2, plan.Deletes[0].LineID)
		require.Len(t, plan.Inserts, 1)
		assert.Equal(t, 3, plan.Inserts[0].LineID)
		assert.Equal(t, int64(7), plan.Inserts[0].OrderID)
		assert.True(t, plan.Inserts[0].LineTotal.Equal(decimal.NewFromInt(8)))
	})

	t.Run("client supplied line total is ignored", func(t *testing.T) {
		in := line(1, "A", 1, 10)
		in.LineStatus = StatusPending
		in.LineTotal = decimal.NewFromInt(999)

		plan, err := reconcile.Compute(LineCollection(7), existing, []OrderLine{in, existing[1]})
		require.NoError(t, err)
		assert.True(t, plan.Empty())
	})

	t.Run("resent line without status is unchanged", func(t *testing.T) {
		created, err := NumberNewLines([]OrderLine{line(0, "A", 1, 10)})
		require.NoError(t, err)
		for i := range created {
			created[i].OrderID = 7
		}
		require.Equal(t, StatusPending, created[0].LineStatus)

		plan, err := reconcile.Compute(LineCollection(7), created, []OrderLine{line(1, "A", 1, 10)})
		require.NoError(t, err)
		assert.True(t, plan.Empty())
		assert.Equal(t, 1, plan.Summary().Kept)
	})

	t.Run("explicit status is applied", func(t *testing.T) {
		closed := line(1, "A", 1, 10)
		closed.LineStatus = StatusCompleted

		plan, err := reconcile.Compute(LineCollection(7), existing, []OrderLine{closed, existing[1]})
		require.NoError(t, err)
		require.Len(t, plan.Updates, 1)
		assert.Equal(t, StatusCompleted, plan.Updates[0].After.LineStatus)
	})

	t.Run("line of another order is rejected", func(t *testing.T) {
		foreign := line(1, "A", 1, 10)
		foreign.OrderID = 99

		_, err := reconcile.Compute(LineCollection(7), existing, []OrderLine{foreign})
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("negative line id is rejected", func(t *testing.T) {
		_, err := reconcile.Compute(LineCollection(7), existing, []OrderLine{line(-3, "A", 1, 1)})
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})
}

func TestNumberNewLines(t *testing.T) {
	lines, err := NumberNewLines([]OrderLine{line(0, "X", 1, 1), line(0, "Y", 2, 1)})
	require.NoError(t, err)

	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].LineID)
	assert.Equal(t, "X", lines[0].ItemCode)
	assert.Equal(t, 2, lines[1].LineID)
	assert.Equal(t, StatusPending, lines[1].LineStatus)
}
