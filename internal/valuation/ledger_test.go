package valuation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/inventory-engine/internal/domain"
)

func day(n int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func in(qty, cost float64, n int) domain.StockMovement {
	return domain.StockMovement{
		Type:     domain.MovementIn,
		Quantity: decimal.NewFromFloat(qty),
		UnitCost: decimal.NewFromFloat(cost),
		Date:     day(n),
	}
}

func out(qty float64, n int) domain.StockMovement {
	return domain.StockMovement{
		Type:     domain.MovementOut,
		Quantity: decimal.NewFromFloat(qty),
		Date:     day(n),
	}
}

func TestFIFOOrderSensitivity(t *testing.T) {
	movements := []domain.StockMovement{
		in(10, 100, 0),
		in(10, 200, 1),
		out(10, 2),
	}

	fifo, err := Valuate(movements, MethodFIFO)
	require.NoError(t, err)
	assert.True(t, fifo.TotalValue.Equal(decimal.NewFromInt(2000)), "FIFO should keep the 200-cost lot, got %s", fifo.TotalValue)
	assert.True(t, fifo.TotalQuantity.Equal(decimal.NewFromInt(10)))
	require.Len(t, fifo.Inventory, 1)
	assert.True(t, fifo.Inventory[0].UnitCost.Equal(decimal.NewFromInt(200)))

	lifo, err := Valuate(movements, MethodLIFO)
	require.NoError(t, err)
	assert.True(t, lifo.TotalValue.Equal(decimal.NewFromInt(1000)), "LIFO should keep the 100-cost lot, got %s", lifo.TotalValue)
	require.Len(t, lifo.Inventory, 1)
	assert.True(t, lifo.Inventory[0].UnitCost.Equal(decimal.NewFromInt(100)))
}

func TestConservationInOnly(t *testing.T) {
	movements := []domain.StockMovement{
		in(10, 100, 0),
		in(5, 120, 1),
		in(2.5, 80, 2),
	}
	wantQty := decimal.NewFromFloat(17.5)
	wantValue := decimal.NewFromInt(1800) // 1000 + 600 + 200

	for _, method := range []Method{MethodFIFO, MethodLIFO, MethodWeightedAverage} {
		result, err := Valuate(movements, method)
		require.NoError(t, err, method)
		assert.True(t, result.TotalQuantity.Equal(wantQty), "%s quantity %s", method, result.TotalQuantity)
		assert.True(t, result.TotalValue.Equal(wantValue), "%s value %s", method, result.TotalValue)
		assert.True(t, result.OverIssued.IsZero(), method)
	}
}

func TestUniformCostSymmetry(t *testing.T) {
	movements := []domain.StockMovement{
		in(10, 50, 0),
		in(20, 50, 1),
		out(12, 2),
		in(4, 50, 3),
		out(7, 4),
	}

	fifo, err := Valuate(movements, MethodFIFO)
	require.NoError(t, err)
	lifo, err := Valuate(movements, MethodLIFO)
	require.NoError(t, err)
	avg, err := Valuate(movements, MethodWeightedAverage)
	require.NoError(t, err)

	assert.True(t, fifo.TotalQuantity.Equal(lifo.TotalQuantity))
	assert.True(t, fifo.TotalQuantity.Equal(avg.TotalQuantity))
	assert.True(t, fifo.TotalValue.Equal(lifo.TotalValue))
	assert.True(t, fifo.TotalValue.Equal(avg.TotalValue))
}

func TestOverIssueClampsToZero(t *testing.T) {
	movements := []domain.StockMovement{
		in(10, 100, 0),
		out(25, 1),
	}

	for _, method := range []Method{MethodFIFO, MethodLIFO, MethodWeightedAverage} {
		result, err := Valuate(movements, method)
		require.NoError(t, err, method)
		assert.True(t, result.TotalQuantity.IsZero(), "%s quantity %s", method, result.TotalQuantity)
		assert.True(t, result.TotalValue.IsZero(), "%s value %s", method, result.TotalValue)
		assert.True(t, result.OverIssued.Equal(decimal.NewFromInt(15)), "%s over-issued %s", method, result.OverIssued)
	}
}

func TestPartialLotDeduction(t *testing.T) {
	movements := []domain.StockMovement{
		in(10, 100, 0),
		in(10, 200, 1),
		out(4, 2),
	}

	result, err := Valuate(movements, MethodFIFO)
	require.NoError(t, err)
	require.Len(t, result.Inventory, 2)
	assert.True(t, result.Inventory[0].Quantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, result.Inventory[0].UnitCost.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.TotalValue.Equal(decimal.NewFromInt(2600)))
}

func TestWeightedAverageRecomputesOnReceiptOnly(t *testing.T) {
	movements := []domain.StockMovement{
		in(10, 100, 0),
		in(10, 200, 1),
		out(5, 2),
	}

	result, err := Valuate(movements, MethodWeightedAverage)
	require.NoError(t, err)
	assert.True(t, result.AverageUnitCost.Equal(decimal.NewFromInt(150)), "average %s", result.AverageUnitCost)
	assert.True(t, result.TotalQuantity.Equal(decimal.NewFromInt(15)))
	assert.True(t, result.TotalValue.Equal(decimal.NewFromInt(2250)))
	assert.Nil(t, result.Inventory)
}

func TestValidationRejectsMalformedMovements(t *testing.T) {
	t.Run("negative quantity", func(t *testing.T) {
		movements := []domain.StockMovement{
			in(10, 100, 0),
			{Type: domain.MovementOut, Quantity: decimal.NewFromInt(-3), Date: day(1)},
		}
		_, err := Valuate(movements, MethodFIFO)
		require.ErrorIs(t, err, domain.ErrNegativeQuantity)
		assert.Contains(t, err.Error(), "movement 1")
	})

	t.Run("IN without unit cost", func(t *testing.T) {
		movements := []domain.StockMovement{
			{Type: domain.MovementIn, Quantity: decimal.NewFromInt(5), Date: day(0)},
		}
		_, err := Valuate(movements, MethodWeightedAverage)
		require.ErrorIs(t, err, domain.ErrMissingUnitCost)
		assert.Contains(t, err.Error(), "movement 0")
	})

	t.Run("unknown movement type", func(t *testing.T) {
		movements := []domain.StockMovement{
			{Type: "ADJUST", Quantity: decimal.NewFromInt(5), Date: day(0)},
		}
		_, err := Valuate(movements, MethodFIFO)
		require.ErrorIs(t, err, domain.ErrInvalidMovementType)
	})

	t.Run("unsupported method", func(t *testing.T) {
		_, err := Valuate(nil, Method("SPECIFIC"))
		require.Error(t, err)
	})
}

func TestEmptyStream(t *testing.T) {
	result, err := Valuate(nil, MethodFIFO)
	require.NoError(t, err)
	assert.True(t, result.TotalQuantity.IsZero())
	assert.True(t, result.TotalValue.IsZero())
	assert.True(t, result.AverageUnitCost.IsZero())
	assert.Empty(t, result.Inventory)
}

func TestLotMetadataSurvivesReplay(t *testing.T) {
	exp := day(90)
	movements := []domain.StockMovement{
		{Type: domain.MovementIn, Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(40), Date: day(0), LotNumber: "LOT-A", ExpiryDate: &exp},
		out(3, 1),
	}

	result, err := Valuate(movements, MethodFIFO)
	require.NoError(t, err)
	require.Len(t, result.Inventory, 1)
	assert.Equal(t, "LOT-A", result.Inventory[0].LotNumber)
	require.NotNil(t, result.Inventory[0].ExpiryDate)
	assert.True(t, result.Inventory[0].ExpiryDate.Equal(exp))
}
