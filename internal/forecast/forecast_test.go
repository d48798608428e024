package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/andresuchdata/inventory-engine/internal/domain"
)

func history(outQtys ...float64) []domain.StockMovement {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	movements := []domain.StockMovement{{
		Type:     domain.MovementIn,
		Quantity: decimal.NewFromInt(1000),
		UnitCost: decimal.NewFromInt(10),
		Date:     base,
	}}
	for i, qty := range outQtys {
		movements = append(movements, domain.StockMovement{
			Type:     domain.MovementOut,
			Quantity: decimal.NewFromFloat(qty),
			Date:     base.AddDate(0, 0, i+1),
		})
	}
	return movements
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage(history(10, 20, 30, 40), 3)
	assert.True(t, got.Equal(decimal.NewFromInt(30)), "got %s", got)
}

func TestMovingAverageInsufficientHistory(t *testing.T) {
	got := MovingAverage(history(10, 20), 3)
	assert.True(t, got.IsZero())
}

func TestMovingAverageIgnoresReceipts(t *testing.T) {
	// Only the IN movement in the history; no OUT data to average.
	got := MovingAverage(history(), 3)
	assert.True(t, got.IsZero())
}

func TestMovingAverageDefaultPeriods(t *testing.T) {
	got := MovingAverage(history(10, 20, 30, 40), 0)
	assert.True(t, got.Equal(decimal.NewFromInt(30)), "got %s", got)
}

func TestExponentialSmoothing(t *testing.T) {
	// 0.3*20 + 0.7*10 = 13
	got := ExponentialSmoothing(history(10, 20), 0.3)
	assert.True(t, got.Equal(decimal.NewFromInt(13)), "got %s", got)
}

func TestExponentialSmoothingLongerSeries(t *testing.T) {
	// f0=10; f1=0.3*20+0.7*10=13; f2=0.3*30+0.7*13=18.1
	got := ExponentialSmoothing(history(10, 20, 30), 0.3)
	assert.True(t, got.Equal(decimal.NewFromFloat(18.1)), "got %s", got)
}

func TestExponentialSmoothingEmptyHistory(t *testing.T) {
	got := ExponentialSmoothing(history(), 0.3)
	assert.True(t, got.IsZero())
}

func TestExponentialSmoothingDefaultAlpha(t *testing.T) {
	got := ExponentialSmoothing(history(10, 20), 0)
	assert.True(t, got.Equal(decimal.NewFromInt(13)), "got %s", got)
}
