// internal/forecast/forecast.go
package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/inventory-engine/internal/domain"
)

const precision = 4

// DefaultPeriods is the moving-average window when the caller passes a
// non-positive value.
const DefaultPeriods = 3

// DefaultAlpha is the exponential smoothing factor when the caller passes a
// value outside (0, 1].
const DefaultAlpha = 0.3

// outQuantities extracts OUT quantities in their original order.
func outQuantities(movements []domain.StockMovement) []decimal.Decimal {
	qtys := make([]decimal.Decimal, 0, len(movements))
	for _, m := range movements {
		if m.Type == domain.MovementOut {
			qtys = append(qtys, m.Quantity)
		}
	}
	return qtys
}

// MovingAverage forecasts demand as the average of the last periods OUT
// quantities. Returns 0 when the history holds fewer OUT movements than the
// window requires.
func MovingAverage(movements []domain.StockMovement, periods int) decimal.Decimal {
	if periods <= 0 {
		periods = DefaultPeriods
	}
	qtys := outQuantities(movements)
	if len(qtys) < periods {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, qty := range qtys[len(qtys)-periods:] {
		sum = sum.Add(qty)
	}
	return sum.Div(decimal.NewFromInt(int64(periods))).Round(precision)
}

// ExponentialSmoothing forecasts demand by smoothing the OUT quantity series:
// the forecast is seeded from the first OUT quantity, then each subsequent
// quantity is blended in with weight alpha. Returns 0 on an empty OUT history.
func ExponentialSmoothing(movements []domain.StockMovement, alpha float64) decimal.Decimal {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	qtys := outQuantities(movements)
	if len(qtys) == 0 {
		return decimal.Zero
	}

	a := decimal.NewFromFloat(alpha)
	oneMinusA := decimal.NewFromInt(1).Sub(a)
	forecast := qtys[0]
	for _, qty := range qtys[1:] {
		forecast = a.Mul(qty).Add(oneMinusA.Mul(forecast))
	}
	return forecast.Round(precision)
}
