// internal/demand/provider.go
package demand

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/inventory-engine/internal/domain"
)

// Statistics is the pluggable demand analytics capability the engine depends
// on. The host injects an implementation backed by its own data source; the
// engine never reads demand data directly.
type Statistics interface {
	// AverageDailyUsage returns the mean daily issue quantity for the product.
	AverageDailyUsage(productID string) (decimal.Decimal, error)
	// DemandStdDev returns the standard deviation of daily issue quantities.
	DemandStdDev(productID string) (decimal.Decimal, error)
	// AnnualDemand returns the projected yearly issue quantity.
	AnnualDemand(productID string) (decimal.Decimal, error)
	// COGS returns the cost of goods issued over the trailing period.
	COGS(productID string, periodDays int) (decimal.Decimal, error)
	// AverageInventoryValue returns the mean on-hand value over the trailing period.
	AverageInventoryValue(productID string, periodDays int) (decimal.Decimal, error)
}

// daysPerYear is used to project annual demand from daily usage.
const daysPerYear = 365

// HistoryProvider derives demand statistics from per-product movement history
// supplied in memory by the host. Windows are measured back from each
// product's most recent movement so results are reproducible regardless of
// when the provider is queried.
type HistoryProvider struct {
	history    map[string][]domain.StockMovement
	costOf     func(productID string) decimal.Decimal
	windowDays int
}

// NewHistoryProvider builds a provider over the given movement history.
// costOf resolves a product's unit cost for COGS and inventory-value figures.
// windowDays is the observation window for usage statistics; values below 1
// fall back to 90.
func NewHistoryProvider(history map[string][]domain.StockMovement, costOf func(productID string) decimal.Decimal, windowDays int) *HistoryProvider {
	if windowDays < 1 {
		windowDays = 90
	}
	return &HistoryProvider{history: history, costOf: costOf, windowDays: windowDays}
}

func (p *HistoryProvider) movements(productID string) ([]domain.StockMovement, error) {
	movs, ok := p.history[productID]
	if !ok {
		return nil, domain.ErrUnknownProduct
	}
	return movs, nil
}

// windowStart returns the inclusive start of a trailing window ending at the
// product's latest movement date.
func windowStart(movs []domain.StockMovement, periodDays int) time.Time {
	if len(movs) == 0 {
		return time.Time{}
	}
	end := movs[0].Date
	for _, m := range movs[1:] {
		if m.Date.After(end) {
			end = m.Date
		}
	}
	return end.AddDate(0, 0, -periodDays)
}

// AverageDailyUsage returns total issued quantity over the window divided by
// the window length.
func (p *HistoryProvider) AverageDailyUsage(productID string) (decimal.Decimal, error) {
	movs, err := p.movements(productID)
	if err != nil {
		return decimal.Zero, err
	}
	start := windowStart(movs, p.windowDays)
	total := decimal.Zero
	for _, m := range movs {
		if m.Type == domain.MovementOut && !m.Date.Before(start) {
			total = total.Add(m.Quantity)
		}
	}
	return total.Div(decimal.NewFromInt(int64(p.windowDays))), nil
}

// DemandStdDev returns the population standard deviation of daily issue
// totals over the window. Days without issues count as zero-demand days.
func (p *HistoryProvider) DemandStdDev(productID string) (decimal.Decimal, error) {
	movs, err := p.movements(productID)
	if err != nil {
		return decimal.Zero, err
	}
	start := windowStart(movs, p.windowDays)

	daily := make(map[string]decimal.Decimal)
	for _, m := range movs {
		if m.Type == domain.MovementOut && !m.Date.Before(start) {
			day := m.Date.Format("2006-01-02")
			daily[day] = daily[day].Add(m.Quantity)
		}
	}

	n := float64(p.windowDays)
	sum := 0.0
	for _, qty := range daily {
		sum += qty.InexactFloat64()
	}
	mean := sum / n

	variance := 0.0
	for _, qty := range daily {
		diff := qty.InexactFloat64() - mean
		variance += diff * diff
	}
	// Zero-demand days contribute (0 - mean)^2 each.
	variance += float64(p.windowDays-len(daily)) * mean * mean
	variance /= n

	return decimal.NewFromFloat(math.Sqrt(variance)), nil
}

// AnnualDemand projects the average daily usage over a full year.
func (p *HistoryProvider) AnnualDemand(productID string) (decimal.Decimal, error) {
	avg, err := p.AverageDailyUsage(productID)
	if err != nil {
		return decimal.Zero, err
	}
	return avg.Mul(decimal.NewFromInt(daysPerYear)), nil
}

// COGS sums issued quantity times unit cost over the trailing period.
func (p *HistoryProvider) COGS(productID string, periodDays int) (decimal.Decimal, error) {
	movs, err := p.movements(productID)
	if err != nil {
		return decimal.Zero, err
	}
	start := windowStart(movs, periodDays)
	cost := p.costOf(productID)
	total := decimal.Zero
	for _, m := range movs {
		if m.Type == domain.MovementOut && !m.Date.Before(start) {
			total = total.Add(m.Quantity.Mul(cost))
		}
	}
	return total, nil
}

// AverageInventoryValue averages the running on-hand balance observed after
// each movement inside the window, valued at the product's unit cost.
func (p *HistoryProvider) AverageInventoryValue(productID string, periodDays int) (decimal.Decimal, error) {
	movs, err := p.movements(productID)
	if err != nil {
		return decimal.Zero, err
	}
	start := windowStart(movs, periodDays)
	cost := p.costOf(productID)

	balance := decimal.Zero
	sum := decimal.Zero
	samples := 0
	for _, m := range movs {
		switch m.Type {
		case domain.MovementIn:
			balance = balance.Add(m.Quantity)
		case domain.MovementOut:
			balance = balance.Sub(m.Quantity)
			if balance.IsNegative() {
				balance = decimal.Zero
			}
		}
		if !m.Date.Before(start) {
			sum = sum.Add(balance)
			samples++
		}
	}
	if samples == 0 {
		return balance.Mul(cost), nil
	}
	return sum.Div(decimal.NewFromInt(int64(samples))).Mul(cost), nil
}
