// internal/replenishment/calculator.go
package replenishment

import (
	"math"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/inventory-engine/internal/config"
	"github.com/andresuchdata/inventory-engine/internal/demand"
	"github.com/andresuchdata/inventory-engine/internal/domain"
)

// precision is the fixed number of decimal places on every planning output.
const precision = 4

// zScores maps discrete service levels to normal z values. This is a
// deliberate simplification of the inverse normal CDF, good enough for
// planning outputs of a few significant figures.
var zScores = map[float64]float64{
	0.50:  0.0,
	0.80:  0.84,
	0.85:  1.04,
	0.90:  1.28,
	0.95:  1.65,
	0.98:  2.05,
	0.99:  2.33,
	0.995: 2.58,
	0.999: 3.09,
}

// defaultZScore is used when the requested service level is not in the table.
const defaultZScore = 1.65

// Options overrides individual inputs per call. A nil field means "use the
// product's configured value, falling back to the calculator defaults".
type Options struct {
	AvgDailyUsage   *decimal.Decimal
	LeadTimeDays    *decimal.Decimal
	SafetyStockDays *decimal.Decimal
	SeasonalFactor  *decimal.Decimal
	ServiceLevel    *float64
	DemandStdDev    *decimal.Decimal
	OrderingCost    *decimal.Decimal
	HoldingCostPct  *decimal.Decimal
	AnnualDemand    *decimal.Decimal
}

// Calculator derives replenishment parameters for single products. All three
// calculations are pure; demand figures come from the injected statistics
// provider unless overridden per call.
type Calculator struct {
	stats demand.Statistics

	leadTimeDays    decimal.Decimal
	safetyStockDays decimal.Decimal
	serviceLevel    float64
	orderingCost    decimal.Decimal
	holdingCostPct  decimal.Decimal
	seasonalFactor  decimal.Decimal
}

// NewCalculator creates a calculator with defaults taken from configuration.
func NewCalculator(stats demand.Statistics, cfg config.ReplenishmentConfig) *Calculator {
	return &Calculator{
		stats:           stats,
		leadTimeDays:    decimal.NewFromFloat(cfg.LeadTimeDays),
		safetyStockDays: decimal.NewFromFloat(cfg.SafetyStockDays),
		serviceLevel:    cfg.ServiceLevel,
		orderingCost:    decimal.NewFromFloat(cfg.OrderingCost),
		holdingCostPct:  decimal.NewFromFloat(cfg.HoldingCostPct),
		seasonalFactor:  decimal.NewFromFloat(cfg.SeasonalFactor),
	}
}

// Calculate packages the three planning outputs for one product.
func (c *Calculator) Calculate(product domain.Product, opts Options) (domain.ReplenishmentParams, error) {
	rop, err := c.ReorderPoint(product, opts)
	if err != nil {
		return domain.ReplenishmentParams{}, err
	}
	ss, err := c.SafetyStock(product, opts)
	if err != nil {
		return domain.ReplenishmentParams{}, err
	}
	eoq, err := c.EOQ(product, opts)
	if err != nil {
		return domain.ReplenishmentParams{}, err
	}
	return domain.ReplenishmentParams{ReorderPoint: rop, SafetyStock: ss, EOQ: eoq}, nil
}

// ReorderPoint = (avg daily usage * lead time + avg daily usage * safety stock days) * seasonal factor.
func (c *Calculator) ReorderPoint(product domain.Product, opts Options) (decimal.Decimal, error) {
	avgUsage, err := c.resolveAvgUsage(product, opts)
	if err != nil {
		return decimal.Zero, err
	}

	leadTime := c.resolveInput(opts.LeadTimeDays, product.LeadTimeDays, c.leadTimeDays)
	safetyDays := c.resolveInput(opts.SafetyStockDays, product.SafetyStockDays, c.safetyStockDays)
	seasonal := c.seasonalFactor
	if opts.SeasonalFactor != nil {
		seasonal = *opts.SeasonalFactor
	}

	rop := avgUsage.Mul(leadTime).Add(avgUsage.Mul(safetyDays)).Mul(seasonal)
	return clampNonNegative(rop).Round(precision), nil
}

// SafetyStock = z(service level) * sqrt(lead time) * demand std dev.
func (c *Calculator) SafetyStock(product domain.Product, opts Options) (decimal.Decimal, error) {
	stdDev := decimal.Zero
	if opts.DemandStdDev != nil {
		stdDev = *opts.DemandStdDev
	} else {
		var err error
		stdDev, err = c.stats.DemandStdDev(product.ID)
		if err != nil {
			return decimal.Zero, err
		}
	}

	level := c.serviceLevel
	if opts.ServiceLevel != nil {
		level = *opts.ServiceLevel
	}
	leadTime := c.resolveInput(opts.LeadTimeDays, product.LeadTimeDays, c.leadTimeDays)

	z := zScore(level)
	ss := stdDev.InexactFloat64() * z * math.Sqrt(leadTime.InexactFloat64())
	return clampNonNegative(decimal.NewFromFloat(ss)).Round(precision), nil
}

// EOQ = sqrt(2 * annual demand * ordering cost / holding cost per unit).
// A zero holding cost per unit yields an EOQ of 0 rather than an error.
func (c *Calculator) EOQ(product domain.Product, opts Options) (decimal.Decimal, error) {
	annual := decimal.Zero
	if opts.AnnualDemand != nil {
		annual = *opts.AnnualDemand
	} else {
		var err error
		annual, err = c.stats.AnnualDemand(product.ID)
		if err != nil {
			return decimal.Zero, err
		}
	}

	orderingCost := c.resolveInput(opts.OrderingCost, product.OrderingCost, c.orderingCost)
	holdingPct := c.resolveInput(opts.HoldingCostPct, product.HoldingCostPct, c.holdingCostPct)

	holdingPerUnit := product.Cost.Mul(holdingPct)
	if !holdingPerUnit.IsPositive() {
		return decimal.Zero, nil
	}

	eoq := math.Sqrt(decimal.NewFromInt(2).Mul(annual).Mul(orderingCost).Div(holdingPerUnit).InexactFloat64())
	if math.IsNaN(eoq) {
		return decimal.Zero, nil
	}
	return decimal.NewFromFloat(eoq).Round(precision), nil
}

// TurnoverRatio = COGS over the period divided by average inventory value.
// Returns 0 when the average inventory value is zero.
func (c *Calculator) TurnoverRatio(productID string, periodDays int) (decimal.Decimal, error) {
	cogs, err := c.stats.COGS(productID, periodDays)
	if err != nil {
		return decimal.Zero, err
	}
	avgValue, err := c.stats.AverageInventoryValue(productID, periodDays)
	if err != nil {
		return decimal.Zero, err
	}
	if !avgValue.IsPositive() {
		return decimal.Zero, nil
	}
	return cogs.Div(avgValue).Round(precision), nil
}

func (c *Calculator) resolveAvgUsage(product domain.Product, opts Options) (decimal.Decimal, error) {
	if opts.AvgDailyUsage != nil {
		return *opts.AvgDailyUsage, nil
	}
	return c.stats.AverageDailyUsage(product.ID)
}

// resolveInput picks the per-call override, then the product's configured
// value when positive, then the calculator default.
func (c *Calculator) resolveInput(override *decimal.Decimal, configured, fallback decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	if configured.IsPositive() {
		return configured
	}
	return fallback
}

// zScore looks up the z value for a discrete service level. Levels outside
// the table fall back to the 0.95 value; the mismatch is logged so callers
// can spot a misconfigured level.
func zScore(serviceLevel float64) float64 {
	if z, ok := zScores[serviceLevel]; ok {
		return z
	}
	log.Warn().Float64("service_level", serviceLevel).Msg("service level not in z-score table, using 0.95 default")
	return defaultZScore
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
