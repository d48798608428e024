// internal/classification/abc.go
package classification

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/inventory-engine/internal/demand"
	"github.com/andresuchdata/inventory-engine/internal/domain"
)

// Cumulative-percentage tier boundaries of total portfolio value.
var (
	thresholdA = decimal.NewFromInt(80)
	thresholdB = decimal.NewFromInt(95)
	hundred    = decimal.NewFromInt(100)
)

// Classify ranks products by annual consumption value and assigns ABC tiers.
// The returned slice is sorted descending by annual value; ties keep their
// input order. A product set whose total annual value is zero cannot be
// ranked and is rejected with ErrZeroPortfolioValue.
func Classify(products []domain.Product, stats demand.Statistics) ([]domain.ClassificationResult, error) {
	results := make([]domain.ClassificationResult, 0, len(products))
	totalValue := decimal.Zero

	for _, product := range products {
		annualDemand, err := stats.AnnualDemand(product.ID)
		if err != nil {
			return nil, err
		}
		annualValue := annualDemand.Mul(product.Cost)
		totalValue = totalValue.Add(annualValue)
		results = append(results, domain.ClassificationResult{
			Product:     product,
			AnnualValue: annualValue,
		})
	}

	if !totalValue.IsPositive() {
		return nil, domain.ErrZeroPortfolioValue
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AnnualValue.GreaterThan(results[j].AnnualValue)
	})

	cumulative := decimal.Zero
	for i := range results {
		cumulative = cumulative.Add(results[i].AnnualValue)
		pct := cumulative.Div(totalValue).Mul(hundred)
		results[i].CumulativePct = pct.Round(4)
		switch {
		case pct.LessThanOrEqual(thresholdA):
			results[i].Class = domain.ClassA
		case pct.LessThanOrEqual(thresholdB):
			results[i].Class = domain.ClassB
		default:
			results[i].Class = domain.ClassC
		}
	}

	return results, nil
}
