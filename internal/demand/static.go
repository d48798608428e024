// internal/demand/static.go
package demand

import "github.com/shopspring/decimal"

// Static returns fixed values for every product. It exists for unit tests and
// for wiring the engine before a real analytics source is available; it must
// not be used in production planning.
type Static struct {
	DailyUsage     decimal.Decimal
	StdDev         decimal.Decimal
	Annual         decimal.Decimal
	COGSValue      decimal.Decimal
	InventoryValue decimal.Decimal
	Err            error
}

func (s Static) AverageDailyUsage(string) (decimal.Decimal, error) {
	return s.DailyUsage, s.Err
}

func (s Static) DemandStdDev(string) (decimal.Decimal, error) {
	return s.StdDev, s.Err
}

func (s Static) AnnualDemand(string) (decimal.Decimal, error) {
	return s.Annual, s.Err
}

func (s Static) COGS(string, int) (decimal.Decimal, error) {
	return s.COGSValue, s.Err
}

func (s Static) AverageInventoryValue(string, int) (decimal.Decimal, error) {
	return s.InventoryValue, s.Err
}
