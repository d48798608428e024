// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement represents a single immutable receipt or issue for one SKU.
// Movements are processed strictly in the order supplied by the caller; the
// engine never re-sorts them by date.
type StockMovement struct {
	Type       MovementType    `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Date       time.Time       `json:"date"`
	LotNumber  string          `json:"lot_number,omitempty"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
}

// Lot is a slice of on-hand inventory created by an IN movement. Quantity is
// the mutable remaining amount; UnitCost never changes after creation.
type Lot struct {
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Date       time.Time       `json:"date"`
	LotNumber  string          `json:"lot_number,omitempty"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
}

// Value returns the current value of the lot (quantity * unit cost).
func (l Lot) Value() decimal.Decimal {
	return l.Quantity.Mul(l.UnitCost)
}

// ValuationResult is the outcome of replaying a movement stream under one
// costing convention. Inventory holds the surviving lots for layered methods
// (FIFO/LIFO) and is nil for weighted average. OverIssued accumulates OUT
// quantity that could not be satisfied and was clamped instead of driving the
// balance negative.
type ValuationResult struct {
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	AverageUnitCost decimal.Decimal `json:"average_unit_cost"`
	Inventory       []Lot           `json:"inventory,omitempty"`
	OverIssued      decimal.Decimal `json:"over_issued"`
}

// Product carries the configuration inputs for replenishment and
// classification. These are master data supplied by the caller, not derived
// state.
type Product struct {
	ID              string          `json:"id"`
	Cost            decimal.Decimal `json:"cost"`
	LeadTimeDays    decimal.Decimal `json:"lead_time_days"`
	SafetyStockDays decimal.Decimal `json:"safety_stock_days"`
	OrderingCost    decimal.Decimal `json:"ordering_cost"`
	HoldingCostPct  decimal.Decimal `json:"holding_cost_pct"`
}

// ReplenishmentParams bundles the three planning outputs for one product.
// All values are non-negative and rounded to 4 decimal places.
type ReplenishmentParams struct {
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	SafetyStock  decimal.Decimal `json:"safety_stock"`
	EOQ          decimal.Decimal `json:"eoq"`
}

// ClassificationResult is a product annotated with its ABC tier. Results are
// totally ordered by descending annual value.
type ClassificationResult struct {
	Product       Product         `json:"product"`
	AnnualValue   decimal.Decimal `json:"annual_value"`
	CumulativePct decimal.Decimal `json:"cumulative_pct"`
	Class         ABCClass        `json:"class"`
}

// LotExpiry reports the expiry state of a single lot. DaysToExpiry is -1 when
// the lot carries no expiry date.
type LotExpiry struct {
	Lot          Lot          `json:"lot"`
	DaysToExpiry int          `json:"days_to_expiry"`
	Status       ExpiryStatus `json:"status"`
}
