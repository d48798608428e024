// internal/valuation/ledger.go
package valuation

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/inventory-engine/internal/domain"
)

// Method represents the inventory cost valuation method.
type Method string

const (
	// MethodFIFO - First-In-First-Out: oldest lot costs are consumed first
	MethodFIFO Method = "FIFO"
	// MethodLIFO - Last-In-First-Out: newest lot costs are consumed first
	MethodLIFO Method = "LIFO"
	// MethodWeightedAverage - single running average recomputed on every receipt
	MethodWeightedAverage Method = "WEIGHTED_AVERAGE"
)

// DefaultMethod is the valuation method used when the caller does not choose one.
const DefaultMethod = MethodFIFO

// IsValid checks if the valuation method is valid.
func (m Method) IsValid() bool {
	switch m {
	case MethodFIFO, MethodLIFO, MethodWeightedAverage:
		return true
	default:
		return false
	}
}

// String returns the string representation of the valuation method.
func (m Method) String() string {
	return string(m)
}

// UsesLayers returns true if this valuation method keeps a lot list (FIFO/LIFO).
func (m Method) UsesLayers() bool {
	return m == MethodFIFO || m == MethodLIFO
}

// precision is the fixed number of decimal places applied to every output so
// results reproduce across platforms.
const precision = 4

// Valuate replays an ordered movement stream against a lot ledger and returns
// the on-hand valuation under the given costing method. Movements are consumed
// strictly left to right. An OUT movement requesting more than is on hand is
// clamped to the available quantity, never producing a negative balance; the
// clamped excess is accumulated in the result's OverIssued field and logged at
// warn level so the host can surface ledger drift.
func Valuate(movements []domain.StockMovement, method Method) (domain.ValuationResult, error) {
	if !method.IsValid() {
		return domain.ValuationResult{}, fmt.Errorf("valuation: unsupported method %q", method)
	}

	if err := validate(movements); err != nil {
		return domain.ValuationResult{}, err
	}

	if method.UsesLayers() {
		return replayLayered(movements, method), nil
	}
	return replayWeightedAverage(movements), nil
}

// validate rejects malformed movements up front so a bad stream never half
// applies. The returned error names the offending movement index.
func validate(movements []domain.StockMovement) error {
	for i, mov := range movements {
		if !mov.Type.IsValid() {
			return fmt.Errorf("valuation: movement %d has type %q: %w", i, mov.Type, domain.ErrInvalidMovementType)
		}
		if mov.Quantity.IsNegative() {
			return fmt.Errorf("valuation: movement %d quantity %s: %w", i, mov.Quantity, domain.ErrNegativeQuantity)
		}
		if mov.Type == domain.MovementIn && !mov.UnitCost.IsPositive() {
			return fmt.Errorf("valuation: movement %d unit cost %s: %w", i, mov.UnitCost, domain.ErrMissingUnitCost)
		}
	}
	return nil
}

func replayLayered(movements []domain.StockMovement, method Method) domain.ValuationResult {
	lots := make([]domain.Lot, 0, len(movements))
	overIssued := decimal.Zero

	for i, mov := range movements {
		switch mov.Type {
		case domain.MovementIn:
			lots = append(lots, domain.Lot{
				Quantity:   mov.Quantity,
				UnitCost:   mov.UnitCost,
				Date:       mov.Date,
				LotNumber:  mov.LotNumber,
				ExpiryDate: mov.ExpiryDate,
			})
		case domain.MovementOut:
			remaining := mov.Quantity
			for !remaining.IsZero() && len(lots) > 0 {
				idx := 0
				if method == MethodLIFO {
					idx = len(lots) - 1
				}
				lot := &lots[idx]
				if lot.Quantity.GreaterThan(remaining) {
					lot.Quantity = lot.Quantity.Sub(remaining)
					remaining = decimal.Zero
					break
				}
				remaining = remaining.Sub(lot.Quantity)
				lots = append(lots[:idx], lots[idx+1:]...)
			}
			if remaining.IsPositive() {
				overIssued = overIssued.Add(remaining)
				log.Warn().
					Str("method", method.String()).
					Int("movement", i).
					Str("requested", mov.Quantity.String()).
					Str("unfilled", remaining.String()).
					Msg("issue exceeds on-hand quantity, clamping to available")
			}
		}
	}

	totalQty := decimal.Zero
	totalValue := decimal.Zero
	inventory := make([]domain.Lot, 0, len(lots))
	for _, lot := range lots {
		totalQty = totalQty.Add(lot.Quantity)
		totalValue = totalValue.Add(lot.Value())
		lot.Quantity = lot.Quantity.Round(precision)
		inventory = append(inventory, lot)
	}

	avgCost := decimal.Zero
	if totalQty.IsPositive() {
		avgCost = totalValue.Div(totalQty)
	}

	return domain.ValuationResult{
		TotalQuantity:   totalQty.Round(precision),
		TotalValue:      totalValue.Round(precision),
		AverageUnitCost: avgCost.Round(precision),
		Inventory:       inventory,
		OverIssued:      overIssued.Round(precision),
	}
}

func replayWeightedAverage(movements []domain.StockMovement) domain.ValuationResult {
	totalQty := decimal.Zero
	totalValue := decimal.Zero
	avgCost := decimal.Zero
	overIssued := decimal.Zero

	for i, mov := range movements {
		switch mov.Type {
		case domain.MovementIn:
			totalValue = totalValue.Add(mov.Quantity.Mul(mov.UnitCost))
			totalQty = totalQty.Add(mov.Quantity)
			if totalQty.IsPositive() {
				avgCost = totalValue.Div(totalQty)
			}
		case domain.MovementOut:
			// Issues never move the average, only the running totals.
			issued := mov.Quantity
			if issued.GreaterThan(totalQty) {
				excess := issued.Sub(totalQty)
				overIssued = overIssued.Add(excess)
				log.Warn().
					Str("method", MethodWeightedAverage.String()).
					Int("movement", i).
					Str("requested", mov.Quantity.String()).
					Str("unfilled", excess.String()).
					Msg("issue exceeds on-hand quantity, clamping to available")
				issued = totalQty
			}
			totalQty = totalQty.Sub(issued)
			totalValue = totalValue.Sub(issued.Mul(avgCost))
		}
	}

	return domain.ValuationResult{
		TotalQuantity:   totalQty.Round(precision),
		TotalValue:      totalValue.Round(precision),
		AverageUnitCost: avgCost.Round(precision),
		OverIssued:      overIssued.Round(precision),
	}
}
