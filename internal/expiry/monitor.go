// internal/expiry/monitor.go
package expiry

import (
	"math"
	"time"

	"github.com/andresuchdata/inventory-engine/internal/domain"
)

// DefaultAlertDays is the alert horizon used when the caller passes a
// non-positive value.
const DefaultAlertDays = 30

// Check evaluates each lot's expiry date against now and the alert horizon.
// A lot expiring today (or earlier) is EXPIRED; one expiring within alertDays
// is NEAR_EXPIRY; everything else is OK. Lots without an expiry date report
// OK with DaysToExpiry -1. Pure function of its inputs: inject now rather
// than reading the clock so results are testable.
func Check(lots []domain.Lot, now time.Time, alertDays int) []domain.LotExpiry {
	if alertDays <= 0 {
		alertDays = DefaultAlertDays
	}
	horizon := now.AddDate(0, 0, alertDays)

	reports := make([]domain.LotExpiry, 0, len(lots))
	for _, lot := range lots {
		report := domain.LotExpiry{Lot: lot, DaysToExpiry: -1, Status: domain.ExpiryStatusOK}
		if lot.ExpiryDate != nil {
			exp := *lot.ExpiryDate
			report.DaysToExpiry = daysUntil(now, exp)
			switch {
			case !exp.After(now):
				report.Status = domain.ExpiryStatusExpired
			case !exp.After(horizon):
				report.Status = domain.ExpiryStatusNearExpiry
			}
		}
		reports = append(reports, report)
	}
	return reports
}

// daysUntil returns ceil((expiry - now) / 1 day). Expired lots yield zero or
// negative values.
func daysUntil(now, expiry time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}
