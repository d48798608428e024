package expiry

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/inventory-engine/internal/domain"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func lot(expiry *time.Time) domain.Lot {
	return domain.Lot{
		Quantity:   decimal.NewFromInt(10),
		UnitCost:   decimal.NewFromInt(5),
		Date:       now.AddDate(0, 0, -30),
		ExpiryDate: expiry,
	}
}

func TestExpiryBoundaries(t *testing.T) {
	today := now
	pastDate := now.AddDate(0, 0, -2)
	atHorizon := now.AddDate(0, 0, 30)
	beyondHorizon := now.AddDate(0, 0, 31)

	reports := Check([]domain.Lot{
		lot(&today),
		lot(&pastDate),
		lot(&atHorizon),
		lot(&beyondHorizon),
	}, now, 30)
	require.Len(t, reports, 4)

	// Expiring exactly now is EXPIRED, not NEAR_EXPIRY.
	assert.Equal(t, domain.ExpiryStatusExpired, reports[0].Status)
	assert.Equal(t, 0, reports[0].DaysToExpiry)

	assert.Equal(t, domain.ExpiryStatusExpired, reports[1].Status)
	assert.Equal(t, -2, reports[1].DaysToExpiry)

	// Expiring exactly alertDays out is still NEAR_EXPIRY.
	assert.Equal(t, domain.ExpiryStatusNearExpiry, reports[2].Status)
	assert.Equal(t, 30, reports[2].DaysToExpiry)

	assert.Equal(t, domain.ExpiryStatusOK, reports[3].Status)
	assert.Equal(t, 31, reports[3].DaysToExpiry)
}

func TestDaysToExpiryRoundsUp(t *testing.T) {
	in36h := now.Add(36 * time.Hour)
	reports := Check([]domain.Lot{lot(&in36h)}, now, 30)
	require.Len(t, reports, 1)
	assert.Equal(t, 2, reports[0].DaysToExpiry)
}

func TestLotWithoutExpiry(t *testing.T) {
	reports := Check([]domain.Lot{lot(nil)}, now, 30)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.ExpiryStatusOK, reports[0].Status)
	assert.Equal(t, -1, reports[0].DaysToExpiry)
}

func TestDefaultAlertDays(t *testing.T) {
	in10d := now.AddDate(0, 0, 10)
	reports := Check([]domain.Lot{lot(&in10d)}, now, 0)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.ExpiryStatusNearExpiry, reports[0].Status)
}
