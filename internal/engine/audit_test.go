package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRetentionBound(t *testing.T) {
	trail := newAuditTrail(1000)

	first := trail.append(AuditTypeCalculation, "p0", "replenishment", nil)
	for i := 1; i <= 1000; i++ {
		trail.append(AuditTypeCalculation, fmt.Sprintf("p%d", i), "replenishment", nil)
	}

	entries := trail.query(AuditFilter{})
	require.Len(t, entries, 1000)

	// The very first entry has been evicted.
	for _, entry := range entries {
		assert.NotEqual(t, first.ID, entry.ID)
	}
	assert.Equal(t, "p1000", entries[0].ProductID)
	assert.Equal(t, "p1", entries[len(entries)-1].ProductID)
}

func TestAuditQueryNewestFirst(t *testing.T) {
	trail := newAuditTrail(10)
	trail.append(AuditTypeCalculation, "p1", "replenishment", nil)
	trail.append(AuditTypeCalculation, "p2", "replenishment", nil)
	trail.append(AuditTypeCalculation, "p3", "replenishment", nil)

	entries := trail.query(AuditFilter{})
	require.Len(t, entries, 3)
	assert.Equal(t, "p3", entries[0].ProductID)
	assert.Equal(t, "p1", entries[2].ProductID)
}

func TestAuditFilterByProductAndType(t *testing.T) {
	trail := newAuditTrail(10)
	trail.append(AuditTypeCalculation, "p1", "replenishment", nil)
	trail.append("VALUATION", "p1", "fifo", nil)
	trail.append(AuditTypeCalculation, "p2", "replenishment", nil)

	byProduct := trail.query(AuditFilter{ProductID: "p1"})
	require.Len(t, byProduct, 2)

	byType := trail.query(AuditFilter{Type: AuditTypeCalculation})
	require.Len(t, byType, 2)

	both := trail.query(AuditFilter{ProductID: "p1", Type: AuditTypeCalculation})
	require.Len(t, both, 1)
	assert.Equal(t, "replenishment", both[0].Action)
}

func TestAuditFilterByTimeWindow(t *testing.T) {
	trail := newAuditTrail(10)
	before := time.Now().UTC().Add(-time.Minute)
	entry := trail.append(AuditTypeCalculation, "p1", "replenishment", nil)
	after := time.Now().UTC().Add(time.Minute)

	inWindow := trail.query(AuditFilter{Since: &before, Until: &after})
	require.Len(t, inWindow, 1)
	assert.Equal(t, entry.ID, inWindow[0].ID)

	// The window is inclusive on both ends.
	exact := trail.query(AuditFilter{Since: &entry.Timestamp, Until: &entry.Timestamp})
	require.Len(t, exact, 1)

	outside := trail.query(AuditFilter{Until: &before})
	assert.Empty(t, outside)
}

func TestAuditDefaultRetention(t *testing.T) {
	trail := newAuditTrail(0)
	assert.Equal(t, DefaultAuditRetention, trail.retention)
}
