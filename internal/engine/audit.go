// internal/engine/audit.go
package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditTypeCalculation marks entries recorded for completed calculations.
const AuditTypeCalculation = "CALCULATION"

// DefaultAuditRetention is the ring size when no retention is configured.
const DefaultAuditRetention = 1000

// AuditEntry is an append-only record of one engine action. Entries live in
// process memory only; the trail resets on restart.
type AuditEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Type      string         `json:"type"`
	ProductID string         `json:"product_id"`
	Action    string         `json:"action"`
	Data      map[string]any `json:"data,omitempty"`
}

// AuditFilter narrows an audit query. Zero-valued fields match everything;
// Since and Until are inclusive.
type AuditFilter struct {
	ProductID string
	Type      string
	Since     *time.Time
	Until     *time.Time
}

// auditTrail is a bounded in-memory ring of audit entries. Appends beyond the
// retention bound silently evict the oldest entries.
type auditTrail struct {
	mu        sync.Mutex
	entries   []AuditEntry
	retention int
}

func newAuditTrail(retention int) *auditTrail {
	if retention <= 0 {
		retention = DefaultAuditRetention
	}
	return &auditTrail{retention: retention}
}

func (t *auditTrail) append(entryType, productID, action string, data map[string]any) AuditEntry {
	entry := AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Type:      entryType,
		ProductID: productID,
		Action:    action,
		Data:      data,
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	if len(t.entries) > t.retention {
		t.entries = t.entries[len(t.entries)-t.retention:]
	}
	return entry
}

// query returns matching entries newest-first.
func (t *auditTrail) query(filter AuditFilter) []AuditEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make([]AuditEntry, 0, len(t.entries))
	for i := len(t.entries) - 1; i >= 0; i-- {
		entry := t.entries[i]
		if filter.ProductID != "" && entry.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && entry.Type != filter.Type {
			continue
		}
		if filter.Since != nil && entry.Timestamp.Before(*filter.Since) {
			continue
		}
		if filter.Until != nil && entry.Timestamp.After(*filter.Until) {
			continue
		}
		result = append(result, entry)
	}
	return result
}
