// internal/engine/engine.go
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/inventory-engine/internal/config"
	"github.com/andresuchdata/inventory-engine/internal/demand"
	"github.com/andresuchdata/inventory-engine/internal/domain"
	"github.com/andresuchdata/inventory-engine/internal/replenishment"
	"github.com/andresuchdata/inventory-engine/pkg/logger"
)

// Options groups the engine's tunables.
type Options struct {
	AuditRetention int // entries kept in the audit ring, default 1000
	WorkerCount    int // concurrent product calculations per batch, default 4
}

// Engine is the stateful shell around the pure calculators: it owns the audit
// trail, the listener set and the last-calculation cache. The calculators
// themselves stay stateless and independently callable.
type Engine struct {
	calc        *replenishment.Calculator
	audit       *auditTrail
	listeners   *listenerRegistry
	workerCount int

	cacheMu sync.RWMutex
	cache   map[string]domain.ReplenishmentParams
}

// New builds an engine around the given calculator.
func New(calc *replenishment.Calculator, opts Options) *Engine {
	workerCount := opts.WorkerCount
	if workerCount < 1 {
		workerCount = 4
	}
	return &Engine{
		calc:        calc,
		audit:       newAuditTrail(opts.AuditRetention),
		listeners:   newListenerRegistry(),
		workerCount: workerCount,
		cache:       make(map[string]domain.ReplenishmentParams),
	}
}

// NewFromConfig wires a calculator and engine from loaded configuration.
func NewFromConfig(stats demand.Statistics, cfg *config.Config) *Engine {
	logger.SetLevel(cfg.App.LogLevel)
	calc := replenishment.NewCalculator(stats, cfg.Replenishment)
	return New(calc, Options{
		AuditRetention: cfg.Audit.Retention,
		WorkerCount:    cfg.Batch.WorkerCount,
	})
}

// Calculator exposes the underlying pure calculator for single-product calls.
func (e *Engine) Calculator() *replenishment.Calculator {
	return e.calc
}

// BatchItemResult is one product's outcome within a batch. Exactly one of
// Params and Err is set.
type BatchItemResult struct {
	Params *domain.ReplenishmentParams `json:"params,omitempty"`
	Err    error                       `json:"-"`
}

// BatchCalculateReplenishment computes replenishment parameters for every
// product and returns a map keyed by product ID. One product's failure is
// recorded under its key and never aborts the rest of the batch. Each success
// appends a CALCULATION audit entry, refreshes the calculations cache and
// emits a calculationUpdate event. Products are processed concurrently up to
// the configured worker count; each calculation is pure, so only the engine's
// own state needs guarding.
func (e *Engine) BatchCalculateReplenishment(ctx context.Context, products []domain.Product, opts replenishment.Options) map[string]BatchItemResult {
	results := make(map[string]BatchItemResult, len(products))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for _, product := range products {
		product := product
		g.Go(func() error {
			params, err := e.calculateOne(product, opts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error().Err(err).Str("product_id", product.ID).Msg("replenishment calculation failed")
				results[product.ID] = BatchItemResult{Err: err}
				return nil
			}
			results[product.ID] = BatchItemResult{Params: &params}
			return nil
		})
	}
	// Workers never return errors; failures are isolated per item.
	_ = g.Wait()

	return results
}

// calculateOne runs the calculator for a single product and, on success,
// records the audit entry, caches the result and notifies listeners. A panic
// inside the calculation is converted into that item's error.
func (e *Engine) calculateOne(product domain.Product, opts replenishment.Options) (params domain.ReplenishmentParams, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("engine: calculation panic for product %s: %v", product.ID, rec)
		}
	}()

	params, err = e.calc.Calculate(product, opts)
	if err != nil {
		return domain.ReplenishmentParams{}, err
	}

	e.audit.append(AuditTypeCalculation, product.ID, "replenishment", map[string]any{
		"reorder_point": params.ReorderPoint.String(),
		"safety_stock":  params.SafetyStock.String(),
		"eoq":           params.EOQ.String(),
	})

	e.cacheMu.Lock()
	e.cache[product.ID] = params
	e.cacheMu.Unlock()

	e.listeners.dispatch(Event{Type: EventCalculationUpdate, Data: map[string]any{
		"product_id": product.ID,
		"params":     params,
	}})

	return params, nil
}

// Subscribe registers a listener for engine events and returns its
// unsubscribe handle.
func (e *Engine) Subscribe(listener Listener) func() {
	return e.listeners.subscribe(listener)
}

// Publish delivers an externally produced event through the same dispatch
// path used for synchronous calculations, so consumers cannot tell where a
// notification originated.
func (e *Engine) Publish(event Event) {
	e.listeners.dispatch(event)
}

// GetAuditTrail returns audit entries matching the filter, newest first.
func (e *Engine) GetAuditTrail(filter AuditFilter) []AuditEntry {
	return e.audit.query(filter)
}

// LastCalculation returns the most recent replenishment parameters computed
// for the product, if any.
func (e *Engine) LastCalculation(productID string) (domain.ReplenishmentParams, bool) {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	params, ok := e.cache[productID]
	return params, ok
}
