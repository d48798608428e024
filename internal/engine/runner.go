// internal/engine/runner.go
package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/inventory-engine/internal/domain"
	"github.com/andresuchdata/inventory-engine/internal/replenishment"
)

// TaskRunner accepts calculation requests and delivers their results through
// the engine's event channel. It abstracts the host's concurrency primitive:
// the engine contract is identical whether a request ran inline or offloaded.
type TaskRunner interface {
	Submit(ctx context.Context, products []domain.Product, opts replenishment.Options)
}

type recalcJob struct {
	ctx      context.Context
	products []domain.Product
	opts     replenishment.Options
}

// Runner is a goroutine-backed TaskRunner. Submitted batches run through the
// engine's normal batch path, so audit entries and calculationUpdate events
// are produced exactly as for synchronous calls.
type Runner struct {
	engine    *Engine
	jobs      chan recalcJob
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewRunner starts workerCount background workers consuming submitted jobs.
func NewRunner(engine *Engine, workerCount int) *Runner {
	if workerCount < 1 {
		workerCount = 1
	}
	r := &Runner{
		engine: engine,
		jobs:   make(chan recalcJob, workerCount*2),
	}

	for i := 0; i < workerCount; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for job := range r.jobs {
				if job.ctx.Err() != nil {
					continue
				}
				e := r.engine.BatchCalculateReplenishment(job.ctx, job.products, job.opts)
				log.Debug().Int("products", len(e)).Msg("background recalculation completed")
			}
		}()
	}

	return r
}

// Submit enqueues a fire-and-forget recalculation. It blocks only when the
// job buffer is full.
func (r *Runner) Submit(ctx context.Context, products []domain.Product, opts replenishment.Options) {
	r.jobs <- recalcJob{ctx: ctx, products: products, opts: opts}
}

// Close stops accepting jobs and waits for in-flight work to finish.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		close(r.jobs)
	})
	r.wg.Wait()
}
