package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"
)

// RefreshTask is one (portal, page) refresh the pool should run.
type RefreshTask struct {
	Portal listing.Portal
	Page   int
	Run    func(ctx context.Context) error
}

type RefreshResult struct {
	Portal listing.Portal
	Page   int
	Err    error
}

// refreshPool bounds how many refreshes run at once during a sweep and spaces
// task starts by a fixed interval, so a single sweep cannot burst through the
// per-minute fetch budget.
type refreshPool struct {
	workers  int
	interval time.Duration
	tasks    chan RefreshTask
	wg       sync.WaitGroup
}

// newRefreshPool sizes the task buffer to the whole sweep so Submit never
// blocks the sweep goroutine.
func newRefreshPool(workers, buffer int, interval time.Duration) *refreshPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 1 {
		buffer = 1
	}
	return &refreshPool{
		workers:  workers,
		interval: interval,
		tasks:    make(chan RefreshTask, buffer),
	}
}

func (p *refreshPool) Submit(t RefreshTask) {
	if p == nil || t.Run == nil {
		return
	}
	p.tasks <- t
}

// Close signals that no more tasks are coming. Workers drain everything
// already submitted; the results channel closes once they finish.
func (p *refreshPool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Start launches the workers and returns the results channel. The pacing
// ticker is owned here and stopped only after every worker has exited, so a
// worker waiting for its start slot cannot be stranded by teardown.
func (p *refreshPool) Start(ctx context.Context) <-chan RefreshResult {
	out := make(chan RefreshResult, cap(p.tasks))

	var ticker *time.Ticker
	var rate <-chan time.Time
	if p.interval > 0 {
		ticker = time.NewTicker(p.interval)
		rate = ticker.C
	}

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					err := t.Run(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- RefreshResult{Portal: t.Portal, Page: t.Page, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		if ticker != nil {
			ticker.Stop()
		}
		close(out)
	}()

	return out
}
