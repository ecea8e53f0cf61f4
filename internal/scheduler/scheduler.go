// Package scheduler wires up the cron job that proactively refreshes every
// configured (portal, page) key, so the read path mostly lands on fresh
// cache.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"

	"github.com/robfig/cron/v3"
)

const (
	sweepWorkers       = 4
	sweepStartInterval = 500 * time.Millisecond
)

type refresher interface {
	RefreshListings(ctx context.Context, portal listing.Portal, page int, ttl time.Duration) ([]listing.JobListing, error)
}

type Scheduler struct {
	cron          *cron.Cron
	refresher     refresher
	portals       []listing.Portal
	pages         int
	spec          string
	startInterval time.Duration
	logger        *log.Logger
}

// New creates a Scheduler sweeping all portals every intervalHours hours.
func New(r refresher, portals []listing.Portal, pagesPerPortal, intervalHours int, logger *log.Logger) *Scheduler {
	if pagesPerPortal <= 0 {
		pagesPerPortal = 1
	}
	if intervalHours <= 0 {
		intervalHours = 4
	}
	return &Scheduler{
		cron:          cron.New(cron.WithLogger(cron.DefaultLogger)),
		refresher:     r,
		portals:       portals,
		pages:         pagesPerPortal,
		spec:          fmt.Sprintf("@every %dh", intervalHours),
		startInterval: sweepStartInterval,
		logger:        logger,
	}
}

// Start registers the sweep and starts the cron loop. One sweep also runs
// immediately so the cache is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	if s.logger != nil {
		s.logger.Printf("[Scheduler] Cron started spec=%s portals=%d pages=%d", s.spec, len(s.portals), s.pages)
	}

	go s.runSweep(ctx)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	if s.logger != nil {
		s.logger.Printf("[Scheduler] Cron stopped")
	}
}

// runSweep refreshes every configured (portal, page) through the orchestrator,
// which keeps all the locking and rate-limit discipline in one place. A
// refresh refused by the rate limiter just leaves that key stale until the
// next sweep.
func (s *Scheduler) runSweep(ctx context.Context) {
	total := len(s.portals) * s.pages
	if total == 0 {
		return
	}

	pool := newRefreshPool(sweepWorkers, total, s.startInterval)
	results := pool.Start(ctx)

	for _, portal := range s.portals {
		for page := 1; page <= s.pages; page++ {
			p, pg := portal, page
			pool.Submit(RefreshTask{Portal: p, Page: pg, Run: func(ctx context.Context) error {
				_, err := s.refresher.RefreshListings(ctx, p, pg, 0)
				return err
			}})
		}
	}
	pool.Close()

	var failed int
	for res := range results {
		if res.Err != nil {
			failed++
			if s.logger != nil {
				s.logger.Printf("[Scheduler] Refresh failed portal=%s page=%d err=%v", res.Portal, res.Page, res.Err)
			}
		}
	}
	if s.logger != nil {
		s.logger.Printf("[Scheduler] Sweep done total=%d failed=%d", total, failed)
	}
}
