package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Prefetcher loads price series into the caches ahead of requests
type Prefetcher interface {
	Warm(ctx context.Context) int
}

// Purger drops expired cache entries
type Purger interface {
	Purge() int
}

// Warmer periodically prefetches the catalog so that dashboard refreshes are
// served from cache. It never computes dashboards itself.
type Warmer struct {
	cron       *cron.Cron
	prefetcher Prefetcher
	purger     Purger
	timeout    time.Duration
}

// NewWarmer creates a Warmer. Specs use the six-field cron format with seconds.
func NewWarmer(prefetcher Prefetcher, purger Purger) *Warmer {
	return &Warmer{
		cron:       cron.New(cron.WithSeconds()),
		prefetcher: prefetcher,
		purger:     purger,
		timeout:    2 * time.Minute,
	}
}

// Register schedules the warm job on spec
func (w *Warmer) Register(spec string) error {
	if _, err := w.cron.AddFunc(spec, w.RunNow); err != nil {
		return fmt.Errorf("register warm task: %w", err)
	}
	return nil
}

// RunNow purges expired entries and prefetches the catalog once
func (w *Warmer) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	purged := 0
	if w.purger != nil {
		purged = w.purger.Purge()
	}
	warmed := w.prefetcher.Warm(ctx)
	log.WithFields(log.Fields{"purged": purged, "warmed": warmed}).Info("cache warm finished")
}

// Start starts the cron scheduler
func (w *Warmer) Start() {
	w.cron.Start()
	log.Info("cache warmer started")
}

// Stop stops the scheduler and waits for a running job to finish
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
	log.Info("cache warmer stopped")
}
