package workers

import (
	"context"
	"sync"
	"time"

	"github.com/mkravets/sayright/internal/logger"
)

// RefreshJob periodically drives Refresh on a set of sync components,
// keeping a long-lived session (CLI watch mode) converged even when the
// websocket feed drops snapshots. The job is idle until Start is called.
type RefreshJob struct {
	refreshers []Refresher
	interval   time.Duration
	log        *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshJob creates a RefreshJob over the given refreshers. An interval
// of zero or less defaults to 5 minutes.
func NewRefreshJob(interval time.Duration, log *logger.Logger, refreshers ...Refresher) *RefreshJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &RefreshJob{refreshers: refreshers, interval: interval, log: log}
}

// Start stops any previously running job, then launches a background
// goroutine that refreshes every component once per interval. The goroutine
// exits when ctx is cancelled or Stop is called. Refresh failures are logged
// and do not stop the job.
func (j *RefreshJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.refreshAll(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the job is not running.
func (j *RefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *RefreshJob) refreshAll(ctx context.Context) {
	for _, r := range j.refreshers {
		if err := r.Refresh(ctx); err != nil {
			j.log.Warn().Err(err).Msg("periodic refresh failed")
		}
	}
}
