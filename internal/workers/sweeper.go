package workers

import (
	"context"
	"sync"
	"time"

	"github.com/scanmark/rostersync/internal/config"
	"github.com/scanmark/rostersync/internal/logger"
)

type sweepJob struct {
	registry Sweepable
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSweepJob creates a sweepJob over the given registry. The job is idle
// until Start is called.
func NewSweepJob(registry Sweepable, log *logger.Logger) SweepJob {
	return &sweepJob{registry: registry, logger: log}
}

// Start implements SweepJob. It stops any previously running job, then
// launches a background goroutine that calls CleanupExpired every interval.
// If interval is zero or negative it defaults to [config.DefaultSweepInterval].
func (j *sweepJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultSweepInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if removed := j.registry.CleanupExpired(); removed > 0 {
					j.logger.Debug().Str("func", "*sweepJob.Start").Int("removed", removed).Msg("swept expired tickets")
				}
			}
		}
	}()
}

// Stop implements SweepJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running (no-op in that case).
func (j *sweepJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
