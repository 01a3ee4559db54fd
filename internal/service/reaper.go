package service

import (
	"context"
	"time"

	"github.com/nivelab/authcore/internal/logger"
)

// Sweeper deletes expired entries from a store.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// Reaper runs the expired-entry sweeps on a fixed interval. Each sweep is
// a full-scan delete-if-expired, idempotent and safe next to concurrent
// reads. Sweep errors are logged and never stop the schedule.
type Reaper struct {
	interval time.Duration
	refresh  Sweeper
	revoked  Sweeper
	logger   *logger.Logger
}

func NewReaper(interval time.Duration, refresh, revoked Sweeper, logger *logger.Logger) *Reaper {
	return &Reaper{
		interval: interval,
		refresh:  refresh,
		revoked:  revoked,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reaper started", "interval", r.interval.String())

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reaper stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs both sweeps once. The two stores are independent; a failure
// in one does not skip the other.
func (r *Reaper) Sweep(ctx context.Context) {
	if n, err := r.refresh.SweepExpired(ctx); err != nil {
		r.logger.Error("failed to sweep refresh tokens", "error", err.Error())
	} else if n > 0 {
		r.logger.Info("swept expired refresh tokens", "count", n)
	}

	if n, err := r.revoked.SweepExpired(ctx); err != nil {
		r.logger.Error("failed to sweep revocation list", "error", err.Error())
	} else if n > 0 {
		r.logger.Info("swept expired revocation entries", "count", n)
	}
}
