// Package jobs runs paylink's scheduled background work.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rideandbuy/paylink/internal/config"
)

const purgeTimeout = 30 * time.Second

// ExpiredKeyDeleter removes idempotency keys created before a cutoff
type ExpiredKeyDeleter interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// IdempotencyJanitor periodically deletes idempotency keys older than the
// configured TTL.
type IdempotencyJanitor struct {
	repo   ExpiredKeyDeleter
	cron   *cron.Cron
	now    func() time.Time
	logger *slog.Logger
	ttl    time.Duration
}

// NewIdempotencyJanitor schedules the purge on cfg.PurgeSchedule. The schedule
// uses standard cron syntax or descriptors such as "@every 10m".
func NewIdempotencyJanitor(repo ExpiredKeyDeleter, cfg config.IdempotencyConfig, logger *slog.Logger) (*IdempotencyJanitor, error) {
	j := &IdempotencyJanitor{
		repo:   repo,
		cron:   cron.New(),
		now:    time.Now,
		logger: logger,
		ttl:    cfg.TTL,
	}

	if _, err := j.cron.AddFunc(cfg.PurgeSchedule, j.run); err != nil {
		return nil, fmt.Errorf("invalid idempotency purge schedule %q: %w", cfg.PurgeSchedule, err)
	}

	return j, nil
}

// Start runs the schedule in the background
func (j *IdempotencyJanitor) Start() {
	j.cron.Start()
}

// Stop halts the schedule. The returned context is done once a running purge
// has finished.
func (j *IdempotencyJanitor) Stop() context.Context {
	return j.cron.Stop()
}

// Purge deletes every key older than the TTL and reports how many were removed
func (j *IdempotencyJanitor) Purge(ctx context.Context) (int64, error) {
	cutoff := j.now().UTC().Add(-j.ttl)

	deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge idempotency keys: %w", err)
	}
	return deleted, nil
}

func (j *IdempotencyJanitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	deleted, err := j.Purge(ctx)
	if err != nil {
		j.logger.Error("idempotency purge failed", "error", err)
		return
	}

	if deleted > 0 {
		j.logger.Info("purged expired idempotency keys", "deleted", deleted, "ttl", j.ttl.String())
	}
}
