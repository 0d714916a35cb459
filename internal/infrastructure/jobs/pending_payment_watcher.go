package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"artist-membership.backend/internal/domain/repositories"
	"artist-membership.backend/pkg/logger"
	"artist-membership.backend/pkg/metrics"
)

// PendingPaymentWatcher periodically counts members stuck in pending beyond
// the configured age and exports the count. It never mutates payment status;
// transitions happen only through verification or gateway webhooks.
type PendingPaymentWatcher struct {
	repo     repositories.MemberRepository
	maxAge   time.Duration
	interval time.Duration
	stop     chan struct{}
}

func NewPendingPaymentWatcher(repo repositories.MemberRepository, maxAge time.Duration) *PendingPaymentWatcher {
	return &PendingPaymentWatcher{
		repo:     repo,
		maxAge:   maxAge,
		interval: time.Minute,
		stop:     make(chan struct{}),
	}
}

func (w *PendingPaymentWatcher) Start(ctx context.Context) {
	logger.Info(ctx, "starting pending payment watcher", zap.Duration("max_age", w.maxAge))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "pending payment watcher stopped (context cancelled)")
			return
		case <-w.stop:
			logger.Info(ctx, "pending payment watcher stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *PendingPaymentWatcher) Stop() {
	close(w.stop)
}

func (w *PendingPaymentWatcher) check(ctx context.Context) {
	count, err := w.repo.CountPendingOlderThan(ctx, time.Now().Add(-w.maxAge))
	if err != nil {
		logger.Error(ctx, "counting stale pending members failed", zap.Error(err))
		return
	}

	metrics.StalePendingMembers.Set(float64(count))
	if count > 0 {
		logger.Warn(ctx, "members stuck in pending payment",
			zap.Int64("count", count),
			zap.Duration("max_age", w.maxAge),
		)
	}
}
