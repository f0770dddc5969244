package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"provider-market.backend/internal/domain/repositories"
	"provider-market.backend/internal/usecases"
	"provider-market.backend/pkg/logger"
	"provider-market.backend/pkg/metrics"
)

// ReviewReminderJob periodically scans for businesses that have been waiting
// in pending review longer than the configured threshold and surfaces them
// with their escalated priority
type ReviewReminderJob struct {
	repo          repositories.BusinessRepository
	interval      time.Duration
	staleAfterDay int
	batchSize     int
	stop          chan struct{}
}

func NewReviewReminderJob(repo repositories.BusinessRepository, interval time.Duration, staleAfterDays int) *ReviewReminderJob {
	return &ReviewReminderJob{
		repo:          repo,
		interval:      interval,
		staleAfterDay: staleAfterDays,
		batchSize:     100,
		stop:          make(chan struct{}),
	}
}

func (j *ReviewReminderJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting review reminder job",
		zap.Duration("interval", j.interval),
		zap.Int("stale_after_days", j.staleAfterDay),
	)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "review reminder job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "review reminder job stopped")
			return
		case <-ticker.C:
			j.flagStaleReviews(ctx)
		}
	}
}

func (j *ReviewReminderJob) Stop() {
	close(j.stop)
}

func (j *ReviewReminderJob) flagStaleReviews(ctx context.Context) {
	stale, err := j.repo.ListPendingOlderThan(ctx, j.staleAfterDay, j.batchSize)
	if err != nil {
		logger.Error(ctx, "failed to list stale pending reviews", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}

	now := time.Now()
	for _, business := range stale {
		priority := usecases.ClassifyReviewPriority(business.VerificationStatus, business.ApplicationSubmittedAt, now)
		logger.Warn(ctx, "business review is overdue",
			zap.String("business_id", business.ID.String()),
			zap.String("display_name", business.DisplayName),
			zap.String("priority", string(priority)),
			zap.Time("submitted_at", business.ApplicationSubmittedAt),
		)
		metrics.StaleReviewsFlagged.Inc()
	}

	logger.Info(ctx, "flagged stale pending reviews", zap.Int("count", len(stale)))
}
