package usecases_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"provider-market.backend/internal/domain/entities"
	"provider-market.backend/internal/usecases"
)

func TestClassifyReviewPriority_PendingAges(t *testing.T) {
	now := time.Now()

	assert.Equal(t, entities.ReviewPriorityUrgent,
		usecases.ClassifyReviewPriority(entities.BusinessStatusPending, now.AddDate(0, 0, -8), now))
	assert.Equal(t, entities.ReviewPriorityHigh,
		usecases.ClassifyReviewPriority(entities.BusinessStatusPending, now.AddDate(0, 0, -4), now))
	assert.Equal(t, entities.ReviewPriorityNormal,
		usecases.ClassifyReviewPriority(entities.BusinessStatusPending, now.AddDate(0, 0, -1), now))
}

func TestClassifyReviewPriority_SuspendedAlwaysUrgent(t *testing.T) {
	now := time.Now()

	assert.Equal(t, entities.ReviewPriorityUrgent,
		usecases.ClassifyReviewPriority(entities.BusinessStatusSuspended, now, now))
	assert.Equal(t, entities.ReviewPriorityUrgent,
		usecases.ClassifyReviewPriority(entities.BusinessStatusSuspended, now.AddDate(-1, 0, 0), now))
}

func TestClassifyReviewPriority_OtherStatusesNormal(t *testing.T) {
	now := time.Now()
	old := now.AddDate(0, 0, -30)

	assert.Equal(t, entities.ReviewPriorityNormal,
		usecases.ClassifyReviewPriority(entities.BusinessStatusApproved, old, now))
	assert.Equal(t, entities.ReviewPriorityNormal,
		usecases.ClassifyReviewPriority(entities.BusinessStatusRejected, old, now))
}

func TestClassifyReviewPriority_Boundaries(t *testing.T) {
	now := time.Now()

	// Exactly at the threshold is not yet past it.
	assert.Equal(t, entities.ReviewPriorityNormal,
		usecases.ClassifyReviewPriority(entities.BusinessStatusPending, now.Add(-3*24*time.Hour), now))
	assert.Equal(t, entities.ReviewPriorityHigh,
		usecases.ClassifyReviewPriority(entities.BusinessStatusPending, now.Add(-7*24*time.Hour), now))
}
