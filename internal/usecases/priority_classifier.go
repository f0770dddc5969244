package usecases

import (
	"time"

	"provider-market.backend/internal/domain/entities"
)

// Review ages (in days) after which a pending application escalates.
const (
	reviewHighAfterDays   = 3
	reviewUrgentAfterDays = 7
)

// ClassifyReviewPriority derives the review-urgency tier for a business.
// Suspended businesses are always urgent. Pending applications escalate with
// age: older than 7 days is urgent, older than 3 days is high. Every other
// status reviews at normal priority. Pure function, used for sorting and
// highlighting only, never persisted.
func ClassifyReviewPriority(status entities.BusinessStatus, submittedAt time.Time, now time.Time) entities.ReviewPriority {
	if status == entities.BusinessStatusSuspended {
		return entities.ReviewPriorityUrgent
	}
	if status != entities.BusinessStatusPending {
		return entities.ReviewPriorityNormal
	}

	age := now.Sub(submittedAt)
	switch {
	case age > reviewUrgentAfterDays*24*time.Hour:
		return entities.ReviewPriorityUrgent
	case age > reviewHighAfterDays*24*time.Hour:
		return entities.ReviewPriorityHigh
	default:
		return entities.ReviewPriorityNormal
	}
}
