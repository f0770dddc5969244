package usecases

import (
	"time"

	"provider-market.backend/internal/domain/entities"
)

// BuildVerificationSummary aggregates a business's document set into per-status
// counts and attaches the derived review priority. Counts partition the set:
// they always sum to TotalDocuments.
func BuildVerificationSummary(business *entities.Business, docs []*entities.Document, now time.Time) *entities.VerificationSummary {
	summary := &entities.VerificationSummary{
		BusinessID:     business.ID,
		TotalDocuments: len(docs),
		Priority:       ClassifyReviewPriority(business.VerificationStatus, business.ApplicationSubmittedAt, now),
	}

	for _, doc := range docs {
		switch doc.VerificationStatus {
		case entities.DocumentStatusVerified:
			summary.Verified++
		case entities.DocumentStatusRejected:
			summary.Rejected++
		case entities.DocumentStatusUnderReview:
			summary.UnderReview++
		default:
			summary.Pending++
		}
	}

	return summary
}
