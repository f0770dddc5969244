package usecases_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"provider-market.backend/internal/domain/entities"
	"provider-market.backend/internal/usecases"
)

func docWithStatus(businessID uuid.UUID, status entities.DocumentStatus) *entities.Document {
	return &entities.Document{
		ID:                 uuid.New(),
		BusinessID:         businessID,
		DocumentType:       entities.DocumentTypeBusinessLicense,
		VerificationStatus: status,
	}
}

func TestBuildVerificationSummary_Counts(t *testing.T) {
	now := time.Now()
	business := &entities.Business{
		ID:                     uuid.New(),
		VerificationStatus:     entities.BusinessStatusPending,
		ApplicationSubmittedAt: now.AddDate(0, 0, -1),
	}
	docs := []*entities.Document{
		docWithStatus(business.ID, entities.DocumentStatusVerified),
		docWithStatus(business.ID, entities.DocumentStatusVerified),
		docWithStatus(business.ID, entities.DocumentStatusPending),
		docWithStatus(business.ID, entities.DocumentStatusRejected),
		docWithStatus(business.ID, entities.DocumentStatusUnderReview),
	}

	summary := usecases.BuildVerificationSummary(business, docs, now)

	assert.Equal(t, 5, summary.TotalDocuments)
	assert.Equal(t, 2, summary.Verified)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 1, summary.UnderReview)
	assert.Equal(t, summary.TotalDocuments,
		summary.Verified+summary.Pending+summary.Rejected+summary.UnderReview)
	assert.Equal(t, entities.ReviewPriorityNormal, summary.Priority)
}

func TestBuildVerificationSummary_ZeroDocuments(t *testing.T) {
	now := time.Now()
	business := &entities.Business{
		ID:                     uuid.New(),
		VerificationStatus:     entities.BusinessStatusSuspended,
		ApplicationSubmittedAt: now,
	}

	summary := usecases.BuildVerificationSummary(business, nil, now)

	assert.Equal(t, 0, summary.TotalDocuments)
	assert.Equal(t, 0, summary.Verified+summary.Pending+summary.Rejected+summary.UnderReview)
	assert.Equal(t, entities.ReviewPriorityUrgent, summary.Priority)
}
