package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BusinessStatus represents business verification status
type BusinessStatus string

const (
	BusinessStatusPending   BusinessStatus = "pending"
	BusinessStatusApproved  BusinessStatus = "approved"
	BusinessStatusRejected  BusinessStatus = "rejected"
	BusinessStatusSuspended BusinessStatus = "suspended"
)

// ReviewPriority represents the derived review-urgency tier for a business
type ReviewPriority string

const (
	ReviewPriorityNormal ReviewPriority = "normal"
	ReviewPriorityHigh   ReviewPriority = "high"
	ReviewPriorityUrgent ReviewPriority = "urgent"
)

// Business represents a provider business record
type Business struct {
	ID                     uuid.UUID      `json:"id"`
	UserID                 uuid.UUID      `json:"userId"`
	DisplayName            string         `json:"displayName"`
	ContactEmail           string         `json:"contactEmail"`
	Phone                  null.String    `json:"phone,omitempty"`
	VerificationStatus     BusinessStatus `json:"verificationStatus"`
	VerificationNotes      null.String    `json:"verificationNotes,omitempty"`
	ApplicationSubmittedAt time.Time      `json:"applicationSubmittedAt"`
	ApprovedAt             null.Time      `json:"approvedAt,omitempty"`
	ApprovedBy             null.String    `json:"approvedBy,omitempty"`
	CreatedAt              time.Time      `json:"createdAt"`
	UpdatedAt              time.Time      `json:"updatedAt"`
	DeletedAt              null.Time      `json:"-"`
}

// BusinessApplyInput represents input for a provider business application
type BusinessApplyInput struct {
	DisplayName  string `json:"displayName" binding:"required,min=2,max=255"`
	ContactEmail string `json:"contactEmail" binding:"required,email"`
	Phone        string `json:"phone,omitempty"`
}

// VerificationSummary aggregates a business's document set. Derived, never persisted.
type VerificationSummary struct {
	BusinessID     uuid.UUID      `json:"businessId"`
	TotalDocuments int            `json:"totalDocuments"`
	Verified       int            `json:"verified"`
	Pending        int            `json:"pending"`
	Rejected       int            `json:"rejected"`
	UnderReview    int            `json:"underReview"`
	Priority       ReviewPriority `json:"priority"`
}

// BusinessListItem is a business row decorated with its verification summary
type BusinessListItem struct {
	Business *Business            `json:"business"`
	Summary  *VerificationSummary `json:"summary"`
}
