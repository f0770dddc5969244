package models

import (
	"time"

	"github.com/google/uuid"
)

type BusinessDocument struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	BusinessID         uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentType       string    `gorm:"type:varchar(50);not null"`
	VerificationStatus string    `gorm:"type:varchar(50);not null;default:'pending';index"`
	RejectionReason    *string   `gorm:"type:text"`
	VerifiedBy         *string   `gorm:"type:varchar(255)"`
	VerifiedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (BusinessDocument) TableName() string {
	return "business_documents"
}
