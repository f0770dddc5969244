package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Business struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID                 uuid.UUID `gorm:"type:uuid;not null;index"`
	DisplayName            string    `gorm:"type:varchar(255);not null"`
	ContactEmail           string    `gorm:"type:varchar(255);not null"`
	Phone                  *string   `gorm:"type:varchar(50)"`
	VerificationStatus     string    `gorm:"type:varchar(50);not null;default:'pending';index"`
	VerificationNotes      *string   `gorm:"type:text"`
	ApplicationSubmittedAt time.Time `gorm:"not null"`
	ApprovedAt             *time.Time
	ApprovedBy             *string `gorm:"type:varchar(255)"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index"`
}

func (Business) TableName() string {
	return "businesses"
}
