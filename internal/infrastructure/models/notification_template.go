package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationTemplate struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Key           string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	EmailSubject  string    `gorm:"type:varchar(255);not null"`
	EmailBodyHTML string    `gorm:"column:email_body_html;type:text;not null"`
	EmailBodyText string    `gorm:"type:text;not null"`
	SMSBody       *string   `gorm:"column:sms_body;type:text"`
	IsActive      bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (NotificationTemplate) TableName() string {
	return "notification_templates"
}
