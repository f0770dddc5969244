package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationPreference struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	EmailEnabled bool      `gorm:"not null;default:true"`
	SMSEnabled   bool      `gorm:"column:sms_enabled;not null;default:false"`

	EmailWelcome              *bool
	EmailBookingAccepted      *bool
	EmailBookingCompleted     *bool
	EmailBookingReminder      *bool
	EmailNewBooking           *bool
	EmailBookingCancelled     *bool
	EmailBookingRescheduled   *bool
	EmailBusinessVerification *bool

	SMSBookingAccepted      *bool `gorm:"column:sms_booking_accepted"`
	SMSBookingCompleted     *bool `gorm:"column:sms_booking_completed"`
	SMSBookingReminder      *bool `gorm:"column:sms_booking_reminder"`
	SMSNewBooking           *bool `gorm:"column:sms_new_booking"`
	SMSBookingCancelled     *bool `gorm:"column:sms_booking_cancelled"`
	SMSBookingRescheduled   *bool `gorm:"column:sms_booking_rescheduled"`
	SMSBusinessVerification *bool `gorm:"column:sms_business_verification"`

	QuietHoursEnabled bool    `gorm:"not null;default:false"`
	QuietHoursStart   *string `gorm:"type:varchar(5)"`
	QuietHoursEnd     *string `gorm:"type:varchar(5)"`
	Timezone          *string `gorm:"type:varchar(64)"`

	NotificationEmail *string `gorm:"type:varchar(255)"`
	NotificationPhone *string `gorm:"type:varchar(50)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NotificationPreference) TableName() string {
	return "notification_preferences"
}
