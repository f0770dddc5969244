package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// NotificationType identifies which template and preference override apply to an event
type NotificationType string

const (
	NotificationTypeWelcome              NotificationType = "welcome"
	NotificationTypeBookingAccepted      NotificationType = "booking-accepted"
	NotificationTypeBookingCompleted     NotificationType = "booking-completed"
	NotificationTypeBookingReminder      NotificationType = "booking-reminder"
	NotificationTypeNewBooking           NotificationType = "new-booking"
	NotificationTypeBookingCancelled     NotificationType = "booking-cancelled"
	NotificationTypeBookingRescheduled   NotificationType = "booking-rescheduled"
	NotificationTypeBusinessVerification NotificationType = "business-verification"
)

// NotificationChannel represents a delivery medium
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// NotificationStatus represents the delivery state recorded in the audit log
type NotificationStatus string

const (
	NotificationStatusPending   NotificationStatus = "pending"
	NotificationStatusSent      NotificationStatus = "sent"
	NotificationStatusDelivered NotificationStatus = "delivered"
	NotificationStatusFailed    NotificationStatus = "failed"
)

// NotificationTemplate holds the channel bodies for one notification type.
// Read-only at dispatch time.
type NotificationTemplate struct {
	ID            uuid.UUID        `json:"id"`
	Key           NotificationType `json:"key"`
	EmailSubject  string           `json:"emailSubject"`
	EmailBodyHTML string           `json:"emailBodyHtml"`
	EmailBodyText string           `json:"emailBodyText"`
	SMSBody       null.String      `json:"smsBody,omitempty"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// NotificationPreference holds a user's channel toggles, per-type overrides and
// quiet hours. Owned by the user-settings collaborator; read-only to the dispatcher.
type NotificationPreference struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	EmailEnabled bool      `json:"emailEnabled"`
	SMSEnabled   bool      `json:"smsEnabled"`

	// Per-type overrides. Invalid (unset) means "use the channel default":
	// email defaults on, sms defaults off.
	EmailWelcome              null.Bool `json:"emailWelcome,omitempty"`
	EmailBookingAccepted      null.Bool `json:"emailBookingAccepted,omitempty"`
	EmailBookingCompleted     null.Bool `json:"emailBookingCompleted,omitempty"`
	EmailBookingReminder      null.Bool `json:"emailBookingReminder,omitempty"`
	EmailNewBooking           null.Bool `json:"emailNewBooking,omitempty"`
	EmailBookingCancelled     null.Bool `json:"emailBookingCancelled,omitempty"`
	EmailBookingRescheduled   null.Bool `json:"emailBookingRescheduled,omitempty"`
	EmailBusinessVerification null.Bool `json:"emailBusinessVerification,omitempty"`

	SMSBookingAccepted      null.Bool `json:"smsBookingAccepted,omitempty"`
	SMSBookingCompleted     null.Bool `json:"smsBookingCompleted,omitempty"`
	SMSBookingReminder      null.Bool `json:"smsBookingReminder,omitempty"`
	SMSNewBooking           null.Bool `json:"smsNewBooking,omitempty"`
	SMSBookingCancelled     null.Bool `json:"smsBookingCancelled,omitempty"`
	SMSBookingRescheduled   null.Bool `json:"smsBookingRescheduled,omitempty"`
	SMSBusinessVerification null.Bool `json:"smsBusinessVerification,omitempty"`

	QuietHoursEnabled bool        `json:"quietHoursEnabled"`
	QuietHoursStart   null.String `json:"quietHoursStart,omitempty"` // "22:00"
	QuietHoursEnd     null.String `json:"quietHoursEnd,omitempty"`   // "08:00"
	Timezone          null.String `json:"timezone,omitempty"`

	NotificationEmail null.String `json:"notificationEmail,omitempty"`
	NotificationPhone null.String `json:"notificationPhone,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NotificationLog is one append-only audit row per dispatch attempt per channel
type NotificationLog struct {
	ID               uuid.UUID           `json:"id"`
	UserID           uuid.UUID           `json:"userId"`
	Channel          NotificationChannel `json:"channel"`
	Recipient        string              `json:"recipient"`
	NotificationType NotificationType    `json:"notificationType"`
	Status           NotificationStatus  `json:"status"`
	ExternalID       null.String         `json:"externalId,omitempty"`
	Subject          null.String         `json:"subject,omitempty"`
	Body             string              `json:"body"`
	ErrorMessage     null.String         `json:"errorMessage,omitempty"`
	SentAt           time.Time           `json:"sentAt"`
	Metadata         null.JSON           `json:"metadata,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// ValidNotificationType reports whether t is a known notification type
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTypeWelcome, NotificationTypeBookingAccepted,
		NotificationTypeBookingCompleted, NotificationTypeBookingReminder,
		NotificationTypeNewBooking, NotificationTypeBookingCancelled,
		NotificationTypeBookingRescheduled, NotificationTypeBusinessVerification:
		return true
	}
	return false
}
