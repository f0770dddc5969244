package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"provider-market.backend/internal/domain/entities"
	"provider-market.backend/internal/domain/repositories"
	"provider-market.backend/internal/infrastructure/models"
)

// preferenceRepo implements repositories.NotificationPreferenceRepository
type preferenceRepo struct {
	db *gorm.DB
}

// NewNotificationPreferenceRepository creates a new preference repository
func NewNotificationPreferenceRepository(db *gorm.DB) repositories.NotificationPreferenceRepository {
	return &preferenceRepo{db: db}
}

// GetByUserID returns the user's preference record, or (nil, nil) when the user
// has never saved one. Absence is not an error for the dispatcher.
func (r *preferenceRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.NotificationPreference, error) {
	var m models.NotificationPreference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *preferenceRepo) toEntity(m *models.NotificationPreference) *entities.NotificationPreference {
	e := &entities.NotificationPreference{
		ID:                m.ID,
		UserID:            m.UserID,
		EmailEnabled:      m.EmailEnabled,
		SMSEnabled:        m.SMSEnabled,
		QuietHoursEnabled: m.QuietHoursEnabled,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	e.EmailWelcome = null.BoolFromPtr(m.EmailWelcome)
	e.EmailBookingAccepted = null.BoolFromPtr(m.EmailBookingAccepted)
	e.EmailBookingCompleted = null.BoolFromPtr(m.EmailBookingCompleted)
	e.EmailBookingReminder = null.BoolFromPtr(m.EmailBookingReminder)
	e.EmailNewBooking = null.BoolFromPtr(m.EmailNewBooking)
	e.EmailBookingCancelled = null.BoolFromPtr(m.EmailBookingCancelled)
	e.EmailBookingRescheduled = null.BoolFromPtr(m.EmailBookingRescheduled)
	e.EmailBusinessVerification = null.BoolFromPtr(m.EmailBusinessVerification)

	e.SMSBookingAccepted = null.BoolFromPtr(m.SMSBookingAccepted)
	e.SMSBookingCompleted = null.BoolFromPtr(m.SMSBookingCompleted)
	e.SMSBookingReminder = null.BoolFromPtr(m.SMSBookingReminder)
	e.SMSNewBooking = null.BoolFromPtr(m.SMSNewBooking)
	e.SMSBookingCancelled = null.BoolFromPtr(m.SMSBookingCancelled)
	e.SMSBookingRescheduled = null.BoolFromPtr(m.SMSBookingRescheduled)
	e.SMSBusinessVerification = null.BoolFromPtr(m.SMSBusinessVerification)

	e.QuietHoursStart = null.StringFromPtr(m.QuietHoursStart)
	e.QuietHoursEnd = null.StringFromPtr(m.QuietHoursEnd)
	e.Timezone = null.StringFromPtr(m.Timezone)
	e.NotificationEmail = null.StringFromPtr(m.NotificationEmail)
	e.NotificationPhone = null.StringFromPtr(m.NotificationPhone)

	return e
}
