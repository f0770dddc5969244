package usecases

import (
	"github.com/volatiletech/null/v8"
	"provider-market.backend/internal/domain/entities"
)

// ChannelSelection is the per-dispatch outcome of preference resolution
type ChannelSelection struct {
	Email bool
	SMS   bool
}

// ResolveChannels decides which channels a notification of the given type may
// use for a user. A nil preference record means the user never touched their
// settings: email on, sms off. With a record present, the channel master
// toggle gates everything and the per-type override refines it; an unset
// override falls back to the channel default (email on, sms off). Welcome
// notifications are email-only regardless of preferences.
func ResolveChannels(notificationType entities.NotificationType, pref *entities.NotificationPreference) ChannelSelection {
	if pref == nil {
		return ChannelSelection{Email: true, SMS: false}
	}

	selection := ChannelSelection{
		Email: pref.EmailEnabled && boolOverride(emailOverride(notificationType, pref), true),
		SMS:   pref.SMSEnabled && boolOverride(smsOverride(notificationType, pref), false),
	}
	if notificationType == entities.NotificationTypeWelcome {
		selection.SMS = false
	}
	return selection
}

func boolOverride(override null.Bool, fallback bool) bool {
	if override.Valid {
		return override.Bool
	}
	return fallback
}

func emailOverride(t entities.NotificationType, pref *entities.NotificationPreference) null.Bool {
	switch t {
	case entities.NotificationTypeWelcome:
		return pref.EmailWelcome
	case entities.NotificationTypeBookingAccepted:
		return pref.EmailBookingAccepted
	case entities.NotificationTypeBookingCompleted:
		return pref.EmailBookingCompleted
	case entities.NotificationTypeBookingReminder:
		return pref.EmailBookingReminder
	case entities.NotificationTypeNewBooking:
		return pref.EmailNewBooking
	case entities.NotificationTypeBookingCancelled:
		return pref.EmailBookingCancelled
	case entities.NotificationTypeBookingRescheduled:
		return pref.EmailBookingRescheduled
	case entities.NotificationTypeBusinessVerification:
		return pref.EmailBusinessVerification
	}
	return null.Bool{}
}

func smsOverride(t entities.NotificationType, pref *entities.NotificationPreference) null.Bool {
	switch t {
	case entities.NotificationTypeBookingAccepted:
		return pref.SMSBookingAccepted
	case entities.NotificationTypeBookingCompleted:
		return pref.SMSBookingCompleted
	case entities.NotificationTypeBookingReminder:
		return pref.SMSBookingReminder
	case entities.NotificationTypeNewBooking:
		return pref.SMSNewBooking
	case entities.NotificationTypeBookingCancelled:
		return pref.SMSBookingCancelled
	case entities.NotificationTypeBookingRescheduled:
		return pref.SMSBookingRescheduled
	case entities.NotificationTypeBusinessVerification:
		return pref.SMSBusinessVerification
	}
	return null.Bool{}
}
