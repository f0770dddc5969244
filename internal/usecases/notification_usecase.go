package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"provider-market.backend/internal/domain/entities"
	domainerrors "provider-market.backend/internal/domain/errors"
	"provider-market.backend/internal/domain/repositories"
	"provider-market.backend/pkg/logger"
	"provider-market.backend/pkg/metrics"
)

// EmailTransport sends one email and returns the provider message ID
type EmailTransport interface {
	Send(ctx context.Context, to, subject, htmlBody string) (string, error)
}

// SMSTransport sends one SMS and returns the provider message ID
type SMSTransport interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// ChannelOutcome is the per-channel result of one dispatch
type ChannelOutcome struct {
	Channel    entities.NotificationChannel `json:"channel"`
	Recipient  string                       `json:"recipient"`
	Sent       bool                         `json:"sent"`
	ExternalID string                       `json:"externalId,omitempty"`
	Err        error                        `json:"-"`
}

// DispatchResult summarizes one dispatch attempt. Suppressed means quiet
// hours blocked the whole dispatch before any channel was attempted.
type DispatchResult struct {
	Suppressed bool             `json:"suppressed"`
	Channels   []ChannelOutcome `json:"channels"`
}

// NotificationUsecase resolves preferences and templates for an event and
// fans the rendered message out over the enabled channels. Transport
// failures are recorded, never returned: a send that reaches the transport
// layer cannot fail the caller.
type NotificationUsecase struct {
	userRepo     repositories.UserRepository
	businessRepo repositories.BusinessRepository
	templateRepo repositories.NotificationTemplateRepository
	prefRepo     repositories.NotificationPreferenceRepository
	logRepo      repositories.NotificationLogRepository
	email        EmailTransport
	sms          SMSTransport
	nowFn        func() time.Time
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(
	userRepo repositories.UserRepository,
	businessRepo repositories.BusinessRepository,
	templateRepo repositories.NotificationTemplateRepository,
	prefRepo repositories.NotificationPreferenceRepository,
	logRepo repositories.NotificationLogRepository,
	email EmailTransport,
	sms SMSTransport,
) *NotificationUsecase {
	return &NotificationUsecase{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		templateRepo: templateRepo,
		prefRepo:     prefRepo,
		logRepo:      logRepo,
		email:        email,
		sms:          sms,
		nowFn:        time.Now,
	}
}

// Dispatch sends one notification of the given type to the user, filling the
// template with vars. metadata is an optional context snapshot stored on each
// audit row. The returned error covers resolution failures only (unknown
// user, missing template); individual channel failures live in the result's
// per-channel outcomes.
func (u *NotificationUsecase) Dispatch(ctx context.Context, userID uuid.UUID, notificationType entities.NotificationType, vars map[string]interface{}, metadata map[string]interface{}) (*DispatchResult, error) {
	if !entities.ValidNotificationType(notificationType) {
		return nil, domainerrors.BadRequest("unknown notification type " + string(notificationType))
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, err
	}

	pref, err := u.prefRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	template, err := u.templateRepo.GetActiveByKey(ctx, notificationType)
	if err != nil {
		return nil, err
	}

	now := u.nowFn()
	if pref != nil && inQuietHours(pref, now) {
		metrics.NotificationsSuppressed.WithLabelValues(string(notificationType)).Inc()
		logger.Info(ctx, "notification suppressed by quiet hours",
			zap.String("user_id", userID.String()),
			zap.String("notification_type", string(notificationType)),
		)
		return &DispatchResult{Suppressed: true}, nil
	}

	selection := ResolveChannels(notificationType, pref)

	// Contact resolution, most specific first: preference override, then the
	// business profile's own contact details, then the account contact.
	business, err := u.businessRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	emailTo, smsTo := resolveRecipients(user, business, pref)
	meta := marshalMetadata(metadata)

	var wg sync.WaitGroup
	outcomes := make(chan ChannelOutcome, 2)

	if selection.Email && emailTo != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes <- u.sendEmail(ctx, user.ID, notificationType, template, emailTo, vars, meta)
		}()
	}
	if selection.SMS && smsTo != "" {
		// A type with SMS enabled but no SMS body configured is skipped
		// without an audit row: there is nothing to send.
		if template.SMSBody.Valid && template.SMSBody.String != "" {
			wg.Add(1)
			go func() {
				defer wg.Done()
				outcomes <- u.sendSMS(ctx, user.ID, notificationType, template, smsTo, vars, meta)
			}()
		}
	}

	wg.Wait()
	close(outcomes)

	result := &DispatchResult{}
	for outcome := range outcomes {
		result.Channels = append(result.Channels, outcome)
	}
	return result, nil
}

// resolveRecipients picks the delivery addresses in precedence order:
// preference override, business profile contact, account contact
func resolveRecipients(user *entities.User, business *entities.Business, pref *entities.NotificationPreference) (emailTo, smsTo string) {
	emailTo = user.Email
	if user.Phone.Valid {
		smsTo = user.Phone.String
	}
	if business != nil {
		if business.ContactEmail != "" {
			emailTo = business.ContactEmail
		}
		if business.Phone.Valid && business.Phone.String != "" {
			smsTo = business.Phone.String
		}
	}
	if pref != nil {
		if pref.NotificationEmail.Valid && pref.NotificationEmail.String != "" {
			emailTo = pref.NotificationEmail.String
		}
		if pref.NotificationPhone.Valid && pref.NotificationPhone.String != "" {
			smsTo = pref.NotificationPhone.String
		}
	}
	return emailTo, smsTo
}

// marshalMetadata serializes the caller's context snapshot for the audit
// rows. Empty or unserializable metadata yields a null column, never an error.
func marshalMetadata(metadata map[string]interface{}) null.JSON {
	if len(metadata) == 0 {
		return null.JSON{}
	}
	payload, err := json.Marshal(metadata)
	if err != nil {
		return null.JSON{}
	}
	return null.JSONFrom(payload)
}

func (u *NotificationUsecase) sendEmail(ctx context.Context, userID uuid.UUID, notificationType entities.NotificationType, template *entities.NotificationTemplate, to string, vars map[string]interface{}, meta null.JSON) ChannelOutcome {
	subject := RenderTemplate(template.EmailSubject, vars)
	body := RenderTemplate(template.EmailBodyHTML, vars)

	externalID, err := u.email.Send(ctx, to, subject, body)
	u.logAttempt(ctx, &entities.NotificationLog{
		UserID:           userID,
		Channel:          entities.ChannelEmail,
		Recipient:        to,
		NotificationType: notificationType,
		Subject:          null.StringFrom(subject),
		Body:             body,
		Metadata:         meta,
	}, externalID, err)

	outcome := ChannelOutcome{Channel: entities.ChannelEmail, Recipient: to, ExternalID: externalID, Err: err}
	outcome.Sent = err == nil
	return outcome
}

func (u *NotificationUsecase) sendSMS(ctx context.Context, userID uuid.UUID, notificationType entities.NotificationType, template *entities.NotificationTemplate, to string, vars map[string]interface{}, meta null.JSON) ChannelOutcome {
	body := RenderTemplate(template.SMSBody.String, vars)

	externalID, err := u.sms.Send(ctx, to, body)
	u.logAttempt(ctx, &entities.NotificationLog{
		UserID:           userID,
		Channel:          entities.ChannelSMS,
		Recipient:        to,
		NotificationType: notificationType,
		Body:             body,
		Metadata:         meta,
	}, externalID, err)

	outcome := ChannelOutcome{Channel: entities.ChannelSMS, Recipient: to, ExternalID: externalID, Err: err}
	outcome.Sent = err == nil
	return outcome
}

// logAttempt appends the audit row for one channel attempt. Audit writes are
// best-effort: a failed insert is logged and swallowed so it cannot mask the
// delivery outcome.
func (u *NotificationUsecase) logAttempt(ctx context.Context, row *entities.NotificationLog, externalID string, sendErr error) {
	row.ID = uuid.New()
	row.SentAt = u.nowFn()
	row.CreatedAt = row.SentAt
	if sendErr != nil {
		row.Status = entities.NotificationStatusFailed
		row.ErrorMessage = null.StringFrom(sendErr.Error())
		logger.Error(ctx, "notification send failed",
			zap.String("channel", string(row.Channel)),
			zap.String("notification_type", string(row.NotificationType)),
			zap.Error(sendErr),
		)
	} else {
		row.Status = entities.NotificationStatusSent
		row.ExternalID = null.StringFrom(externalID)
	}

	metrics.NotificationsDispatched.WithLabelValues(string(row.Channel), string(row.Status)).Inc()

	if err := u.logRepo.Create(ctx, row); err != nil {
		logger.Error(ctx, "failed to write notification log",
			zap.String("channel", string(row.Channel)),
			zap.Error(err),
		)
	}
}

// ListLogs returns the delivery audit trail for a user, newest first
func (u *NotificationUsecase) ListLogs(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.NotificationLog, int, error) {
	return u.logRepo.ListByUserID(ctx, userID, limit, offset)
}

// ListTemplates returns all notification templates
func (u *NotificationUsecase) ListTemplates(ctx context.Context) ([]*entities.NotificationTemplate, error) {
	return u.templateRepo.List(ctx)
}

// inQuietHours reports whether now falls inside the user's quiet window.
// The window is evaluated in the user's timezone (UTC when unset or
// unloadable); start is inclusive, end exclusive. A window whose start is
// after its end wraps over midnight. Malformed times disable the window
// rather than suppressing every dispatch.
func inQuietHours(pref *entities.NotificationPreference, now time.Time) bool {
	if !pref.QuietHoursEnabled || !pref.QuietHoursStart.Valid || !pref.QuietHoursEnd.Valid {
		return false
	}

	start, ok := parseClock(pref.QuietHoursStart.String)
	if !ok {
		return false
	}
	end, ok := parseClock(pref.QuietHoursEnd.String)
	if !ok {
		return false
	}
	if start == end {
		return false
	}

	loc := time.UTC
	if pref.Timezone.Valid && pref.Timezone.String != "" {
		if parsed, err := time.LoadLocation(pref.Timezone.String); err == nil {
			loc = parsed
		}
	}

	local := now.In(loc)
	current := local.Hour()*60 + local.Minute()

	if start < end {
		return current >= start && current < end
	}
	// Overnight window, e.g. 22:00-08:00.
	return current >= start || current < end
}

// parseClock parses "HH:MM" into minutes since midnight
func parseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
