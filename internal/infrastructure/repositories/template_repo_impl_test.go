package repositories

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"provider-market.backend/internal/domain/entities"
	domainerrors "provider-market.backend/internal/domain/errors"
	"provider-market.backend/internal/infrastructure/models"
	redispkg "provider-market.backend/pkg/redis"
	"gorm.io/gorm"
)

func seedTemplate(t *testing.T, db *gorm.DB, key string, active bool) {
	t.Helper()
	sms := "sms for " + key
	require.NoError(t, db.Create(&models.NotificationTemplate{
		ID:            uuid.New(),
		Key:           key,
		EmailSubject:  "Subject " + key,
		EmailBodyHTML: "<p>" + key + "</p>",
		EmailBodyText: key,
		SMSBody:       &sms,
		IsActive:      active,
	}).Error)
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redispkg.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { redispkg.SetClient(nil) })
	return mr
}

func TestTemplateRepository_GetActiveByKey(t *testing.T) {
	db := newTestDB(t)
	createTemplateTable(t, db)
	repo := NewNotificationTemplateRepository(db)
	ctx := context.Background()

	seedTemplate(t, db, string(entities.NotificationTypeWelcome), true)
	seedTemplate(t, db, string(entities.NotificationTypeBookingReminder), false)

	tpl, err := repo.GetActiveByKey(ctx, entities.NotificationTypeWelcome)
	require.NoError(t, err)
	require.Equal(t, entities.NotificationTypeWelcome, tpl.Key)
	require.Equal(t, "Subject welcome", tpl.EmailSubject)
	require.True(t, tpl.SMSBody.Valid)

	_, err = repo.GetActiveByKey(ctx, entities.NotificationTypeBookingReminder)
	require.ErrorIs(t, err, domainerrors.ErrTemplateNotFound)

	_, err = repo.GetActiveByKey(ctx, entities.NotificationTypeBookingAccepted)
	require.ErrorIs(t, err, domainerrors.ErrTemplateNotFound)
}

func TestTemplateRepository_CachesLookups(t *testing.T) {
	mr := withMiniredis(t)
	db := newTestDB(t)
	createTemplateTable(t, db)
	repo := NewNotificationTemplateRepository(db)
	ctx := context.Background()

	seedTemplate(t, db, string(entities.NotificationTypeBusinessVerification), true)

	tpl, err := repo.GetActiveByKey(ctx, entities.NotificationTypeBusinessVerification)
	require.NoError(t, err)

	cacheKey := "notification:template:" + string(entities.NotificationTypeBusinessVerification)
	require.True(t, mr.Exists(cacheKey))

	// a database edit is invisible until the cached copy expires
	require.NoError(t, db.Model(&models.NotificationTemplate{}).
		Where("key = ?", string(entities.NotificationTypeBusinessVerification)).
		Update("email_subject", "Edited").Error)

	cached, err := repo.GetActiveByKey(ctx, entities.NotificationTypeBusinessVerification)
	require.NoError(t, err)
	require.Equal(t, tpl.EmailSubject, cached.EmailSubject)

	mr.FastForward(templateCacheTTL)

	fresh, err := repo.GetActiveByKey(ctx, entities.NotificationTypeBusinessVerification)
	require.NoError(t, err)
	require.Equal(t, "Edited", fresh.EmailSubject)
}

func TestTemplateRepository_CorruptCacheFallsThrough(t *testing.T) {
	mr := withMiniredis(t)
	db := newTestDB(t)
	createTemplateTable(t, db)
	repo := NewNotificationTemplateRepository(db)
	ctx := context.Background()

	seedTemplate(t, db, string(entities.NotificationTypeWelcome), true)

	cacheKey := "notification:template:" + string(entities.NotificationTypeWelcome)
	require.NoError(t, mr.Set(cacheKey, "{not json"))

	tpl, err := repo.GetActiveByKey(ctx, entities.NotificationTypeWelcome)
	require.NoError(t, err)
	require.Equal(t, "Subject welcome", tpl.EmailSubject)
}

func TestTemplateRepository_List(t *testing.T) {
	db := newTestDB(t)
	createTemplateTable(t, db)
	repo := NewNotificationTemplateRepository(db)
	ctx := context.Background()

	seedTemplate(t, db, string(entities.NotificationTypeWelcome), true)
	seedTemplate(t, db, string(entities.NotificationTypeBookingAccepted), false)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// ordered by key, inactive rows included
	require.Equal(t, entities.NotificationTypeBookingAccepted, items[0].Key)
	require.Equal(t, entities.NotificationTypeWelcome, items[1].Key)
}
