package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"provider-market.backend/internal/domain/entities"
	domainerrors "provider-market.backend/internal/domain/errors"
	"provider-market.backend/internal/domain/repositories"
	"provider-market.backend/internal/infrastructure/models"
	redispkg "provider-market.backend/pkg/redis"

	"github.com/volatiletech/null/v8"
)

const templateCacheTTL = 5 * time.Minute

// templateRepo implements repositories.NotificationTemplateRepository with a
// redis read-through cache in front of the database. Templates are immutable at
// dispatch time, so a short TTL is enough to pick up edits.
type templateRepo struct {
	db *gorm.DB
}

// NewNotificationTemplateRepository creates a new template repository
func NewNotificationTemplateRepository(db *gorm.DB) repositories.NotificationTemplateRepository {
	return &templateRepo{db: db}
}

// GetActiveByKey returns the active template for a key.
// Returns ErrTemplateNotFound when the key is unknown or the template is inactive.
func (r *templateRepo) GetActiveByKey(ctx context.Context, key entities.NotificationType) (*entities.NotificationTemplate, error) {
	cacheKey := "notification:template:" + string(key)

	if client := redispkg.GetClient(); client != nil {
		if cached, err := redispkg.Get(ctx, cacheKey); err == nil {
			var tpl entities.NotificationTemplate
			if err := json.Unmarshal([]byte(cached), &tpl); err == nil {
				return &tpl, nil
			}
		}
	}

	var m models.NotificationTemplate
	err := r.db.WithContext(ctx).
		Where("key = ? AND is_active = ?", string(key), true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrTemplateNotFound
		}
		return nil, err
	}

	tpl := r.toEntity(&m)

	if client := redispkg.GetClient(); client != nil {
		if payload, err := json.Marshal(tpl); err == nil {
			_ = redispkg.Set(ctx, cacheKey, payload, templateCacheTTL)
		}
	}

	return tpl, nil
}

// List returns all templates, active or not
func (r *templateRepo) List(ctx context.Context) ([]*entities.NotificationTemplate, error) {
	var ms []models.NotificationTemplate
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.NotificationTemplate, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *templateRepo) toEntity(m *models.NotificationTemplate) *entities.NotificationTemplate {
	e := &entities.NotificationTemplate{
		ID:            m.ID,
		Key:           entities.NotificationType(m.Key),
		EmailSubject:  m.EmailSubject,
		EmailBodyHTML: m.EmailBodyHTML,
		EmailBodyText: m.EmailBodyText,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.SMSBody != nil {
		e.SMSBody = null.StringFrom(*m.SMSBody)
	}
	return e
}
