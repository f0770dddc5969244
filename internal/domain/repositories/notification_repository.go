package repositories

import (
	"context"

	"github.com/google/uuid"
	"provider-market.backend/internal/domain/entities"
)

// NotificationTemplateRepository defines read-only template lookups
type NotificationTemplateRepository interface {
	// GetActiveByKey returns ErrTemplateNotFound when the key is unknown or inactive.
	GetActiveByKey(ctx context.Context, key entities.NotificationType) (*entities.NotificationTemplate, error)
	List(ctx context.Context) ([]*entities.NotificationTemplate, error)
}

// NotificationPreferenceRepository defines preference lookups.
// GetByUserID returns (nil, nil) when the user has no preference record.
type NotificationPreferenceRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.NotificationPreference, error)
}

// NotificationLogRepository is the append-only delivery audit trail
type NotificationLogRepository interface {
	Create(ctx context.Context, log *entities.NotificationLog) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.NotificationLog, int, error)
}
