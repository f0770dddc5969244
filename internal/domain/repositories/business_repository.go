package repositories

import (
	"context"

	"github.com/google/uuid"
	"provider-market.backend/internal/domain/entities"
)

// BusinessRepository defines business record data operations
type BusinessRepository interface {
	Create(ctx context.Context, business *entities.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Business, error)
	Update(ctx context.Context, business *entities.Business) error
	List(ctx context.Context, status entities.BusinessStatus, limit, offset int) ([]*entities.Business, int, error)
	ListPendingOlderThan(ctx context.Context, days int, limit int) ([]*entities.Business, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// DocumentRepository defines verification document data operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error)
	ListByBusinessID(ctx context.Context, businessID uuid.UUID) ([]*entities.Document, error)
	Update(ctx context.Context, doc *entities.Document) error
}
