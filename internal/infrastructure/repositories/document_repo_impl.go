package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"provider-market.backend/internal/domain/entities"
	domainerrors "provider-market.backend/internal/domain/errors"
	"provider-market.backend/internal/domain/repositories"
	"provider-market.backend/internal/infrastructure/models"
)

// documentRepo implements repositories.DocumentRepository
type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) repositories.DocumentRepository {
	return &documentRepo{db: db}
}

// Create creates a new document with status pending
func (r *documentRepo) Create(ctx context.Context, doc *entities.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.VerificationStatus = entities.DocumentStatusPending
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()

	return r.db.WithContext(ctx).Create(r.toModel(doc)).Error
}

// GetByID gets a document by ID
func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	var m models.BusinessDocument
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByBusinessID lists all documents for a business
func (r *documentRepo) ListByBusinessID(ctx context.Context, businessID uuid.UUID) ([]*entities.Document, error) {
	var ms []models.BusinessDocument
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	docs := make([]*entities.Document, 0, len(ms))
	for i := range ms {
		docs = append(docs, r.toEntity(&ms[i]))
	}
	return docs, nil
}

// Update writes status, reason and the verification pair back in one statement
func (r *documentRepo) Update(ctx context.Context, doc *entities.Document) error {
	doc.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&models.BusinessDocument{}).
		Where("id = ?", doc.ID).
		Select("verification_status", "rejection_reason", "verified_by", "verified_at", "updated_at").
		Updates(r.toModel(doc))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *documentRepo) toModel(e *entities.Document) *models.BusinessDocument {
	m := &models.BusinessDocument{
		ID:                 e.ID,
		BusinessID:         e.BusinessID,
		DocumentType:       string(e.DocumentType),
		VerificationStatus: string(e.VerificationStatus),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	if e.RejectionReason.Valid {
		m.RejectionReason = &e.RejectionReason.String
	}
	if e.VerifiedBy.Valid {
		m.VerifiedBy = &e.VerifiedBy.String
	}
	if e.VerifiedAt.Valid {
		m.VerifiedAt = &e.VerifiedAt.Time
	}
	return m
}

func (r *documentRepo) toEntity(m *models.BusinessDocument) *entities.Document {
	e := &entities.Document{
		ID:                 m.ID,
		BusinessID:         m.BusinessID,
		DocumentType:       entities.DocumentType(m.DocumentType),
		VerificationStatus: entities.DocumentStatus(m.VerificationStatus),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.RejectionReason != nil {
		e.RejectionReason = null.StringFrom(*m.RejectionReason)
	}
	if m.VerifiedBy != nil {
		e.VerifiedBy = null.StringFrom(*m.VerifiedBy)
	}
	if m.VerifiedAt != nil {
		e.VerifiedAt = null.TimeFrom(*m.VerifiedAt)
	}
	return e
}
