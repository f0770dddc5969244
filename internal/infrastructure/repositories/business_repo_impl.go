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

// businessRepo implements repositories.BusinessRepository
type businessRepo struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) repositories.BusinessRepository {
	return &businessRepo{db: db}
}

// Create creates a new business record with status pending
func (r *businessRepo) Create(ctx context.Context, business *entities.Business) error {
	if business.ID == uuid.Nil {
		business.ID = uuid.New()
	}
	business.VerificationStatus = entities.BusinessStatusPending
	if business.ApplicationSubmittedAt.IsZero() {
		business.ApplicationSubmittedAt = time.Now()
	}
	business.CreatedAt = time.Now()
	business.UpdatedAt = time.Now()

	m := r.toModel(business)
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a business by ID
func (r *businessRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error) {
	var m models.Business
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUserID gets the business owned by a user
func (r *businessRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Business, error) {
	var m models.Business
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update writes the full business row back. Status, notes and the approval pair
// are written in one statement so a transition is atomic at the row level.
func (r *businessRepo) Update(ctx context.Context, business *entities.Business) error {
	business.UpdatedAt = time.Now()
	m := r.toModel(business)

	result := r.db.WithContext(ctx).Model(&models.Business{}).
		Where("id = ?", business.ID).
		Select("display_name", "contact_email", "phone", "verification_status",
			"verification_notes", "approved_at", "approved_by", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns a page of businesses, optionally filtered by status
func (r *businessRepo) List(ctx context.Context, status entities.BusinessStatus, limit, offset int) ([]*entities.Business, int, error) {
	query := r.db.WithContext(ctx).Model(&models.Business{})
	if status != "" {
		query = query.Where("verification_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Business
	if err := query.Order("application_submitted_at ASC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Business, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, int(total), nil
}

// ListPendingOlderThan returns pending businesses submitted more than `days` days ago
func (r *businessRepo) ListPendingOlderThan(ctx context.Context, days int, limit int) ([]*entities.Business, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	var ms []models.Business
	err := r.db.WithContext(ctx).
		Where("verification_status = ?", entities.BusinessStatusPending).
		Where("application_submitted_at < ?", cutoff).
		Order("application_submitted_at ASC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	items := make([]*entities.Business, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

// SoftDelete soft deletes a business
func (r *businessRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Business{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *businessRepo) toModel(e *entities.Business) *models.Business {
	m := &models.Business{
		ID:                     e.ID,
		UserID:                 e.UserID,
		DisplayName:            e.DisplayName,
		ContactEmail:           e.ContactEmail,
		VerificationStatus:     string(e.VerificationStatus),
		ApplicationSubmittedAt: e.ApplicationSubmittedAt,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
	if e.Phone.Valid {
		m.Phone = &e.Phone.String
	}
	if e.VerificationNotes.Valid {
		m.VerificationNotes = &e.VerificationNotes.String
	}
	if e.ApprovedAt.Valid {
		m.ApprovedAt = &e.ApprovedAt.Time
	}
	if e.ApprovedBy.Valid {
		m.ApprovedBy = &e.ApprovedBy.String
	}
	return m
}

func (r *businessRepo) toEntity(m *models.Business) *entities.Business {
	e := &entities.Business{
		ID:                     m.ID,
		UserID:                 m.UserID,
		DisplayName:            m.DisplayName,
		ContactEmail:           m.ContactEmail,
		VerificationStatus:     entities.BusinessStatus(m.VerificationStatus),
		ApplicationSubmittedAt: m.ApplicationSubmittedAt,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
	if m.Phone != nil {
		e.Phone = null.StringFrom(*m.Phone)
	}
	if m.VerificationNotes != nil {
		e.VerificationNotes = null.StringFrom(*m.VerificationNotes)
	}
	if m.ApprovedAt != nil {
		e.ApprovedAt = null.TimeFrom(*m.ApprovedAt)
	}
	if m.ApprovedBy != nil {
		e.ApprovedBy = null.StringFrom(*m.ApprovedBy)
	}
	return e
}
