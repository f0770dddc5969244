package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"provider-market.backend/internal/domain/entities"
	domainerrors "provider-market.backend/internal/domain/errors"
	"provider-market.backend/internal/domain/repositories"
	"provider-market.backend/pkg/logger"
)

// ApprovalResult pairs a decision with the notification fan-out that followed
// it. The decision stands on its own: a failed or suppressed notification
// never rolls it back.
type ApprovalResult struct {
	Business     *entities.Business `json:"business"`
	Unverified   int                `json:"unverifiedDocuments,omitempty"`
	Notification *DispatchResult    `json:"notification,omitempty"`
}

// DocumentResult pairs a document decision with its notification fan-out
type DocumentResult struct {
	Document     *entities.Document `json:"document"`
	Notification *DispatchResult    `json:"notification,omitempty"`
}

// ApprovalUsecase orchestrates verification decisions and the notifications
// they trigger
type ApprovalUsecase struct {
	verification *VerificationUsecase
	notification *NotificationUsecase
	businessRepo repositories.BusinessRepository
	documentRepo repositories.DocumentRepository
	userRepo     repositories.UserRepository
}

// NewApprovalUsecase creates a new approval usecase
func NewApprovalUsecase(
	verification *VerificationUsecase,
	notification *NotificationUsecase,
	businessRepo repositories.BusinessRepository,
	documentRepo repositories.DocumentRepository,
	userRepo repositories.UserRepository,
) *ApprovalUsecase {
	return &ApprovalUsecase{
		verification: verification,
		notification: notification,
		businessRepo: businessRepo,
		documentRepo: documentRepo,
		userRepo:     userRepo,
	}
}

// ApplyBusiness registers a new provider business application in pending
// status and sends the welcome notification
func (u *ApprovalUsecase) ApplyBusiness(ctx context.Context, userID uuid.UUID, input *entities.BusinessApplyInput) (*ApprovalResult, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing, err := u.businessRepo.GetByUserID(ctx, userID); err == nil && existing != nil {
		return nil, domainerrors.Conflict("user already has a business record")
	} else if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	business := &entities.Business{
		ID:                     uuid.New(),
		UserID:                 user.ID,
		DisplayName:            input.DisplayName,
		ContactEmail:           input.ContactEmail,
		VerificationStatus:     entities.BusinessStatusPending,
		ApplicationSubmittedAt: time.Now(),
	}
	if input.Phone != "" {
		business.Phone = null.StringFrom(input.Phone)
	}

	if err := u.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}

	dispatch := u.notify(ctx, user.ID, entities.NotificationTypeWelcome, map[string]interface{}{
		"name":         user.Name,
		"businessName": business.DisplayName,
	}, map[string]interface{}{
		"businessId": business.ID.String(),
		"event":      "business_applied",
	})
	return &ApprovalResult{Business: business, Notification: dispatch}, nil
}

// ApproveBusiness applies the approve decision and notifies the owner
func (u *ApprovalUsecase) ApproveBusiness(ctx context.Context, businessID uuid.UUID, approver string) (*ApprovalResult, error) {
	business, unverified, err := u.verification.ApproveBusiness(ctx, businessID, approver)
	if err != nil {
		return nil, err
	}

	dispatch := u.notify(ctx, business.UserID, entities.NotificationTypeBusinessVerification, map[string]interface{}{
		"businessName": business.DisplayName,
		"status":       string(business.VerificationStatus),
	}, map[string]interface{}{
		"businessId": business.ID.String(),
		"event":      "business_" + string(business.VerificationStatus),
	})
	return &ApprovalResult{Business: business, Unverified: unverified, Notification: dispatch}, nil
}

// RejectBusiness applies the reject decision and notifies the owner with the notes
func (u *ApprovalUsecase) RejectBusiness(ctx context.Context, businessID uuid.UUID, notes string) (*ApprovalResult, error) {
	business, err := u.verification.RejectBusiness(ctx, businessID, notes)
	if err != nil {
		return nil, err
	}

	dispatch := u.notify(ctx, business.UserID, entities.NotificationTypeBusinessVerification, map[string]interface{}{
		"businessName": business.DisplayName,
		"status":       string(business.VerificationStatus),
		"notes":        notes,
	}, map[string]interface{}{
		"businessId": business.ID.String(),
		"event":      "business_" + string(business.VerificationStatus),
	})
	return &ApprovalResult{Business: business, Notification: dispatch}, nil
}

// SuspendBusiness applies the suspend decision and notifies the owner
func (u *ApprovalUsecase) SuspendBusiness(ctx context.Context, businessID uuid.UUID, notes string) (*ApprovalResult, error) {
	business, err := u.verification.SuspendBusiness(ctx, businessID, notes)
	if err != nil {
		return nil, err
	}

	dispatch := u.notify(ctx, business.UserID, entities.NotificationTypeBusinessVerification, map[string]interface{}{
		"businessName": business.DisplayName,
		"status":       string(business.VerificationStatus),
		"notes":        notes,
	}, map[string]interface{}{
		"businessId": business.ID.String(),
		"event":      "business_" + string(business.VerificationStatus),
	})
	return &ApprovalResult{Business: business, Notification: dispatch}, nil
}

// ResetBusiness moves a business back to pending review. No notification:
// requeueing is an internal workflow step, not owner-facing news.
func (u *ApprovalUsecase) ResetBusiness(ctx context.Context, businessID uuid.UUID) (*ApprovalResult, error) {
	business, err := u.verification.ResetBusinessToPending(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return &ApprovalResult{Business: business}, nil
}

// UploadDocument records a new evidence document in pending status
func (u *ApprovalUsecase) UploadDocument(ctx context.Context, businessID uuid.UUID, docType entities.DocumentType) (*entities.Document, error) {
	if !entities.ValidDocumentType(docType) {
		return nil, domainerrors.BadRequest("unknown document type " + string(docType))
	}
	if _, err := u.businessRepo.GetByID(ctx, businessID); err != nil {
		return nil, err
	}

	doc := &entities.Document{
		ID:                 uuid.New(),
		BusinessID:         businessID,
		DocumentType:       docType,
		VerificationStatus: entities.DocumentStatusPending,
	}
	if err := u.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// VerifyDocument applies the verify decision and notifies the owner
func (u *ApprovalUsecase) VerifyDocument(ctx context.Context, documentID uuid.UUID, verifier string) (*DocumentResult, error) {
	doc, err := u.verification.VerifyDocument(ctx, documentID, verifier)
	if err != nil {
		return nil, err
	}
	return u.documentResult(ctx, doc, "")
}

// RejectDocument applies the reject decision and notifies the owner with the reason
func (u *ApprovalUsecase) RejectDocument(ctx context.Context, documentID uuid.UUID, reason string) (*DocumentResult, error) {
	doc, err := u.verification.RejectDocument(ctx, documentID, reason)
	if err != nil {
		return nil, err
	}
	return u.documentResult(ctx, doc, reason)
}

// FlagDocumentUnderReview flags a document for closer inspection. Internal
// workflow step, no notification.
func (u *ApprovalUsecase) FlagDocumentUnderReview(ctx context.Context, documentID uuid.UUID) (*DocumentResult, error) {
	doc, err := u.verification.MarkDocumentUnderReview(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{Document: doc}, nil
}

func (u *ApprovalUsecase) documentResult(ctx context.Context, doc *entities.Document, reason string) (*DocumentResult, error) {
	business, err := u.businessRepo.GetByID(ctx, doc.BusinessID)
	if err != nil {
		// The decision is already committed; surface the document and log
		// the lookup failure instead of failing the call.
		logger.Error(ctx, "failed to load business for document notification",
			zap.String("document_id", doc.ID.String()),
			zap.Error(err),
		)
		return &DocumentResult{Document: doc}, nil
	}

	vars := map[string]interface{}{
		"businessName": business.DisplayName,
		"documentType": string(doc.DocumentType),
		"status":       string(doc.VerificationStatus),
	}
	if reason != "" {
		vars["notes"] = reason
	}
	dispatch := u.notify(ctx, business.UserID, entities.NotificationTypeBusinessVerification, vars, map[string]interface{}{
		"businessId": business.ID.String(),
		"documentId": doc.ID.String(),
		"event":      "document_" + string(doc.VerificationStatus),
	})
	return &DocumentResult{Document: doc, Notification: dispatch}, nil
}

// notify dispatches best-effort: resolution failures are logged and the
// result is nil, because the decision that triggered the notification has
// already been committed
func (u *ApprovalUsecase) notify(ctx context.Context, userID uuid.UUID, notificationType entities.NotificationType, vars, metadata map[string]interface{}) *DispatchResult {
	result, err := u.notification.Dispatch(ctx, userID, notificationType, vars, metadata)
	if err != nil {
		logger.Error(ctx, "notification dispatch failed",
			zap.String("user_id", userID.String()),
			zap.String("notification_type", string(notificationType)),
			zap.Error(err),
		)
		return nil
	}
	return result
}
