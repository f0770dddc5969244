package usecases

import (
	"context"
	"strings"
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

// BusinessAction is a verification action on a business record
type BusinessAction string

const (
	BusinessActionApprove        BusinessAction = "approve"
	BusinessActionReject         BusinessAction = "reject"
	BusinessActionSuspend        BusinessAction = "suspend"
	BusinessActionResetToPending BusinessAction = "reset_to_pending"
)

// DocumentAction is a verification action on a document
type DocumentAction string

const (
	DocumentActionVerify          DocumentAction = "verify"
	DocumentActionReject          DocumentAction = "reject"
	DocumentActionMarkUnderReview DocumentAction = "mark_under_review"
)

// businessActionTarget maps each action to the status it produces
var businessActionTarget = map[BusinessAction]entities.BusinessStatus{
	BusinessActionApprove:        entities.BusinessStatusApproved,
	BusinessActionReject:         entities.BusinessStatusRejected,
	BusinessActionSuspend:        entities.BusinessStatusSuspended,
	BusinessActionResetToPending: entities.BusinessStatusPending,
}

// businessTransitions is the explicit allowed-transition table. Every listed
// source may move to every listed target; a transition to the current status
// is never allowed (no silent no-op writes).
var businessTransitions = map[entities.BusinessStatus][]entities.BusinessStatus{
	entities.BusinessStatusPending:   {entities.BusinessStatusApproved, entities.BusinessStatusRejected, entities.BusinessStatusSuspended},
	entities.BusinessStatusApproved:  {entities.BusinessStatusRejected, entities.BusinessStatusSuspended, entities.BusinessStatusPending},
	entities.BusinessStatusRejected:  {entities.BusinessStatusApproved, entities.BusinessStatusSuspended, entities.BusinessStatusPending},
	entities.BusinessStatusSuspended: {entities.BusinessStatusApproved, entities.BusinessStatusRejected, entities.BusinessStatusPending},
}

var documentActionTarget = map[DocumentAction]entities.DocumentStatus{
	DocumentActionVerify:          entities.DocumentStatusVerified,
	DocumentActionReject:          entities.DocumentStatusRejected,
	DocumentActionMarkUnderReview: entities.DocumentStatusUnderReview,
}

var documentTransitions = map[entities.DocumentStatus][]entities.DocumentStatus{
	entities.DocumentStatusPending:     {entities.DocumentStatusVerified, entities.DocumentStatusRejected, entities.DocumentStatusUnderReview},
	entities.DocumentStatusVerified:    {entities.DocumentStatusRejected, entities.DocumentStatusUnderReview},
	entities.DocumentStatusRejected:    {entities.DocumentStatusVerified, entities.DocumentStatusUnderReview},
	entities.DocumentStatusUnderReview: {entities.DocumentStatusVerified, entities.DocumentStatusRejected},
}

// CanTransitionBusiness reports whether the action may be applied to a
// business currently in `from`
func CanTransitionBusiness(from entities.BusinessStatus, action BusinessAction) bool {
	target, ok := businessActionTarget[action]
	if !ok {
		return false
	}
	for _, allowed := range businessTransitions[from] {
		if allowed == target {
			return true
		}
	}
	return false
}

// CanTransitionDocument reports whether the action may be applied to a
// document currently in `from`
func CanTransitionDocument(from entities.DocumentStatus, action DocumentAction) bool {
	target, ok := documentActionTarget[action]
	if !ok {
		return false
	}
	for _, allowed := range documentTransitions[from] {
		if allowed == target {
			return true
		}
	}
	return false
}

// VerificationUsecase validates and applies verification status transitions
// for business records and their documents
type VerificationUsecase struct {
	businessRepo repositories.BusinessRepository
	documentRepo repositories.DocumentRepository
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(
	businessRepo repositories.BusinessRepository,
	documentRepo repositories.DocumentRepository,
) *VerificationUsecase {
	return &VerificationUsecase{
		businessRepo: businessRepo,
		documentRepo: documentRepo,
	}
}

// ApproveBusiness applies the approve transition. ApprovedAt and ApprovedBy
// are set together with the status write. Documents are advisory evidence, not
// a gate: the returned count of unverified documents is a warning signal and
// never blocks the approval.
func (u *VerificationUsecase) ApproveBusiness(ctx context.Context, businessID uuid.UUID, approver string) (*entities.Business, int, error) {
	if strings.TrimSpace(approver) == "" {
		return nil, 0, domainerrors.BadRequest("approver identity is required")
	}

	business, err := u.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, 0, err
	}
	if !CanTransitionBusiness(business.VerificationStatus, BusinessActionApprove) {
		return nil, 0, domainerrors.Conflict("cannot approve a business in status " + string(business.VerificationStatus))
	}

	docs, err := u.documentRepo.ListByBusinessID(ctx, businessID)
	if err != nil {
		return nil, 0, err
	}
	unverified := 0
	for _, doc := range docs {
		if doc.VerificationStatus != entities.DocumentStatusVerified {
			unverified++
		}
	}

	business.VerificationStatus = entities.BusinessStatusApproved
	business.ApprovedAt = null.TimeFrom(time.Now())
	business.ApprovedBy = null.StringFrom(approver)

	if err := u.businessRepo.Update(ctx, business); err != nil {
		return nil, 0, err
	}

	metrics.VerificationTransitions.WithLabelValues("business", string(BusinessActionApprove)).Inc()
	if unverified > 0 {
		logger.Warn(ctx, "business approved with unverified documents",
			zap.String("business_id", businessID.String()),
			zap.Int("unverified_documents", unverified),
		)
	}

	return business, unverified, nil
}

// RejectBusiness applies the reject transition. Notes are required.
func (u *VerificationUsecase) RejectBusiness(ctx context.Context, businessID uuid.UUID, notes string) (*entities.Business, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, domainerrors.BadRequest("rejection notes are required")
	}
	return u.applyBusinessAction(ctx, businessID, BusinessActionReject, notes)
}

// SuspendBusiness applies the suspend transition. Notes are required.
func (u *VerificationUsecase) SuspendBusiness(ctx context.Context, businessID uuid.UUID, notes string) (*entities.Business, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, domainerrors.BadRequest("suspension notes are required")
	}
	return u.applyBusinessAction(ctx, businessID, BusinessActionSuspend, notes)
}

// ResetBusinessToPending moves a business back into the review queue
func (u *VerificationUsecase) ResetBusinessToPending(ctx context.Context, businessID uuid.UUID) (*entities.Business, error) {
	return u.applyBusinessAction(ctx, businessID, BusinessActionResetToPending, "")
}

func (u *VerificationUsecase) applyBusinessAction(ctx context.Context, businessID uuid.UUID, action BusinessAction, notes string) (*entities.Business, error) {
	business, err := u.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !CanTransitionBusiness(business.VerificationStatus, action) {
		return nil, domainerrors.Conflict("cannot " + string(action) + " a business in status " + string(business.VerificationStatus))
	}

	business.VerificationStatus = businessActionTarget[action]
	if notes != "" {
		business.VerificationNotes = null.StringFrom(notes)
	}
	// ApprovedAt/ApprovedBy are owned by the approve transition; any
	// transition away from approved clears the pair.
	business.ApprovedAt = null.Time{}
	business.ApprovedBy = null.String{}

	if err := u.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}

	metrics.VerificationTransitions.WithLabelValues("business", string(action)).Inc()
	return business, nil
}

// VerifyDocument applies the verify transition: sets the verifier pair and
// clears any rejection reason
func (u *VerificationUsecase) VerifyDocument(ctx context.Context, documentID uuid.UUID, verifier string) (*entities.Document, error) {
	if strings.TrimSpace(verifier) == "" {
		return nil, domainerrors.BadRequest("verifier identity is required")
	}

	doc, err := u.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !CanTransitionDocument(doc.VerificationStatus, DocumentActionVerify) {
		return nil, domainerrors.Conflict("cannot verify a document in status " + string(doc.VerificationStatus))
	}

	doc.VerificationStatus = entities.DocumentStatusVerified
	doc.VerifiedBy = null.StringFrom(verifier)
	doc.VerifiedAt = null.TimeFrom(time.Now())
	doc.RejectionReason = null.String{}

	if err := u.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	metrics.VerificationTransitions.WithLabelValues("document", string(DocumentActionVerify)).Inc()
	return doc, nil
}

// RejectDocument applies the reject transition. A reason is required; the
// verifier pair is cleared.
func (u *VerificationUsecase) RejectDocument(ctx context.Context, documentID uuid.UUID, reason string) (*entities.Document, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domainerrors.BadRequest("rejection reason is required")
	}

	doc, err := u.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !CanTransitionDocument(doc.VerificationStatus, DocumentActionReject) {
		return nil, domainerrors.Conflict("cannot reject a document in status " + string(doc.VerificationStatus))
	}

	doc.VerificationStatus = entities.DocumentStatusRejected
	doc.RejectionReason = null.StringFrom(reason)
	doc.VerifiedBy = null.String{}
	doc.VerifiedAt = null.Time{}

	if err := u.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	metrics.VerificationTransitions.WithLabelValues("document", string(DocumentActionReject)).Inc()
	return doc, nil
}

// MarkDocumentUnderReview flags a document for closer inspection, clearing
// both the verifier pair and any rejection reason
func (u *VerificationUsecase) MarkDocumentUnderReview(ctx context.Context, documentID uuid.UUID) (*entities.Document, error) {
	doc, err := u.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !CanTransitionDocument(doc.VerificationStatus, DocumentActionMarkUnderReview) {
		return nil, domainerrors.Conflict("cannot mark under review a document in status " + string(doc.VerificationStatus))
	}

	doc.VerificationStatus = entities.DocumentStatusUnderReview
	doc.RejectionReason = null.String{}
	doc.VerifiedBy = null.String{}
	doc.VerifiedAt = null.Time{}

	if err := u.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	metrics.VerificationTransitions.WithLabelValues("document", string(DocumentActionMarkUnderReview)).Inc()
	return doc, nil
}

// GetVerificationSummary aggregates the document set of a business
func (u *VerificationUsecase) GetVerificationSummary(ctx context.Context, businessID uuid.UUID) (*entities.VerificationSummary, error) {
	business, err := u.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	docs, err := u.documentRepo.ListByBusinessID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return BuildVerificationSummary(business, docs, time.Now()), nil
}

// ListBusinesses returns a page of businesses with their summaries
func (u *VerificationUsecase) ListBusinesses(ctx context.Context, status entities.BusinessStatus, limit, offset int) ([]*entities.BusinessListItem, int, error) {
	if status != "" {
		switch status {
		case entities.BusinessStatusPending, entities.BusinessStatusApproved,
			entities.BusinessStatusRejected, entities.BusinessStatusSuspended:
		default:
			return nil, 0, domainerrors.BadRequest("unknown verification status filter")
		}
	}

	businesses, total, err := u.businessRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	items := make([]*entities.BusinessListItem, 0, len(businesses))
	for _, business := range businesses {
		docs, err := u.documentRepo.ListByBusinessID(ctx, business.ID)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, &entities.BusinessListItem{
			Business: business,
			Summary:  BuildVerificationSummary(business, docs, now),
		})
	}
	return items, total, nil
}
