package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"provider-market.backend/internal/domain/entities"
	domainerrors "provider-market.backend/internal/domain/errors"
	"provider-market.backend/internal/usecases"
)

type approvalFixture struct {
	businessRepo *MockBusinessRepository
	documentRepo *MockDocumentRepository
	userRepo     *MockUserRepository
	templateRepo *MockTemplateRepository
	prefRepo     *MockPreferenceRepository
	logRepo      *MockNotificationLogRepository
	email        *MockEmailTransport
	sms          *MockSMSTransport
	uc           *usecases.ApprovalUsecase
}

func newApprovalFixture() *approvalFixture {
	f := &approvalFixture{
		businessRepo: new(MockBusinessRepository),
		documentRepo: new(MockDocumentRepository),
		userRepo:     new(MockUserRepository),
		templateRepo: new(MockTemplateRepository),
		prefRepo:     new(MockPreferenceRepository),
		logRepo:      new(MockNotificationLogRepository),
		email:        new(MockEmailTransport),
		sms:          new(MockSMSTransport),
	}
	verification := usecases.NewVerificationUsecase(f.businessRepo, f.documentRepo)
	notification := usecases.NewNotificationUsecase(f.userRepo, f.businessRepo, f.templateRepo, f.prefRepo, f.logRepo, f.email, f.sms)
	f.uc = usecases.NewApprovalUsecase(verification, notification, f.businessRepo, f.documentRepo, f.userRepo)
	return f
}

func (f *approvalFixture) expectNotification(userID uuid.UUID, key entities.NotificationType) {
	f.userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{ID: userID, Email: "owner@market.test"}, nil)
	f.prefRepo.On("GetByUserID", mock.Anything, userID).Return(nil, nil)
	f.businessRepo.On("GetByUserID", mock.Anything, userID).Return(nil, domainerrors.ErrNotFound)
	f.templateRepo.On("GetActiveByKey", mock.Anything, key).Return(&entities.NotificationTemplate{
		Key:           key,
		EmailSubject:  "Update for {{businessName}}",
		EmailBodyHTML: "<p>Status: {{status}}</p>",
		IsActive:      true,
	}, nil)
	f.email.On("Send", mock.Anything, "owner@market.test", mock.Anything, mock.Anything).Return("ses-1", nil)
	f.logRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
}

func TestApplyBusiness(t *testing.T) {
	f := newApprovalFixture()
	userID := uuid.New()

	f.userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{ID: userID, Email: "owner@market.test", Name: "Dana"}, nil)
	f.businessRepo.On("GetByUserID", mock.Anything, userID).Return(nil, domainerrors.ErrNotFound)
	f.businessRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *entities.Business) bool {
		return b.VerificationStatus == entities.BusinessStatusPending &&
			b.DisplayName == "Acme Plumbing" &&
			b.UserID == userID
	})).Return(nil)
	f.prefRepo.On("GetByUserID", mock.Anything, userID).Return(nil, nil)
	f.templateRepo.On("GetActiveByKey", mock.Anything, entities.NotificationTypeWelcome).Return(&entities.NotificationTemplate{
		Key:           entities.NotificationTypeWelcome,
		EmailSubject:  "Welcome {{name}}",
		EmailBodyHTML: "<p>Welcome aboard, {{businessName}}!</p>",
		IsActive:      true,
	}, nil)
	f.email.On("Send", mock.Anything, "owner@market.test", "Welcome Dana", "<p>Welcome aboard, Acme Plumbing!</p>").Return("ses-1", nil)
	f.logRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.uc.ApplyBusiness(context.Background(), userID, &entities.BusinessApplyInput{
		DisplayName:  "Acme Plumbing",
		ContactEmail: "owner@acme.test",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.BusinessStatusPending, result.Business.VerificationStatus)
	require.NotNil(t, result.Notification)
	require.Len(t, result.Notification.Channels, 1)
	assert.True(t, result.Notification.Channels[0].Sent)
	f.businessRepo.AssertExpectations(t)
	f.email.AssertExpectations(t)
}

func TestApplyBusinessAlreadyExists(t *testing.T) {
	f := newApprovalFixture()
	userID := uuid.New()

	f.userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{ID: userID}, nil)
	f.businessRepo.On("GetByUserID", mock.Anything, userID).Return(pendingBusiness(), nil)

	_, err := f.uc.ApplyBusiness(context.Background(), userID, &entities.BusinessApplyInput{
		DisplayName:  "Acme Plumbing",
		ContactEmail: "owner@acme.test",
	})
	require.Error(t, err)
	f.businessRepo.AssertNotCalled(t, "Create")
}

func TestApproveBusinessSendsVerificationNotification(t *testing.T) {
	f := newApprovalFixture()
	business := pendingBusiness()

	f.businessRepo.On("GetByID", mock.Anything, business.ID).Return(business, nil)
	f.documentRepo.On("ListByBusinessID", mock.Anything, business.ID).Return([]*entities.Document{}, nil)
	f.businessRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.expectNotification(business.UserID, entities.NotificationTypeBusinessVerification)

	result, err := f.uc.ApproveBusiness(context.Background(), business.ID, "admin@market.test")
	require.NoError(t, err)
	assert.Equal(t, entities.BusinessStatusApproved, result.Business.VerificationStatus)
	require.NotNil(t, result.Notification)
	f.email.AssertExpectations(t)
}

func TestApproveBusinessDecisionSurvivesNotificationFailure(t *testing.T) {
	f := newApprovalFixture()
	business := pendingBusiness()

	f.businessRepo.On("GetByID", mock.Anything, business.ID).Return(business, nil)
	f.documentRepo.On("ListByBusinessID", mock.Anything, business.ID).Return([]*entities.Document{}, nil)
	f.businessRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("GetByID", mock.Anything, business.UserID).Return(&entities.User{ID: business.UserID, Email: "owner@market.test"}, nil)
	f.prefRepo.On("GetByUserID", mock.Anything, business.UserID).Return(nil, nil)
	f.templateRepo.On("GetActiveByKey", mock.Anything, entities.NotificationTypeBusinessVerification).
		Return(nil, domainerrors.ErrTemplateNotFound)

	result, err := f.uc.ApproveBusiness(context.Background(), business.ID, "admin@market.test")
	require.NoError(t, err, "notification failure never rolls back the decision")
	assert.Equal(t, entities.BusinessStatusApproved, result.Business.VerificationStatus)
	assert.Nil(t, result.Notification)
}

func TestApproveBusinessTransportFailureStillApproves(t *testing.T) {
	f := newApprovalFixture()
	business := pendingBusiness()

	f.businessRepo.On("GetByID", mock.Anything, business.ID).Return(business, nil)
	f.documentRepo.On("ListByBusinessID", mock.Anything, business.ID).Return([]*entities.Document{}, nil)
	f.businessRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("GetByID", mock.Anything, business.UserID).Return(&entities.User{ID: business.UserID, Email: "owner@market.test"}, nil)
	f.prefRepo.On("GetByUserID", mock.Anything, business.UserID).Return(nil, nil)
	f.businessRepo.On("GetByUserID", mock.Anything, business.UserID).Return(nil, domainerrors.ErrNotFound)
	f.templateRepo.On("GetActiveByKey", mock.Anything, entities.NotificationTypeBusinessVerification).Return(&entities.NotificationTemplate{
		Key:           entities.NotificationTypeBusinessVerification,
		EmailSubject:  "s",
		EmailBodyHTML: "b",
		IsActive:      true,
	}, nil)
	f.email.On("Send", mock.Anything, "owner@market.test", mock.Anything, mock.Anything).Return("", errors.New("ses down"))
	f.logRepo.On("Create", mock.Anything, mock.MatchedBy(func(row *entities.NotificationLog) bool {
		return row.Status == entities.NotificationStatusFailed
	})).Return(nil)

	result, err := f.uc.ApproveBusiness(context.Background(), business.ID, "admin@market.test")
	require.NoError(t, err)
	assert.Equal(t, entities.BusinessStatusApproved, result.Business.VerificationStatus)
	require.NotNil(t, result.Notification)
	require.Len(t, result.Notification.Channels, 1)
	assert.False(t, result.Notification.Channels[0].Sent)
}

func TestRejectBusinessIncludesNotes(t *testing.T) {
	f := newApprovalFixture()
	business := pendingBusiness()

	f.businessRepo.On("GetByID", mock.Anything, business.ID).Return(business, nil)
	f.businessRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("GetByID", mock.Anything, business.UserID).Return(&entities.User{ID: business.UserID, Email: "owner@market.test"}, nil)
	f.prefRepo.On("GetByUserID", mock.Anything, business.UserID).Return(nil, nil)
	f.businessRepo.On("GetByUserID", mock.Anything, business.UserID).Return(nil, domainerrors.ErrNotFound)
	f.templateRepo.On("GetActiveByKey", mock.Anything, entities.NotificationTypeBusinessVerification).Return(&entities.NotificationTemplate{
		Key:           entities.NotificationTypeBusinessVerification,
		EmailSubject:  "Update for {{businessName}}",
		EmailBodyHTML: "<p>{{status}}: {{notes}}</p>",
		IsActive:      true,
	}, nil)
	f.email.On("Send", mock.Anything, "owner@market.test", mock.Anything, "<p>rejected: license expired</p>").Return("ses-1", nil)
	f.logRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.uc.RejectBusiness(context.Background(), business.ID, "license expired")
	require.NoError(t, err)
	assert.Equal(t, entities.BusinessStatusRejected, result.Business.VerificationStatus)
	f.email.AssertExpectations(t)
}

func TestResetBusinessNoNotification(t *testing.T) {
	f := newApprovalFixture()
	business := pendingBusiness()
	business.VerificationStatus = entities.BusinessStatusRejected

	f.businessRepo.On("GetByID", mock.Anything, business.ID).Return(business, nil)
	f.businessRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	result, err := f.uc.ResetBusiness(context.Background(), business.ID)
	require.NoError(t, err)
	assert.Nil(t, result.Notification)
	f.email.AssertNotCalled(t, "Send")
	f.userRepo.AssertNotCalled(t, "GetByID")
}

func TestUploadDocument(t *testing.T) {
	f := newApprovalFixture()
	business := pendingBusiness()

	f.businessRepo.On("GetByID", mock.Anything, business.ID).Return(business, nil)
	f.documentRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *entities.Document) bool {
		return d.BusinessID == business.ID &&
			d.VerificationStatus == entities.DocumentStatusPending &&
			d.DocumentType == entities.DocumentTypeInsurance
	})).Return(nil)

	doc, err := f.uc.UploadDocument(context.Background(), business.ID, entities.DocumentTypeInsurance)
	require.NoError(t, err)
	assert.Equal(t, entities.DocumentStatusPending, doc.VerificationStatus)
}

func TestUploadDocumentInvalidType(t *testing.T) {
	f := newApprovalFixture()
	_, err := f.uc.UploadDocument(context.Background(), uuid.New(), entities.DocumentType("selfie"))
	require.Error(t, err)
	f.documentRepo.AssertNotCalled(t, "Create")
}

func TestVerifyDocumentNotifiesOwner(t *testing.T) {
	f := newApprovalFixture()
	business := pendingBusiness()
	doc := &entities.Document{
		ID:                 uuid.New(),
		BusinessID:         business.ID,
		DocumentType:       entities.DocumentTypeBusinessLicense,
		VerificationStatus: entities.DocumentStatusPending,
	}

	f.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	f.documentRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.businessRepo.On("GetByID", mock.Anything, business.ID).Return(business, nil)
	f.expectNotification(business.UserID, entities.NotificationTypeBusinessVerification)

	result, err := f.uc.VerifyDocument(context.Background(), doc.ID, "reviewer@market.test")
	require.NoError(t, err)
	assert.Equal(t, entities.DocumentStatusVerified, result.Document.VerificationStatus)
	require.NotNil(t, result.Notification)
	f.email.AssertExpectations(t)
}

func TestFlagDocumentUnderReviewNoNotification(t *testing.T) {
	f := newApprovalFixture()
	doc := &entities.Document{
		ID:                 uuid.New(),
		BusinessID:         uuid.New(),
		VerificationStatus: entities.DocumentStatusPending,
	}

	f.documentRepo.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	f.documentRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	result, err := f.uc.FlagDocumentUnderReview(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Nil(t, result.Notification)
	f.email.AssertNotCalled(t, "Send")
}
