package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DocumentType represents the kind of evidence document a business uploads
type DocumentType string

const (
	DocumentTypeBusinessLicense DocumentType = "business_license"
	DocumentTypeTaxCertificate  DocumentType = "tax_certificate"
	DocumentTypeIdentityProof   DocumentType = "identity_proof"
	DocumentTypeInsurance       DocumentType = "insurance"
	DocumentTypeOther           DocumentType = "other"
)

// DocumentStatus represents document verification status
type DocumentStatus string

const (
	DocumentStatusPending     DocumentStatus = "pending"
	DocumentStatusVerified    DocumentStatus = "verified"
	DocumentStatusRejected    DocumentStatus = "rejected"
	DocumentStatusUnderReview DocumentStatus = "under_review"
)

// Document represents one uploaded verification evidence item.
// Invariants: RejectionReason is set iff status is rejected; VerifiedBy and
// VerifiedAt are set together iff status is verified.
type Document struct {
	ID                 uuid.UUID      `json:"id"`
	BusinessID         uuid.UUID      `json:"businessId"`
	DocumentType       DocumentType   `json:"documentType"`
	VerificationStatus DocumentStatus `json:"verificationStatus"`
	RejectionReason    null.String    `json:"rejectionReason,omitempty"`
	VerifiedBy         null.String    `json:"verifiedBy,omitempty"`
	VerifiedAt         null.Time      `json:"verifiedAt,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// ValidDocumentType reports whether t is one of the enumerated document types
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypeBusinessLicense, DocumentTypeTaxCertificate,
		DocumentTypeIdentityProof, DocumentTypeInsurance, DocumentTypeOther:
		return true
	}
	return false
}
