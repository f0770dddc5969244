package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"provider-market.backend/internal/domain/entities"
	domainerrors "provider-market.backend/internal/domain/errors"
	"provider-market.backend/internal/interfaces/http/response"
	"provider-market.backend/internal/usecases"
)

// DocumentHandler handles verification document endpoints
type DocumentHandler struct {
	approvalUsecase *usecases.ApprovalUsecase
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(approvalUsecase *usecases.ApprovalUsecase) *DocumentHandler {
	return &DocumentHandler{approvalUsecase: approvalUsecase}
}

// Upload registers a new evidence document for a business
// POST /api/v1/businesses/:id/documents
func (h *DocumentHandler) Upload(c *gin.Context) {
	businessID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var body struct {
		DocumentType string `json:"documentType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	doc, err := h.approvalUsecase.UploadDocument(c.Request.Context(), businessID, entities.DocumentType(body.DocumentType))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, doc)
}

// Verify marks a document verified
// POST /api/v1/admin/documents/:id/verify
func (h *DocumentHandler) Verify(c *gin.Context) {
	documentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var body struct {
		VerifiedBy string `json:"verifiedBy" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.approvalUsecase.VerifyDocument(c.Request.Context(), documentID, body.VerifiedBy)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Reject marks a document rejected with a reason
// POST /api/v1/admin/documents/:id/reject
func (h *DocumentHandler) Reject(c *gin.Context) {
	documentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.approvalUsecase.RejectDocument(c.Request.Context(), documentID, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// MarkUnderReview flags a document for closer inspection
// POST /api/v1/admin/documents/:id/under-review
func (h *DocumentHandler) MarkUnderReview(c *gin.Context) {
	documentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.approvalUsecase.FlagDocumentUnderReview(c.Request.Context(), documentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
