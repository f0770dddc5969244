package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"provider-market.backend/internal/domain/entities"
	domainerrors "provider-market.backend/internal/domain/errors"
	"provider-market.backend/internal/interfaces/http/response"
	"provider-market.backend/internal/usecases"
	"provider-market.backend/pkg/utils"
)

// BusinessHandler handles provider business endpoints
type BusinessHandler struct {
	approvalUsecase     *usecases.ApprovalUsecase
	verificationUsecase *usecases.VerificationUsecase
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(approvalUsecase *usecases.ApprovalUsecase, verificationUsecase *usecases.VerificationUsecase) *BusinessHandler {
	return &BusinessHandler{
		approvalUsecase:     approvalUsecase,
		verificationUsecase: verificationUsecase,
	}
}

// Apply handles a provider business application
// POST /api/v1/businesses/apply
func (h *BusinessHandler) Apply(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var input entities.BusinessApplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.approvalUsecase.ApplyBusiness(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// List returns a page of businesses, optionally filtered by status
// GET /api/v1/admin/businesses
func (h *BusinessHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)
	status := entities.BusinessStatus(c.Query("status"))

	items, total, err := h.verificationUsecase.ListBusinesses(c.Request.Context(), status, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"businesses": items,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// GetSummary returns the verification summary for one business
// GET /api/v1/admin/businesses/:id/summary
func (h *BusinessHandler) GetSummary(c *gin.Context) {
	businessID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	summary, err := h.verificationUsecase.GetVerificationSummary(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// Approve approves a business
// POST /api/v1/admin/businesses/:id/approve
func (h *BusinessHandler) Approve(c *gin.Context) {
	businessID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var body struct {
		ApprovedBy string `json:"approvedBy" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.approvalUsecase.ApproveBusiness(c.Request.Context(), businessID, body.ApprovedBy)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Reject rejects a business with notes
// POST /api/v1/admin/businesses/:id/reject
func (h *BusinessHandler) Reject(c *gin.Context) {
	h.decideWithNotes(c, h.approvalUsecase.RejectBusiness)
}

// Suspend suspends a business with notes
// POST /api/v1/admin/businesses/:id/suspend
func (h *BusinessHandler) Suspend(c *gin.Context) {
	h.decideWithNotes(c, h.approvalUsecase.SuspendBusiness)
}

// Reset moves a business back to pending review
// POST /api/v1/admin/businesses/:id/reset
func (h *BusinessHandler) Reset(c *gin.Context) {
	businessID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.approvalUsecase.ResetBusiness(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *BusinessHandler) decideWithNotes(c *gin.Context, decide func(ctx context.Context, id uuid.UUID, notes string) (*usecases.ApprovalResult, error)) {
	businessID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Notes string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := decide(c.Request.Context(), businessID, body.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
