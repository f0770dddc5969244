package handlers

import (
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

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationUsecase *usecases.NotificationUsecase
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationUsecase *usecases.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notificationUsecase: notificationUsecase}
}

// DispatchRequest is the manual dispatch payload
type DispatchRequest struct {
	UserID           uuid.UUID              `json:"userId" binding:"required"`
	NotificationType string                 `json:"notificationType" binding:"required"`
	Variables        map[string]interface{} `json:"variables"`
	Metadata         map[string]interface{} `json:"metadata"`
}

// Dispatch sends one notification
// POST /api/v1/admin/notifications/dispatch
func (h *NotificationHandler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.notificationUsecase.Dispatch(c.Request.Context(), req.UserID, entities.NotificationType(req.NotificationType), req.Variables, req.Metadata)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dispatchView(result))
}

// ListLogs returns the delivery audit trail for a user
// GET /api/v1/users/:id/notifications
func (h *NotificationHandler) ListLogs(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	logs, total, err := h.notificationUsecase.ListLogs(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": logs,
		"pagination":    utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// ListTemplates returns all notification templates
// GET /api/v1/admin/notification-templates
func (h *NotificationHandler) ListTemplates(c *gin.Context) {
	templates, err := h.notificationUsecase.ListTemplates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"templates": templates})
}

type channelOutcomeView struct {
	Channel    string `json:"channel"`
	Recipient  string `json:"recipient"`
	Sent       bool   `json:"sent"`
	ExternalID string `json:"externalId,omitempty"`
	Error      string `json:"error,omitempty"`
}

type dispatchResultView struct {
	Suppressed bool                 `json:"suppressed"`
	Channels   []channelOutcomeView `json:"channels"`
}

func dispatchView(result *usecases.DispatchResult) dispatchResultView {
	view := dispatchResultView{
		Suppressed: result.Suppressed,
		Channels:   make([]channelOutcomeView, 0, len(result.Channels)),
	}
	for _, outcome := range result.Channels {
		item := channelOutcomeView{
			Channel:    string(outcome.Channel),
			Recipient:  outcome.Recipient,
			Sent:       outcome.Sent,
			ExternalID: outcome.ExternalID,
		}
		if outcome.Err != nil {
			item.Error = outcome.Err.Error()
		}
		view.Channels = append(view.Channels, item)
	}
	return view
}
