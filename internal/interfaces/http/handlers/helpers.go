package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "provider-market.backend/internal/domain/errors"
	"provider-market.backend/internal/interfaces/http/response"
)

// pathUUID parses a uuid path parameter, writing a 400 on failure
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid "+name+" parameter"))
		return uuid.Nil, false
	}
	return id, true
}

// requestUserID reads the caller identity set by the upstream gateway in the
// X-User-ID header
func requestUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		response.Error(c, domainerrors.BadRequest("missing X-User-ID header"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid X-User-ID header"))
		return uuid.Nil, false
	}
	return id, true
}
