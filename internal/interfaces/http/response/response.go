package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "provider-market.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response derived from the error's type: AppError
// carries its own status, domain sentinels map to their conventional codes,
// anything else is a 500
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"
	switch {
	case errors.Is(err, domainerrors.ErrNotFound), errors.Is(err, domainerrors.ErrUserNotFound),
		errors.Is(err, domainerrors.ErrTemplateNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrBadRequest):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domainerrors.ErrInvalidTransition), errors.Is(err, domainerrors.ErrAlreadyExists):
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}
