package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Guptsonu22/task-management-api/internal/domain"
	"github.com/Guptsonu22/task-management-api/pkg/logger"
	"github.com/Guptsonu22/task-management-api/pkg/response"
)

// writeError maps a service error to its HTTP status, surfacing the message
// verbatim. Anything outside the taxonomy is logged and hidden behind a
// generic 500.
func writeError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		response.BadRequest(c, validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		response.Conflict(c, "User with this email already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, domain.ErrInvalidRefreshToken):
		response.Unauthorized(c, "Invalid or expired refresh token")
	case errors.Is(err, domain.ErrRefreshNotFound):
		response.Unauthorized(c, "Refresh token not found")
	case errors.Is(err, domain.ErrRefreshExpired):
		response.Unauthorized(c, "Refresh token has expired")
	case errors.Is(err, domain.ErrTaskForbidden):
		response.Forbidden(c, "You do not have access to this task")
	case errors.Is(err, domain.ErrTaskNotFound):
		response.NotFound(c, "Task not found")
	case errors.Is(err, domain.ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		logger.Get().Error("Unexpected error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		response.InternalError(c)
	}
}
