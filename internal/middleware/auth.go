package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Guptsonu22/task-management-api/internal/token"
	"github.com/Guptsonu22/task-management-api/pkg/response"
)

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey = "user_id"

	bearerPrefix = "Bearer "
)

// Auth validates the bearer access token and stores the user ID in the
// request context. Requests with a missing, malformed, expired, or otherwise
// invalid token are rejected before they reach any handler.
func Auth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
			response.Unauthorized(c, "Access token is required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		if tokenString == "" {
			response.Unauthorized(c, "Access token is required")
			c.Abort()
			return
		}

		userID, err := tokens.VerifyAccess(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				response.Unauthorized(c, "Access token has expired")
			} else {
				response.Unauthorized(c, "Invalid access token")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the request context.
func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}
