package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"souqly_backend/internal/auth"
	"souqly_backend/pkg/apperrors"
	"souqly_backend/pkg/contextkeys"
)

// AuthMiddleware validates the bearer token and stores the user id in the
// gin context for downstream handlers.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header must be 'Bearer <token>'"))
			c.Abort()
			return
		}

		userID, err := tokens.ParseToken(parts[1])
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(contextkeys.UserIDKey.String(), userID)
		c.Next()
	}
}
