package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/models"
)

// UserLoader loads a user with their role set.
type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// AdminMiddleware ensures the caller's role set contains admin.
// This middleware should be used after AuthMiddleware
func AdminMiddleware(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			RespondError(c, apperrors.Unauthenticated("Authentication required"))
			c.Abort()
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			if apperrors.Is(err, apperrors.CodeNotFound) {
				err = apperrors.Unauthenticated("Authentication required")
			}
			RespondError(c, err)
			c.Abort()
			return
		}

		if !user.IsActive || !user.HasRole(models.RoleAdmin) {
			RespondError(c, apperrors.Forbidden("Admin privileges required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
