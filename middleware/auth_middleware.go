package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/dto"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID = "userId"
	ContextClaims = "claims"
)

// TokenValidator turns a bearer token into claims.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*dto.TokenClaims, error)
}

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header
// and stores the caller's identity in the gin context.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			RespondError(c, apperrors.Unauthenticated("Missing authorization header"))
			c.Abort()
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			RespondError(c, apperrors.Unauthenticated("Authorization header must be 'Bearer <token>'"))
			c.Abort()
			return
		}

		claims, err := tokens.Validate(c.Request.Context(), token)
		if err != nil {
			RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// UserID returns the authenticated user's ID.
func UserID(c *gin.Context) (uint, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	userID, ok := id.(uint)
	return userID, ok
}

// Claims returns the validated token claims.
func Claims(c *gin.Context) (*dto.TokenClaims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*dto.TokenClaims)
	return claims, ok
}
