package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/middleware"
)

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.InvalidInput("Invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// intQuery parses an optional integer query parameter, trying each name in order.
func intQuery(c *gin.Context, fallback int, names ...string) (int, error) {
	for _, name := range names {
		raw, ok := c.GetQuery(name)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, apperrors.InvalidInput("Invalid %s %q", name, raw)
		}
		return v, nil
	}
	return fallback, nil
}

// currentUserID reads the identity AuthMiddleware stored.
func currentUserID(c *gin.Context) (uint, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, apperrors.Unauthenticated("Authentication required")
	}
	return id, nil
}
