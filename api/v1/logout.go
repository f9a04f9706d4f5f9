package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/middleware"
)

// Logout revokes the presented token until it expires
func (a *AuthController) Logout(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		middleware.RespondError(c, apperrors.Unauthenticated("Authentication required"))
		return
	}

	if err := a.tokens.Revoke(c.Request.Context(), claims); err != nil {
		middleware.RespondError(c, err)
		return
	}

	a.logger.Info("user logged out", "user_id", claims.UserID)
	c.JSON(http.StatusOK, gin.H{"msg": "Logged out successfully"})
}
