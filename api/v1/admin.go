package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/dto"
	"github.com/holocron-api/middleware"
	"github.com/holocron-api/services"
)

// AdminController exposes user management to admins.
type AdminController struct {
	credentials *services.CredentialService
}

// NewAdminController creates a new admin controller
func NewAdminController(credentials *services.CredentialService) *AdminController {
	return &AdminController{credentials: credentials}
}

// RegisterRoutes registers admin routes. Callers apply AuthMiddleware and AdminMiddleware.
func (ac *AdminController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", ac.ListUsers)
		users.POST("/:id/roles", ac.AssignRole)
		users.PATCH("/:id", ac.UpdateUser)
		users.DELETE("/:id", ac.DeleteUser)
	}
}

// ListUsers lists every user with their favorites count
func (ac *AdminController) ListUsers(c *gin.Context) {
	users, err := ac.credentials.ListUsers(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	resp := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.AdminUserResponse{
			UserResponse:   dto.NewUserResponse(&users[i].User),
			FavoritesCount: users[i].FavoritesCount,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// AssignRole grants a role to a user
func (ac *AdminController) AssignRole(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperrors.InvalidInput("Role is required"))
		return
	}

	user, err := ac.credentials.AssignRole(c.Request.Context(), id, req.Role)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateUser activates or deactivates a user
func (ac *AdminController) UpdateUser(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		middleware.RespondError(c, apperrors.InvalidInput("is_active is required"))
		return
	}

	user, err := ac.credentials.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// DeleteUser removes a user and their favorites
func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	if err := ac.credentials.DeleteUser(c.Request.Context(), id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User deleted successfully"})
}
