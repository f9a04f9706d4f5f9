package dto

import (
	"time"

	"github.com/holocron-api/models"
)

// UserResponse is the public shape of a user; the password hash never leaves the server.
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse converts a user with its roles loaded.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
	}
}

// FavoritesSummary counts a user's favorites per kind.
type FavoritesSummary struct {
	TotalFavorites int64 `json:"total_favorites"`
	PeopleCount    int64 `json:"people_count"`
	PlanetsCount   int64 `json:"planets_count"`
	VehiclesCount  int64 `json:"vehicles_count"`
}

// ProfileResponse is returned by the profile endpoint.
type ProfileResponse struct {
	User             UserResponse     `json:"user"`
	FavoritesSummary FavoritesSummary `json:"favorites_summary"`
}

// AdminUserResponse is a user row in the admin listing.
type AdminUserResponse struct {
	UserResponse
	FavoritesCount int64 `json:"favorites_count"`
}

// AssignRoleRequest grants a role to a user.
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRequest toggles a user's active flag.
type UpdateUserRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
