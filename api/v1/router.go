package v1

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/holocron-api/middleware"
	"github.com/holocron-api/services"
)

// Dependencies are the services the handlers call into.
type Dependencies struct {
	Credentials *services.CredentialService
	Tokens      *services.TokenService
	Catalog     *services.CatalogService
	Favorites   *services.FavoriteService
	Logger      *slog.Logger
}

// RegisterRoutes registers all v1 API routes on the /api group
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	requireAuth := middleware.AuthMiddleware(deps.Tokens)

	// Auth endpoints, reachable both at /api/<op> and /api/auth/<op>
	authController := NewAuthController(deps.Credentials, deps.Tokens, deps.Favorites, deps.Logger)
	authController.RegisterRoutes(router, requireAuth)
	authController.RegisterRoutes(router.Group("/auth"), requireAuth)

	// Catalog endpoints are public
	NewCatalogController(deps.Catalog).RegisterRoutes(router)

	// Favorite endpoints - protected by AuthMiddleware
	protected := router.Group("")
	protected.Use(requireAuth)
	NewFavoriteController(deps.Favorites).RegisterRoutes(protected)

	// Admin endpoints - protected by AdminMiddleware
	adminGroup := router.Group("/admin")
	adminGroup.Use(requireAuth, middleware.AdminMiddleware(deps.Credentials))
	NewAdminController(deps.Credentials).RegisterRoutes(adminGroup)
}
