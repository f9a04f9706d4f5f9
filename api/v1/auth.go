package v1

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/dto"
	"github.com/holocron-api/metrics"
	"github.com/holocron-api/middleware"
	"github.com/holocron-api/services"
)

// AuthController handles registration, login, logout and the profile.
type AuthController struct {
	credentials *services.CredentialService
	tokens      *services.TokenService
	favorites   *services.FavoriteService
	logger      *slog.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(credentials *services.CredentialService, tokens *services.TokenService, favorites *services.FavoriteService, logger *slog.Logger) *AuthController {
	return &AuthController{
		credentials: credentials,
		tokens:      tokens,
		favorites:   favorites,
		logger:      logger,
	}
}

// RegisterRoutes registers auth routes; requireAuth guards logout and profile.
func (a *AuthController) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	router.POST("/register", a.Register)
	router.POST("/login", a.Login)
	router.POST("/logout", requireAuth, a.Logout)
	router.GET("/me", requireAuth, a.Profile)
	router.GET("/profile", requireAuth, a.Profile)
}

// Register handles user registration
func (a *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperrors.InvalidInput("A valid email and a password are required"))
		return
	}

	user, err := a.credentials.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":  "User registered successfully",
		"user": dto.NewUserResponse(user),
	})
}

// Login handles user authentication
func (a *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperrors.InvalidInput("Email and password are required"))
		return
	}

	user, err := a.credentials.Verify(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeAuthFailure) {
			metrics.RecordLoginFailure()
		}
		middleware.RespondError(c, err)
		return
	}

	token, expiresAt, err := a.tokens.Issue(user)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     token,
		User:      dto.NewUserResponse(user),
		ExpiresAt: expiresAt,
	})
}

// Profile returns the current user and a summary of their favorites
func (a *AuthController) Profile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	user, err := a.credentials.GetUser(c.Request.Context(), userID)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			err = apperrors.Unauthenticated("User no longer exists")
		}
		middleware.RespondError(c, err)
		return
	}

	summary, err := a.favorites.Summary(c.Request.Context(), user.ID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		User:             dto.NewUserResponse(user),
		FavoritesSummary: summary,
	})
}
