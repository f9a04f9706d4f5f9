package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/dto"
	"github.com/holocron-api/metrics"
	"github.com/holocron-api/middleware"
	"github.com/holocron-api/models"
	"github.com/holocron-api/services"
)

// FavoriteController handles the authenticated favorites endpoints.
type FavoriteController struct {
	favorites *services.FavoriteService
}

// NewFavoriteController creates a new favorite controller
func NewFavoriteController(favorites *services.FavoriteService) *FavoriteController {
	return &FavoriteController{favorites: favorites}
}

// RegisterRoutes registers favorite routes. Callers apply AuthMiddleware.
func (fc *FavoriteController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users/favorites", fc.ListFavorites)
	router.POST("/favorite/:kind/:id", fc.ToggleFavorite)

	favorites := router.Group("/favorites")
	{
		favorites.GET("", fc.ListFavorites)
		favorites.POST("", fc.AddFavorite)
		favorites.GET("/:id", fc.GetFavorite)
		favorites.DELETE("/:id", fc.DeleteFavorite)
	}
}

// ListFavorites returns the caller's favorites with their entities embedded
func (fc *FavoriteController) ListFavorites(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	favorites, err := fc.favorites.ListForUser(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

// ToggleFavorite creates the favorite (201) or removes it (200) depending on
// whether it already exists.
func (fc *FavoriteController) ToggleFavorite(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	kind, ok := models.ParseKind(c.Param("kind"))
	if !ok {
		middleware.RespondError(c, apperrors.InvalidInput("Unknown favorite kind %q", c.Param("kind")))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	result, err := fc.favorites.Toggle(c.Request.Context(), userID, models.Target{Kind: kind, ID: id})
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	if !result.Created {
		metrics.RecordFavoriteChange(string(kind), metrics.OutcomeRemoved)
		c.JSON(http.StatusOK, dto.ToggleResponse{Msg: "Favorite removed", Favorited: false})
		return
	}

	resp, err := dto.NewFavoriteResponse(result.Favorite)
	if err != nil {
		middleware.RespondError(c, apperrors.Internal(err, "corrupt favorite row"))
		return
	}
	metrics.RecordFavoriteChange(string(kind), metrics.OutcomeCreated)
	c.JSON(http.StatusCreated, dto.ToggleResponse{Msg: "Favorite added", Favorited: true, Favorite: &resp})
}

// AddFavorite creates a favorite from a body naming exactly one target
func (fc *FavoriteController) AddFavorite(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	var req dto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperrors.InvalidInput("Invalid request body"))
		return
	}
	target, err := req.Target()
	if err != nil {
		middleware.RespondError(c, apperrors.InvalidInput("%s", err.Error()))
		return
	}

	favorite, err := fc.favorites.Add(c.Request.Context(), userID, target)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	resp, err := dto.NewFavoriteResponse(favorite)
	if err != nil {
		middleware.RespondError(c, apperrors.Internal(err, "corrupt favorite row"))
		return
	}
	metrics.RecordFavoriteChange(string(target.Kind), metrics.OutcomeCreated)
	c.JSON(http.StatusCreated, resp)
}

// GetFavorite returns one of the caller's favorites
func (fc *FavoriteController) GetFavorite(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	favorite, err := fc.favorites.Get(c.Request.Context(), userID, id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorite)
}

// DeleteFavorite removes one of the caller's favorites. Someone else's
// favorite answers 404, same as a missing one.
func (fc *FavoriteController) DeleteFavorite(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	if err := fc.favorites.Remove(c.Request.Context(), userID, id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Favorite deleted successfully"})
}
