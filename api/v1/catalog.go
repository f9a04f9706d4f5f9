package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holocron-api/middleware"
	"github.com/holocron-api/models"
	"github.com/holocron-api/services"
)

// CatalogController serves the public read-only catalog.
type CatalogController struct {
	catalog *services.CatalogService
}

// NewCatalogController creates a new catalog controller
func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// RegisterRoutes registers list and get routes for each catalog kind
func (cc *CatalogController) RegisterRoutes(router *gin.RouterGroup) {
	collections := map[string]models.Kind{
		"/people":   models.KindCharacter,
		"/planets":  models.KindPlanet,
		"/vehicles": models.KindVehicle,
	}
	for path, kind := range collections {
		router.GET(path, cc.List(kind))
		router.GET(path+"/:id", cc.Get(kind))
	}
}

// List returns a page of entities. Query: page (default 1), page_size or pageSize.
func (cc *CatalogController) List(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := intQuery(c, 1, "page")
		if err != nil {
			middleware.RespondError(c, err)
			return
		}
		pageSize, err := intQuery(c, services.DefaultPageSize, "page_size", "pageSize")
		if err != nil {
			middleware.RespondError(c, err)
			return
		}

		result, err := cc.catalog.List(c.Request.Context(), kind, page, pageSize)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// Get returns one entity by ID
func (cc *CatalogController) Get(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c, "id")
		if err != nil {
			middleware.RespondError(c, err)
			return
		}

		entity, err := cc.catalog.Get(c.Request.Context(), kind, id)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entity)
	}
}
