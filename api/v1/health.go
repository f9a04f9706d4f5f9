package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by the health endpoint; overridden at build time with -ldflags.
var Version = "1.0.0"

// HealthCheck handles the health check endpoint
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "holocron-api",
		"version": Version,
	})
}
