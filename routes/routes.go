package routes

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	v1 "github.com/holocron-api/api/v1"
	"github.com/holocron-api/logging"
	"github.com/holocron-api/metrics"
	"github.com/holocron-api/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Options configures the engine around the API routes.
type Options struct {
	Logger      *slog.Logger
	CORSOrigins []string
	// Gatherer backs /metrics; nil leaves the endpoint off.
	Gatherer prometheus.Gatherer
}

// NewEngine builds the gin engine with middleware, API routes and fallbacks.
func NewEngine(deps v1.Dependencies, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	deps.Logger = logger

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		middleware.Recovery(logger),
		logging.RequestLogger(logger),
		metrics.Middleware(),
		cors.New(corsConfig(opts.CORSOrigins)),
		// promhttp negotiates its own compression
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})),
	)

	SetupRoutes(router, deps, opts.Gatherer)
	return router
}

// SetupRoutes registers every route on router
func SetupRoutes(router *gin.Engine, deps v1.Dependencies, gatherer prometheus.Gatherer) {
	// Public routes
	router.GET("/", v1.HealthCheck)
	router.GET("/health", v1.HealthCheck)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))
	}

	api := router.Group(middleware.APIPrefix)
	v1.RegisterRoutes(api, deps)

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
