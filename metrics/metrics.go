// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded by FavoriteChanges.
const (
	OutcomeCreated = "created"
	OutcomeRemoved = "removed"
)

// HTTPRequests counts handled requests by route template, method and status.
var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "holocron_http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"route", "method", "status"},
)

// HTTPDuration is the request latency histogram.
var HTTPDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "holocron_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// FavoriteChanges counts favorites created or removed, by kind.
var FavoriteChanges = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "holocron_favorite_changes_total",
		Help: "Total number of favorites created or removed",
	},
	[]string{"kind", "outcome"},
)

// LoginFailures counts rejected logins.
var LoginFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "holocron_login_failures_total",
		Help: "Total number of rejected login attempts",
	},
)

// RegisterMetrics registers the collectors with reg. Panics on duplicate registration.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests, HTTPDuration, FavoriteChanges, LoginFailures)
}

// RecordFavoriteChange increments FavoriteChanges.
func RecordFavoriteChange(kind, outcome string) {
	FavoriteChanges.WithLabelValues(kind, outcome).Inc()
}

// RecordLoginFailure increments LoginFailures.
func RecordLoginFailure() {
	LoginFailures.Inc()
}

// Middleware records request count and latency per matched route.
// Unmatched paths are all recorded under the "unmatched" route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		HTTPRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
