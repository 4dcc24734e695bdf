package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "code"},
	)

	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "code"},
	)

	requestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portal_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	searchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_search_queries_total",
			Help: "Total number of catalog searches, labeled by result presence",
		},
		[]string{"outcome"},
	)

	errorRate = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_errors_total",
			Help: "Total number of HTTP 5xx responses",
		},
		[]string{"method", "path", "code"},
	)
)

// ObserveSearch records a search outcome ("hit" or "zero_results") for
// dashboarding which queries find nothing.
func ObserveSearch(resultCount int) {
	outcome := "hit"
	if resultCount == 0 {
		outcome = "zero_results"
	}
	searchQueriesTotal.WithLabelValues(outcome).Inc()
}

// shouldCollectMetrics excludes infrastructure endpoints to keep cardinality
// down; probe traffic has no business value.
func shouldCollectMetrics(path string) bool {
	infrastructurePaths := []string{
		"/health",
		"/ready",
		"/metrics",
	}

	for _, skipPath := range infrastructurePaths {
		if strings.HasPrefix(path, skipPath) {
			return false
		}
	}

	return true
}

// PrometheusMiddleware records per-request metrics using the route template
// (e.g. /api/services/:id) to avoid per-id label cardinality.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		if !shouldCollectMetrics(path) {
			c.Next()
			return
		}

		requestsInFlight.WithLabelValues(method, path).Inc()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())

		requestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		requestTotal.WithLabelValues(method, path, statusCode).Inc()

		if c.Writer.Status() >= 500 {
			errorRate.WithLabelValues(method, path, statusCode).Inc()
		}

		requestsInFlight.WithLabelValues(method, path).Dec()
	}
}
