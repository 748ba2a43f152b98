package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aibook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aibook_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	// InterpretationsTotal counts query interpretations by outcome
	// (ok, empty, no_credential, llm_error, rate_limited, parse_error).
	InterpretationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aibook_interpretations_total",
			Help: "Total number of natural-language query interpretations",
		},
		[]string{"outcome"},
	)
	// InterpretDuration is the latency of the LLM call.
	InterpretDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aibook_interpret_duration_seconds",
			Help:    "LLM interpretation latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)
	// SearchesTotal counts searches by outcome (hits, empty, error).
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aibook_searches_total",
			Help: "Total number of book searches",
		},
		[]string{"outcome"},
	)
)

// Middleware records request count and latency for every route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
