package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics contains all metrics for HTTP request monitoring
type HTTPMetrics struct {
	requestDuration  *prometheus.HistogramVec
	requestsTotal    *prometheus.CounterVec
	responseSize     *prometheus.HistogramVec
	inFlightRequests *prometheus.GaugeVec

	// gateway outcomes, including degraded answers that are still 200s
	gatewayOperations *prometheus.CounterVec
	gatewayDuration   *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "node_dashboard_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"method", "path", "status"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "node_dashboard_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		responseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "node_dashboard_http_response_size_bytes",
				Help:    "Size of HTTP responses in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 2, 8), // 100B to 12KB
			},
			[]string{"method", "path", "status"},
		),

		inFlightRequests: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "node_dashboard_http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
			[]string{"method", "path"},
		),

		gatewayOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "node_dashboard_gateway_operations_total",
				Help: "Total number of gateway operations by outcome",
			},
			[]string{"operation", "status"},
		),

		gatewayDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "node_dashboard_gateway_operation_duration_seconds",
				Help:    "Duration of gateway operations in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"operation", "status"},
		),
	}
}

// MustRegister registers all HTTP metrics with the provided registry
func (m *HTTPMetrics) MustRegister(registry *prometheus.Registry) {
	registry.MustRegister(
		m.requestDuration,
		m.requestsTotal,
		m.responseSize,
		m.inFlightRequests,
		m.gatewayOperations,
		m.gatewayDuration,
	)
}

// RecordGatewayOperation records one gateway call; status is success,
// degraded or error.
func (m *HTTPMetrics) RecordGatewayOperation(operation, status string, duration float64) {
	m.gatewayOperations.WithLabelValues(operation, status).Inc()
	if duration > 0 {
		m.gatewayDuration.WithLabelValues(operation, status).Observe(duration)
	}
}

// HTTPMetricsMiddleware creates a Gin middleware for HTTP metrics collection
func HTTPMetricsMiddleware(metrics *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		method := c.Request.Method

		// unmatched routes (static files, 404s) have no full path
		if path == "" {
			path = "unmatched"
		}

		metrics.inFlightRequests.WithLabelValues(method, path).Inc()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		responseSize := float64(c.Writer.Size())

		metrics.requestDuration.WithLabelValues(method, path, status).Observe(duration)
		metrics.requestsTotal.WithLabelValues(method, path, status).Inc()
		if responseSize > 0 {
			metrics.responseSize.WithLabelValues(method, path, status).Observe(responseSize)
		}

		metrics.inFlightRequests.WithLabelValues(method, path).Dec()
	}
}
