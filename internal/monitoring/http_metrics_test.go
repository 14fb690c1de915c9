package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics_Register(t *testing.T) {
	metrics := NewHTTPMetrics()
	registry := prometheus.NewRegistry()
	metrics.MustRegister(registry)

	metrics.RecordGatewayOperation("balance", "degraded", 0.02)

	metricFamilies, err := registry.Gather()
	require.NoError(t, err)

	foundMetrics := make(map[string]bool)
	for _, mf := range metricFamilies {
		foundMetrics[mf.GetName()] = true
	}

	assert.True(t, foundMetrics["node_dashboard_gateway_operations_total"])
	assert.True(t, foundMetrics["node_dashboard_gateway_operation_duration_seconds"])
}

func TestHTTPMetrics_RecordGatewayOperation(t *testing.T) {
	metrics := NewHTTPMetrics()

	metrics.RecordGatewayOperation("txs", "degraded", 0.1)
	metrics.RecordGatewayOperation("txs", "degraded", 0.2)
	metrics.RecordGatewayOperation("status", "error", 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.gatewayOperations.WithLabelValues("txs", "degraded")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.gatewayOperations.WithLabelValues("status", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.gatewayDuration))
}

func TestHTTPMetricsMiddleware_BasicRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	metrics := NewHTTPMetrics()
	registry := prometheus.NewRegistry()
	metrics.MustRegister(registry)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(metrics))
	router.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requestsTotal.WithLabelValues("GET", "/api/ping", "200")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.inFlightRequests.WithLabelValues("GET", "/api/ping")))
}

func TestHTTPMetricsMiddleware_UnmatchedPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	metrics := NewHTTPMetrics()
	router := gin.New()
	router.Use(HTTPMetricsMiddleware(metrics))

	for _, path := range []string{"/index.html", "/style.css"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.requestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestHTTPMetricsMiddleware_ErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	metrics := NewHTTPMetrics()
	router := gin.New()
	router.Use(HTTPMetricsMiddleware(metrics))
	router.GET("/api/status", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "RPC HTTP 401: "})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requestsTotal.WithLabelValues("GET", "/api/status", "500")))
}
