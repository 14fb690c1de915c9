package metrics

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

// MetricsHandler serves the process registry in the Prometheus exposition format.
type MetricsHandler struct {
	registry *prometheus.Registry
	logger   *logger.Logger
}

func NewMetricsHandler(registry *prometheus.Registry, logger *logger.Logger) *MetricsHandler {
	return &MetricsHandler{
		registry: registry,
		logger:   logger,
	}
}

// Handler returns the gin handler for /metrics. Scrapes are counted in
// promhttp_metric_handler_requests_total on the same registry.
func (h *MetricsHandler) Handler() gin.HandlerFunc {
	opts := promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
		Registry:          h.registry,
	}
	if h.logger != nil {
		opts.ErrorLog = errorLog{h.logger}
	}

	handler := promhttp.InstrumentMetricHandler(h.registry, promhttp.HandlerFor(h.registry, opts))
	return gin.WrapH(handler)
}

type errorLog struct {
	logger *logger.Logger
}

func (e errorLog) Println(v ...interface{}) {
	e.logger.Error("[MetricsHandler][Handler] gather failed", map[string]string{
		"error": fmt.Sprint(v...),
	})
}
