package handler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dwarvesf/node-dashboard/internal/gateway"
	"github.com/dwarvesf/node-dashboard/internal/handler/health"
	"github.com/dwarvesf/node-dashboard/internal/handler/metrics"
	"github.com/dwarvesf/node-dashboard/internal/handler/node"
	"github.com/dwarvesf/node-dashboard/internal/monitoring"
	"github.com/dwarvesf/node-dashboard/internal/noderpc"
	"github.com/dwarvesf/node-dashboard/internal/utils/config"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

type Handler struct {
	NodeHandler    node.IHandler
	HealthHandler  health.IHealthHandler
	MetricsHandler *metrics.MetricsHandler
}

func New(appConfig *config.AppConfig, logger *logger.Logger,
	nodeRPC noderpc.INodeRPC,
	gw gateway.IGateway,
	metricsRegistry *prometheus.Registry,
	httpMetrics *monitoring.HTTPMetrics) *Handler {
	return &Handler{
		NodeHandler:    node.New(gw, httpMetrics),
		HealthHandler:  health.New(appConfig, logger, nodeRPC, nil),
		MetricsHandler: metrics.NewMetricsHandler(metricsRegistry, logger),
	}
}

// NewDashboardAdmin builds the handlers the dashboard exposes about its own
// polling loops; it has no node connection of its own.
func NewDashboardAdmin(appConfig *config.AppConfig, logger *logger.Logger,
	metricsRegistry *prometheus.Registry,
	jobStatusManager *monitoring.JobStatusManager) *Handler {
	return &Handler{
		HealthHandler:  health.New(appConfig, logger, nil, jobStatusManager),
		MetricsHandler: metrics.NewMetricsHandler(metricsRegistry, logger),
	}
}
