package health

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker"

	"github.com/dwarvesf/node-dashboard/internal/monitoring"
	"github.com/dwarvesf/node-dashboard/internal/noderpc"
	"github.com/dwarvesf/node-dashboard/internal/utils/config"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

// breakerState is satisfied by node clients guarded by a circuit breaker.
type breakerState interface {
	State() gobreaker.State
}

// HealthHandler implements IHealthHandler interface
type HealthHandler struct {
	config           *config.AppConfig
	logger           *logger.Logger
	node             noderpc.INodeRPC
	jobStatusManager *monitoring.JobStatusManager
	timeouts         monitoring.TimeoutConfig
}

// New creates a new health handler instance. node is nil in processes that
// do not talk to the node; jobStatusManager is nil where nothing polls.
func New(config *config.AppConfig, logger *logger.Logger, node noderpc.INodeRPC, jobStatusManager *monitoring.JobStatusManager) IHealthHandler {
	return &HealthHandler{
		config:           config,
		logger:           logger,
		node:             node,
		jobStatusManager: jobStatusManager,
		timeouts:         monitoring.DefaultTimeoutConfig,
	}
}

// Basic handles the basic health check endpoint (/healthz)
// @Summary Basic health check
// @Description Returns basic system availability status
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} BasicHealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Basic(c *gin.Context) {
	response := BasicHealthResponse{
		Message: "ok",
	}
	c.JSON(http.StatusOK, response)
}

// External handles the upstream node health check endpoint
// @Summary Node RPC health check
// @Description Validates connectivity to the upstream node
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /api/v1/health/external [get]
func (h *HealthHandler) External(c *gin.Context) {
	start := time.Now()

	response := HealthResponse{
		Timestamp: start,
		Checks:    make(map[string]HealthCheck),
	}

	ctx := context.Background()
	if c.Request != nil {
		ctx = c.Request.Context()
	}

	nodeCheck := h.checkNodeRPC(ctx)
	response.Checks[monitoring.NodeRPCAPIName] = nodeCheck
	response.DurationMs = time.Since(start).Milliseconds()

	if nodeCheck.Status == "healthy" {
		response.Status = "healthy"
		c.JSON(http.StatusOK, response)
	} else {
		response.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, response)
	}
}

// checkNodeRPC asks the node for its block count, the cheapest call it has
func (h *HealthHandler) checkNodeRPC(ctx context.Context) HealthCheck {
	start := time.Now()

	check := HealthCheck{
		Metadata: make(map[string]interface{}),
	}

	if h.node == nil {
		check.Status = "unhealthy"
		check.Error = "node rpc not available"
		check.Latency = time.Since(start).Milliseconds()
		return check
	}

	if h.config != nil {
		if u, err := url.Parse(h.config.Node.RPCURL); err == nil {
			check.Metadata["endpoint"] = u.Host
		}
	}
	if cb, ok := h.node.(breakerState); ok {
		check.Metadata["circuit_breaker"] = cb.State().String()
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.timeouts.HealthCheckTimeout)
	defer cancel()

	blocks, err := h.node.GetBlockCount(checkCtx)
	check.Latency = time.Since(start).Milliseconds()
	if err != nil {
		check.Status = "unhealthy"
		if checkCtx.Err() == context.DeadlineExceeded {
			check.Error = "timeout"
		} else {
			check.Error = err.Error()
		}

		h.logger.Warn("[HealthHandler][checkNodeRPC]", map[string]string{
			"error": check.Error,
		})
		return check
	}

	check.Status = "healthy"
	check.Metadata["blocks"] = blocks
	return check
}
