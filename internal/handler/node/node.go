package node

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dwarvesf/node-dashboard/internal/gateway"
	"github.com/dwarvesf/node-dashboard/internal/model"
	"github.com/dwarvesf/node-dashboard/internal/monitoring"
)

type handler struct {
	gateway gateway.IGateway
	metrics *monitoring.HTTPMetrics
}

func New(gateway gateway.IGateway, metrics *monitoring.HTTPMetrics) *handler {
	return &handler{
		gateway: gateway,
		metrics: metrics,
	}
}

// Status godoc
// @Summary Get node status
// @Description Block height, chain, sync progress, peers and disk usage of the node
// @id getStatus
// @Tags Node
// @Produce json
// @Success 200 {object} model.StatusSnapshot
// @Failure 500 {object} model.ErrorResponse
// @Router /api/status [get]
func (h *handler) Status(c *gin.Context) {
	start := time.Now()

	status, err := h.gateway.Status(c.Request.Context())
	if err != nil {
		h.record("status", "error", start)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	h.record("status", "success", start)
	c.JSON(http.StatusOK, status)
}

// Balance godoc
// @Summary Get wallet balance
// @Description Wallet balance; a node without a wallet answers a zero balance with a message
// @id getBalance
// @Tags Node
// @Produce json
// @Success 200 {object} model.BalanceSnapshot
// @Failure 500 {object} model.ErrorResponse
// @Router /api/balance [get]
func (h *handler) Balance(c *gin.Context) {
	start := time.Now()

	balance, err := h.gateway.Balance(c.Request.Context())
	if err != nil {
		h.record("balance", "error", start)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	outcome := "success"
	if balance.Message != "" {
		outcome = "degraded"
	}
	h.record("balance", outcome, start)
	c.JSON(http.StatusOK, balance)
}

// Txs godoc
// @Summary List recent wallet transactions
// @Description Most recent wallet transactions in node order; any failure yields an empty list with a message
// @id getTxs
// @Tags Node
// @Produce json
// @Param count query int false "number of transactions (1-50)" default(10)
// @Success 200 {object} model.TransactionList
// @Router /api/txs [get]
func (h *handler) Txs(c *gin.Context) {
	start := time.Now()

	count := gateway.ParseTxCount(c.Query("count"))
	txs := h.gateway.Transactions(c.Request.Context(), count)

	outcome := "success"
	if txs.Message != "" {
		outcome = "degraded"
	}
	h.record("txs", outcome, start)
	c.JSON(http.StatusOK, txs)
}

// Ping godoc
// @Summary Liveness probe
// @id ping
// @Tags Node
// @Produce json
// @Success 200 {object} model.Pong
// @Router /api/ping [get]
func (h *handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.Pong{Pong: true})
}

func (h *handler) record(operation, outcome string, start time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordGatewayOperation(operation, outcome, time.Since(start).Seconds())
}
