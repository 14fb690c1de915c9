package http

import (
	"github.com/gin-gonic/gin"

	"github.com/dwarvesf/node-dashboard/internal/handler"
)

func loadRoutes(r *gin.Engine, h *handler.Handler) {
	api := r.Group("/api")
	{
		api.GET("/status", h.NodeHandler.Status)
		api.GET("/balance", h.NodeHandler.Balance)
		api.GET("/txs", h.NodeHandler.Txs)
		api.GET("/ping", h.NodeHandler.Ping)
	}

	health := r.Group("/api/v1/health")
	{
		health.GET("/external", h.HealthHandler.External)
	}

	// health check
	r.GET("/healthz", h.HealthHandler.Basic)
}
