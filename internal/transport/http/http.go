package http

import (
	nethttp "net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware

	_ "github.com/dwarvesf/node-dashboard/docs"
	"github.com/dwarvesf/node-dashboard/internal/handler"
	"github.com/dwarvesf/node-dashboard/internal/monitoring"
	"github.com/dwarvesf/node-dashboard/internal/utils/config"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

func setupCORS(r *gin.Engine, cfg *config.AppConfig) {
	corsOrigins := strings.Split(cfg.ApiServer.AllowedOrigins, ";")
	r.Use(cors.New(
		cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{"GET", "OPTIONS", "HEAD"},
			AllowHeaders: []string{
				"Origin", "Host", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Accept",
				"X-Requested-With",
			},
			AllowCredentials: true,
		},
	))
}

// setupStatic serves the dashboard page and assets for every path no route
// claims, the way the page was served next to the API before.
func setupStatic(r *gin.Engine, cfg *config.AppConfig, logger *logger.Logger) {
	if cfg.ApiServer.StaticDir == "" {
		return
	}

	logger.Info("Serving static files", map[string]string{
		"dir": cfg.ApiServer.StaticDir,
	})
	fileServer := nethttp.FileServer(nethttp.Dir(cfg.ApiServer.StaticDir))
	r.NoRoute(gin.WrapH(fileServer))
}

func NewHttpServer(appConfig *config.AppConfig, logger *logger.Logger, h *handler.Handler, httpMetrics *monitoring.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		gin.Recovery(),
	)
	if httpMetrics != nil {
		r.Use(monitoring.HTTPMetricsMiddleware(httpMetrics))
	}
	setupCORS(r, appConfig)

	// use ginSwagger middleware to serve the API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", h.MetricsHandler.Handler())

	// load api
	loadRoutes(r, h)
	setupStatic(r, appConfig, logger)

	return r
}

// NewAdminServer exposes the dashboard's own health and metrics.
func NewAdminServer(h *handler.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", h.HealthHandler.Basic)
	r.GET("/api/v1/health/jobs", h.HealthHandler.Jobs)
	r.GET("/metrics", h.MetricsHandler.Handler())

	return r
}
