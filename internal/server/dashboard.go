package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/dwarvesf/node-dashboard/internal/dashboard"
	"github.com/dwarvesf/node-dashboard/internal/handler"
	"github.com/dwarvesf/node-dashboard/internal/monitoring"
	transport "github.com/dwarvesf/node-dashboard/internal/transport/http"
	"github.com/dwarvesf/node-dashboard/internal/utils/config"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

// InitDashboard polls the gateway and redraws the terminal until SIGINT or
// SIGTERM.
func InitDashboard() {
	appConfig := config.New()
	logger := logger.New(appConfig.Environment)
	defer logger.Sync()

	registry := newRegistry()
	jobMetrics := monitoring.NewBackgroundJobMetrics()
	jobMetrics.MustRegister(registry)
	jobs := monitoring.NewJobStatusManager(logger, jobMetrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if addr := appConfig.Dashboard.AdminAddr; addr != "" {
		h := handler.NewDashboardAdmin(appConfig, logger, registry, jobs)
		srv := &http.Server{Addr: addr, Handler: transport.NewAdminServer(h)}
		go serve(ctx, srv, logger)

		logger.Info("Dashboard admin listening", map[string]string{"addr": addr})
	}

	redraw := isatty.IsTerminal(os.Stdout.Fd())
	display := dashboard.NewDisplay(os.Stdout, redraw)
	d := dashboard.New(appConfig, dashboard.NewClient(appConfig.Dashboard.GatewayURL), display, jobs, logger)

	if err := d.Run(ctx); err != nil {
		logger.Error("Dashboard stopped", map[string]string{"error": err.Error()})
	}
}
