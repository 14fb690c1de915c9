package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dwarvesf/node-dashboard/internal/gateway"
	"github.com/dwarvesf/node-dashboard/internal/handler"
	"github.com/dwarvesf/node-dashboard/internal/monitoring"
	"github.com/dwarvesf/node-dashboard/internal/noderpc"
	transport "github.com/dwarvesf/node-dashboard/internal/transport/http"
	"github.com/dwarvesf/node-dashboard/internal/utils/config"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// Init runs the gateway until SIGINT or SIGTERM.
func Init() {
	appConfig := config.New()
	logger := logger.New(appConfig.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := loadVaultCredentials(ctx, appConfig, logger); err != nil {
		logger.Fatal("Failed to load node credentials from vault", map[string]string{
			"error": err.Error(),
		})
	}

	registry := newRegistry()
	apiMetrics := monitoring.NewExternalAPIMetrics()
	apiMetrics.MustRegister(registry)
	httpMetrics := monitoring.NewHTTPMetrics()
	httpMetrics.MustRegister(registry)

	var node noderpc.INodeRPC = monitoring.NewInstrumentedNodeRPC(noderpc.New(appConfig, logger), apiMetrics, logger)
	if appConfig.Node.CircuitBreakerEnabled {
		node = monitoring.NewCircuitBreakerNodeRPC(node, monitoring.CircuitBreakerConfigs[monitoring.NodeRPCAPIName], apiMetrics, logger)
	}
	gw := gateway.New(node, logger)

	h := handler.New(appConfig, logger, node, gw, registry, httpMetrics)
	srv := &http.Server{
		Addr:    appConfig.ListenAddr(),
		Handler: transport.NewHttpServer(appConfig, logger, h, httpMetrics),
	}

	logger.Info("Dashboard running", map[string]string{
		"url": "http://" + displayHost(appConfig.ApiServer.Host) + ":" + appConfig.ApiServer.Port,
	})
	logger.Info("RPC config", map[string]string{
		"rpc_url":         appConfig.Node.RPCURL,
		"has_user":        strconv.FormatBool(appConfig.Node.RPCUser != ""),
		"has_pass":        strconv.FormatBool(appConfig.Node.RPCPass != ""),
		"circuit_breaker": strconv.FormatBool(appConfig.Node.CircuitBreakerEnabled),
	})

	if c := startHeartbeat(ctx, appConfig, node, logger); c != nil {
		defer func() { <-c.Stop().Done() }()
	}

	serve(ctx, srv, logger)
}

// serve blocks until ctx is done, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, logger *logger.Logger) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped", map[string]string{
				"addr":  srv.Addr,
				"error": err.Error(),
			})
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown", map[string]string{
			"addr":  srv.Addr,
			"error": err.Error(),
		})
		return
	}
	logger.Info("Server stopped", map[string]string{"addr": srv.Addr})
}

func displayHost(host string) string {
	if host == "" || host == "0.0.0.0" {
		return "localhost"
	}
	return host
}
