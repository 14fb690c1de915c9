package server

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/dwarvesf/node-dashboard/internal/noderpc"
	"github.com/dwarvesf/node-dashboard/internal/utils/config"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
	"github.com/dwarvesf/node-dashboard/internal/utils/vault"
	"github.com/dwarvesf/node-dashboard/internal/utils/webhook"
)

// heartbeat pings the uptime webhook only while the node answers, so the
// monitor alerts when either the gateway or the node goes away.
func heartbeat(ctx context.Context, node noderpc.INodeRPC, hook *webhook.Client, url string, logger *logger.Logger) func() {
	return func() {
		if _, err := node.GetBlockCount(ctx); err != nil {
			logger.Warn("[Heartbeat] node unreachable, skipping uptime ping", map[string]string{
				"error": err.Error(),
			})
			return
		}
		// failures are logged by the webhook client
		_ = hook.CallUptimeWebhook(ctx, url)
	}
}

// startHeartbeat schedules the uptime ping when a webhook is configured and
// returns the running scheduler, or nil.
func startHeartbeat(ctx context.Context, cfg *config.AppConfig, node noderpc.INodeRPC, logger *logger.Logger) *cron.Cron {
	if cfg.Uptime.WebhookURL == "" {
		return nil
	}

	cronLogger := logger.Cron()
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	c.Schedule(cron.Every(cfg.Uptime.Interval), cron.FuncJob(heartbeat(ctx, node, webhook.New(logger), cfg.Uptime.WebhookURL, logger)))
	c.Start()

	logger.Info("Uptime heartbeat scheduled", map[string]string{
		"interval": cfg.Uptime.Interval.String(),
	})
	return c
}

// loadVaultCredentials replaces the node credentials with the ones stored in
// Vault, when Vault is configured.
func loadVaultCredentials(ctx context.Context, cfg *config.AppConfig, logger *logger.Logger) error {
	if cfg.Vault.Addr == "" {
		return nil
	}

	vc := vault.New(cfg.Vault.Addr, cfg.Vault.KVPath, cfg.Vault.Role, cfg.Vault.TokenPath)
	user, pass, err := vc.RPCCredentials(ctx)
	if err != nil {
		return err
	}

	cfg.Node.RPCUser = user
	cfg.Node.RPCPass = pass
	logger.Info("Loaded node credentials from vault", map[string]string{
		"kv_path": cfg.Vault.KVPath,
	})
	return nil
}
