package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dwarvesf/node-dashboard/internal/monitoring"
	"github.com/dwarvesf/node-dashboard/internal/utils/config"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

// Poll job names, as reported by the jobs health endpoint and metrics.
const (
	StatusJob  = "dashboard_status"
	BalanceJob = "dashboard_balance"
	TxsJob     = "dashboard_txs"
)

type Dashboard struct {
	cfg     *config.AppConfig
	client  *Client
	display *Display
	jobs    *monitoring.JobStatusManager
	logger  *logger.Logger
}

func New(cfg *config.AppConfig, client *Client, display *Display, jobs *monitoring.JobStatusManager, logger *logger.Logger) *Dashboard {
	return &Dashboard{
		cfg:     cfg,
		client:  client,
		display: display,
		jobs:    jobs,
		logger:  logger,
	}
}

func (d *Dashboard) RefreshStatus(ctx context.Context) error {
	status, err := d.client.Status(ctx)
	if err != nil {
		return err
	}

	d.display.SetStatus(status)
	return d.display.Render()
}

func (d *Dashboard) RefreshBalance(ctx context.Context) error {
	balance, err := d.client.Balance(ctx)
	if err != nil {
		return err
	}

	d.display.SetBalance(balance)
	return d.display.Render()
}

func (d *Dashboard) RefreshTransactions(ctx context.Context) error {
	txs, err := d.client.Transactions(ctx, d.cfg.Dashboard.TxCount)
	if err != nil {
		return err
	}

	d.display.SetTransactions(txs, d.cfg.Dashboard.TxCount)
	return d.display.Render()
}

// Run fetches every region once, then keeps each on its own schedule until
// ctx is done. A poll still in flight when its next tick fires makes that
// tick a no-op.
func (d *Dashboard) Run(ctx context.Context) error {
	cronLogger := d.logger.Cron()
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger)),
	)

	polls := []struct {
		name     string
		interval time.Duration
		refresh  func(context.Context) error
	}{
		{StatusJob, d.cfg.Dashboard.StatusInterval, d.RefreshStatus},
		{BalanceJob, d.cfg.Dashboard.BalanceInterval, d.RefreshBalance},
		{TxsJob, d.cfg.Dashboard.TxsInterval, d.RefreshTransactions},
	}

	var initial sync.WaitGroup
	for _, p := range polls {
		instrumented := monitoring.NewInstrumentedJob(p.name, p.refresh, d.jobs, d.logger, d.cfg.Dashboard.PollTimeout)
		job := cron.NewChain(cron.SkipIfStillRunning(cronLogger)).Then(cron.FuncJob(func() {
			// failures are recorded and logged by the job itself
			_ = instrumented.Execute(ctx)
		}))
		c.Schedule(cron.Every(p.interval), job)

		initial.Add(1)
		go func() {
			defer initial.Done()
			job.Run()
		}()
	}

	go d.jobs.Run(ctx)
	c.Start()

	d.logger.Info("Dashboard polling started", map[string]string{
		"gateway":          d.cfg.Dashboard.GatewayURL,
		"status_interval":  d.cfg.Dashboard.StatusInterval.String(),
		"balance_interval": d.cfg.Dashboard.BalanceInterval.String(),
		"txs_interval":     d.cfg.Dashboard.TxsInterval.String(),
	})

	<-ctx.Done()
	<-c.Stop().Done()
	initial.Wait()

	d.logger.Info("Dashboard polling stopped")
	return nil
}
