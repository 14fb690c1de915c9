package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

// Client pings a push-style uptime monitor.
type Client struct {
	client *resty.Client
	logger *logger.Logger
}

// New creates a new webhook client with timeout
func New(logger *logger.Logger) *Client {
	return &Client{
		client: resty.New().SetTimeout(10 * time.Second),
		logger: logger,
	}
}

// CallUptimeWebhook makes a GET request to the webhook URL. An empty URL is
// a no-op.
func (c *Client) CallUptimeWebhook(ctx context.Context, webhookURL string) error {
	if webhookURL == "" {
		return nil
	}

	resp, err := c.client.R().SetContext(ctx).Get(webhookURL)
	if err != nil {
		c.logger.Error("Failed to call uptime webhook", map[string]string{
			"url":   webhookURL,
			"error": err.Error(),
		})
		return errors.Wrap(err, "failed to call uptime webhook")
	}

	if resp.IsError() {
		c.logger.Error("Uptime webhook rejected call", map[string]string{
			"url":         webhookURL,
			"status_code": resp.Status(),
		})
		return fmt.Errorf("uptime webhook returned status %d", resp.StatusCode())
	}

	c.logger.Debug("Successfully called uptime webhook", map[string]string{
		"url":         webhookURL,
		"status_code": resp.Status(),
	})
	return nil
}
