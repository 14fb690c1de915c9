package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/dwarvesf/node-dashboard/internal/model"
)

// Balance mirrors the gateway's balance body. The value is kept as decoded
// so whatever the gateway sent is shown as-is.
type Balance struct {
	Balance interface{} `json:"balance"`
	Message string      `json:"message,omitempty"`
}

type Transaction struct {
	Time          int64       `json:"time"`
	Category      string      `json:"category"`
	Amount        interface{} `json:"amount"`
	Confirmations *int64      `json:"confirmations"`
	TxID          string      `json:"txid"`
}

type Transactions struct {
	Txs     []Transaction `json:"txs"`
	Message string        `json:"message,omitempty"`
}

// Client reads the gateway's JSON endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

func (c *Client) Status(ctx context.Context) (*model.StatusSnapshot, error) {
	var status model.StatusSnapshot
	if err := c.fetchJSON(ctx, "/api/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) Balance(ctx context.Context) (*Balance, error) {
	var balance Balance
	if err := c.fetchJSON(ctx, "/api/balance", &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

func (c *Client) Transactions(ctx context.Context, count int) (*Transactions, error) {
	var txs Transactions
	if err := c.fetchJSON(ctx, fmt.Sprintf("/api/txs?count=%d", count), &txs); err != nil {
		return nil, err
	}
	return &txs, nil
}

func (c *Client) fetchJSON(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %s", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return errors.Errorf("fetch %s: gateway returned status %d", url, resp.StatusCode)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode %s", url)
	}

	return nil
}
