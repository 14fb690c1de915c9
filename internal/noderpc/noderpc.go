package noderpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/dwarvesf/node-dashboard/internal/utils/config"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

const rpcID = "node-dashboard"

type NodeRPC struct {
	url      string
	user     string
	pass     string
	client   *http.Client
	validate *validator.Validate
	logger   *logger.Logger
}

func New(cfg *config.AppConfig, logger *logger.Logger) *NodeRPC {
	return &NodeRPC{
		url:  cfg.Node.RPCURL,
		user: cfg.Node.RPCUser,
		pass: cfg.Node.RPCPass,
		client: &http.Client{
			Timeout: cfg.Node.Timeout,
		},
		validate: validator.New(),
		logger:   logger,
	}
}

func (n *NodeRPC) GetBlockCount(ctx context.Context) (int64, error) {
	var count *int64
	if err := n.call(ctx, btcjson.NewGetBlockCountCmd(), &count); err != nil {
		return 0, err
	}
	if count == nil {
		return 0, errors.New("invalid getblockcount result: missing block count")
	}

	return *count, nil
}

func (n *NodeRPC) GetBlockchainInfo(ctx context.Context) (*BlockchainInfo, error) {
	var info BlockchainInfo
	if err := n.call(ctx, btcjson.NewGetBlockChainInfoCmd(), &info); err != nil {
		return nil, err
	}
	if err := n.validate.Struct(&info); err != nil {
		return nil, errors.Wrap(err, "invalid getblockchaininfo result")
	}

	return &info, nil
}

func (n *NodeRPC) GetNetworkInfo(ctx context.Context) (*NetworkInfo, error) {
	var info NetworkInfo
	if err := n.call(ctx, btcjson.NewGetNetworkInfoCmd(), &info); err != nil {
		return nil, err
	}
	if err := n.validate.Struct(&info); err != nil {
		return nil, errors.Wrap(err, "invalid getnetworkinfo result")
	}

	return &info, nil
}

func (n *NodeRPC) GetBalance(ctx context.Context) (float64, error) {
	var balance *float64
	if err := n.call(ctx, btcjson.NewGetBalanceCmd(nil, nil), &balance); err != nil {
		return 0, err
	}
	if balance == nil {
		return 0, errors.New("invalid getbalance result: missing balance")
	}

	return *balance, nil
}

func (n *NodeRPC) ListTransactions(ctx context.Context, count int) ([]Transaction, error) {
	account := "*"
	from := 0
	watchOnly := true
	cmd := btcjson.NewListTransactionsCmd(&account, &count, &from, &watchOnly)

	var txs []Transaction
	if err := n.call(ctx, cmd, &txs); err != nil {
		return nil, err
	}
	for i := range txs {
		if err := n.validate.Struct(&txs[i]); err != nil {
			return nil, errors.Wrapf(err, "invalid listtransactions result at index %d", i)
		}
	}
	if txs == nil {
		txs = []Transaction{}
	}

	return txs, nil
}

// call posts a single JSON-RPC 1.0 request and decodes its result into out.
func (n *NodeRPC) call(ctx context.Context, cmd interface{}, out interface{}) error {
	method, err := btcjson.CmdMethod(cmd)
	if err != nil {
		return errors.Wrap(err, "unknown rpc command")
	}

	payload, err := btcjson.MarshalCmd(btcjson.RpcVersion1, rpcID, cmd)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s request", method)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrapf(err, "failed to create %s request", method)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(n.user, n.pass)

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error("[NodeRPC][client.Do]", map[string]string{
			"method": method,
			"error":  err.Error(),
		})
		return errors.Wrapf(err, "failed to call %s", method)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s response", method)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		n.logger.Debug("[NodeRPC][call] http error", map[string]string{
			"method":     method,
			"statusCode": strconv.Itoa(resp.StatusCode),
			"body":       string(body),
		})
		return &HTTPError{
			Method:     method,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var envelope rpcResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", method)
	}

	if len(envelope.Error) > 0 && string(envelope.Error) != "null" {
		compact := &bytes.Buffer{}
		if err := json.Compact(compact, envelope.Error); err != nil {
			compact.Reset()
			compact.Write(envelope.Error)
		}
		n.logger.Debug("[NodeRPC][call] rpc error", map[string]string{
			"method": method,
			"error":  compact.String(),
		})
		return &RPCError{
			Method:  method,
			Payload: compact.Bytes(),
		}
	}

	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return errors.Wrapf(err, "failed to decode %s result", method)
	}

	return nil
}
