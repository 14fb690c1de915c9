package monitoring

import (
	"context"
	"errors"
	"time"

	"github.com/dwarvesf/node-dashboard/internal/noderpc"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

// InstrumentedNodeRPC records latency and outcome of every upstream call.
type InstrumentedNodeRPC struct {
	wrapped noderpc.INodeRPC
	metrics *ExternalAPIMetrics
	logger  *logger.Logger
}

func NewInstrumentedNodeRPC(wrapped noderpc.INodeRPC, metrics *ExternalAPIMetrics, logger *logger.Logger) *InstrumentedNodeRPC {
	return &InstrumentedNodeRPC{
		wrapped: wrapped,
		metrics: metrics,
		logger:  logger,
	}
}

func (in *InstrumentedNodeRPC) GetBlockCount(ctx context.Context) (int64, error) {
	return observe(in, ctx, "getblockcount", in.wrapped.GetBlockCount)
}

func (in *InstrumentedNodeRPC) GetBlockchainInfo(ctx context.Context) (*noderpc.BlockchainInfo, error) {
	return observe(in, ctx, "getblockchaininfo", in.wrapped.GetBlockchainInfo)
}

func (in *InstrumentedNodeRPC) GetNetworkInfo(ctx context.Context) (*noderpc.NetworkInfo, error) {
	return observe(in, ctx, "getnetworkinfo", in.wrapped.GetNetworkInfo)
}

func (in *InstrumentedNodeRPC) GetBalance(ctx context.Context) (float64, error) {
	return observe(in, ctx, "getbalance", in.wrapped.GetBalance)
}

func (in *InstrumentedNodeRPC) ListTransactions(ctx context.Context, count int) ([]noderpc.Transaction, error) {
	return observe(in, ctx, "listtransactions", func(ctx context.Context) ([]noderpc.Transaction, error) {
		return in.wrapped.ListTransactions(ctx, count)
	})
}

func observe[T any](in *InstrumentedNodeRPC, ctx context.Context, method string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	v, err := fn(ctx)
	duration := time.Since(start).Seconds()

	status := callStatus(err)
	if errors.Is(err, context.DeadlineExceeded) {
		in.metrics.RecordTimeout(NodeRPCAPIName, method)
	}
	in.metrics.RecordAPICall(NodeRPCAPIName, method, status, duration)

	return v, err
}

// callStatus labels an upstream outcome; node-side errors are kept apart
// from transport failures so a missing wallet doesn't look like an outage.
func callStatus(err error) string {
	if err == nil {
		return "success"
	}

	var rpcErr *noderpc.RPCError
	var httpErr *noderpc.HTTPError
	switch {
	case errors.As(err, &rpcErr):
		return "rpc_error"
	case errors.As(err, &httpErr):
		return "http_error"
	default:
		return "error"
	}
}
