package monitoring

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"

	"github.com/dwarvesf/node-dashboard/internal/noderpc"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

// CircuitBreakerNodeRPC wraps noderpc.INodeRPC with circuit breaker functionality
type CircuitBreakerNodeRPC struct {
	wrapped        noderpc.INodeRPC
	circuitBreaker *gobreaker.CircuitBreaker
	metrics        *ExternalAPIMetrics
	logger         *logger.Logger
}

func NewCircuitBreakerNodeRPC(wrapped noderpc.INodeRPC, config CircuitBreakerConfig, metrics *ExternalAPIMetrics, logger *logger.Logger) *CircuitBreakerNodeRPC {
	cb := &CircuitBreakerNodeRPC{
		wrapped: wrapped,
		metrics: metrics,
		logger:  logger,
	}

	settings := gobreaker.Settings{
		Name:        NodeRPCAPIName,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.ConsecutiveFailureThreshold)
		},
		IsSuccessful: isNodeReachable,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state change", map[string]string{
				"service": name,
				"from":    from.String(),
				"to":      to.String(),
			})
			metrics.UpdateCircuitBreakerState(NodeRPCAPIName, to)
		},
	}

	cb.circuitBreaker = gobreaker.NewCircuitBreaker(settings)
	return cb
}

// isNodeReachable decides which errors count against the breaker. An answer
// from the node, even an error answer, proves it is up; so does a caller
// giving up on its own.
func isNodeReachable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}

	var rpcErr *noderpc.RPCError
	if errors.As(err, &rpcErr) {
		return true
	}

	var httpErr *noderpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode < 500 || noderpc.IsNoWallet(err)
	}

	return false
}

// State exposes the breaker state for health reporting.
func (cb *CircuitBreakerNodeRPC) State() gobreaker.State {
	return cb.circuitBreaker.State()
}

func (cb *CircuitBreakerNodeRPC) GetBlockCount(ctx context.Context) (int64, error) {
	return guard(cb, func() (int64, error) { return cb.wrapped.GetBlockCount(ctx) })
}

func (cb *CircuitBreakerNodeRPC) GetBlockchainInfo(ctx context.Context) (*noderpc.BlockchainInfo, error) {
	return guard(cb, func() (*noderpc.BlockchainInfo, error) { return cb.wrapped.GetBlockchainInfo(ctx) })
}

func (cb *CircuitBreakerNodeRPC) GetNetworkInfo(ctx context.Context) (*noderpc.NetworkInfo, error) {
	return guard(cb, func() (*noderpc.NetworkInfo, error) { return cb.wrapped.GetNetworkInfo(ctx) })
}

func (cb *CircuitBreakerNodeRPC) GetBalance(ctx context.Context) (float64, error) {
	return guard(cb, func() (float64, error) { return cb.wrapped.GetBalance(ctx) })
}

func (cb *CircuitBreakerNodeRPC) ListTransactions(ctx context.Context, count int) ([]noderpc.Transaction, error) {
	return guard(cb, func() ([]noderpc.Transaction, error) { return cb.wrapped.ListTransactions(ctx, count) })
}

func guard[T any](cb *CircuitBreakerNodeRPC, fn func() (T, error)) (T, error) {
	result, err := cb.circuitBreaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			cb.logger.Debug("[CircuitBreakerNodeRPC] rejected", map[string]string{
				"error": err.Error(),
			})
		}
		return zero, err
	}

	return result.(T), nil
}
