package noderpc

import "context"

// INodeRPC is the subset of the node's JSON-RPC surface the dashboard reads.
type INodeRPC interface {
	GetBlockCount(ctx context.Context) (int64, error)
	GetBlockchainInfo(ctx context.Context) (*BlockchainInfo, error)
	GetNetworkInfo(ctx context.Context) (*NetworkInfo, error)
	GetBalance(ctx context.Context) (float64, error)

	// ListTransactions returns the last count wallet transactions across all
	// accounts, watch-only included.
	ListTransactions(ctx context.Context, count int) ([]Transaction, error)
}
