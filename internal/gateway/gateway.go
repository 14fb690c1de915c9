package gateway

import (
	"context"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/dwarvesf/node-dashboard/internal/model"
	"github.com/dwarvesf/node-dashboard/internal/noderpc"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

const (
	DefaultTxCount = 10
	MaxTxCount     = 50

	NoWalletBalanceMessage = "No wallet configured on this node yet."

	// transactions degrade with this message whatever the failure was
	NoWalletTxsMessage = "No wallet defined"
)

type Gateway struct {
	node   noderpc.INodeRPC
	logger *logger.Logger
}

func New(node noderpc.INodeRPC, logger *logger.Logger) *Gateway {
	return &Gateway{
		node:   node,
		logger: logger,
	}
}

func (g *Gateway) Status(ctx context.Context) (*model.StatusSnapshot, error) {
	var (
		blockCount int64
		chainInfo  *noderpc.BlockchainInfo
		netInfo    *noderpc.NetworkInfo
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		blockCount, err = g.node.GetBlockCount(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		chainInfo, err = g.node.GetBlockchainInfo(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		netInfo, err = g.node.GetNetworkInfo(egCtx)
		return err
	})

	if err := eg.Wait(); err != nil {
		g.logger.Error("[Gateway][Status]", map[string]string{
			"error": err.Error(),
		})
		return nil, err
	}

	return &model.StatusSnapshot{
		BlockCount: blockCount,
		Chain:      chainInfo.Chain,
		Sync:       SyncPercent(*chainInfo.VerificationProgress),
		Headers:    *chainInfo.Headers,
		Blocks:     *chainInfo.Blocks,
		Peers:      *netInfo.Connections,
		Pruned:     *chainInfo.Pruned,
		SizeOnDisk: *chainInfo.SizeOnDisk,
	}, nil
}

func (g *Gateway) Balance(ctx context.Context) (*model.BalanceSnapshot, error) {
	balance, err := g.node.GetBalance(ctx)
	if err != nil {
		if noderpc.IsNoWallet(err) {
			g.logger.Debug("[Gateway][Balance] no wallet", map[string]string{
				"error": err.Error(),
			})
			return &model.BalanceSnapshot{
				Balance: 0,
				Message: NoWalletBalanceMessage,
			}, nil
		}

		g.logger.Error("[Gateway][Balance]", map[string]string{
			"error": err.Error(),
		})
		return nil, err
	}

	return &model.BalanceSnapshot{Balance: balance}, nil
}

func (g *Gateway) Transactions(ctx context.Context, count int) *model.TransactionList {
	count = ClampTxCount(count)

	txs, err := g.node.ListTransactions(ctx, count)
	if err != nil {
		g.logger.Warn("[Gateway][Transactions] wallet not available", map[string]string{
			"error": err.Error(),
			"count": strconv.Itoa(count),
		})
		return &model.TransactionList{
			Txs:     []model.TransactionRecord{},
			Message: NoWalletTxsMessage,
		}
	}

	if len(txs) > count {
		txs = txs[:count]
	}

	records := make([]model.TransactionRecord, 0, len(txs))
	for _, tx := range txs {
		records = append(records, model.TransactionRecord{
			Time:          tx.Time,
			Category:      tx.Category,
			Amount:        *tx.Amount,
			Confirmations: tx.Confirmations,
			TxID:          tx.TxID,
		})
	}

	return &model.TransactionList{Txs: records}
}

// SyncPercent turns a verification progress ratio into a percentage with two
// decimals, truncated so a node is never shown at 100 before it gets there.
func SyncPercent(progress float64) float64 {
	return math.Floor(progress*10000+1e-6) / 100
}

// ClampTxCount bounds a requested transaction count to [1, MaxTxCount].
func ClampTxCount(count int) int {
	switch {
	case count < 1:
		return 1
	case count > MaxTxCount:
		return MaxTxCount
	default:
		return count
	}
}

// ParseTxCount reads the count query value; empty or non-numeric input
// falls back to DefaultTxCount.
func ParseTxCount(raw string) int {
	if raw == "" {
		return DefaultTxCount
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultTxCount
	}

	return ClampTxCount(count)
}
