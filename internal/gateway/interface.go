package gateway

import (
	"context"

	"github.com/dwarvesf/node-dashboard/internal/model"
)

type IGateway interface {
	// Status merges getblockcount, getblockchaininfo and getnetworkinfo.
	// Any upstream failure fails the whole snapshot.
	Status(ctx context.Context) (*model.StatusSnapshot, error)

	// Balance degrades to a zero balance with a message when the node has
	// no wallet; every other failure is returned.
	Balance(ctx context.Context) (*model.BalanceSnapshot, error)

	// Transactions never fails: any upstream error yields an empty list
	// carrying an explanatory message.
	Transactions(ctx context.Context, count int) *model.TransactionList
}
