package model

// StatusSnapshot is the merged view of the node's chain and network state.
type StatusSnapshot struct {
	BlockCount int64   `json:"blockcount"`
	Chain      string  `json:"chain"`
	Sync       float64 `json:"sync"`
	Headers    int64   `json:"headers"`
	Blocks     int64   `json:"blocks"`
	Peers      int64   `json:"peers"`
	Pruned     bool    `json:"pruned"`
	SizeOnDisk int64   `json:"size_on_disk"`
}

// BalanceSnapshot carries the wallet balance. Message is only set on the
// degraded no-wallet response.
type BalanceSnapshot struct {
	Balance float64 `json:"balance"`
	Message string  `json:"message,omitempty"`
}

type TransactionRecord struct {
	Time          int64   `json:"time"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Confirmations int64   `json:"confirmations"`
	TxID          string  `json:"txid"`
}

type TransactionList struct {
	Txs     []TransactionRecord `json:"txs"`
	Message string              `json:"message,omitempty"`
}

type Pong struct {
	Pong bool `json:"pong"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
