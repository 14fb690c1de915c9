package noderpc

import "encoding/json"

// BlockchainInfo is the part of the getblockchaininfo result the gateway uses.
// Pointer fields distinguish a missing field from a zero value.
type BlockchainInfo struct {
	Chain                string   `json:"chain" validate:"required"`
	Blocks               *int64   `json:"blocks" validate:"required"`
	Headers              *int64   `json:"headers" validate:"required"`
	VerificationProgress *float64 `json:"verificationprogress" validate:"required"`
	Pruned               *bool    `json:"pruned" validate:"required"`
	SizeOnDisk           *int64   `json:"size_on_disk" validate:"required"`
}

type NetworkInfo struct {
	Connections *int64 `json:"connections" validate:"required"`
}

// Transaction is one listtransactions entry. Confirmations is absent for
// some categories and decodes to 0.
type Transaction struct {
	Time          int64    `json:"time"`
	Category      string   `json:"category" validate:"required"`
	Amount        *float64 `json:"amount" validate:"required"`
	Confirmations int64    `json:"confirmations"`
	TxID          string   `json:"txid"`
}

// rpcResponse is the JSON-RPC 1.0 reply envelope.
type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
	ID     interface{}     `json:"id"`
}
