package noderpc

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NoWalletIndicator is the fragment the node puts in every error caused by
// a missing or unloaded wallet.
const NoWalletIndicator = "No wallet"

// HTTPError is returned when the node answers with a non-2xx status.
type HTTPError struct {
	Method     string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("RPC HTTP %d: %s", e.StatusCode, e.Body)
}

// RPCError is returned when the reply envelope carries a non-null error.
type RPCError struct {
	Method  string
	Payload json.RawMessage
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error: %s", string(e.Payload))
}

// Code extracts the numeric error code from the payload, if there is one.
func (e *RPCError) Code() (int, bool) {
	var body struct {
		Code *int `json:"code"`
	}
	if err := json.Unmarshal(e.Payload, &body); err != nil || body.Code == nil {
		return 0, false
	}

	return *body.Code, true
}

// IsNoWallet reports whether err was caused by the node having no wallet.
func IsNoWallet(err error) bool {
	return err != nil && strings.Contains(err.Error(), NoWalletIndicator)
}
