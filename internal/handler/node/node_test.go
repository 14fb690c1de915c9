package node_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwarvesf/node-dashboard/internal/gateway"
	"github.com/dwarvesf/node-dashboard/internal/handler/node"
	"github.com/dwarvesf/node-dashboard/internal/monitoring"
	"github.com/dwarvesf/node-dashboard/internal/noderpc"
	"github.com/dwarvesf/node-dashboard/internal/utils/config"
	"github.com/dwarvesf/node-dashboard/internal/utils/logger"
)

type rpcReply struct {
	status int
	body   string
}

func result(v string) rpcReply {
	return rpcReply{http.StatusOK, `{"result":` + v + `,"error":null,"id":"node-dashboard"}`}
}

// setupRouter wires the node handler to a stub node answering per method.
func setupRouter(t *testing.T, replies map[string]rpcReply) (*gin.Engine, func() []json.RawMessage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var (
		mu       sync.Mutex
		txParams []json.RawMessage
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		if req.Method == "listtransactions" {
			mu.Lock()
			txParams = req.Params
			mu.Unlock()
		}

		reply, ok := replies[req.Method]
		if !ok {
			reply = rpcReply{http.StatusNotFound, `{"result":null,"error":{"code":-32601,"message":"Method not found"},"id":"node-dashboard"}`}
		}
		w.WriteHeader(reply.status)
		w.Write([]byte(reply.body))
	}))
	t.Cleanup(upstream.Close)

	log := logger.New("test")
	cfg := &config.AppConfig{Node: config.NodeConfig{RPCURL: upstream.URL, RPCUser: "u", RPCPass: "p"}}
	metrics := monitoring.NewHTTPMetrics()
	metrics.MustRegister(prometheus.NewRegistry())

	h := node.New(gateway.New(noderpc.New(cfg, log), log), metrics)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/status", h.Status)
	api.GET("/balance", h.Balance)
	api.GET("/txs", h.Txs)
	api.GET("/ping", h.Ping)

	return r, func() []json.RawMessage {
		mu.Lock()
		defer mu.Unlock()
		return txParams
	}
}

func get(r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func healthyNode() map[string]rpcReply {
	return map[string]rpcReply{
		"getblockcount":     result(`850000`),
		"getblockchaininfo": result(`{"chain":"main","blocks":850000,"headers":850010,"verificationprogress":0.999951,"pruned":false,"size_on_disk":650000000000}`),
		"getnetworkinfo":    result(`{"connections":10}`),
	}
}

func TestStatus_MergesUpstreamCalls(t *testing.T) {
	r, _ := setupRouter(t, healthyNode())

	w, body := get(r, "/api/status")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{
		"blockcount":   float64(850000),
		"chain":        "main",
		"sync":         99.99,
		"headers":      float64(850010),
		"blocks":       float64(850000),
		"peers":        float64(10),
		"pruned":       false,
		"size_on_disk": float64(650000000000),
	}, body)
}

func TestStatus_AnyFailureIs500(t *testing.T) {
	replies := healthyNode()
	replies["getnetworkinfo"] = rpcReply{http.StatusUnauthorized, ""}
	r, _ := setupRouter(t, replies)

	w, body := get(r, "/api/status")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]interface{}{"error": "RPC HTTP 401: "}, body)
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name     string
		reply    rpcReply
		wantCode int
		wantBody map[string]interface{}
	}{
		{
			name:     "wallet loaded",
			reply:    result(`0.5`),
			wantCode: http.StatusOK,
			wantBody: map[string]interface{}{"balance": 0.5},
		},
		{
			name:     "no wallet",
			reply:    rpcReply{http.StatusInternalServerError, `{"result":null,"error":{"code":-18,"message":"No wallet is loaded. Load a wallet using loadwallet or create a new one with createwallet."},"id":"node-dashboard"}`},
			wantCode: http.StatusOK,
			wantBody: map[string]interface{}{"balance": float64(0), "message": "No wallet configured on this node yet."},
		},
		{
			name:     "other rpc error",
			reply:    result(`null`),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouter(t, map[string]rpcReply{"getbalance": tt.reply})

			w, body := get(r, "/api/balance")

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, body)
			} else {
				assert.Contains(t, body, "error")
			}
		})
	}
}

func TestTxs_ClampsCount(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"", "10"},
		{"?count=abc", "10"},
		{"?count=0", "1"},
		{"?count=-4", "1"},
		{"?count=7", "7"},
		{"?count=500", "50"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r, params := setupRouter(t, map[string]rpcReply{"listtransactions": result(`[]`)})

			w, body := get(r, "/api/txs"+tt.query)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, []interface{}{}, body["txs"])
			sent := params()
			require.Len(t, sent, 4)
			assert.JSONEq(t, tt.want, string(sent[1]))
		})
	}
}

func TestTxs_MapsRecords(t *testing.T) {
	r, _ := setupRouter(t, map[string]rpcReply{
		"listtransactions": result(`[
			{"time":1700000000,"category":"receive","amount":0.1,"confirmations":3,"txid":"a"},
			{"time":1700000100,"category":"send","amount":-0.05,"txid":"b"}
		]`),
	})

	w, body := get(r, "/api/txs?count=5")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, body, "message")
	txs := body["txs"].([]interface{})
	require.Len(t, txs, 2)
	assert.Equal(t, map[string]interface{}{
		"time": float64(1700000100), "category": "send", "amount": -0.05, "confirmations": float64(0), "txid": "b",
	}, txs[1])
}

func TestTxs_DegradesOnAnyFailure(t *testing.T) {
	r, _ := setupRouter(t, map[string]rpcReply{
		"listtransactions": rpcReply{http.StatusServiceUnavailable, "Loading block index..."},
	})

	w, body := get(r, "/api/txs")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"txs": []interface{}{}, "message": "No wallet defined"}, body)
}

func TestPing_DoesNotCallUpstream(t *testing.T) {
	r, _ := setupRouter(t, nil)

	w, body := get(r, "/api/ping")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"pong": true}, body)
}
