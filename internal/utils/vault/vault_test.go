package vault

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeToken(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("k8s-jwt\n"), 0o600))
	return path
}

func fakeVault(t *testing.T, kvStatus int, kvBody string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/auth/kubernetes/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body["jwt"] != "k8s-jwt" || body["role"] != "node-dashboard" {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"errors":["permission denied"]}`))
				return
			}
			w.Write([]byte(`{"auth":{"client_token":"s.token"}}`))
		case "/v1/secret/data/node-dashboard":
			if r.Header.Get("X-Vault-Token") != "s.token" {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"errors":["permission denied"]}`))
				return
			}
			w.WriteHeader(kvStatus)
			w.Write([]byte(kvBody))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":[]}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRPCCredentials(t *testing.T) {
	srv := fakeVault(t, http.StatusOK, `{"data":{"data":{"rpc_user":"alice","rpc_pass":"secret"}}}`)
	vc := New(srv.URL+"/", "/secret/data/node-dashboard", "node-dashboard", writeToken(t))

	user, pass, err := vc.RPCCredentials(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "secret", pass)
}

func TestRPCCredentials_MissingKey(t *testing.T) {
	srv := fakeVault(t, http.StatusOK, `{"data":{"data":{"rpc_user":"alice"}}}`)
	vc := New(srv.URL, "secret/data/node-dashboard", "node-dashboard", writeToken(t))

	_, _, err := vc.RPCCredentials(context.Background())

	assert.EqualError(t, err, "secret key 'rpc_pass' not found")
}

func TestRPCCredentials_KVDenied(t *testing.T) {
	srv := fakeVault(t, http.StatusForbidden, `{"errors":["1 error occurred"]}`)
	vc := New(srv.URL, "secret/data/node-dashboard", "node-dashboard", writeToken(t))

	_, _, err := vc.RPCCredentials(context.Background())

	assert.EqualError(t, err, "vault KV get failed with status 403: 1 error occurred")
}

func TestRPCCredentials_LoginRejected(t *testing.T) {
	srv := fakeVault(t, http.StatusOK, `{}`)
	vc := New(srv.URL, "secret/data/node-dashboard", "other-role", writeToken(t))

	_, _, err := vc.RPCCredentials(context.Background())

	assert.EqualError(t, err, "vault authentication failed with status 403: permission denied")
}

func TestRPCCredentials_NoServiceAccountToken(t *testing.T) {
	vc := New("http://127.0.0.1:1", "secret/data/node-dashboard", "node-dashboard", filepath.Join(t.TempDir(), "missing"))

	_, _, err := vc.RPCCredentials(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read service account token")
}
