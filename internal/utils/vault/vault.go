package vault

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const DefaultTokenPath = "/var/run/secrets/kubernetes.io/serviceaccount/token"

// Secret keys read from the KV entry.
const (
	RPCUserKey = "rpc_user"
	RPCPassKey = "rpc_pass"
)

// VaultClient reads node credentials from a Vault KV v2 secret, logging in
// with the pod's Kubernetes service account.
type VaultClient struct {
	client       *resty.Client
	kvSecretPath string
	role         string
	tokenPath    string
}

type loginResponse struct {
	Auth *struct {
		ClientToken string `json:"client_token"`
	} `json:"auth"`
	Errors []string `json:"errors"`
}

type kvResponse struct {
	Data *struct {
		Data map[string]interface{} `json:"data"`
	} `json:"data"`
	Errors []string `json:"errors"`
}

// New creates a client; tokenPath falls back to DefaultTokenPath.
func New(addr, kvSecretPath, role, tokenPath string) *VaultClient {
	if tokenPath == "" {
		tokenPath = DefaultTokenPath
	}
	return &VaultClient{
		client:       resty.New().SetBaseURL(strings.TrimRight(addr, "/")),
		kvSecretPath: strings.Trim(kvSecretPath, "/"),
		role:         role,
		tokenPath:    tokenPath,
	}
}

// RPCCredentials logs in and returns the node's RPC user and password.
func (vc *VaultClient) RPCCredentials(ctx context.Context) (string, string, error) {
	token, err := vc.login(ctx)
	if err != nil {
		return "", "", err
	}

	secrets, err := vc.getKV(ctx, token)
	if err != nil {
		return "", "", err
	}

	user, err := stringSecret(secrets, RPCUserKey)
	if err != nil {
		return "", "", err
	}
	pass, err := stringSecret(secrets, RPCPassKey)
	if err != nil {
		return "", "", err
	}

	return user, pass, nil
}

func (vc *VaultClient) login(ctx context.Context) (string, error) {
	jwt, err := os.ReadFile(vc.tokenPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to read service account token")
	}

	var result loginResponse
	resp, err := vc.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"jwt":  strings.TrimSpace(string(jwt)),
			"role": vc.role,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/v1/auth/kubernetes/login")
	if err != nil {
		return "", errors.Wrap(err, "vault login request failed")
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("vault authentication failed with status %d: %s", resp.StatusCode(), strings.Join(result.Errors, "; "))
	}
	if result.Auth == nil || result.Auth.ClientToken == "" {
		return "", errors.New("vault returned empty client_token")
	}

	return result.Auth.ClientToken, nil
}

func (vc *VaultClient) getKV(ctx context.Context, token string) (map[string]interface{}, error) {
	var result kvResponse
	resp, err := vc.client.R().
		SetContext(ctx).
		SetHeader("X-Vault-Token", token).
		SetResult(&result).
		SetError(&result).
		Get("/v1/" + vc.kvSecretPath)
	if err != nil {
		return nil, errors.Wrap(err, "vault KV request failed")
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("vault KV get failed with status %d: %s", resp.StatusCode(), strings.Join(result.Errors, "; "))
	}
	if result.Data == nil || result.Data.Data == nil {
		return nil, errors.New("vault response missing nested 'data' field")
	}

	return result.Data.Data, nil
}

func stringSecret(secrets map[string]interface{}, key string) (string, error) {
	v, ok := secrets[key]
	if !ok {
		return "", fmt.Errorf("secret key '%s' not found", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("secret value for key '%s' is not a string", key)
	}
	return s, nil
}
