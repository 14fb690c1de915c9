package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dwarvesf/node-dashboard/internal/types/environments"
)

type AppConfig struct {
	Environment environments.Environment
	ApiServer   ApiServerConfig
	Node        NodeConfig
	Dashboard   DashboardConfig
	Vault       VaultConfig
	Uptime      UptimeConfig
}

type ApiServerConfig struct {
	Host           string
	Port           string
	AllowedOrigins string
	StaticDir      string
}

// NodeConfig points the gateway at the upstream JSON-RPC node.
type NodeConfig struct {
	RPCURL  string
	RPCUser string
	RPCPass string

	// zero means no client-side timeout, the transport default applies
	Timeout               time.Duration
	CircuitBreakerEnabled bool
}

type DashboardConfig struct {
	GatewayURL      string
	StatusInterval  time.Duration
	BalanceInterval time.Duration
	TxsInterval     time.Duration
	TxCount         int

	// zero leaves a poll bounded only by the transport
	PollTimeout time.Duration
	// empty disables the health and metrics listener
	AdminAddr string
}

// VaultConfig is optional; when Addr is set the node credentials are read
// from the KV secret at KVPath instead of RPC_USER and RPC_PASS.
type VaultConfig struct {
	Addr      string
	Role      string
	KVPath    string
	TokenPath string
}

type UptimeConfig struct {
	WebhookURL string
	Interval   time.Duration
}

func New() *AppConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// this will not override env variables if they already exist
	godotenv.Load(".env." + env)

	return &AppConfig{
		Environment: environments.Parse(env),
		ApiServer: ApiServerConfig{
			Host:           envOrDefault("HOST", "0.0.0.0"),
			Port:           envOrDefault("PORT", "3000"),
			AllowedOrigins: envOrDefault("ALLOWED_ORIGINS", "*"),
			StaticDir:      os.Getenv("STATIC_DIR"),
		},
		Node: NodeConfig{
			RPCURL:                envOrDefault("RPC_URL", "http://127.0.0.1:8332"),
			RPCUser:               os.Getenv("RPC_USER"),
			RPCPass:               os.Getenv("RPC_PASS"),
			Timeout:               envVarAsDuration("RPC_TIMEOUT", 0),
			CircuitBreakerEnabled: envVarAsBool("RPC_CIRCUIT_BREAKER"),
		},
		Dashboard: DashboardConfig{
			GatewayURL:      envOrDefault("GATEWAY_URL", "http://127.0.0.1:3000"),
			StatusInterval:  envVarAsDuration("DASHBOARD_STATUS_INTERVAL", 10*time.Second),
			BalanceInterval: envVarAsDuration("DASHBOARD_BALANCE_INTERVAL", 10*time.Second),
			TxsInterval:     envVarAsDuration("DASHBOARD_TXS_INTERVAL", 15*time.Second),
			TxCount:         envVarAtoi("DASHBOARD_TX_COUNT", 10),
			PollTimeout:     envVarAsDuration("DASHBOARD_POLL_TIMEOUT", 0),
			AdminAddr:       os.Getenv("DASHBOARD_ADMIN_ADDR"),
		},
		Vault: VaultConfig{
			Addr:      os.Getenv("VAULT_ADDR"),
			Role:      os.Getenv("VAULT_ROLE"),
			KVPath:    os.Getenv("VAULT_KV_PATH"),
			TokenPath: os.Getenv("VAULT_TOKEN_PATH"),
		},
		Uptime: UptimeConfig{
			WebhookURL: os.Getenv("UPTIME_WEBHOOK_URL"),
			Interval:   envVarAsDuration("UPTIME_WEBHOOK_INTERVAL", time.Minute),
		},
	}
}

// ListenAddr is the host:port pair the gateway binds to.
func (c *AppConfig) ListenAddr() string {
	return c.ApiServer.Host + ":" + c.ApiServer.Port
}

func envOrDefault(envName, fallback string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}

	return fallback
}

func envVarAtoi(envName string, fallback int) int {
	valueStr := os.Getenv(envName)
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		panic(err)
	}

	return value
}

func envVarAsDuration(envName string, fallback time.Duration) time.Duration {
	valueStr := os.Getenv(envName)
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		panic(err)
	}

	return value
}

func envVarAsBool(envName string) bool {
	valueStr := os.Getenv(envName)
	return valueStr == "true"
}
