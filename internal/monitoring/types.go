package monitoring

import (
	"time"
)

// CircuitBreakerConfig defines the configuration for circuit breakers
type CircuitBreakerConfig struct {
	MaxRequests                 uint32        `json:"max_requests"`
	Interval                    time.Duration `json:"interval"`
	Timeout                     time.Duration `json:"timeout"`
	ConsecutiveFailureThreshold int           `json:"consecutive_failure_threshold"`
}

// TimeoutConfig defines timeout configurations for different operations
type TimeoutConfig struct {
	HealthCheckTimeout time.Duration `json:"health_check_timeout"`
}

const NodeRPCAPIName = "node_rpc"

// CircuitBreakerConfigs provides default configurations for different services
var CircuitBreakerConfigs = map[string]CircuitBreakerConfig{
	NodeRPCAPIName: {
		MaxRequests:                 3,
		Interval:                    30 * time.Second,
		Timeout:                     30 * time.Second,
		ConsecutiveFailureThreshold: 5,
	},
}

// DefaultTimeoutConfig provides default timeout configurations
var DefaultTimeoutConfig = TimeoutConfig{
	HealthCheckTimeout: 3 * time.Second,
}
