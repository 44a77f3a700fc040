package resilience

import "time"

// Defaults shared by the football-data.org and ESPN clients. Both answer within a few
// hundred milliseconds when healthy, so five straight failures already mean an outage.
const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenMaxReq   = 2
)

// CircuitBreakerConfig mirrors the UPSTREAM_CIRCUIT_* settings.
type CircuitBreakerConfig struct {
	Enabled bool
	// FailureThreshold counts consecutive transient failures before the circuit opens.
	FailureThreshold int
	// OpenTimeout is how long an open circuit rejects calls before probing again.
	OpenTimeout time.Duration
	// HalfOpenMaxReq limits concurrent probe calls while half-open.
	HalfOpenMaxReq int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: defaultFailureThreshold,
		OpenTimeout:      defaultOpenTimeout,
		HalfOpenMaxReq:   defaultHalfOpenMaxReq,
	}
}

// NormalizeCircuitBreakerConfig fills unset or invalid limits with the defaults and
// leaves Enabled as given.
func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaultFailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultOpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaultHalfOpenMaxReq
	}
	return cfg
}
