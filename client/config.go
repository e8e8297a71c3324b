package client

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yourorg/yieldroute-sdk/contracts"
	"github.com/yourorg/yieldroute-sdk/retry"
	"github.com/yourorg/yieldroute-sdk/validate"
)

// DefaultBaseURL is the production YieldRoute API endpoint.
const DefaultBaseURL = "https://api.yieldroute.xyz/v1"

// Config holds all client configuration. It is validated once at
// construction; afterwards the client treats it as an immutable value that
// SetChainID and SetMode replace wholesale.
type Config struct {
	// APIKey is the bearer credential sent with every request.
	APIKey string

	// BaseURL of the backend; DefaultBaseURL when empty.
	BaseURL string

	// ChainID all requests are scoped to.
	ChainID int64

	// Mode selects direct or managed transaction construction; ModeDirect
	// when empty.
	Mode Mode

	// RouterAddress overrides the canonical router deployment for the chain.
	// Required in managed mode on chains without a known deployment.
	RouterAddress string

	// Retry policy for the idempotent read/compute endpoints. Zero value
	// means retry.DefaultPolicy.
	Retry retry.Policy

	// RequestsPerSecond enables a client-side rate limiter when positive.
	RequestsPerSecond float64

	// FailureThreshold enables a circuit breaker around backend requests
	// when positive: that many consecutive failures suspend requests.
	FailureThreshold int

	// HTTPClient overrides the default HTTP client for POST requests.
	HTTPClient *http.Client

	// Registerer enables Prometheus instrumentation when non-nil.
	Registerer prometheus.Registerer
}

// withDefaults fills unset optional fields.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Mode == "" {
		c.Mode = ModeDirect
	}
	if c.Retry.MaxRetries == 0 && c.Retry.InitialDelay == 0 && c.Retry.RetryableErrors == nil {
		c.Retry = retry.DefaultPolicy()
	}
	return c
}

// Validate checks the configuration, resolving the router address in managed
// mode. It returns the normalized configuration.
func (c Config) Validate() (Config, error) {
	c = c.withDefaults()

	if c.APIKey == "" {
		return c, fmt.Errorf("config: API key is required")
	}
	if err := validate.CheckChainID("config.ChainID", c.ChainID); err != nil {
		return c, err
	}

	switch c.Mode {
	case ModeDirect, ModeManaged:
	default:
		return c, fmt.Errorf("config: unknown execution mode %q", c.Mode)
	}

	if c.Mode == ModeManaged {
		if c.RouterAddress == "" {
			addr, ok := contracts.DefaultRouter(c.ChainID)
			if !ok {
				return c, fmt.Errorf("config: managed mode requires a router address and chain %d has no default router", c.ChainID)
			}
			c.RouterAddress = addr
		}
		if err := validate.CheckAddress("config.RouterAddress", c.RouterAddress); err != nil {
			return c, err
		}
	}
	return c, nil
}
