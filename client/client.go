package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/yourorg/yieldroute-sdk/circuitbreaker"
	"github.com/yourorg/yieldroute-sdk/retry"
)

// ErrBatchRequiresManaged is returned by ExecuteBatch when the client is not
// in managed mode. The check happens locally before any network call.
var ErrBatchRequiresManaged = errors.New("batch execution requires managed mode with a configured router address")

// APIError is a normalized backend error. Its message is the backend's own
// error text when the response body carried one, otherwise a per-endpoint
// fallback.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Client talks to the YieldRoute backend. Construct it with New; the zero
// value is not usable.
type Client struct {
	mu   sync.RWMutex
	base Config // caller-supplied values, router address unresolved
	cfg  Config // validated, router address resolved

	httpClient *http.Client
	getClient  *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.Breaker
	metrics    *clientMetrics
	tracer     trace.Tracer
}

// New validates cfg and returns a ready client. Managed mode without a
// resolvable router address for the configured chain is a construction-time
// error.
func New(cfg Config) (*Client, error) {
	validated, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	c := &Client{
		base:       cfg.withDefaults(),
		cfg:        validated,
		httpClient: httpClient,
		getClient:  newRetryClient(cfg.HTTPClient),
		metrics:    newClientMetrics(cfg.Registerer),
		tracer:     otel.Tracer("yieldroute-sdk"),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	if cfg.FailureThreshold > 0 {
		c.breaker = circuitbreaker.New(cfg.FailureThreshold)
	}
	return c, nil
}

// newRetryClient builds the HTTP client used for idempotent GET endpoints,
// with transport-level retries for connection failures.
func newRetryClient(inner *http.Client) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 3 * time.Second
	rc.Logger = nil
	if inner != nil {
		rc.HTTPClient = inner
	}
	return rc.StandardClient()
}

// snapshot returns the configuration current at call start. In-flight
// operations keep using their snapshot even if the configuration is swapped
// underneath them.
func (c *Client) snapshot() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// ChainID returns the configured chain id.
func (c *Client) ChainID() int64 { return c.snapshot().ChainID }

// Mode returns the configured execution mode.
func (c *Client) Mode() Mode { return c.snapshot().Mode }

// RouterAddress returns the resolved router address, empty in direct mode.
func (c *Client) RouterAddress() string {
	cfg := c.snapshot()
	if cfg.Mode != ModeManaged {
		return ""
	}
	return cfg.RouterAddress
}

// SetChainID re-validates the configuration for the new chain and swaps it
// in. In managed mode the router address is re-resolved for the new chain
// unless it was supplied explicitly at construction.
func (c *Client) SetChainID(chainID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.base
	next.ChainID = chainID
	validated, err := next.Validate()
	if err != nil {
		return err
	}
	c.base = next
	c.cfg = validated
	return nil
}

// SetMode switches between direct and managed execution, re-validating the
// managed-mode router invariant.
func (c *Client) SetMode(mode Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.base
	next.Mode = mode
	validated, err := next.Validate()
	if err != nil {
		return err
	}
	c.base = next
	c.cfg = validated
	return nil
}

// augment flattens body to a JSON object and merges extra fields into it.
// The backend ignores fields it does not know, so the chain id and mode are
// always attached for forward compatibility.
func augment(body any, extra map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	merged := map[string]any{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged, nil
}

// executionContext returns the fields attached to yield/execute bodies so
// the backend can observe the client's execution mode.
func executionContext(cfg Config) map[string]any {
	extra := map[string]any{
		"chainId": cfg.ChainID,
		"mode":    string(cfg.Mode),
	}
	if cfg.Mode == ModeManaged {
		extra["routerAddress"] = cfg.RouterAddress
	}
	return extra
}

// errorBody matches the backend's error envelope.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// decodeError normalizes a non-2xx response into an APIError carrying the
// backend's message when parseable.
func decodeError(resp *http.Response, fallback string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var eb errorBody
	msg := fallback
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error.Message != "" {
		msg = eb.Error.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// do issues one request and decodes a JSON response into out (skipped when
// out is nil). It records breaker state and metrics.
func (c *Client) do(ctx context.Context, httpClient *http.Client, req *http.Request, endpoint, fallback string, out any) error {
	if c.breaker != nil {
		if berr := c.breaker.Allow(); berr != nil {
			return berr
		}
	}
	if c.limiter != nil {
		if lerr := c.limiter.Wait(ctx); lerr != nil {
			return lerr
		}
	}

	start := time.Now()
	err := c.roundTrip(httpClient, req, endpoint, fallback, out)
	c.metrics.observe(endpoint, start, err)
	if c.breaker != nil {
		if breakerFailure(err) {
			c.breaker.Record(err)
		} else {
			c.breaker.Record(nil)
		}
	}
	return err
}

// breakerFailure reports whether err indicates an unhealthy backend. A 4xx
// rejection means the backend is reachable and serviced the request, so one
// caller's bad input can never suspend requests for every caller sharing the
// client.
func breakerFailure(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}

// roundTrip performs the HTTP exchange and decodes the response.
func (c *Client) roundTrip(httpClient *http.Client, req *http.Request, endpoint, fallback string, out any) error {
	logrus.Debugf("YieldRoute request: %s %s", req.Method, req.URL)
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, fallback)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

// postJSON issues an authenticated JSON POST.
func (c *Client) postJSON(ctx context.Context, cfg Config, endpoint, fallback string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, c.httpClient, req, endpoint, fallback, out)
}

// getJSON issues an authenticated GET through the transport-level retry
// client.
func (c *Client) getJSON(ctx context.Context, cfg Config, endpoint string, query url.Values, fallback string, out any) error {
	target := cfg.BaseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	return c.do(ctx, c.getClient, req, endpoint, fallback, out)
}

// OptimizeYield asks the backend for the best yield position for an asset.
// The call is retried under the configured policy; in managed mode the
// returned transaction is replaced by a locally encoded router call.
func (c *Client) OptimizeYield(ctx context.Context, req YieldRequest) (*YieldResponse, error) {
	cfg := c.snapshot()
	ctx, span := c.tracer.Start(ctx, "yieldroute.OptimizeYield")
	defer span.End()

	body, err := augment(req, executionContext(cfg))
	if err != nil {
		return nil, err
	}

	resp, err := retry.Do(ctx, cfg.Retry, func(ctx context.Context) (*YieldResponse, error) {
		var out YieldResponse
		if err := c.postJSON(ctx, cfg, "/optimize-yield", "yield optimization failed", body, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}

	if cfg.Mode == ModeManaged {
		tx, err := managedTransaction(cfg, resp.Protocol, resp.Action, resp.Params)
		if err != nil {
			return nil, err
		}
		resp.Transaction = tx
	}
	return resp, nil
}

// FindOptimalSwap asks the backend for the best route between two tokens.
// Slippage defaults to 0.5 percent. The call is retried under the configured
// policy.
func (c *Client) FindOptimalSwap(ctx context.Context, req SwapRequest) (*SwapResponse, error) {
	cfg := c.snapshot()
	ctx, span := c.tracer.Start(ctx, "yieldroute.FindOptimalSwap")
	defer span.End()

	if req.Slippage == 0 {
		req.Slippage = 0.5
	}
	body, err := augment(req, map[string]any{"chainId": cfg.ChainID})
	if err != nil {
		return nil, err
	}

	return retry.Do(ctx, cfg.Retry, func(ctx context.Context) (*SwapResponse, error) {
		var out SwapResponse
		if err := c.postJSON(ctx, cfg, "/swap/optimal", "swap lookup failed", body, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Execute runs a named action on a named protocol. State-changing, so it is
// never retried by the SDK.
func (c *Client) Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResponse, error) {
	cfg := c.snapshot()
	ctx, span := c.tracer.Start(ctx, "yieldroute.Execute")
	defer span.End()

	body, err := augment(req, executionContext(cfg))
	if err != nil {
		return nil, err
	}
	var out ExecuteResponse
	if err := c.postJSON(ctx, cfg, "/execute", "action execution failed", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecuteBatch submits an ordered list of actions. Only valid in managed
// mode; the precondition is checked locally before any network call. When
// the backend does not supply an aggregated transaction, one is encoded
// locally against the router's batch entry point.
func (c *Client) ExecuteBatch(ctx context.Context, items []BatchItem) (*BatchResponse, error) {
	cfg := c.snapshot()
	if cfg.Mode != ModeManaged || cfg.RouterAddress == "" {
		return nil, ErrBatchRequiresManaged
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("batch must contain at least one item")
	}

	ctx, span := c.tracer.Start(ctx, "yieldroute.ExecuteBatch")
	defer span.End()

	body := executionContext(cfg)
	body["items"] = items

	var out BatchResponse
	if err := c.postJSON(ctx, cfg, "/execute-batch", "batch execution failed", body, &out); err != nil {
		return nil, err
	}
	if out.Transaction == nil {
		tx, err := managedBatchTransaction(cfg, items)
		if err != nil {
			return nil, err
		}
		out.Transaction = tx
	}
	return &out, nil
}

// AvailableProtocols lists the protocols the backend can route through for a
// given action on the configured chain.
func (c *Client) AvailableProtocols(ctx context.Context, action string) ([]ProtocolInfo, error) {
	cfg := c.snapshot()
	ctx, span := c.tracer.Start(ctx, "yieldroute.AvailableProtocols")
	defer span.End()

	query := url.Values{}
	if action != "" {
		query.Set("action", action)
	}
	query.Set("chainId", strconv.FormatInt(cfg.ChainID, 10))

	var out struct {
		Protocols []ProtocolInfo `json:"protocols"`
	}
	if err := c.getJSON(ctx, cfg, "/protocols/available", query, "failed to list protocols", &out); err != nil {
		return nil, err
	}
	return out.Protocols, nil
}

// Health checks backend reachability. Pass/fail only; the backend's error
// body is not surfaced.
func (c *Client) Health(ctx context.Context) error {
	cfg := c.snapshot()
	ctx, span := c.tracer.Start(ctx, "yieldroute.Health")
	defer span.End()

	if err := c.getJSON(ctx, cfg, "/health", nil, "health check failed", nil); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return &APIError{StatusCode: apiErr.StatusCode, Message: "health check failed"}
		}
		return err
	}
	return nil
}

// Usage reports the caller's API consumption.
func (c *Client) Usage(ctx context.Context) (*Usage, error) {
	cfg := c.snapshot()
	ctx, span := c.tracer.Start(ctx, "yieldroute.Usage")
	defer span.End()

	var out Usage
	if err := c.getJSON(ctx, cfg, "/usage", nil, "failed to fetch usage", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
