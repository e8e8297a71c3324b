// Package client implements the typed HTTP client for the YieldRoute
// backend: yield optimization, swap routing, generic action execution,
// batches, and account endpoints. In managed execution mode, returned
// transaction payloads are rewritten into calls against the on-chain router
// contract.
package client

// Mode selects how transactions returned by the backend are constructed.
type Mode string

const (
	// ModeDirect returns backend transactions untouched; they target the
	// underlying protocol directly.
	ModeDirect Mode = "direct"

	// ModeManaged rewrites transactions into calls against the configured
	// router contract.
	ModeManaged Mode = "managed"
)

// Strategy restricts which kinds of yield positions the optimizer may pick.
type Strategy string

const (
	StrategyLending   Strategy = "lending"
	StrategyLiquidity Strategy = "liquidity"
	StrategyStaking   Strategy = "staking"
	StrategyAuto      Strategy = "auto"
)

// RiskLevel grades the protocol risk of a recommended position.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ExecutionStatus is the backend-reported state of an executed action.
type ExecutionStatus string

const (
	StatusPending   ExecutionStatus = "pending"
	StatusConfirmed ExecutionStatus = "confirmed"
	StatusFailed    ExecutionStatus = "failed"
)

// Transaction is an inert, unsigned transaction payload. It carries no
// signature material and only becomes meaningful once handed to the
// transaction package for signing.
type Transaction struct {
	To       string  `json:"to"`
	Data     string  `json:"data"`
	Value    string  `json:"value,omitempty"`
	Gas      string  `json:"gas,omitempty"`
	GasPrice string  `json:"gasPrice,omitempty"`
	Nonce    *uint64 `json:"nonce,omitempty"`
}

// YieldRequest asks the backend for the best yield position for an asset.
type YieldRequest struct {
	// Asset is the token contract address to deploy.
	Asset string `json:"asset"`

	// Amount is a positive base-unit integer string.
	Amount string `json:"amount"`

	// Strategy optionally restricts the position kind.
	Strategy Strategy `json:"strategy,omitempty"`

	// MinAPR optionally rejects positions below this APR, as a decimal.
	MinAPR float64 `json:"minApr,omitempty"`

	// MaxRisk optionally caps the acceptable risk level.
	MaxRisk RiskLevel `json:"maxRisk,omitempty"`
}

// YieldResponse is the optimizer's recommendation.
type YieldResponse struct {
	Protocol     string         `json:"protocol"`
	Action       string         `json:"action"`
	Params       map[string]any `json:"params,omitempty"`
	EstimatedAPR float64        `json:"estimatedApr"`
	EstimatedGas string         `json:"estimatedGas,omitempty"`
	RiskLevel    RiskLevel      `json:"riskLevel,omitempty"`

	// Confidence is the backend's confidence in the recommendation, in [0,1].
	Confidence float64 `json:"confidence,omitempty"`

	Transaction *Transaction `json:"transaction,omitempty"`

	// Extra carries backend fields this SDK version does not model.
	Extra map[string]any `json:"extra,omitempty"`
}

// SwapRequest asks the backend for the best route between two tokens.
type SwapRequest struct {
	FromToken string `json:"fromToken"`
	ToToken   string `json:"toToken"`
	Amount    string `json:"amount"`

	// Slippage is a percentage; zero means the 0.5 default.
	Slippage float64 `json:"slippage,omitempty"`

	// Protocol optionally pins the route to one protocol.
	Protocol string `json:"protocol,omitempty"`

	// AggregatorKey is a third-party aggregator API key passed through to
	// the backend, used by aggregator-backed routes.
	AggregatorKey string `json:"aggregatorKey,omitempty"`
}

// Route describes the path a swap takes through one or more protocols.
type Route struct {
	FromToken string   `json:"fromToken"`
	ToToken   string   `json:"toToken"`
	AmountIn  string   `json:"amountIn"`
	AmountOut string   `json:"amountOut"`
	Protocols []string `json:"protocols"`
}

// SwapResponse is the router's chosen swap.
type SwapResponse struct {
	Protocol     string       `json:"protocol"`
	Route        Route        `json:"route"`
	EstimatedGas string       `json:"estimatedGas,omitempty"`
	Transaction  *Transaction `json:"transaction,omitempty"`

	// Extra carries backend fields this SDK version does not model.
	Extra map[string]any `json:"extra,omitempty"`
}

// ExecuteRequest runs a named action on a named protocol with arbitrary
// parameters.
type ExecuteRequest struct {
	Protocol string         `json:"protocol"`
	Action   string         `json:"action"`
	Params   map[string]any `json:"params,omitempty"`
}

// ExecuteResponse reports the outcome of a single executed action.
type ExecuteResponse struct {
	Status      ExecutionStatus `json:"status"`
	Transaction *Transaction    `json:"transaction,omitempty"`
	TxHash      string          `json:"txHash,omitempty"`
}

// BatchItem is one (protocol, action, params) triple of a batch.
type BatchItem struct {
	Protocol string         `json:"protocol"`
	Action   string         `json:"action"`
	Params   map[string]any `json:"params,omitempty"`
}

// BatchItemResult is the backend's per-item outcome for a batch.
type BatchItemResult struct {
	Success bool           `json:"success"`
	Result  map[string]any `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// BatchResponse carries either a single aggregated router transaction or
// per-item results.
type BatchResponse struct {
	Transaction *Transaction      `json:"transaction,omitempty"`
	Results     []BatchItemResult `json:"results,omitempty"`
}

// ProtocolInfo describes one protocol the backend can route through.
type ProtocolInfo struct {
	Name    string   `json:"name"`
	Actions []string `json:"actions,omitempty"`
	Chains  []int64  `json:"chains,omitempty"`
}

// Usage reports the caller's API consumption for the current billing window.
type Usage struct {
	Requests  int64  `json:"requests"`
	Limit     int64  `json:"limit"`
	ResetsAt  string `json:"resetsAt,omitempty"`
	PlanName  string `json:"plan,omitempty"`
	Remaining int64  `json:"remaining,omitempty"`
}
