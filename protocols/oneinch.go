package protocols

import (
	"context"

	"github.com/yourorg/yieldroute-sdk/client"
	"github.com/yourorg/yieldroute-sdk/transaction"
	"github.com/yourorg/yieldroute-sdk/validate"
)

// OneInch wraps swaps routed through the 1inch aggregator. An aggregator API
// key may be passed through to the backend for rate-limited aggregator
// plans.
type OneInch struct {
	base
	aggregatorKey string
}

// NewOneInch creates the 1inch helper. aggregatorKey may be empty.
func NewOneInch(api *client.Client, signer *transaction.Signer, aggregatorKey string) *OneInch {
	return &OneInch{
		base:          base{name: "oneinch", api: api, signer: signer},
		aggregatorKey: aggregatorKey,
	}
}

// Swap trades an exact input amount of fromToken for toToken through 1inch.
func (o *OneInch) Swap(ctx context.Context, fromToken, toToken, amount string, slippage float64, opts Options) (*SwapResult, error) {
	if err := validate.CheckAddress("fromToken", fromToken); err != nil {
		return nil, err
	}
	if err := validate.CheckAddress("toToken", toToken); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return o.swap(ctx, client.SwapRequest{
		FromToken:     fromToken,
		ToToken:       toToken,
		Amount:        amount,
		Slippage:      slippage,
		AggregatorKey: o.aggregatorKey,
	}, opts)
}
