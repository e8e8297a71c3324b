package protocols

import (
	"context"

	"github.com/yourorg/yieldroute-sdk/client"
	"github.com/yourorg/yieldroute-sdk/transaction"
	"github.com/yourorg/yieldroute-sdk/validate"
)

// Uniswap wraps exact-in swaps through Uniswap pools.
type Uniswap struct {
	base
}

// NewUniswap creates the Uniswap helper.
func NewUniswap(api *client.Client, signer *transaction.Signer) *Uniswap {
	return &Uniswap{base{name: "uniswap", api: api, signer: signer}}
}

// Swap trades an exact input amount of fromToken for toToken. Slippage is a
// percentage; zero means the client default of 0.5.
func (u *Uniswap) Swap(ctx context.Context, fromToken, toToken, amount string, slippage float64, opts Options) (*SwapResult, error) {
	if err := validate.CheckAddress("fromToken", fromToken); err != nil {
		return nil, err
	}
	if err := validate.CheckAddress("toToken", toToken); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return u.swap(ctx, client.SwapRequest{
		FromToken: fromToken,
		ToToken:   toToken,
		Amount:    amount,
		Slippage:  slippage,
	}, opts)
}
