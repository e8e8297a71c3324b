package protocols

import (
	"context"

	"github.com/yourorg/yieldroute-sdk/client"
	"github.com/yourorg/yieldroute-sdk/transaction"
	"github.com/yourorg/yieldroute-sdk/validate"
)

// Curve wraps stable swaps and liquidity provision on Curve pools.
type Curve struct {
	base
}

// NewCurve creates the Curve helper.
func NewCurve(api *client.Client, signer *transaction.Signer) *Curve {
	return &Curve{base{name: "curve", api: api, signer: signer}}
}

// Exchange swaps fromToken into toToken through a Curve route. The backend
// must route through Curve; any other protocol choice is an error.
func (c *Curve) Exchange(ctx context.Context, fromToken, toToken, amount string, opts Options) (*SwapResult, error) {
	if err := validate.CheckAddress("fromToken", fromToken); err != nil {
		return nil, err
	}
	if err := validate.CheckAddress("toToken", toToken); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return c.swap(ctx, client.SwapRequest{
		FromToken: fromToken,
		ToToken:   toToken,
		Amount:    amount,
	}, opts)
}

// AddLiquidity deposits a single asset into a pool.
func (c *Curve) AddLiquidity(ctx context.Context, pool, asset, amount string, opts Options) (*Result, error) {
	if err := validate.CheckAddress("pool", pool); err != nil {
		return nil, err
	}
	if err := validate.CheckAddress("asset", asset); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return c.execute(ctx, "add-liquidity", map[string]any{
		"pool":   pool,
		"asset":  asset,
		"amount": amount,
	}, opts)
}

// RemoveLiquidity burns pool tokens back into a single asset.
func (c *Curve) RemoveLiquidity(ctx context.Context, pool, asset, amount string, opts Options) (*Result, error) {
	if err := validate.CheckAddress("pool", pool); err != nil {
		return nil, err
	}
	if err := validate.CheckAddress("asset", asset); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return c.execute(ctx, "remove-liquidity", map[string]any{
		"pool":   pool,
		"asset":  asset,
		"amount": amount,
	}, opts)
}
