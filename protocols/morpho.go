package protocols

import (
	"context"

	"github.com/yourorg/yieldroute-sdk/client"
	"github.com/yourorg/yieldroute-sdk/transaction"
	"github.com/yourorg/yieldroute-sdk/validate"
)

// Morpho wraps lending operations on Morpho Blue markets.
type Morpho struct {
	base
}

// NewMorpho creates the Morpho helper.
func NewMorpho(api *client.Client, signer *transaction.Signer) *Morpho {
	return &Morpho{base{name: "morpho", api: api, signer: signer}}
}

// Supply lends an asset into a market.
func (m *Morpho) Supply(ctx context.Context, market, asset, amount string, opts Options) (*Result, error) {
	if err := validate.CheckAddress("market", market); err != nil {
		return nil, err
	}
	if err := validate.CheckAddress("asset", asset); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return m.execute(ctx, "supply", map[string]any{
		"market": market,
		"asset":  asset,
		"amount": amount,
	}, opts)
}

// Withdraw removes a lent asset from a market.
func (m *Morpho) Withdraw(ctx context.Context, market, asset, amount string, opts Options) (*Result, error) {
	if err := validate.CheckAddress("market", market); err != nil {
		return nil, err
	}
	if err := validate.CheckAddress("asset", asset); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return m.execute(ctx, "withdraw", map[string]any{
		"market": market,
		"asset":  asset,
		"amount": amount,
	}, opts)
}

// SupplyCollateral posts collateral into a market without lending it out.
func (m *Morpho) SupplyCollateral(ctx context.Context, market, asset, amount string, opts Options) (*Result, error) {
	if err := validate.CheckAddress("market", market); err != nil {
		return nil, err
	}
	if err := validate.CheckAddress("asset", asset); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return m.execute(ctx, "supply-collateral", map[string]any{
		"market": market,
		"asset":  asset,
		"amount": amount,
	}, opts)
}
