package protocols

import (
	"context"

	"github.com/yourorg/yieldroute-sdk/client"
	"github.com/yourorg/yieldroute-sdk/transaction"
	"github.com/yourorg/yieldroute-sdk/validate"
)

// Aave wraps lending operations on Aave v3 markets.
type Aave struct {
	base
}

// NewAave creates the Aave helper. The signer may be nil when execution is
// never requested.
func NewAave(api *client.Client, signer *transaction.Signer) *Aave {
	return &Aave{base{name: "aave", api: api, signer: signer}}
}

// Supply deposits an asset into the lending pool.
func (a *Aave) Supply(ctx context.Context, asset, amount string, opts Options) (*Result, error) {
	if err := validate.CheckAddress("asset", asset); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return a.execute(ctx, "supply", map[string]any{"asset": asset, "amount": amount}, opts)
}

// Withdraw removes a previously supplied asset from the lending pool.
func (a *Aave) Withdraw(ctx context.Context, asset, amount string, opts Options) (*Result, error) {
	if err := validate.CheckAddress("asset", asset); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return a.execute(ctx, "withdraw", map[string]any{"asset": asset, "amount": amount}, opts)
}

// Borrow draws an asset against supplied collateral.
func (a *Aave) Borrow(ctx context.Context, asset, amount string, opts Options) (*Result, error) {
	if err := validate.CheckAddress("asset", asset); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return a.execute(ctx, "borrow", map[string]any{"asset": asset, "amount": amount}, opts)
}

// Repay pays back borrowed debt.
func (a *Aave) Repay(ctx context.Context, asset, amount string, opts Options) (*Result, error) {
	if err := validate.CheckAddress("asset", asset); err != nil {
		return nil, err
	}
	if err := validate.CheckAmount("amount", amount); err != nil {
		return nil, err
	}
	return a.execute(ctx, "repay", map[string]any{"asset": asset, "amount": amount}, opts)
}
