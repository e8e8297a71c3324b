package protocols

import (
	"context"

	"github.com/yourorg/yieldroute-sdk/client"
	"github.com/yourorg/yieldroute-sdk/transaction"
	"github.com/yourorg/yieldroute-sdk/validate"
)

// Pendle wraps PT/YT trading on Pendle markets. PT is the principal token
// and YT the yield token of a split yield-bearing position.
type Pendle struct {
	base
}

// NewPendle creates the Pendle helper.
func NewPendle(api *client.Client, signer *transaction.Signer) *Pendle {
	return &Pendle{base{name: "pendle", api: api, signer: signer}}
}

func (p *Pendle) checkMarketOrder(market, tokenIn, amount string) error {
	if err := validate.CheckAddress("market", market); err != nil {
		return err
	}
	if err := validate.CheckAddress("tokenIn", tokenIn); err != nil {
		return err
	}
	return validate.CheckAmount("amount", amount)
}

// BuyPT swaps tokenIn for the market's principal token.
func (p *Pendle) BuyPT(ctx context.Context, market, tokenIn, amount string, opts Options) (*Result, error) {
	if err := p.checkMarketOrder(market, tokenIn, amount); err != nil {
		return nil, err
	}
	return p.execute(ctx, "buy-pt", map[string]any{
		"market":  market,
		"tokenIn": tokenIn,
		"amount":  amount,
	}, opts)
}

// SellPT swaps the market's principal token back into tokenOut.
func (p *Pendle) SellPT(ctx context.Context, market, tokenOut, amount string, opts Options) (*Result, error) {
	if err := p.checkMarketOrder(market, tokenOut, amount); err != nil {
		return nil, err
	}
	return p.execute(ctx, "sell-pt", map[string]any{
		"market":   market,
		"tokenOut": tokenOut,
		"amount":   amount,
	}, opts)
}

// BuyYT swaps tokenIn for the market's yield token.
func (p *Pendle) BuyYT(ctx context.Context, market, tokenIn, amount string, opts Options) (*Result, error) {
	if err := p.checkMarketOrder(market, tokenIn, amount); err != nil {
		return nil, err
	}
	return p.execute(ctx, "buy-yt", map[string]any{
		"market":  market,
		"tokenIn": tokenIn,
		"amount":  amount,
	}, opts)
}

// SellYT swaps the market's yield token back into tokenOut.
func (p *Pendle) SellYT(ctx context.Context, market, tokenOut, amount string, opts Options) (*Result, error) {
	if err := p.checkMarketOrder(market, tokenOut, amount); err != nil {
		return nil, err
	}
	return p.execute(ctx, "sell-yt", map[string]any{
		"market":   market,
		"tokenOut": tokenOut,
		"amount":   amount,
	}, opts)
}
