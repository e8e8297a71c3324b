// Package protocols provides thin per-protocol convenience layers over the
// API client and transaction signer. Every helper validates its inputs
// before any network call, pins the protocol identity on the generic client
// operations, and can optionally sign and send the resulting transaction.
package protocols

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourorg/yieldroute-sdk/client"
	"github.com/yourorg/yieldroute-sdk/transaction"
)

// ErrSignerRequired is returned when execution is requested but no
// transaction signer was configured. Raised before any network call.
var ErrSignerRequired = errors.New("transaction signer required to execute")

// Options controls how a protocol operation is carried out.
type Options struct {
	// Execute signs and sends the returned transaction through the
	// configured signer, instead of returning it unsigned.
	Execute bool
}

// Result is the outcome of a protocol action. TxHash is set when the action
// was executed through the signer.
type Result struct {
	Status      client.ExecutionStatus
	Transaction *client.Transaction
	TxHash      string
}

// SwapResult is the outcome of a protocol swap.
type SwapResult struct {
	Swap   *client.SwapResponse
	TxHash string
}

// base carries the shared wiring of every protocol helper.
type base struct {
	name   string
	api    *client.Client
	signer *transaction.Signer
}

// execute runs a named action with the helper's protocol pinned, optionally
// signing and sending the resulting transaction.
func (b base) execute(ctx context.Context, action string, params map[string]any, opts Options) (*Result, error) {
	if opts.Execute && b.signer == nil {
		return nil, ErrSignerRequired
	}

	resp, err := b.api.Execute(ctx, client.ExecuteRequest{
		Protocol: b.name,
		Action:   action,
		Params:   params,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Status:      resp.Status,
		Transaction: resp.Transaction,
		TxHash:      resp.TxHash,
	}
	if opts.Execute {
		if resp.Transaction == nil {
			return nil, fmt.Errorf("%s %s: backend returned no transaction to execute", b.name, action)
		}
		hash, err := b.signer.SignAndSend(ctx, resp.Transaction)
		if err != nil {
			return nil, err
		}
		result.TxHash = hash
	}
	return result, nil
}

// swap asks the backend for a route pinned to the helper's protocol and
// fails loudly when the backend picks a different one.
func (b base) swap(ctx context.Context, req client.SwapRequest, opts Options) (*SwapResult, error) {
	if opts.Execute && b.signer == nil {
		return nil, ErrSignerRequired
	}

	req.Protocol = b.name
	resp, err := b.api.FindOptimalSwap(ctx, req)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(resp.Protocol, b.name) {
		return nil, fmt.Errorf("protocol mismatch: expected %s, backend selected %s", b.name, resp.Protocol)
	}

	result := &SwapResult{Swap: resp}
	if opts.Execute {
		if resp.Transaction == nil {
			return nil, fmt.Errorf("%s swap: backend returned no transaction to execute", b.name)
		}
		hash, err := b.signer.SignAndSend(ctx, resp.Transaction)
		if err != nil {
			return nil, err
		}
		result.TxHash = hash
	}
	return result, nil
}
