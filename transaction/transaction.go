// Package transaction provides signing, broadcast and confirmation tracking
// for the unsigned transactions returned by the YieldRoute backend. Signing
// and broadcast are delegated to an injected wallet transport as a single
// atomic request; the SDK never touches key material.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/yourorg/yieldroute-sdk/client"
	"github.com/yourorg/yieldroute-sdk/validate"
	"github.com/yourorg/yieldroute-sdk/wallet"
)

// ErrNotConnected is returned when the wallet exposes no accounts.
var ErrNotConnected = errors.New("wallet connection required: no accounts available")

// DefaultConfirmationTimeout bounds WaitForConfirmation when the caller
// passes no timeout.
const DefaultConfirmationTimeout = 5 * time.Minute

// defaultPollInterval is the receipt polling cadence.
const defaultPollInterval = 2 * time.Second

// Signer signs, broadcasts and tracks transactions through a wallet
// transport.
type Signer struct {
	transport    wallet.Transport
	pollInterval time.Duration
}

// New creates a Signer over a wallet transport.
func New(transport wallet.Transport) *Signer {
	return &Signer{
		transport:    transport,
		pollInterval: defaultPollInterval,
	}
}

// WithPollInterval sets a custom receipt polling cadence and returns the
// signer.
func (s *Signer) WithPollInterval(interval time.Duration) *Signer {
	if interval > 0 {
		s.pollInterval = interval
	}
	return s
}

// SignAndSend hands an unsigned transaction to the wallet for signing and
// broadcast, returning the resulting hash. It requires at least one account
// on the transport and strips unset optional fields before submission.
func (s *Signer) SignAndSend(ctx context.Context, tx *client.Transaction) (string, error) {
	if s == nil || s.transport == nil {
		return "", ErrNotConnected
	}
	var accounts []string
	if err := s.transport.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return "", fmt.Errorf("transaction failed: %w", err)
	}
	if len(accounts) == 0 {
		return "", ErrNotConnected
	}

	params := map[string]any{
		"from": accounts[0],
		"to":   tx.To,
		"data": tx.Data,
	}
	if tx.Value != "" {
		params["value"] = tx.Value
	}
	if tx.Gas != "" {
		params["gas"] = tx.Gas
	}
	if tx.GasPrice != "" {
		params["gasPrice"] = tx.GasPrice
	}
	if tx.Nonce != nil {
		params["nonce"] = hexutil.EncodeUint64(*tx.Nonce)
	}

	var hash string
	if err := s.transport.CallContext(ctx, &hash, "eth_sendTransaction", params); err != nil {
		return "", fmt.Errorf("transaction failed: %w", err)
	}
	logrus.Debugf("Transaction submitted: %s", hash)
	return hash, nil
}

// WaitForConfirmation polls for the transaction receipt until it is mined
// and buried under the requested number of confirmations, or until timeout
// (DefaultConfirmationTimeout when zero). Transient lookup errors during
// polling are swallowed and polling continues.
func (s *Signer) WaitForConfirmation(ctx context.Context, txHash string, confirmations uint64, timeout time.Duration) (*Receipt, error) {
	if s == nil || s.transport == nil {
		return nil, ErrNotConnected
	}
	if err := validate.CheckTxHash("txHash", txHash); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultConfirmationTimeout
	}

	deadline := time.Now().Add(timeout)
	for {
		receipt, confirmed, err := s.checkConfirmation(ctx, txHash, confirmations)
		if err == nil && confirmed {
			return receipt, nil
		}
		if err != nil {
			logrus.Debugf("Receipt poll for %s failed: %v", txHash, err)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("transaction confirmation timed out after %s", timeout)
		}
		timer := time.NewTimer(s.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// checkConfirmation performs one poll: fetch the receipt and, when mined,
// compare the current block height against the receipt's block.
func (s *Signer) checkConfirmation(ctx context.Context, txHash string, confirmations uint64) (*Receipt, bool, error) {
	var raw *rawReceipt
	if err := s.transport.CallContext(ctx, &raw, "eth_getTransactionReceipt", txHash); err != nil {
		return nil, false, err
	}
	if raw == nil || raw.BlockNumber == nil {
		return nil, false, nil
	}

	var current hexutil.Uint64
	if err := s.transport.CallContext(ctx, &current, "eth_blockNumber"); err != nil {
		return nil, false, err
	}
	receiptBlock := uint64(*raw.BlockNumber)
	if uint64(current) < receiptBlock || uint64(current)-receiptBlock < confirmations {
		return nil, false, nil
	}
	return raw.toReceipt(), true, nil
}

// SignSendAndWait is the sequential composition of SignAndSend and
// WaitForConfirmation.
func (s *Signer) SignSendAndWait(ctx context.Context, tx *client.Transaction, confirmations uint64, timeout time.Duration) (*Receipt, error) {
	hash, err := s.SignAndSend(ctx, tx)
	if err != nil {
		return nil, err
	}
	return s.WaitForConfirmation(ctx, hash, confirmations, timeout)
}

// EstimateGas asks the transport for a gas estimate of an unsigned
// transaction.
func (s *Signer) EstimateGas(ctx context.Context, tx *client.Transaction) (uint64, error) {
	if s == nil || s.transport == nil {
		return 0, ErrNotConnected
	}
	params := map[string]any{
		"to":   tx.To,
		"data": tx.Data,
	}
	if tx.Value != "" {
		params["value"] = tx.Value
	}
	var estimate hexutil.Uint64
	if err := s.transport.CallContext(ctx, &estimate, "eth_estimateGas", params); err != nil {
		return 0, fmt.Errorf("gas estimation failed: %w", err)
	}
	return uint64(estimate), nil
}

// GasPrice returns the transport's suggested gas price in wei.
func (s *Signer) GasPrice(ctx context.Context) (*big.Int, error) {
	if s == nil || s.transport == nil {
		return nil, ErrNotConnected
	}
	var price hexutil.Big
	if err := s.transport.CallContext(ctx, &price, "eth_gasPrice"); err != nil {
		return nil, fmt.Errorf("gas price query failed: %w", err)
	}
	return (*big.Int)(&price), nil
}
