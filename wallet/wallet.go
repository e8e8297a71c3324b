package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/yourorg/yieldroute-sdk/validate"
)

var (
	// ErrNoTransport is returned when no wallet transport was supplied.
	ErrNoTransport = errors.New("no wallet transport available")

	// ErrLocked is returned when the wallet authorizes zero accounts.
	ErrLocked = errors.New("wallet is locked: no accounts authorized")
)

// erc20ABI carries only the fragment needed for raw balance reads.
const erc20ABI = `[{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`

// Info describes the currently authorized wallet state.
type Info struct {
	// Address is the primary (first) authorized account.
	Address string

	// Accounts lists every authorized account.
	Accounts []string

	// ChainID is the chain the wallet is currently on.
	ChainID int64
}

// Wallet wraps an injected wallet transport.
type Wallet struct {
	transport Transport
	erc20     abi.ABI
}

// New wraps a transport. A nil transport is allowed; prompting operations
// will fail with ErrNoTransport and Info will report nothing.
func New(transport Transport) *Wallet {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		// The ABI string is a compile-time constant; this cannot happen at
		// runtime with a released build.
		panic(fmt.Sprintf("wallet: parsing erc20 ABI: %v", err))
	}
	return &Wallet{transport: transport, erc20: parsed}
}

// Connect prompts the wallet for account access and returns the authorized
// accounts. It fails with ErrNoTransport when no transport is available and
// ErrLocked when the wallet reports zero accounts.
func (w *Wallet) Connect(ctx context.Context) ([]string, error) {
	if w.transport == nil {
		return nil, ErrNoTransport
	}
	var accounts []string
	if err := w.transport.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, fmt.Errorf("wallet connection failed: %w", err)
	}
	if len(accounts) == 0 {
		return nil, ErrLocked
	}
	logrus.Debugf("Wallet connected with %d account(s)", len(accounts))
	return accounts, nil
}

// Info is the non-prompting counterpart of Connect: it returns nil rather
// than an error when no transport is available or no accounts are
// authorized.
func (w *Wallet) Info(ctx context.Context) (*Info, error) {
	if w.transport == nil {
		return nil, nil
	}
	var accounts []string
	if err := w.transport.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("reading wallet accounts failed: %w", err)
	}
	if len(accounts) == 0 {
		return nil, nil
	}

	var chainHex string
	if err := w.transport.CallContext(ctx, &chainHex, "eth_chainId"); err != nil {
		return nil, fmt.Errorf("reading wallet chain id failed: %w", err)
	}
	chainID, ok := parseHexQuantity(chainHex)
	if !ok {
		return nil, fmt.Errorf("reading wallet chain id failed: malformed quantity %q", chainHex)
	}

	return &Info{
		Address:  accounts[0],
		Accounts: accounts,
		ChainID:  chainID,
	}, nil
}

// Balance returns the native token balance of an address in base units.
func (w *Wallet) Balance(ctx context.Context, address string) (*big.Int, error) {
	if w.transport == nil {
		return nil, ErrNoTransport
	}
	if err := validate.CheckAddress("address", address); err != nil {
		return nil, err
	}
	var result hexutil.Big
	if err := w.transport.CallContext(ctx, &result, "eth_getBalance", address, "latest"); err != nil {
		return nil, fmt.Errorf("balance query failed: %w", err)
	}
	return (*big.Int)(&result), nil
}

// TokenBalance returns an ERC-20 token balance of holder in base units. The
// balanceOf call data is ABI-encoded locally and sent as a raw eth_call.
func (w *Wallet) TokenBalance(ctx context.Context, token, holder string) (*big.Int, error) {
	if w.transport == nil {
		return nil, ErrNoTransport
	}
	if err := validate.CheckAddress("token", token); err != nil {
		return nil, err
	}
	if err := validate.CheckAddress("holder", holder); err != nil {
		return nil, err
	}

	data, err := w.erc20.Pack("balanceOf", common.HexToAddress(holder))
	if err != nil {
		return nil, fmt.Errorf("encoding balanceOf call: %w", err)
	}

	call := map[string]string{
		"to":   token,
		"data": hexutil.Encode(data),
	}
	var raw hexutil.Bytes
	if err := w.transport.CallContext(ctx, &raw, "eth_call", call, "latest"); err != nil {
		return nil, fmt.Errorf("token balance query failed: %w", err)
	}

	values, err := w.erc20.Unpack("balanceOf", raw)
	if err != nil {
		return nil, fmt.Errorf("decoding balanceOf result: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("decoding balanceOf result: got %d values", len(values))
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("decoding balanceOf result: unexpected type %T", values[0])
	}
	return balance, nil
}

// SwitchNetwork asks the wallet to switch to another chain. A wallet that
// has never seen the chain reports a distinct error code, which is surfaced
// as a targeted message.
func (w *Wallet) SwitchNetwork(ctx context.Context, chainID int64) error {
	if w.transport == nil {
		return ErrNoTransport
	}
	if err := validate.CheckChainID("chainID", chainID); err != nil {
		return err
	}

	param := map[string]string{"chainId": hexutil.EncodeUint64(uint64(chainID))}
	err := w.transport.CallContext(ctx, nil, "wallet_switchEthereumChain", param)
	if err == nil {
		return nil
	}
	var coded codedError
	if errors.As(err, &coded) && coded.ErrorCode() == chainNotAddedCode {
		return fmt.Errorf("chain %d is not added to the wallet", chainID)
	}
	return fmt.Errorf("network switch failed: %w", err)
}

// OnAccountsChanged subscribes to account changes. The returned cleanup is
// idempotent and a no-op when the transport cannot remove listeners.
func (w *Wallet) OnAccountsChanged(handler func(accounts []string)) func() {
	if w.transport == nil {
		return func() {}
	}
	return subscribe(w.transport, EventAccountsChanged, func(payload any) {
		if accounts, ok := toStringSlice(payload); ok {
			handler(accounts)
		}
	})
}

// OnChainChanged subscribes to chain changes. The returned cleanup is
// idempotent and a no-op when the transport cannot remove listeners.
func (w *Wallet) OnChainChanged(handler func(chainID int64)) func() {
	if w.transport == nil {
		return func() {}
	}
	return subscribe(w.transport, EventChainChanged, func(payload any) {
		if s, ok := payload.(string); ok {
			if chainID, ok := parseHexQuantity(s); ok {
				handler(chainID)
			}
		}
	})
}
