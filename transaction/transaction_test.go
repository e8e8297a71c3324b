package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/yieldroute-sdk/client"
)

const (
	testAccount = "0x2222222222222222222222222222222222222222"
	testHash    = "0x" + "ab" + "cd" + "ef" + "0123456789abcdef0123456789abcdef0123456789abcdef0123456789"
)

// fakeTransport scripts JSON-RPC responses per method. Results round-trip
// through JSON so hexutil types decode the same way they would over the
// wire.
type fakeTransport struct {
	mu      sync.Mutex
	calls   []string
	handler func(method string, args []any) (any, error)
}

func (f *fakeTransport) CallContext(ctx context.Context, result any, method string, args ...any) error {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	f.mu.Unlock()

	out, err := f.handler(method, args)
	if err != nil {
		return err
	}
	if result == nil || out == nil {
		return nil
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, result)
}

func (f *fakeTransport) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.calls {
		if m == method {
			n++
		}
	}
	return n
}

func TestSignAndSend(t *testing.T) {
	var sent map[string]any
	transport := &fakeTransport{handler: func(method string, args []any) (any, error) {
		switch method {
		case "eth_accounts":
			return []string{testAccount}, nil
		case "eth_sendTransaction":
			sent = args[0].(map[string]any)
			return testHash, nil
		}
		return nil, errors.New("unexpected method " + method)
	}}

	nonce := uint64(7)
	hash, err := New(transport).SignAndSend(context.Background(), &client.Transaction{
		To:    "0x3333333333333333333333333333333333333333",
		Data:  "0xdead",
		Value: "0x0",
		Nonce: &nonce,
	})
	require.NoError(t, err)
	assert.Equal(t, testHash, hash)

	assert.Equal(t, testAccount, sent["from"])
	assert.Equal(t, "0xdead", sent["data"])
	assert.Equal(t, "0x7", sent["nonce"])
	// Unset optional fields are stripped before submission.
	_, hasGas := sent["gas"]
	assert.False(t, hasGas)
	_, hasGasPrice := sent["gasPrice"]
	assert.False(t, hasGasPrice)
}

func TestSignAndSend_RequiresAccounts(t *testing.T) {
	transport := &fakeTransport{handler: func(method string, args []any) (any, error) {
		return []string{}, nil
	}}

	_, err := New(transport).SignAndSend(context.Background(), &client.Transaction{To: testAccount})
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = New(nil).SignAndSend(context.Background(), &client.Transaction{To: testAccount})
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestSignAndSend_WrapsTransportFailure(t *testing.T) {
	transport := &fakeTransport{handler: func(method string, args []any) (any, error) {
		if method == "eth_accounts" {
			return []string{testAccount}, nil
		}
		return nil, errors.New("user rejected request")
	}}

	_, err := New(transport).SignAndSend(context.Background(), &client.Transaction{To: testAccount})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "transaction failed:"), err.Error())
	assert.Contains(t, err.Error(), "user rejected request")
}

func TestWaitForConfirmation(t *testing.T) {
	var polls int
	transport := &fakeTransport{handler: func(method string, args []any) (any, error) {
		switch method {
		case "eth_getTransactionReceipt":
			polls++
			if polls == 1 {
				// Still pending on the first poll.
				return nil, nil
			}
			return map[string]any{
				"transactionHash": testHash,
				"blockNumber":     "0x64",
				"blockHash":       "0xbeef",
				"gasUsed":         "0x5208",
				"status":          "0x1",
			}, nil
		case "eth_blockNumber":
			// 0x66 = block 102, two confirmations past block 100.
			return "0x66", nil
		}
		return nil, errors.New("unexpected method " + method)
	}}

	signer := New(transport).WithPollInterval(time.Millisecond)
	receipt, err := signer.WaitForConfirmation(context.Background(), testHash, 2, time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), receipt.BlockNumber)
	assert.Equal(t, uint64(21000), receipt.GasUsed)
	assert.True(t, receipt.Succeeded())
	assert.GreaterOrEqual(t, polls, 2)
}

func TestWaitForConfirmation_WaitsForDepth(t *testing.T) {
	currentBlock := 100
	transport := &fakeTransport{handler: func(method string, args []any) (any, error) {
		switch method {
		case "eth_getTransactionReceipt":
			return map[string]any{
				"transactionHash": testHash,
				"blockNumber":     "0x64",
				"status":          "0x1",
			}, nil
		case "eth_blockNumber":
			currentBlock++
			return fmt.Sprintf("0x%x", currentBlock), nil
		}
		return nil, errors.New("unexpected method " + method)
	}}

	signer := New(transport).WithPollInterval(time.Millisecond)
	receipt, err := signer.WaitForConfirmation(context.Background(), testHash, 3, time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), receipt.BlockNumber)
	// Needed several polls for the chain to advance 3 blocks past 100.
	assert.GreaterOrEqual(t, transport.callCount("eth_blockNumber"), 2)
}

func TestWaitForConfirmation_SwallowsTransientErrors(t *testing.T) {
	var polls int
	transport := &fakeTransport{handler: func(method string, args []any) (any, error) {
		switch method {
		case "eth_getTransactionReceipt":
			polls++
			if polls < 3 {
				return nil, errors.New("node temporarily unavailable")
			}
			return map[string]any{
				"transactionHash": testHash,
				"blockNumber":     "0x1",
				"status":          "0x1",
			}, nil
		case "eth_blockNumber":
			return "0x10", nil
		}
		return nil, errors.New("unexpected method " + method)
	}}

	signer := New(transport).WithPollInterval(time.Millisecond)
	_, err := signer.WaitForConfirmation(context.Background(), testHash, 1, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3, polls)
}

func TestWaitForConfirmation_Timeout(t *testing.T) {
	transport := &fakeTransport{handler: func(method string, args []any) (any, error) {
		return nil, nil // receipt never appears
	}}

	signer := New(transport).WithPollInterval(time.Millisecond)
	_, err := signer.WaitForConfirmation(context.Background(), testHash, 1, 20*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out after 20ms")
}

func TestWaitForConfirmation_RejectsBadHash(t *testing.T) {
	signer := New(&fakeTransport{handler: func(string, []any) (any, error) { return nil, nil }})
	_, err := signer.WaitForConfirmation(context.Background(), "0x123", 1, time.Second)
	assert.Error(t, err)
}

func TestSignSendAndWait(t *testing.T) {
	transport := &fakeTransport{handler: func(method string, args []any) (any, error) {
		switch method {
		case "eth_accounts":
			return []string{testAccount}, nil
		case "eth_sendTransaction":
			return testHash, nil
		case "eth_getTransactionReceipt":
			return map[string]any{
				"transactionHash": testHash,
				"blockNumber":     "0x5",
				"status":          "0x1",
			}, nil
		case "eth_blockNumber":
			return "0x9", nil
		}
		return nil, errors.New("unexpected method " + method)
	}}

	signer := New(transport).WithPollInterval(time.Millisecond)
	receipt, err := signer.SignSendAndWait(context.Background(), &client.Transaction{To: testAccount, Data: "0x"}, 1, time.Second)
	require.NoError(t, err)
	assert.Equal(t, testHash, receipt.TxHash)
}

func TestEstimateGasAndGasPrice(t *testing.T) {
	transport := &fakeTransport{handler: func(method string, args []any) (any, error) {
		switch method {
		case "eth_estimateGas":
			return "0x5208", nil
		case "eth_gasPrice":
			return "0x3b9aca00", nil
		}
		return nil, errors.New("unexpected method " + method)
	}}

	signer := New(transport)
	gas, err := signer.EstimateGas(context.Background(), &client.Transaction{To: testAccount, Data: "0x"})
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), gas)

	price, err := signer.GasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1000000000", price.String())
}

func TestGasPrice_WrapsFailure(t *testing.T) {
	transport := &fakeTransport{handler: func(method string, args []any) (any, error) {
		return nil, errors.New("node down")
	}}

	_, err := New(transport).GasPrice(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gas price query failed")
}

func TestEstimateGas_WrapsFailure(t *testing.T) {
	transport := &fakeTransport{handler: func(method string, args []any) (any, error) {
		return nil, errors.New("execution reverted")
	}}

	_, err := New(transport).EstimateGas(context.Background(), &client.Transaction{To: testAccount})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gas estimation failed")
}

