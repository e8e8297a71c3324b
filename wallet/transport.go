// Package wallet wraps an injected wallet RPC transport: connection and
// account discovery, native and ERC-20 balance reads, network switching, and
// account/chain change subscriptions.
package wallet

import (
	"context"
	"strconv"
	"sync"
)

// Transport is the request-style interface a wallet provider must expose.
// go-ethereum's *rpc.Client satisfies it directly.
type Transport interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// EventEmitter is the optional notification capability of a transport. On
// registers a handler for an event and returns a removal function.
type EventEmitter interface {
	On(event string, handler func(payload any)) (remove func())
}

// Events pushed by EIP-1193 style transports.
const (
	EventAccountsChanged = "accountsChanged"
	EventChainChanged    = "chainChanged"
)

// codedError is the shape of JSON-RPC errors carrying a numeric code.
// go-ethereum's rpc error types implement it.
type codedError interface {
	ErrorCode() int
}

// chainNotAddedCode is the EIP-3085 error code a wallet returns when asked to
// switch to a chain it has never seen.
const chainNotAddedCode = 4902

// subscribe wires a handler through the transport's emitter capability when
// present. The returned cleanup is idempotent and is a no-op for transports
// without listener removal.
func subscribe(t Transport, event string, handler func(payload any)) func() {
	emitter, ok := t.(EventEmitter)
	if !ok {
		return func() {}
	}
	remove := emitter.On(event, handler)
	var once sync.Once
	return func() {
		once.Do(func() {
			if remove != nil {
				remove()
			}
		})
	}
}

// toStringSlice converts an event payload into a string slice, accepting
// both []string and the []any shape produced by JSON decoding.
func toStringSlice(payload any) ([]string, bool) {
	switch v := payload.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// parseHexQuantity parses 0x-prefixed quantities such as chain ids pushed by
// chainChanged events. The prefix match is case-insensitive because some
// transports emit 0X.
func parseHexQuantity(s string) (int64, bool) {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	n, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
