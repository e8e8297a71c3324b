package client

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/yourorg/yieldroute-sdk/contracts"
)

// EncodeActionParams serializes an action's parameter mapping into the opaque
// bytes payload the router hands to the protocol adapter. Parameters are
// JSON-encoded; an unserializable mapping is an error rather than a silently
// empty payload, so a broken transaction can never reach the chain.
func EncodeActionParams(params map[string]any) ([]byte, error) {
	if len(params) == 0 {
		return []byte{}, nil
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encoding action params: %w", err)
	}
	return raw, nil
}

// managedTransaction builds the managed-mode replacement transaction: a call
// to the router's action-execution entry point, targeting the configured
// router with zero value.
func managedTransaction(cfg Config, protocol, action string, params map[string]any) (*Transaction, error) {
	payload, err := EncodeActionParams(params)
	if err != nil {
		return nil, err
	}
	data, err := contracts.PackExecuteAction(protocol, action, payload)
	if err != nil {
		return nil, fmt.Errorf("building managed transaction: %w", err)
	}
	return &Transaction{
		To:    cfg.RouterAddress,
		Data:  hexutil.Encode(data),
		Value: "0x0",
	}, nil
}

// managedBatchTransaction aggregates a batch into a single router call.
func managedBatchTransaction(cfg Config, items []BatchItem) (*Transaction, error) {
	protocols := make([]string, len(items))
	actions := make([]string, len(items))
	params := make([][]byte, len(items))
	for i, item := range items {
		payload, err := EncodeActionParams(item.Params)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		protocols[i] = item.Protocol
		actions[i] = item.Action
		params[i] = payload
	}
	data, err := contracts.PackExecuteBatch(protocols, actions, params)
	if err != nil {
		return nil, fmt.Errorf("building managed batch transaction: %w", err)
	}
	return &Transaction{
		To:    cfg.RouterAddress,
		Data:  hexutil.Encode(data),
		Value: "0x0",
	}, nil
}
