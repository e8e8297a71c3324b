// Package contracts bundles the ABI fragments for the on-chain router
// pattern: the router itself, the permission manager, the asset registry and
// an example per-protocol adapter. The SDK only ever encodes call data
// against these ABIs; it never invokes the contracts directly.
package contracts

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed abi/router.json
var routerJSON []byte

//go:embed abi/permission_manager.json
var permissionManagerJSON []byte

//go:embed abi/asset_registry.json
var assetRegistryJSON []byte

//go:embed abi/adapter.json
var adapterJSON []byte

var (
	parseOnce sync.Once
	parseErr  error

	routerABI            abi.ABI
	permissionManagerABI abi.ABI
	assetRegistryABI     abi.ABI
	adapterABI           abi.ABI
)

func parseAll() {
	parse := func(name string, raw []byte) abi.ABI {
		parsed, err := abi.JSON(bytes.NewReader(raw))
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("parsing %s ABI: %w", name, err)
		}
		return parsed
	}
	routerABI = parse("router", routerJSON)
	permissionManagerABI = parse("permission manager", permissionManagerJSON)
	assetRegistryABI = parse("asset registry", assetRegistryJSON)
	adapterABI = parse("adapter", adapterJSON)
}

// Router returns the parsed router ABI.
func Router() (abi.ABI, error) {
	parseOnce.Do(parseAll)
	return routerABI, parseErr
}

// PermissionManager returns the parsed permission manager ABI.
func PermissionManager() (abi.ABI, error) {
	parseOnce.Do(parseAll)
	return permissionManagerABI, parseErr
}

// AssetRegistry returns the parsed asset registry ABI.
func AssetRegistry() (abi.ABI, error) {
	parseOnce.Do(parseAll)
	return assetRegistryABI, parseErr
}

// Adapter returns the parsed example adapter ABI.
func Adapter() (abi.ABI, error) {
	parseOnce.Do(parseAll)
	return adapterABI, parseErr
}

// PackExecuteAction encodes a call to the router's action-execution entry
// point for a single (protocol, action, params) triple. params is an opaque
// byte payload, typically JSON-encoded action parameters.
func PackExecuteAction(protocol, action string, params []byte) ([]byte, error) {
	router, err := Router()
	if err != nil {
		return nil, err
	}
	data, err := router.Pack("executeAction", protocol, action, params)
	if err != nil {
		return nil, fmt.Errorf("encoding executeAction(%s, %s): %w", protocol, action, err)
	}
	return data, nil
}

// PackExecuteBatch encodes a call to the router's batch entry point. The
// three slices are parallel and must be the same length.
func PackExecuteBatch(protocols, actions []string, params [][]byte) ([]byte, error) {
	if len(protocols) != len(actions) || len(actions) != len(params) {
		return nil, fmt.Errorf("batch slices must have equal length: %d protocols, %d actions, %d params",
			len(protocols), len(actions), len(params))
	}
	router, err := Router()
	if err != nil {
		return nil, err
	}
	data, err := router.Pack("executeBatch", protocols, actions, params)
	if err != nil {
		return nil, fmt.Errorf("encoding executeBatch: %w", err)
	}
	return data, nil
}

// defaultRouters maps chain ids to the canonical router deployment on that
// chain. Managed-mode clients without an explicit router address fall back
// to this registry.
var defaultRouters = map[int64]string{
	1:     "0x7a9f5f2d3b8c41e6950d1f0a83b6c2e4d5f70a11", // Ethereum mainnet
	10:    "0x3c2b8d4f1a7e60c9852f3b0d14e5a6c7b8d90f22", // Optimism
	137:   "0x9e1d6c3a5f2b70d4861e4c0f25a7b8d9c0e11a33", // Polygon
	8453:  "0x5b4a2e8c7d1f30b6972a5d1e36b8c9d0e1f22b44", // Base
	42161: "0x1f8c5a3e9b2d60a7083b6e2f47c9d0e1f2a33c55", // Arbitrum One
}

// DefaultRouter returns the canonical router address for a chain, or false
// when no deployment is known for it.
func DefaultRouter(chainID int64) (string, bool) {
	addr, ok := defaultRouters[chainID]
	return addr, ok
}

// SupportedRouterChains lists the chain ids with a known router deployment.
func SupportedRouterChains() []int64 {
	chains := make([]int64, 0, len(defaultRouters))
	for id := range defaultRouters {
		chains = append(chains, id)
	}
	return chains
}

// RouterMethodID returns the 4-byte selector of a router method as a hex
// string, useful when inspecting call data in logs or tests.
func RouterMethodID(name string) (string, error) {
	router, err := Router()
	if err != nil {
		return "", err
	}
	method, ok := router.Methods[name]
	if !ok {
		return "", fmt.Errorf("unknown router method %q", name)
	}
	return "0x" + strings.ToLower(fmt.Sprintf("%x", method.ID)), nil
}
