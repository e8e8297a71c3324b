// Package validate provides input validation for addresses, amounts, chain
// identifiers and transaction hashes, plus conversion between human-readable
// decimal amounts and integer base-unit strings.
package validate

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var (
	addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	txHashPattern  = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

// IsValidAddress reports whether s is a 0x-prefixed 40-hex-digit address.
// The check is case-insensitive; no checksum verification is performed.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// IsValidAmount reports whether s is a base-10 integer strictly greater than
// zero. Amounts are base-unit strings, so decimal points, signs other than an
// implicit positive, and non-numeric characters are all rejected.
func IsValidAmount(s string) bool {
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return false
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return false
	}
	return n.Sign() > 0
}

// IsValidChainID reports whether id is a positive chain identifier.
func IsValidChainID(id int64) bool {
	return id > 0
}

// IsValidTxHash reports whether s is a 0x-prefixed 64-hex-digit transaction hash.
func IsValidTxHash(s string) bool {
	return txHashPattern.MatchString(s)
}

// CheckAddress returns a descriptive error when value is not a valid address.
// The field name is included so callers can validate several arguments and
// still produce a useful message.
func CheckAddress(field, value string) error {
	if !IsValidAddress(value) {
		return fmt.Errorf("invalid address for %s: %q", field, value)
	}
	return nil
}

// CheckAmount returns a descriptive error when value is not a positive
// base-unit integer string.
func CheckAmount(field, value string) error {
	if !IsValidAmount(value) {
		return fmt.Errorf("invalid amount for %s: %q (expected positive base-unit integer)", field, value)
	}
	return nil
}

// CheckChainID returns a descriptive error when id is not a positive integer.
func CheckChainID(field string, id int64) error {
	if !IsValidChainID(id) {
		return fmt.Errorf("invalid chain id for %s: %d", field, id)
	}
	return nil
}

// CheckTxHash returns a descriptive error when value is not a valid
// transaction hash.
func CheckTxHash(field, value string) error {
	if !IsValidTxHash(value) {
		return fmt.Errorf("invalid transaction hash for %s: %q", field, value)
	}
	return nil
}
