package validate

import (
	"fmt"
	"math/big"
	"strings"
)

// pow10 returns 10^decimals as a big integer.
func pow10(decimals int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

// isDigits reports whether s contains only ASCII digits. Sign characters are
// rejected here even though big.Int.SetString would honor them.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatAmount renders a base-unit integer string as a human-readable decimal
// with the given number of decimals. Trailing zeros in the fractional part
// are stripped and the decimal point is omitted entirely when the fraction is
// zero.
//
// FormatAmount("1005000000000000000", 18) == "1.005"
// FormatAmount("1000000000000000000", 18) == "1"
func FormatAmount(raw string, decimals int) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("invalid decimals: %d", decimals)
	}
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return "", fmt.Errorf("invalid base-unit amount: %q", raw)
	}
	if n.Sign() < 0 {
		return "", fmt.Errorf("negative base-unit amount: %q", raw)
	}
	quo, rem := new(big.Int).QuoRem(n, pow10(decimals), new(big.Int))
	if rem.Sign() == 0 {
		return quo.String(), nil
	}
	digits := rem.String()
	if pad := decimals - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	frac := strings.TrimRight(digits, "0")
	return quo.String() + "." + frac, nil
}

// ParseAmount converts a human-readable decimal string into a base-unit
// integer string. The integer part must be non-empty; the fractional part is
// right-padded with zeros to exactly decimals digits, and digits beyond the
// supported precision are truncated.
//
// ParseAmount("1.5", 18) == "1500000000000000000"
func ParseAmount(human string, decimals int) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("invalid decimals: %d", decimals)
	}
	if human == "" {
		return "", fmt.Errorf("invalid amount format: empty string")
	}
	parts := strings.SplitN(human, ".", 2)
	intPart := parts[0]
	if intPart == "" {
		return "", fmt.Errorf("invalid amount format: %q has no integer part", human)
	}
	if !isDigits(intPart) {
		return "", fmt.Errorf("invalid amount format: %q", human)
	}
	whole, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return "", fmt.Errorf("invalid amount format: %q", human)
	}
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
		if !isDigits(fracPart) {
			return "", fmt.Errorf("invalid amount format: %q", human)
		}
	}
	if len(fracPart) > decimals {
		fracPart = fracPart[:decimals]
	}
	fracPart += strings.Repeat("0", decimals-len(fracPart))

	result := new(big.Int).Mul(whole, pow10(decimals))
	if fracPart != "" {
		frac, ok := new(big.Int).SetString(fracPart, 10)
		if !ok {
			return "", fmt.Errorf("invalid amount format: %q", human)
		}
		result.Add(result, frac)
	}
	return result.String(), nil
}
