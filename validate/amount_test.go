package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals int
		want     string
	}{
		{"fraction with trailing zeros stripped", "1005000000000000000", 18, "1.005"},
		{"whole number drops decimal point", "1000000000000000000", 18, "1"},
		{"plain half", "1500000000000000000", 18, "1.5"},
		{"sub-one amount", "500000000000000000", 18, "0.5"},
		{"smallest unit", "1", 18, "0.000000000000000001"},
		{"zero", "0", 18, "0"},
		{"zero decimals", "12345", 0, "12345"},
		{"six decimals", "1234567", 6, "1.234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatAmount(tt.raw, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount_Invalid(t *testing.T) {
	_, err := FormatAmount("abc", 18)
	assert.Error(t, err)

	_, err = FormatAmount("1.5", 18)
	assert.Error(t, err)

	_, err = FormatAmount("-1", 18)
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		human    string
		decimals int
		want     string
	}{
		{"half", "1.5", 18, "1500000000000000000"},
		{"whole", "2", 18, "2000000000000000000"},
		{"sub-one", "0.005", 18, "5000000000000000"},
		{"six decimals", "1.234567", 6, "1234567"},
		{"excess digits truncated", "1.2345678", 6, "1234567"},
		{"zero decimals", "42", 0, "42"},
		{"zero", "0", 18, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.human, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	_, err := ParseAmount("", 18)
	assert.Error(t, err)

	_, err = ParseAmount(".5", 18)
	assert.Error(t, err)

	_, err = ParseAmount("abc", 18)
	assert.Error(t, err)

	// Sign characters are rejected everywhere, including inside the
	// fractional part where big.Int would otherwise fold them into the
	// result arithmetically.
	for _, human := range []string{"1.-5", "1.+5", "-1.5", "+1", "-1", "1.5e3"} {
		_, err = ParseAmount(human, 18)
		assert.Error(t, err, "ParseAmount(%q) must be rejected", human)
	}
}

// Round-trip law: formatting a parsed amount returns the original string for
// inputs with at most `decimals` fractional digits.
func TestAmountRoundTrip(t *testing.T) {
	cases := []struct {
		human    string
		decimals int
	}{
		{"1.5", 18},
		{"1.005", 18},
		{"0.000000000000000001", 18},
		{"123456789.987654321", 18},
		{"42", 6},
		{"0.1", 1},
	}

	for _, tc := range cases {
		raw, err := ParseAmount(tc.human, tc.decimals)
		require.NoError(t, err)
		back, err := FormatAmount(raw, tc.decimals)
		require.NoError(t, err)
		assert.Equal(t, tc.human, back, "round trip of %q with %d decimals", tc.human, tc.decimals)
	}
}
