package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tally-bridge/internal/money"
)

func TestRound_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"-10.005", "-10.01"},
		{"2.675", "2.68"},
		{"0.125", "0.13"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d := money.MustFromString(tt.in)
			assert.Equal(t, tt.expected, money.Amount(money.Round(d)))
		})
	}
}

func TestLineAmount(t *testing.T) {
	qty := decimal.NewFromInt(3)
	rate := money.MustFromString("33.333")
	assert.Equal(t, "100.00", money.Amount(money.LineAmount(qty, rate)))
}

func TestTax(t *testing.T) {
	amount := decimal.NewFromInt(1000)
	rate := decimal.NewFromInt(18)
	assert.Equal(t, "180.00", money.Amount(money.Tax(amount, rate)))
}

func TestTax_ZeroRate(t *testing.T) {
	amount := decimal.NewFromInt(1000)
	assert.True(t, money.Tax(amount, decimal.Zero).IsZero())
}

func TestSplitHalf_Exactness(t *testing.T) {
	// half + remainder must reproduce the rounded tax exactly, with no
	// rounding leakage between the two duty ledgers.
	for _, raw := range []string{"0.01", "10.005", "100.00", "333.33"} {
		t.Run(raw, func(t *testing.T) {
			tax := money.Round(money.MustFromString(raw))
			half, remainder := money.SplitHalf(tax)
			require.True(t, half.Add(remainder).Equal(tax),
				"half %s + remainder %s != tax %s", half, remainder, tax)
		})
	}
}

func TestSplitHalf_OddCent(t *testing.T) {
	half, remainder := money.SplitHalf(money.MustFromString("0.01"))
	assert.Equal(t, "0.01", money.Amount(half))
	assert.Equal(t, "0.00", money.Amount(remainder))
}

func TestSum(t *testing.T) {
	values := []decimal.Decimal{
		decimal.NewFromInt(1),
		money.MustFromString("2.50"),
		money.MustFromString("-0.50"),
	}
	assert.Equal(t, "3.00", money.Amount(money.Sum(values)))
}

func TestAmount_TwoFractionDigits(t *testing.T) {
	assert.Equal(t, "1180.00", money.Amount(decimal.NewFromInt(1180)))
	assert.Equal(t, "-90.00", money.Amount(decimal.NewFromInt(-90)))
	assert.Equal(t, "0.50", money.Amount(money.MustFromString("0.5")))
}
