package money

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

var hundred = decimal.NewFromInt(100)

// FromFloat creates a decimal from a float, rounded to 2 places.
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// FromString parses a decimal from a string.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal from a string, panics on error.
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Round rounds to 2 decimal places, half away from zero. Tally amounts
// always carry exactly two fraction digits; rounding half up here keeps
// repeated .5 boundaries from drifting downward the way bankers'
// rounding would.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineAmount computes quantity * rate rounded to 2 places.
func LineAmount(qty, rate decimal.Decimal) decimal.Decimal {
	return qty.Mul(rate).Round(2)
}

// Tax computes amount * (ratePercent/100) rounded to 2 places.
func Tax(amount, ratePercent decimal.Decimal) decimal.Decimal {
	if ratePercent.IsZero() {
		return Zero
	}
	return amount.Mul(ratePercent).Div(hundred).Round(2)
}

// SplitHalf splits a tax amount into a rounded half and the exact
// remainder. The remainder is computed by subtraction, not a second
// independent rounding, so half+remainder always reproduces the input.
func SplitHalf(tax decimal.Decimal) (half, remainder decimal.Decimal) {
	half = tax.Div(decimal.NewFromInt(2)).Round(2)
	remainder = tax.Sub(half).Round(2)
	return half, remainder
}

// Sum sums a slice of decimals.
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// Amount renders a signed decimal with exactly two fraction digits, the
// form Tally expects in AMOUNT tags.
func Amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// IsPositive returns true if the decimal is greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}
