package document

import "github.com/shopspring/decimal"

var (
	one          = decimal.NewFromInt(1)
	primaryShare = decimal.RequireFromString("0.7")
)

// Cents builds a two-decimal amount from an integer number of cents.
func Cents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// InclusiveTax returns the tax portion contained in a tax-inclusive total:
// total - total/(1+rate), rounded to two decimals.
func InclusiveTax(total, rate decimal.Decimal) decimal.Decimal {
	if total.IsZero() || rate.IsZero() {
		return decimal.Zero.Round(2)
	}

	net := total.DivRound(one.Add(rate), 16)

	return total.Sub(net).Round(2)
}

// SplitSubtotal divides a net amount into the 70/30 goods and service lines.
// The second share is the remainder so the two always add up exactly.
func SplitSubtotal(subtotal decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	first := subtotal.Mul(primaryShare).Round(2)
	return first, subtotal.Sub(first)
}
