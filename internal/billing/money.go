// Package billing implements the invoice line-item tax and discount
// calculation engine: numeric input normalization, GST regime resolution,
// percent/amount discount reconciliation, per-line derivation, and invoice
// aggregation. The package is pure and synchronous; it performs no I/O and
// holds no global state.
package billing

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// round2 rounds a money value to 2 decimal places, half away from zero.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// round4 rounds a percent value to 4 decimal places, half away from zero.
func round4(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}
