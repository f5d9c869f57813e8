package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"detos/internal/billing"
)

// Editing the percent, reading the derived amount, and feeding that amount
// back through the amount-sourced path must reproduce the percent within
// rounding tolerance.
func TestDiscount_RoundTrip(t *testing.T) {
	for _, tc := range []struct {
		price   string
		qty     int
		percent string
	}{
		{"1000", 2, "10"},
		{"499.99", 3, "12.5"},
		{"750", 1, "0.0001"},
		{"100", 10, "99.9999"},
		{"1234.56", 7, "33.3333"},
	} {
		line := billing.LineItem{UnitPrice: dec(tc.price), Quantity: tc.qty, GSTRate: dec("18")}
		line.DiscountPercent = dec(tc.percent)
		line.DiscountSource = billing.SourcePercent
		line = billing.CalculateLine(line, billing.RegimeSplit)

		derived := line.DiscountAmount

		back := billing.LineItem{UnitPrice: dec(tc.price), Quantity: tc.qty, GSTRate: dec("18")}
		back.DiscountAmount = derived
		back.DiscountSource = billing.SourceAmount
		back = billing.CalculateLine(back, billing.RegimeSplit)

		tolerance := dec(tc.percent).Mul(dec("0.0001")).Add(dec("0.01"))
		diff := back.DiscountPercent.Sub(dec(tc.percent)).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance),
			"price=%s qty=%d percent=%s: got %s back", tc.price, tc.qty, tc.percent, back.DiscountPercent)
	}
}

func TestDiscount_ZeroSubAmountDerivesZeroPercent(t *testing.T) {
	line := billing.LineItem{UnitPrice: dec("0"), Quantity: 5, GSTRate: dec("18")}
	line.DiscountAmount = dec("0")
	line.DiscountSource = billing.SourceAmount

	got := billing.CalculateLine(line, billing.RegimeSplit)

	assert.True(t, got.DiscountPercent.IsZero())
}

func TestDiscount_UnsetSourceDefaultsToPercent(t *testing.T) {
	line := billing.LineItem{UnitPrice: dec("500"), Quantity: 1, GSTRate: dec("18")}

	got := billing.CalculateLine(line, billing.RegimeSplit)

	assert.Equal(t, billing.SourcePercent, got.DiscountSource)
	assert.True(t, got.DiscountPercent.IsZero())
	assert.True(t, got.DiscountAmount.IsZero())
}

func TestDiscount_AmountDerivedToTwoPlaces(t *testing.T) {
	line := billing.LineItem{UnitPrice: dec("333.33"), Quantity: 1, GSTRate: dec("18")}
	line.DiscountPercent = dec("3.3333")
	line.DiscountSource = billing.SourcePercent

	got := billing.CalculateLine(line, billing.RegimeSplit)

	// 333.33 * 3.3333% = 11.11088889 → 11.11
	assertDec(t, "11.11", got.DiscountAmount)
	assert.GreaterOrEqual(t, got.DiscountAmount.Exponent(), int32(-2))
}
