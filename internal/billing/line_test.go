package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"detos/internal/billing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func sampleLine() billing.LineItem {
	return billing.LineItem{
		Name:      "Ceramic Coating",
		SACCode:   "998714",
		UnitPrice: dec("1000"),
		Quantity:  2,
		GSTRate:   dec("18"),
	}
}

func TestCalculateLine_SplitRegime(t *testing.T) {
	line := sampleLine()
	line.DiscountPercent = dec("10")
	line.DiscountSource = billing.SourcePercent

	got := billing.CalculateLine(line, billing.RegimeSplit)

	assertDec(t, "2000", got.SubAmount)
	assertDec(t, "200", got.DiscountAmount)
	assertDec(t, "1800", got.DiscountedAmount)
	require.Len(t, got.TaxComponents, 2)
	assert.Equal(t, billing.ComponentCGST, got.TaxComponents[0].Label)
	assert.Equal(t, billing.ComponentSGST, got.TaxComponents[1].Label)
	assertDec(t, "9", got.TaxComponents[0].Percent)
	assertDec(t, "162", got.TaxComponents[0].Amount)
	assertDec(t, "162", got.TaxComponents[1].Amount)
	assertDec(t, "2124", got.TotalAmount)
}

func TestCalculateLine_SingleRegime(t *testing.T) {
	line := sampleLine()
	line.DiscountPercent = dec("10")
	line.DiscountSource = billing.SourcePercent

	got := billing.CalculateLine(line, billing.RegimeSingle)

	require.Len(t, got.TaxComponents, 1)
	assert.Equal(t, billing.ComponentIGST, got.TaxComponents[0].Label)
	assertDec(t, "18", got.TaxComponents[0].Percent)
	assertDec(t, "324", got.TaxComponents[0].Amount)
	assertDec(t, "2124", got.TotalAmount)
}

func TestCalculateLine_Idempotent(t *testing.T) {
	line := sampleLine()
	line.DiscountPercent = dec("12.3456")
	line.DiscountSource = billing.SourcePercent

	once := billing.CalculateLine(line, billing.RegimeSplit)
	twice := billing.CalculateLine(once, billing.RegimeSplit)

	assert.True(t, once.SubAmount.Equal(twice.SubAmount))
	assert.True(t, once.DiscountPercent.Equal(twice.DiscountPercent))
	assert.True(t, once.DiscountAmount.Equal(twice.DiscountAmount))
	assert.True(t, once.DiscountedAmount.Equal(twice.DiscountedAmount))
	assert.True(t, once.TotalAmount.Equal(twice.TotalAmount))
	require.Equal(t, len(once.TaxComponents), len(twice.TaxComponents))
	for i := range once.TaxComponents {
		assert.True(t, once.TaxComponents[i].Amount.Equal(twice.TaxComponents[i].Amount))
	}
}

// Two 9% components and one 18% component must carry the same total tax for
// the same discounted amount.
func TestCalculateLine_RegimeSymmetry(t *testing.T) {
	for _, price := range []string{"999.99", "1000", "123.45", "0.01"} {
		line := sampleLine()
		line.UnitPrice = dec(price)
		line.Quantity = 3
		line.DiscountPercent = dec("7.5")
		line.DiscountSource = billing.SourcePercent

		split := billing.CalculateLine(line, billing.RegimeSplit)
		single := billing.CalculateLine(line, billing.RegimeSingle)

		splitTax := split.TaxComponents[0].Amount.Add(split.TaxComponents[1].Amount)
		singleTax := single.TaxComponents[0].Amount

		// Per-component rounding may differ from full-rate rounding by at
		// most one cent; on a clean half split of an even rate they agree.
		diff := splitTax.Sub(singleTax).Abs()
		assert.True(t, diff.LessThanOrEqual(dec("0.01")),
			"price %s: split %s vs single %s", price, splitTax, singleTax)
	}
}

func TestCalculateLine_QuantityChangeRederivesFromPercent(t *testing.T) {
	line := sampleLine()
	line.DiscountPercent = dec("10")
	line.DiscountSource = billing.SourcePercent
	line = billing.CalculateLine(line, billing.RegimeSplit)
	assertDec(t, "200", line.DiscountAmount)

	line.Quantity = 3
	got := billing.CalculateLine(line, billing.RegimeSplit)

	assertDec(t, "3000", got.SubAmount)
	assertDec(t, "300", got.DiscountAmount, "amount must follow the percent source")
	assertDec(t, "10", got.DiscountPercent)
}

func TestCalculateLine_QuantityChangePreservesAmountSource(t *testing.T) {
	line := sampleLine()
	line.DiscountAmount = dec("150")
	line.DiscountSource = billing.SourceAmount

	line = billing.CalculateLine(line, billing.RegimeSplit)
	assertDec(t, "7.5", line.DiscountPercent)

	line.Quantity = 4
	got := billing.CalculateLine(line, billing.RegimeSplit)

	assertDec(t, "150", got.DiscountAmount, "user-entered amount must survive the quantity edit")
	assertDec(t, "3.75", got.DiscountPercent)
}

func TestCalculateLine_ClampsNegativeDiscountedAmount(t *testing.T) {
	line := sampleLine()
	line.DiscountAmount = dec("5000")
	line.DiscountSource = billing.SourceAmount

	got := billing.CalculateLine(line, billing.RegimeSplit)

	assertDec(t, "0", got.DiscountedAmount)
	assertDec(t, "0", got.TotalAmount)
	assert.True(t, got.Inconsistent)
}

func TestCalculateLine_UndeterminedRegimeWithholdsTax(t *testing.T) {
	line := sampleLine()
	line.DiscountPercent = dec("10")
	line.DiscountSource = billing.SourcePercent

	got := billing.CalculateLine(line, "")

	assert.Empty(t, got.TaxComponents)
	assertDec(t, "1800", got.TotalAmount, "total falls back to the discounted amount")
}

func TestCalculateLine_RoundsHalfAwayFromZero(t *testing.T) {
	line := billing.LineItem{
		UnitPrice: dec("33.335"),
		Quantity:  1,
		GSTRate:   dec("18"),
	}
	got := billing.CalculateLine(line, billing.RegimeSingle)
	// 33.335 rounds up, not to even.
	assertDec(t, "33.34", got.SubAmount)
}
