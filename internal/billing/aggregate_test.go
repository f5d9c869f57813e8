package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"detos/internal/billing"
)

func calculatedLines(regime billing.Regime) []billing.LineItem {
	specs := []struct {
		price   string
		qty     int
		percent string
	}{
		{"1000", 2, "10"},
		{"499.99", 1, "0"},
		{"123.45", 3, "12.3456"},
		{"899", 5, "2.5"},
	}
	lines := make([]billing.LineItem, 0, len(specs))
	for _, s := range specs {
		line := billing.LineItem{UnitPrice: dec(s.price), Quantity: s.qty, GSTRate: dec("18")}
		line.DiscountPercent = dec(s.percent)
		line.DiscountSource = billing.SourcePercent
		lines = append(lines, billing.CalculateLine(line, regime))
	}
	return lines
}

func TestAggregate_Empty(t *testing.T) {
	sum := billing.Aggregate(nil)
	assert.Zero(t, sum.TotalItems)
	assert.True(t, sum.SubTotal.IsZero())
	assert.True(t, sum.GrandTotal.IsZero())
}

func TestAggregate_TotalsAndItemCount(t *testing.T) {
	lines := calculatedLines(billing.RegimeSplit)
	sum := billing.Aggregate(lines)

	assert.Equal(t, 11, sum.TotalItems)

	wantSub := dec("0")
	for _, l := range lines {
		wantSub = wantSub.Add(l.SubAmount)
	}
	assert.True(t, sum.SubTotal.Equal(wantSub))
	assert.True(t, sum.IGSTTotal.IsZero(), "no IGST under the split regime")
	assert.False(t, sum.CGSTTotal.IsZero())
	assert.True(t, sum.CGSTTotal.Equal(sum.SGSTTotal))
}

// The grand total computed by summing line totals must equal
// subTotal − discountTotal + tax totals computed independently.
func TestAggregate_GrandTotalDerivationsAgree(t *testing.T) {
	for _, regime := range []billing.Regime{billing.RegimeSplit, billing.RegimeSingle} {
		lines := calculatedLines(regime)
		sum := billing.Aggregate(lines)

		independent := sum.SubTotal.Sub(sum.DiscountTotal).Add(sum.TaxTotal())
		assert.True(t, sum.GrandTotal.Equal(independent),
			"regime %s: Σ line totals %s vs independent %s", regime, sum.GrandTotal, independent)

		fromLines := dec("0")
		for _, l := range lines {
			fromLines = fromLines.Add(l.TotalAmount)
		}
		assert.True(t, sum.GrandTotal.Equal(fromLines))
	}
}

func TestAggregate_SingleRegimeCollapsesComponents(t *testing.T) {
	sum := billing.Aggregate(calculatedLines(billing.RegimeSingle))
	assert.True(t, sum.CGSTTotal.IsZero())
	assert.True(t, sum.SGSTTotal.IsZero())
	assert.False(t, sum.IGSTTotal.IsZero())
}
