package billing

import "github.com/shopspring/decimal"

// CostSummary is a pure projection over the current line collection. It is
// never stored independently; every read recomputes it from the lines.
type CostSummary struct {
	TotalItems    int             `json:"total_items"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	CGSTTotal     decimal.Decimal `json:"cgst_total"`
	SGSTTotal     decimal.Decimal `json:"sgst_total"`
	IGSTTotal     decimal.Decimal `json:"igst_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// TaxTotal returns the sum of all tax component totals.
func (s CostSummary) TaxTotal() decimal.Decimal {
	return s.CGSTTotal.Add(s.SGSTTotal).Add(s.IGSTTotal)
}

// Aggregate folds fully-calculated lines into a summary. Sums run over the
// per-line rounded fields, matching the per-line figures shown on screen
// cent for cent, so subTotal − discountTotal + taxTotal always equals the
// sum of line totals.
func Aggregate(lines []LineItem) CostSummary {
	sum := CostSummary{
		SubTotal:      decimal.Zero,
		DiscountTotal: decimal.Zero,
		CGSTTotal:     decimal.Zero,
		SGSTTotal:     decimal.Zero,
		IGSTTotal:     decimal.Zero,
		GrandTotal:    decimal.Zero,
	}
	for i := range lines {
		line := &lines[i]
		sum.TotalItems += line.Quantity
		sum.SubTotal = sum.SubTotal.Add(line.SubAmount)
		sum.DiscountTotal = sum.DiscountTotal.Add(line.DiscountAmount)
		for _, c := range line.TaxComponents {
			switch c.Label {
			case ComponentCGST:
				sum.CGSTTotal = sum.CGSTTotal.Add(c.Amount)
			case ComponentSGST:
				sum.SGSTTotal = sum.SGSTTotal.Add(c.Amount)
			case ComponentIGST:
				sum.IGSTTotal = sum.IGSTTotal.Add(c.Amount)
			}
		}
		sum.GrandTotal = sum.GrandTotal.Add(line.TotalAmount)
	}
	return sum
}
