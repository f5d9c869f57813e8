package billing

import "github.com/shopspring/decimal"

// DiscountSource records which discount field the user last drove; the other
// field is always derived from it.
type DiscountSource string

const (
	SourcePercent DiscountSource = "percent"
	SourceAmount  DiscountSource = "amount"
)

// EditedField identifies which discount field, if any, triggered the current
// recomputation.
type EditedField int

const (
	// EditedNone means neither discount field was edited directly; the
	// non-source field is re-derived from the source so a quantity or price
	// change never overwrites a user-entered value.
	EditedNone EditedField = iota
	EditedPercent
	EditedAmount
)

// reconcileDiscount resolves the percent/amount discount pair against the
// line's current SubAmount. Exactly one field drives each reconciliation; the
// other is a deterministic function of it.
func reconcileDiscount(line LineItem, edited EditedField) LineItem {
	// A freshly added line has no source yet; treat it as a zero percent
	// discount.
	if line.DiscountSource == "" {
		line.DiscountSource = SourcePercent
	}

	switch edited {
	case EditedPercent:
		line.DiscountSource = SourcePercent
		line.DiscountAmount = deriveAmount(line.SubAmount, line.DiscountPercent)
	case EditedAmount:
		line.DiscountSource = SourceAmount
		line.DiscountPercent = derivePercent(line.SubAmount, line.DiscountAmount)
	default:
		if line.DiscountSource == SourceAmount {
			line.DiscountPercent = derivePercent(line.SubAmount, line.DiscountAmount)
		} else {
			line.DiscountAmount = deriveAmount(line.SubAmount, line.DiscountPercent)
		}
	}
	return line
}

// deriveAmount computes the absolute discount from the percent, rounded to 2
// decimal places.
func deriveAmount(subAmount, percent decimal.Decimal) decimal.Decimal {
	return round2(subAmount.Mul(percent).Div(hundred))
}

// derivePercent computes the percent from the absolute discount, rounded to 4
// decimal places. A zero sub-amount yields zero percent.
func derivePercent(subAmount, amount decimal.Decimal) decimal.Decimal {
	if subAmount.IsZero() {
		return decimal.Zero
	}
	return round4(amount.Div(subAmount).Mul(hundred))
}
