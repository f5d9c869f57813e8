package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tax component labels.
const (
	ComponentCGST = "CGST"
	ComponentSGST = "SGST"
	ComponentIGST = "IGST"
)

// TaxComponent is one tax component applied to a line: CGST+SGST under the
// split regime, IGST alone under the single regime.
type TaxComponent struct {
	Label   string          `json:"label"`
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// LineItem is one invoiced service entry. UnitPrice, Quantity, GSTRate and
// the discount pair are inputs; every other field is derived and recomputed
// in full on each calculation pass.
type LineItem struct {
	ID            uuid.UUID `json:"id"`
	ServicePlanID uuid.UUID `json:"service_plan_id"`
	Name          string    `json:"name"`
	SACCode       string    `json:"sac_code"`

	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	// GSTRate is the statutory total rate for the service (e.g. 18). The
	// regime decides how it is apportioned across components.
	GSTRate decimal.Decimal `json:"gst_rate"`

	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	DiscountSource  DiscountSource  `json:"discount_source"`

	SubAmount        decimal.Decimal `json:"sub_amount"`
	DiscountedAmount decimal.Decimal `json:"discounted_amount"`
	TaxComponents    []TaxComponent  `json:"tax_components"`
	TotalAmount      decimal.Decimal `json:"total_amount"`

	// Inconsistent is set when discountAmount exceeded subAmount and the
	// discounted amount was clamped to zero. Correct reconciliation never
	// produces this; it is a defect signal, not a user-facing error.
	Inconsistent bool `json:"-"`
}

// CalculateLine recomputes every derived field of the line under the given
// regime without changing which discount field is authoritative. The
// computation is idempotent: recalculating an already-calculated line yields
// identical output.
func CalculateLine(line LineItem, regime Regime) LineItem {
	return calculate(line, regime, EditedNone)
}

func calculate(line LineItem, regime Regime, edited EditedField) LineItem {
	line.SubAmount = round2(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))

	line = reconcileDiscount(line, edited)

	discounted := line.SubAmount.Sub(line.DiscountAmount)
	line.Inconsistent = false
	if discounted.IsNegative() {
		discounted = decimal.Zero
		line.Inconsistent = true
	}
	line.DiscountedAmount = round2(discounted)

	line.TaxComponents = componentsFor(regime, line.GSTRate)
	taxTotal := decimal.Zero
	for i := range line.TaxComponents {
		c := &line.TaxComponents[i]
		c.Amount = round2(line.DiscountedAmount.Mul(c.Percent).Div(hundred))
		taxTotal = taxTotal.Add(c.Amount)
	}

	line.TotalAmount = round2(line.DiscountedAmount.Add(taxTotal))
	return line
}

// componentsFor apportions the statutory rate across regime components.
// Percent values stay unrounded until they enter a money computation.
func componentsFor(regime Regime, gstRate decimal.Decimal) []TaxComponent {
	switch regime {
	case RegimeSplit:
		half := gstRate.Div(two)
		return []TaxComponent{
			{Label: ComponentCGST, Percent: half},
			{Label: ComponentSGST, Percent: half},
		}
	case RegimeSingle:
		return []TaxComponent{
			{Label: ComponentIGST, Percent: gstRate},
		}
	default:
		// Regime undetermined: tax computation is withheld entirely.
		return nil
	}
}
