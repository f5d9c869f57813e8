package billing

import "errors"

// Regime is the resolved GST scheme for an invoice.
type Regime string

const (
	// RegimeSplit applies when buyer and seller share a state: the statutory
	// rate is split into two equal components (CGST + SGST).
	RegimeSplit Regime = "split"
	// RegimeSingle applies across states: one component (IGST) at the full
	// statutory rate.
	RegimeSingle Regime = "single"
)

// ErrRegimeUndetermined is returned while the billing party's state is
// unknown. Callers must withhold tax computation until the state resolves;
// there is no silent default.
var ErrRegimeUndetermined = errors.New("tax regime undetermined: billing state not set")

// ResolveRegime compares the billing party's state with the seller's state.
// The regime is a pure function of the two state IDs and applies uniformly to
// every line of the invoice.
func ResolveRegime(billingStateID, sellerStateID int) (Regime, error) {
	if billingStateID <= 0 {
		return "", ErrRegimeUndetermined
	}
	if billingStateID == sellerStateID {
		return RegimeSplit, nil
	}
	return RegimeSingle, nil
}
