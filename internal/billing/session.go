package billing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrLineNotFound is returned when an update targets a line that is not part
// of the session.
var ErrLineNotFound = errors.New("line not found in session")

// PlanRef carries the plan metadata needed to open a new line.
type PlanRef struct {
	ServicePlanID uuid.UUID
	Name          string
	SACCode       string
	Price         decimal.Decimal
	GSTRate       decimal.Decimal
}

// LinePatch describes a single cell edit. At most one discount field may be
// set per patch; when both are nil the edit only touched quantity.
type LinePatch struct {
	Quantity        *int
	DiscountPercent *decimal.Decimal
	DiscountAmount  *decimal.Decimal
}

// PayloadItem is one reconciled line in the submission payload.
type PayloadItem struct {
	ServicePlanID   uuid.UUID       `json:"service_plan_id"`
	Qty             int             `json:"qty"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
}

// Payload is the outbound submission body. The engine supplies only the
// reconciled, rounded numeric fields; transport is the caller's concern.
type Payload struct {
	Items          []PayloadItem `json:"items"`
	BillingStateID int           `json:"billing_state_id"`
}

// Session owns the ordered line collection of one invoice being edited. It is
// mutated by exactly one caller at a time (one editing request); every
// mutating operation leaves the collection fully recomputed, so reads never
// observe a partially-edited line.
type Session struct {
	sellerStateID  int
	billingStateID int
	lines          []LineItem
	fieldErrors    map[string]string
}

// NewSession opens an editing session for the given seller state. The billing
// state starts unset: the regime is undetermined and tax computation is
// withheld until SetBillingState is called.
func NewSession(sellerStateID int) *Session {
	return &Session{
		sellerStateID: sellerStateID,
		fieldErrors:   map[string]string{},
	}
}

// BillingStateID returns the current billing party state, 0 when unset.
func (s *Session) BillingStateID() int { return s.billingStateID }

// SellerStateID returns the seller state the session was opened with.
func (s *Session) SellerStateID() int { return s.sellerStateID }

// Regime resolves the session's tax regime.
func (s *Session) Regime() (Regime, error) {
	return ResolveRegime(s.billingStateID, s.sellerStateID)
}

// SetBillingState changes the billing party's state and re-derives every line
// under the new regime. This is a total recomputation, not an incremental
// patch: the aggregator never sees lines computed under two regimes.
func (s *Session) SetBillingState(stateID int) {
	s.billingStateID = stateID
	s.recomputeAll()
}

// AddLine opens a new line for the plan with quantity 1 and zero discount.
func (s *Session) AddLine(plan PlanRef) LineItem {
	line := LineItem{
		ID:              uuid.New(),
		ServicePlanID:   plan.ServicePlanID,
		Name:            plan.Name,
		SACCode:         plan.SACCode,
		UnitPrice:       plan.Price,
		GSTRate:         plan.GSTRate,
		Quantity:        1,
		DiscountPercent: decimal.Zero,
		DiscountAmount:  decimal.Zero,
		DiscountSource:  SourcePercent,
	}
	line = calculate(line, s.currentRegime(), EditedNone)

	next := make([]LineItem, len(s.lines), len(s.lines)+1)
	copy(next, s.lines)
	s.lines = append(next, line)
	return line
}

// RestoreLine re-opens a previously saved line (used when editing an existing
// invoice). The discount amount drives reconciliation so saved amounts
// survive the round trip exactly.
func (s *Session) RestoreLine(plan PlanRef, qty int, discountPercent, discountAmount decimal.Decimal, source DiscountSource) LineItem {
	line := LineItem{
		ID:              uuid.New(),
		ServicePlanID:   plan.ServicePlanID,
		Name:            plan.Name,
		SACCode:         plan.SACCode,
		UnitPrice:       plan.Price,
		GSTRate:         plan.GSTRate,
		Quantity:        clampQuantity(qty),
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		DiscountSource:  source,
	}
	line = calculate(line, s.currentRegime(), EditedNone)

	next := make([]LineItem, len(s.lines), len(s.lines)+1)
	copy(next, s.lines)
	s.lines = append(next, line)
	return line
}

// UpdateLine applies one cell edit to the identified line and returns the
// fully-recomputed line. The whole collection is replaced copy-on-write so a
// failed edit leaves prior state untouched. Any field error attached to the
// edited cell is cleared.
func (s *Session) UpdateLine(id uuid.UUID, patch LinePatch) (LineItem, error) {
	idx := -1
	for i := range s.lines {
		if s.lines[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return LineItem{}, ErrLineNotFound
	}

	line := s.lines[idx]
	edited := EditedNone

	if patch.Quantity != nil {
		line.Quantity = clampQuantity(*patch.Quantity)
		s.clearFieldError(idx, "qty")
	}
	if patch.DiscountPercent != nil {
		line.DiscountPercent = *patch.DiscountPercent
		edited = EditedPercent
		s.clearFieldError(idx, "discount_percent")
	}
	if patch.DiscountAmount != nil {
		line.DiscountAmount = *patch.DiscountAmount
		edited = EditedAmount
		s.clearFieldError(idx, "discount_amount")
	}

	line = calculate(line, s.currentRegime(), edited)

	next := make([]LineItem, len(s.lines))
	copy(next, s.lines)
	next[idx] = line
	s.lines = next
	return line, nil
}

// RemoveLine deletes the identified line, preserving the order of the rest.
func (s *Session) RemoveLine(id uuid.UUID) bool {
	for i := range s.lines {
		if s.lines[i].ID == id {
			next := make([]LineItem, 0, len(s.lines)-1)
			next = append(next, s.lines[:i]...)
			next = append(next, s.lines[i+1:]...)
			s.lines = next
			return true
		}
	}
	return false
}

// Lines returns a copy of the current line collection in order.
func (s *Session) Lines() []LineItem {
	out := make([]LineItem, len(s.lines))
	copy(out, s.lines)
	return out
}

// Summary aggregates the current lines.
func (s *Session) Summary() CostSummary {
	return Aggregate(s.lines)
}

// BuildPayload produces the outbound submission payload from the reconciled
// lines.
func (s *Session) BuildPayload() Payload {
	items := make([]PayloadItem, len(s.lines))
	for i := range s.lines {
		items[i] = PayloadItem{
			ServicePlanID:   s.lines[i].ServicePlanID,
			Qty:             s.lines[i].Quantity,
			DiscountPercent: s.lines[i].DiscountPercent,
			DiscountAmount:  s.lines[i].DiscountAmount,
		}
	}
	return Payload{Items: items, BillingStateID: s.billingStateID}
}

// SetFieldError attaches a server-side validation message to one line field,
// keyed items.<rowIndex>.<fieldName>. Computed values are not disturbed.
func (s *Session) SetFieldError(row int, field, msg string) {
	s.fieldErrors[FieldErrorKey(row, field)] = msg
}

// FieldErrors returns a copy of the currently attached field errors.
func (s *Session) FieldErrors() map[string]string {
	out := make(map[string]string, len(s.fieldErrors))
	for k, v := range s.fieldErrors {
		out[k] = v
	}
	return out
}

// FieldErrorKey builds the row/field key used by the submission collaborator.
func FieldErrorKey(row int, field string) string {
	return fmt.Sprintf("items.%d.%s", row, field)
}

func (s *Session) clearFieldError(row int, field string) {
	delete(s.fieldErrors, FieldErrorKey(row, field))
}

// currentRegime returns the resolved regime, or "" while undetermined, which
// calculate treats as "withhold tax computation".
func (s *Session) currentRegime() Regime {
	regime, err := ResolveRegime(s.billingStateID, s.sellerStateID)
	if err != nil {
		return ""
	}
	return regime
}

func (s *Session) recomputeAll() {
	regime := s.currentRegime()
	next := make([]LineItem, len(s.lines))
	for i := range s.lines {
		next[i] = calculate(s.lines[i], regime, EditedNone)
	}
	s.lines = next
}

func clampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
