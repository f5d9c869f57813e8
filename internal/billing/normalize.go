package billing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity bounds for a single line.
const (
	MinQuantity = 1
	MaxQuantity = 1000
)

// Percent inputs carry at most 4 fractional digits, amounts at most 2. A
// leading zero is only valid on its own ("0" or "0.xx"); sequences like "00"
// are rejected as malformed keystrokes.
var (
	percentPattern = regexp.MustCompile(`^(?:0|[1-9][0-9]*)?(?:\.[0-9]{0,4})?$`)
	amountPattern  = regexp.MustCompile(`^(?:0|[1-9][0-9]*)?(?:\.[0-9]{0,2})?$`)
	nonDigits      = regexp.MustCompile(`[^0-9]`)
)

// NormalizeQuantity applies a quantity keystroke. Non-digit characters are
// stripped and values above the maximum clamp down. The returned string may
// be empty: that is a transient "still typing" state, committed only on blur.
func NormalizeQuantity(raw string) string {
	s := nonDigits.ReplaceAllString(raw, "")
	if s == "" {
		return ""
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Digits only but out of int range; clamp.
		return strconv.Itoa(MaxQuantity)
	}
	if n > MaxQuantity {
		return strconv.Itoa(MaxQuantity)
	}
	return s
}

// CommitQuantity resolves a quantity field on blur: empty or below the
// minimum becomes the minimum, above the maximum clamps down.
func CommitQuantity(raw string) int {
	s := nonDigits.ReplaceAllString(raw, "")
	n, err := strconv.Atoi(s)
	if err != nil || n < MinQuantity {
		return MinQuantity
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}

// NormalizePercent validates a percent keystroke. ok=false rejects the edit:
// the input is not applied and the prior value is retained. Empty input is a
// valid transient state.
func NormalizePercent(raw string) (string, bool) {
	if !percentPattern.MatchString(raw) {
		return "", false
	}
	if exceedsHundred(raw) {
		return "", false
	}
	return raw, true
}

// NormalizeAmount validates an absolute-amount keystroke with the same
// contract as NormalizePercent, without the upper bound.
func NormalizeAmount(raw string) (string, bool) {
	if !amountPattern.MatchString(raw) {
		return "", false
	}
	return raw, true
}

// CommitPercent resolves a percent field on blur; empty or partial input
// becomes zero.
func CommitPercent(raw string) decimal.Decimal {
	return commitDecimal(raw)
}

// CommitAmount resolves an amount field on blur; empty or partial input
// becomes zero.
func CommitAmount(raw string) decimal.Decimal {
	return commitDecimal(raw)
}

func commitDecimal(raw string) decimal.Decimal {
	s := strings.TrimSuffix(raw, ".")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func exceedsHundred(raw string) bool {
	s := strings.TrimSuffix(raw, ".")
	if s == "" || s == "." {
		return false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.GreaterThan(hundred)
}
