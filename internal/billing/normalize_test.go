package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"detos/internal/billing"
)

func TestNormalizeQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2", "2"},
		{"", ""},
		{"abc", ""},
		{"1a2", "12"},
		{"0", "0"},
		{"1500", "1000"},
		{"1000", "1000"},
		{"999", "999"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, billing.NormalizeQuantity(tt.raw), "raw %q", tt.raw)
	}
}

func TestCommitQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"0", 1},
		{"1", 1},
		{"42", 42},
		{"1500", 1000},
		{"junk", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, billing.CommitQuantity(tt.raw), "raw %q", tt.raw)
	}
}

func TestNormalizePercent(t *testing.T) {
	accepted := []string{"", "0", "0.5", "10", "99.9999", "100", "100.0000", ".5", "7."}
	for _, raw := range accepted {
		_, ok := billing.NormalizePercent(raw)
		assert.True(t, ok, "expected %q to be accepted", raw)
	}

	rejected := []string{"00", "000", "01", "100.00001", "100.1", "101", "10.12345", "1,5", "-5", "1e2", "abc"}
	for _, raw := range rejected {
		_, ok := billing.NormalizePercent(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestNormalizeAmount(t *testing.T) {
	accepted := []string{"", "0", "0.5", "150", "150.25", "999999.99", "3."}
	for _, raw := range accepted {
		_, ok := billing.NormalizeAmount(raw)
		assert.True(t, ok, "expected %q to be accepted", raw)
	}

	rejected := []string{"00", "07", "1.234", "1.2.3", "-1", "12a"}
	for _, raw := range rejected {
		_, ok := billing.NormalizeAmount(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestCommitPercentAndAmount(t *testing.T) {
	assert.True(t, billing.CommitPercent("").IsZero())
	assert.True(t, billing.CommitPercent("7.").Equal(dec("7")))
	assert.True(t, billing.CommitPercent("12.5").Equal(dec("12.5")))
	assert.True(t, billing.CommitAmount("").IsZero())
	assert.True(t, billing.CommitAmount("150.25").Equal(dec("150.25")))
}
