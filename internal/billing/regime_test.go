package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"detos/internal/billing"
)

func TestResolveRegime(t *testing.T) {
	tests := []struct {
		name           string
		billingStateID int
		sellerStateID  int
		want           billing.Regime
		wantErr        error
	}{
		{"same state is split", 29, 29, billing.RegimeSplit, nil},
		{"different state is single", 27, 29, billing.RegimeSingle, nil},
		{"unset billing state is undetermined", 0, 29, "", billing.ErrRegimeUndetermined},
		{"negative billing state is undetermined", -1, 29, "", billing.ErrRegimeUndetermined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := billing.ResolveRegime(tt.billingStateID, tt.sellerStateID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
