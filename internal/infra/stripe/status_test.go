package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "none"},
		{"   ", "none"},
		{"active", "active"},
		{"trialing", "trialing"},
		{"past_due", "past_due"},
		{"unpaid", "past_due"},
		{"canceled", "canceled"},
		{"incomplete_expired", "canceled"},
		{" active ", "active"},
		{"paused", "paused"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStripeStatus(tt.in), "NormalizeStripeStatus(%q)", tt.in)
	}
}

func TestPhaseFromStatus(t *testing.T) {
	assert.Equal(t, "trial", PhaseFromStatus("trialing", ""))
	assert.Equal(t, "active", PhaseFromStatus("active", "trial"))
	assert.Equal(t, "trial", PhaseFromStatus("past_due", "trial"), "non-terminal status keeps the hint")
	assert.Equal(t, "active", PhaseFromStatus("canceled", ""), "no hint defaults to active")
}

func TestNormalizeFeedsPhase(t *testing.T) {
	// the two are chained in the webhook flows: normalize, then derive phase
	assert.Equal(t, "trial", PhaseFromStatus(NormalizeStripeStatus(" trialing "), ""))
	assert.Equal(t, "active", PhaseFromStatus(NormalizeStripeStatus("unpaid"), ""))
}
