package memberships

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsTrialActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	tests := []struct {
		name string
		m    ClubMembership
		want bool
	}{
		{"trialing with future end", ClubMembership{IsTrialing: true, TrialEndsAt: &future}, true},
		{"trialing with past end", ClubMembership{IsTrialing: true, TrialEndsAt: &past}, false},
		{"trialing without end date", ClubMembership{IsTrialing: true}, false},
		{"not trialing with future end", ClubMembership{IsTrialing: false, TrialEndsAt: &future}, false},
		{"zero value", ClubMembership{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTrialActive(tt.m, now))
		})
	}
}

func TestComputeAccessState(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)

	assert.Equal(t, AccessTrial, ComputeAccessState(now, ClubMembership{IsTrialing: true, TrialEndsAt: &future}))
	assert.Equal(t, AccessFull, ComputeAccessState(now, ClubMembership{Status: StatusActive}))
	assert.Equal(t, AccessLimited, ComputeAccessState(now, ClubMembership{Status: StatusPastDue}))
	assert.Equal(t, AccessLocked, ComputeAccessState(now, ClubMembership{Status: StatusCancelled}))
	assert.Equal(t, AccessLocked, ComputeAccessState(now, ClubMembership{}))

	// expired trial falls through to the payment status
	past := now.Add(-24 * time.Hour)
	assert.Equal(t, AccessFull, ComputeAccessState(now, ClubMembership{IsTrialing: true, TrialEndsAt: &past, Status: StatusActive}))
}
