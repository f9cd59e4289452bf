package memberships

import "time"

type AccessState string

const (
	AccessTrial   AccessState = "trial"
	AccessFull    AccessState = "full"
	AccessLimited AccessState = "limited"
	AccessLocked  AccessState = "locked"
)

// ComputeAccessState derives the effective content access for a club member.
func ComputeAccessState(now time.Time, m ClubMembership) AccessState {
	// Active trial wins regardless of payment state
	if IsTrialActive(m, now) {
		return AccessTrial
	}

	switch m.Status {
	case StatusActive:
		return AccessFull
	case StatusPastDue:
		return AccessLimited
	default:
		return AccessLocked
	}
}
