package memberships

import "time"

// IsTrialActive reports whether the member's trial is running at now.
// Pure read path, consumed by content-access gating outside this core.
func IsTrialActive(m ClubMembership, now time.Time) bool {
	return m.IsTrialing && m.TrialEndsAt != nil && m.TrialEndsAt.After(now)
}
