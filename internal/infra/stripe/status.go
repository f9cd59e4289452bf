package stripe

import "strings"

// NormalizeStripeStatus collapses Stripe's subscription status vocabulary
// onto the states the billing flows distinguish. Unknown statuses pass
// through trimmed.
func NormalizeStripeStatus(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return "none"
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return s
	}
}

// PhaseFromStatus maps a Stripe subscription status onto a host-plan phase.
// fallback is the metadata phase hint; used when the status is neither
// trialing nor active.
func PhaseFromStatus(status string, fallback string) string {
	switch status {
	case "trialing":
		return "trial"
	case "active":
		return "active"
	}
	if fallback != "" {
		return fallback
	}
	return "active"
}
