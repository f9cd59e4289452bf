package plans

import (
	"strings"

	"clubhost-app/internal/domain/tiers"
)

// PlanTier returns the effective tier for a plan.
// Priority:
// 1. Explicit Tier stored in DB
// 2. Fallback inference by price (legacy safety net)
func PlanTier(p *Plan) string {
	if p == nil {
		return tiers.DefaultTier
	}

	tier := strings.ToLower(strings.TrimSpace(p.Tier))
	if tiers.IsValid(tier) {
		return tier
	}

	return inferTierFromPrice(p.PriceCents)
}

// inferTierFromPrice exists ONLY as a backward-compatibility fallback.
// Do not rely on this long-term.
func inferTierFromPrice(priceCents int64) string {
	switch {
	case priceCents >= tiers.Config(tiers.TierC).MonthlyPriceCents:
		return tiers.TierC
	case priceCents >= tiers.Config(tiers.TierB).MonthlyPriceCents:
		return tiers.TierB
	default:
		return tiers.TierA
	}
}
