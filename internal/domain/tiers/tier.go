package tiers

import "fmt"

// Tier constants (single source of truth)
const (
	TierA = "tier_a"
	TierB = "tier_b"
	TierC = "tier_c"
)

// DefaultTier is applied whenever a host has no active paid relationship.
const DefaultTier = TierA

// Ordered from smallest to largest capacity.
var Ordered = []string{TierA, TierB, TierC}

type SoftLimits struct {
	VideoUploadGB  int `json:"video_upload_gb"`
	BandwidthGB    int `json:"bandwidth_gb"`
	CoursesMax     int `json:"courses_max"`
	LiveEventHours int `json:"live_event_hours"`
}

type TierConfig struct {
	MonthlyPriceCents     int64
	TransactionFeePercent float64
	IncludedPayingMembers int
	SoftLimits            SoftLimits

	// Auto plan-change policy inputs for the billing reconciler.
	UpgradeMembersThreshold   int
	DowngradeMembersThreshold int
	UpgradePrecheckDays       int
	DowngradeCooldownDays     int
}

var configs = map[string]TierConfig{
	TierA: {
		MonthlyPriceCents:         3900,
		TransactionFeePercent:     4.0,
		IncludedPayingMembers:     100,
		SoftLimits:                SoftLimits{VideoUploadGB: 10, BandwidthGB: 100, CoursesMax: 3, LiveEventHours: 5},
		UpgradeMembersThreshold:   90,
		DowngradeMembersThreshold: 0,
		UpgradePrecheckDays:       7,
		DowngradeCooldownDays:     30,
	},
	TierB: {
		MonthlyPriceCents:         9900,
		TransactionFeePercent:     2.0,
		IncludedPayingMembers:     500,
		SoftLimits:                SoftLimits{VideoUploadGB: 50, BandwidthGB: 500, CoursesMax: 15, LiveEventHours: 20},
		UpgradeMembersThreshold:   450,
		DowngradeMembersThreshold: 80,
		UpgradePrecheckDays:       7,
		DowngradeCooldownDays:     30,
	},
	TierC: {
		MonthlyPriceCents:         24900,
		TransactionFeePercent:     1.0,
		IncludedPayingMembers:     2500,
		SoftLimits:                SoftLimits{VideoUploadGB: 250, BandwidthGB: 2500, CoursesMax: 100, LiveEventHours: 100},
		UpgradeMembersThreshold:   0, // top tier, nothing above
		DowngradeMembersThreshold: 400,
		UpgradePrecheckDays:       0,
		DowngradeCooldownDays:     30,
	},
}

// Config returns the billing parameters for a tier.
// Unknown tiers are a caller bug, not a runtime condition.
func Config(tier string) TierConfig {
	cfg, ok := configs[tier]
	if !ok {
		panic(fmt.Sprintf("tiers: unknown tier %q", tier))
	}
	return cfg
}

// IsValid reports whether tier names a known billing tier.
func IsValid(tier string) bool {
	_, ok := configs[tier]
	return ok
}

// NextUp returns the next larger tier, or "" if already at the top.
func NextUp(tier string) string {
	for i, t := range Ordered {
		if t == tier && i+1 < len(Ordered) {
			return Ordered[i+1]
		}
	}
	return ""
}

// NextDown returns the next smaller tier, or "" if already at the bottom.
func NextDown(tier string) string {
	for i, t := range Ordered {
		if t == tier && i > 0 {
			return Ordered[i-1]
		}
	}
	return ""
}
