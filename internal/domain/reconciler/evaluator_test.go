package reconciler

import (
	"testing"
	"time"

	"clubhost-app/internal/domain/billing"
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/tiers"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&clubs.Club{}, &billing.BillingEvent{}))
	return db
}

func strPtr(s string) *string { return &s }

func payingClub(tier string, members int) clubs.Club {
	return clubs.Club{
		ID:          "club-1",
		HostID:      "user-1",
		Info:        clubs.ClubInfo{Name: "Club", Slug: "club"},
		PlanType:    tier,
		BillingTier: tier,
		Billing: clubs.ClubBilling{
			Tier:                 tier,
			StripeSubscriptionID: strPtr("sub_1"),
		},
		MembersCount: members,
	}
}

func TestEvaluate_SetsAboveWatermark(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	club := payingClub(tiers.TierA, 120) // above tier_a upgrade threshold

	usage, decision, target := Evaluate(now, club)

	assert.Equal(t, DecisionNone, decision)
	assert.Empty(t, target)
	require.NotNil(t, usage.MembersAboveSince)
	assert.True(t, usage.MembersAboveSince.Equal(now))
	assert.Equal(t, 120, usage.PayingMembers)
}

func TestEvaluate_UpgradeAfterPrecheckWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	cfg := tiers.Config(tiers.TierA)
	since := now.Add(-time.Duration(cfg.UpgradePrecheckDays) * 24 * time.Hour)

	club := payingClub(tiers.TierA, 120)
	club.Billing.Usage.MembersAboveSince = &since

	_, decision, target := Evaluate(now, club)

	assert.Equal(t, DecisionUpgrade, decision)
	assert.Equal(t, tiers.TierB, target)
}

func TestEvaluate_WindowNotYetElapsed(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	since := now.Add(-24 * time.Hour)

	club := payingClub(tiers.TierA, 120)
	club.Billing.Usage.MembersAboveSince = &since

	usage, decision, _ := Evaluate(now, club)

	assert.Equal(t, DecisionNone, decision)
	require.NotNil(t, usage.MembersAboveSince)
	assert.True(t, usage.MembersAboveSince.Equal(since), "existing watermark kept")
}

func TestEvaluate_DipResetsWatermark(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	since := now.Add(-72 * time.Hour)

	club := payingClub(tiers.TierA, 50) // back under the threshold
	club.Billing.Usage.MembersAboveSince = &since

	usage, decision, _ := Evaluate(now, club)

	assert.Equal(t, DecisionNone, decision)
	assert.Nil(t, usage.MembersAboveSince)
}

func TestEvaluate_TopTierNeverUpgrades(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	club := payingClub(tiers.TierC, 100000)

	_, decision, target := Evaluate(now, club)

	assert.Equal(t, DecisionNone, decision)
	assert.Empty(t, target)
}

func TestEvaluate_DowngradeAfterCooldown(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	cfg := tiers.Config(tiers.TierB)
	since := now.Add(-time.Duration(cfg.DowngradeCooldownDays) * 24 * time.Hour)

	club := payingClub(tiers.TierB, 10) // far below tier_b downgrade threshold
	club.Billing.Usage.MembersBelowSince = &since

	_, decision, target := Evaluate(now, club)

	assert.Equal(t, DecisionDowngrade, decision)
	assert.Equal(t, tiers.TierA, target)
}

func TestEvaluate_BottomTierNeverDowngrades(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	club := payingClub(tiers.TierA, 0)

	_, decision, _ := Evaluate(now, club)

	// tier_a has no downgrade threshold
	assert.Equal(t, DecisionNone, decision)
}

func TestSweep_PersistsWatermarkAndPendingTier(t *testing.T) {
	db := testDB(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	cfg := tiers.Config(tiers.TierA)
	since := now.Add(-time.Duration(cfg.UpgradePrecheckDays) * 24 * time.Hour)

	club := payingClub(tiers.TierA, 120)
	club.Billing.Usage.MembersAboveSince = &since
	require.NoError(t, db.Create(&club).Error)

	require.NoError(t, Sweep(db, now))

	var got clubs.Club
	require.NoError(t, db.Where("id = ?", "club-1").First(&got).Error)
	require.NotNil(t, got.Billing.PendingTier)
	assert.Equal(t, tiers.TierB, *got.Billing.PendingTier)
	assert.Equal(t, 120, got.Billing.Usage.PayingMembers)

	var events []billing.BillingEvent
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, billing.EventHostPlanAutoUpgradeScheduled, events[0].EventType)
	assert.Equal(t, tiers.TierB, events[0].Tier)
	assert.Equal(t, "user-1", events[0].UID)
}

func TestSweep_NoDuplicateEventWhilePending(t *testing.T) {
	db := testDB(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	cfg := tiers.Config(tiers.TierA)
	since := now.Add(-time.Duration(cfg.UpgradePrecheckDays) * 24 * time.Hour)

	club := payingClub(tiers.TierA, 120)
	club.Billing.Usage.MembersAboveSince = &since
	require.NoError(t, db.Create(&club).Error)

	require.NoError(t, Sweep(db, now))
	require.NoError(t, Sweep(db, now.Add(time.Hour)))

	var count int64
	require.NoError(t, db.Model(&billing.BillingEvent{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSweep_SkipsNonPayingClubs(t *testing.T) {
	db := testDB(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	club := payingClub(tiers.TierA, 120)
	club.Billing.StripeSubscriptionID = nil
	require.NoError(t, db.Create(&club).Error)

	require.NoError(t, Sweep(db, now))

	var got clubs.Club
	require.NoError(t, db.Where("id = ?", "club-1").First(&got).Error)
	assert.Nil(t, got.Billing.Usage.MembersAboveSince)
	assert.Zero(t, got.Billing.Usage.PayingMembers)
}
