package hostplan

import (
	"testing"
	"time"

	"clubhost-app/internal/domain/billing"
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/tiers"
	"clubhost-app/internal/domain/users"

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
	require.NoError(t, db.AutoMigrate(&users.User{}, &clubs.Club{}, &billing.BillingEvent{}))
	return db
}

func seedHostAndClub(t *testing.T, db *gorm.DB, uid, clubID string) {
	t.Helper()
	require.NoError(t, db.Create(&users.User{
		ID:    uid,
		Email: uid + "@example.com",
	}).Error)
	require.NoError(t, db.Create(&clubs.Club{
		ID:          clubID,
		HostID:      uid,
		Info:        clubs.ClubInfo{Name: clubID, Slug: clubID},
		PlanType:    tiers.DefaultTier,
		BillingTier: tiers.DefaultTier,
		Billing:     clubs.ClubBilling{Tier: tiers.DefaultTier},
	}).Error)
}

func ledgerEvents(t *testing.T, db *gorm.DB) []billing.BillingEvent {
	t.Helper()
	var events []billing.BillingEvent
	require.NoError(t, db.Order("id ASC").Find(&events).Error)
	return events
}

func strPtr(s string) *string { return &s }

func TestActivate_TrialCheckout(t *testing.T) {
	db := testDB(t)
	seedHostAndClub(t, db, "user-456", "club-999")

	err := Activate(db, ActivateParams{
		UID:                  "user-456",
		ClubID:               "club-999",
		Tier:                 tiers.TierA,
		Phase:                PhaseTrial,
		StripeCustomerID:     strPtr("cus_123"),
		StripeSubscriptionID: strPtr("sub_123"),
	})
	require.NoError(t, err)

	var club clubs.Club
	require.NoError(t, db.Where("id = ?", "club-999").First(&club).Error)
	assert.Equal(t, "tier_a", club.PlanType)
	assert.Equal(t, "tier_a", club.BillingTier)
	assert.Equal(t, "tier_a", club.Billing.Tier)
	require.NotNil(t, club.Billing.StripeSubscriptionID)
	assert.Equal(t, "sub_123", *club.Billing.StripeSubscriptionID)

	var user users.User
	require.NoError(t, db.Where("id = ?", "user-456").First(&user).Error)
	assert.True(t, user.HostStatus.Enabled)
	assert.Equal(t, "tier_a", user.HostStatus.BillingTier)
	assert.True(t, user.Roles.Host)
	assert.False(t, user.OnboardingHostStatus.PendingActivation)
	assert.True(t, user.OnboardingHostStatus.Activated)
	assert.Equal(t, "tier_a", user.OnboardingHostStatus.BillingTier)

	events := ledgerEvents(t, db)
	require.Len(t, events, 1)
	assert.Equal(t, billing.EventHostPlanTrialStarted, events[0].EventType)
	assert.Equal(t, "club-999", events[0].ClubID)
	assert.Equal(t, "user-456", events[0].UID)
}

func TestActivate_ActivePhaseEvent(t *testing.T) {
	db := testDB(t)
	seedHostAndClub(t, db, "user-1", "club-1")

	require.NoError(t, Activate(db, ActivateParams{
		UID: "user-1", ClubID: "club-1", Tier: tiers.TierB, Phase: PhaseActive,
	}))

	events := ledgerEvents(t, db)
	require.Len(t, events, 1)
	assert.Equal(t, billing.EventHostPlanActivated, events[0].EventType)
	assert.Equal(t, tiers.TierB, events[0].Tier)
}

func TestActivate_Idempotent(t *testing.T) {
	db := testDB(t)
	seedHostAndClub(t, db, "user-1", "club-1")

	params := ActivateParams{
		UID:                  "user-1",
		ClubID:               "club-1",
		Tier:                 tiers.TierB,
		Phase:                PhaseActive,
		StripeCustomerID:     strPtr("cus_1"),
		StripeSubscriptionID: strPtr("sub_1"),
	}
	require.NoError(t, Activate(db, params))

	var clubFirst clubs.Club
	require.NoError(t, db.Where("id = ?", "club-1").First(&clubFirst).Error)
	var userFirst users.User
	require.NoError(t, db.Where("id = ?", "user-1").First(&userFirst).Error)

	require.NoError(t, Activate(db, params))

	var clubSecond clubs.Club
	require.NoError(t, db.Where("id = ?", "club-1").First(&clubSecond).Error)
	var userSecond users.User
	require.NoError(t, db.Where("id = ?", "user-1").First(&userSecond).Error)

	clubFirst.UpdatedAt = clubSecond.UpdatedAt
	userFirst.UpdatedAt = userSecond.UpdatedAt
	assert.Equal(t, clubFirst, clubSecond)
	assert.Equal(t, userFirst, userSecond)
}

func TestActivate_OwnershipViolation(t *testing.T) {
	db := testDB(t)
	seedHostAndClub(t, db, "owner", "club-1")
	require.NoError(t, db.Create(&users.User{ID: "intruder", Email: "intruder@example.com"}).Error)

	var clubBefore clubs.Club
	require.NoError(t, db.Where("id = ?", "club-1").First(&clubBefore).Error)
	var userBefore users.User
	require.NoError(t, db.Where("id = ?", "intruder").First(&userBefore).Error)

	err := Activate(db, ActivateParams{
		UID: "intruder", ClubID: "club-1", Tier: tiers.TierA, Phase: PhaseActive,
	})
	require.ErrorIs(t, err, clubs.ErrNotClubOwner)

	// both documents byte-for-byte unchanged, no ledger entry
	var clubAfter clubs.Club
	require.NoError(t, db.Where("id = ?", "club-1").First(&clubAfter).Error)
	var userAfter users.User
	require.NoError(t, db.Where("id = ?", "intruder").First(&userAfter).Error)
	assert.Equal(t, clubBefore, clubAfter)
	assert.Equal(t, userBefore, userAfter)
	assert.Empty(t, ledgerEvents(t, db))
}

func TestActivate_InvalidTier(t *testing.T) {
	db := testDB(t)
	seedHostAndClub(t, db, "user-1", "club-1")

	err := Activate(db, ActivateParams{UID: "user-1", ClubID: "club-1", Tier: "gold", Phase: PhaseActive})
	assert.Error(t, err)
	assert.Empty(t, ledgerEvents(t, db))
}

func TestCancel_ResetsToDefaultTier(t *testing.T) {
	db := testDB(t)
	seedHostAndClub(t, db, "user-can", "club-can")

	require.NoError(t, Activate(db, ActivateParams{
		UID:                  "user-can",
		ClubID:               "club-can",
		Tier:                 tiers.TierB,
		Phase:                PhaseActive,
		StripeCustomerID:     strPtr("cus_can"),
		StripeSubscriptionID: strPtr("sub_active"),
	}))

	// members joined between activation and cancellation
	require.NoError(t, db.Model(&clubs.Club{}).Where("id = ?", "club-can").
		Update("members_count", 42).Error)

	require.NoError(t, Cancel(db, CancelParams{
		UID: "user-can", ClubID: "club-can", DowngradeReason: "stripe_subscription_deleted",
	}))

	var club clubs.Club
	require.NoError(t, db.Where("id = ?", "club-can").First(&club).Error)
	assert.Equal(t, tiers.DefaultTier, club.BillingTier)
	assert.Equal(t, tiers.DefaultTier, club.PlanType)
	assert.Nil(t, club.Billing.StripeSubscriptionID, "subscription id must be removed")
	assert.Equal(t, 42, club.MembersCount, "cancellation must not touch members")

	var user users.User
	require.NoError(t, db.Where("id = ?", "user-can").First(&user).Error)
	assert.False(t, user.HostStatus.Enabled)
	assert.Equal(t, tiers.DefaultTier, user.HostStatus.BillingTier)
	assert.Nil(t, user.HostStatus.StripeSubscriptionID)
	assert.False(t, user.OnboardingHostStatus.Activated)
	require.NotNil(t, user.HostStatus.StripeCustomerID, "customer id survives cancellation")
	assert.Equal(t, "cus_can", *user.HostStatus.StripeCustomerID)

	events := ledgerEvents(t, db)
	require.Len(t, events, 2)
	assert.Equal(t, billing.EventHostPlanSubscriptionCancelled, events[1].EventType)
}

func TestCancel_OwnershipViolation(t *testing.T) {
	db := testDB(t)
	seedHostAndClub(t, db, "owner", "club-1")
	require.NoError(t, db.Create(&users.User{ID: "intruder", Email: "intruder@example.com"}).Error)

	var clubBefore clubs.Club
	require.NoError(t, db.Where("id = ?", "club-1").First(&clubBefore).Error)

	err := Cancel(db, CancelParams{UID: "intruder", ClubID: "club-1"})
	require.ErrorIs(t, err, clubs.ErrNotClubOwner)

	var clubAfter clubs.Club
	require.NoError(t, db.Where("id = ?", "club-1").First(&clubAfter).Error)
	assert.Equal(t, clubBefore, clubAfter)
	assert.Empty(t, ledgerEvents(t, db))
}

func TestActivate_TrialEndRecordedInLedger(t *testing.T) {
	db := testDB(t)
	seedHostAndClub(t, db, "user-1", "club-1")

	trialEnd := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, Activate(db, ActivateParams{
		UID: "user-1", ClubID: "club-1", Tier: tiers.TierA, Phase: PhaseTrial, TrialEndsAt: &trialEnd,
	}))

	events := ledgerEvents(t, db)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].TrialEndsAt)
	assert.True(t, events[0].TrialEndsAt.Equal(trialEnd))
}
