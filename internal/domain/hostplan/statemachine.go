package hostplan

import (
	"fmt"
	"log"
	"time"

	"clubhost-app/internal/domain/billing"
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/tiers"
	"clubhost-app/internal/domain/users"

	"gorm.io/gorm"
)

/*
	Host-plan state machine
	-----------------------
	pending -> trial -> active -> cancelled, with active <-> active on a
	different tier for upgrade/downgrade. Activate and Cancel are each ONE
	transaction over the user and club rows: read both, verify ownership,
	batch-write both or nothing.

	The ledger append happens AFTER the commit. Append failure is logged and
	never rolls back the already-committed transition, so the audit trail is
	at-least-once and may have gaps.
*/

const (
	PhaseTrial     = "trial"
	PhaseActive    = "active"
	PhaseCancelled = "cancelled"
)

type ActivateParams struct {
	UID    string
	ClubID string
	Tier   string

	// Phase decides which ledger event is written: trial or active.
	Phase string

	// EventType overrides the ledger event type ("" derives it from Phase).
	EventType string

	StripeCustomerID     *string
	StripeSubscriptionID *string
	TrialEndsAt          *time.Time
}

type CancelParams struct {
	UID             string
	ClubID          string
	DowngradeReason string
}

// Activate flips the host relationship on: club gets the paid tier and the
// Stripe identifiers, the user gains host privileges. Idempotent — a second
// identical call writes the same absolute values.
//
// IMPORTANT: pass db in, do NOT import clubhost-app/database here (avoids import cycle).
func Activate(db *gorm.DB, p ActivateParams) error {
	if !tiers.IsValid(p.Tier) {
		return fmt.Errorf("invalid tier %q", p.Tier)
	}
	cfg := tiers.Config(p.Tier)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := verifyOwnership(tx, p.UID, p.ClubID); err != nil {
			return err
		}

		clubUpdates := map[string]interface{}{
			"plan_type":                       p.Tier,
			"plan_tier":                       p.Tier,
			"billing_tier":                    p.Tier,
			"billing_transaction_fee_percent": cfg.TransactionFeePercent,
			"billing_soft_video_upload_gb":    cfg.SoftLimits.VideoUploadGB,
			"billing_soft_bandwidth_gb":       cfg.SoftLimits.BandwidthGB,
			"billing_soft_courses_max":        cfg.SoftLimits.CoursesMax,
			"billing_soft_live_event_hours":   cfg.SoftLimits.LiveEventHours,
		}
		if p.StripeCustomerID != nil {
			clubUpdates["billing_stripe_customer_id"] = *p.StripeCustomerID
		}
		if p.StripeSubscriptionID != nil {
			clubUpdates["billing_stripe_subscription_id"] = *p.StripeSubscriptionID
		}
		if err := tx.Model(&clubs.Club{}).
			Where("id = ?", p.ClubID).
			Updates(clubUpdates).Error; err != nil {
			return fmt.Errorf("failed to update club: %w", err)
		}

		userUpdates := map[string]interface{}{
			"host_enabled":                       true,
			"host_billing_tier":                  p.Tier,
			"role_host":                          true,
			"onboarding_host_pending_activation": false,
			"onboarding_host_activated":          true,
			"onboarding_host_club_id":            p.ClubID,
			"onboarding_host_billing_tier":       p.Tier,
		}
		if p.StripeCustomerID != nil {
			userUpdates["host_stripe_customer_id"] = *p.StripeCustomerID
		}
		if p.StripeSubscriptionID != nil {
			userUpdates["host_stripe_subscription_id"] = *p.StripeSubscriptionID
			userUpdates["onboarding_host_stripe_subscription_id"] = *p.StripeSubscriptionID
		}
		if err := tx.Model(&users.User{}).
			Where("id = ?", p.UID).
			Updates(userUpdates).Error; err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	eventType := p.EventType
	if eventType == "" {
		eventType = activationEventType(p.Phase)
	}
	appendAfterCommit(db, billing.BillingEvent{
		ClubID:               p.ClubID,
		UID:                  p.UID,
		EventType:            eventType,
		Phase:                p.Phase,
		AmountCents:          cfg.MonthlyPriceCents,
		Currency:             "eur",
		Tier:                 p.Tier,
		StripeCustomerID:     p.StripeCustomerID,
		StripeSubscriptionID: p.StripeSubscriptionID,
		TrialEndsAt:          p.TrialEndsAt,
	})
	return nil
}

// Cancel resets the host relationship to the system default tier. The club's
// members and membersCount are untouched: cancellation affects the host's own
// billing relationship, not the members'.
func Cancel(db *gorm.DB, p CancelParams) error {
	cfg := tiers.Config(tiers.DefaultTier)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := verifyOwnership(tx, p.UID, p.ClubID); err != nil {
			return err
		}

		if err := tx.Model(&clubs.Club{}).
			Where("id = ?", p.ClubID).
			Updates(map[string]interface{}{
				"plan_type":                       tiers.DefaultTier,
				"plan_tier":                       tiers.DefaultTier,
				"billing_tier":                    tiers.DefaultTier,
				"billing_stripe_subscription_id":  nil,
				"billing_pending_tier":            nil,
				"billing_transaction_fee_percent": cfg.TransactionFeePercent,
				"billing_soft_video_upload_gb":    cfg.SoftLimits.VideoUploadGB,
				"billing_soft_bandwidth_gb":       cfg.SoftLimits.BandwidthGB,
				"billing_soft_courses_max":        cfg.SoftLimits.CoursesMax,
				"billing_soft_live_event_hours":   cfg.SoftLimits.LiveEventHours,
			}).Error; err != nil {
			return fmt.Errorf("failed to reset club billing: %w", err)
		}

		return tx.Model(&users.User{}).
			Where("id = ?", p.UID).
			Updates(map[string]interface{}{
				"host_enabled":                           false,
				"host_billing_tier":                      tiers.DefaultTier,
				"host_stripe_subscription_id":            nil,
				"onboarding_host_activated":              false,
				"onboarding_host_billing_tier":           tiers.DefaultTier,
				"onboarding_host_stripe_subscription_id": nil,
			}).Error
	})
	if err != nil {
		return err
	}

	if p.DowngradeReason != "" {
		log.Printf("host plan cancelled for club=%s uid=%s reason=%s", p.ClubID, p.UID, p.DowngradeReason)
	}

	appendAfterCommit(db, billing.BillingEvent{
		ClubID:    p.ClubID,
		UID:       p.UID,
		EventType: billing.EventHostPlanSubscriptionCancelled,
		Phase:     PhaseCancelled,
		Tier:      tiers.DefaultTier,
	})
	return nil
}

// verifyOwnership aborts the surrounding transaction when uid does not own
// the club. Runs before any write, so a violation leaves zero changes.
func verifyOwnership(tx *gorm.DB, uid, clubID string) error {
	var user users.User
	if err := tx.Where("id = ?", uid).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	var club clubs.Club
	if err := tx.Where("id = ?", clubID).First(&club).Error; err != nil {
		return fmt.Errorf("club not found: %w", err)
	}

	if club.HostID != uid {
		return clubs.ErrNotClubOwner
	}
	return nil
}

func activationEventType(phase string) string {
	if phase == PhaseTrial {
		return billing.EventHostPlanTrialStarted
	}
	return billing.EventHostPlanActivated
}

// appendAfterCommit records the outcome in the ledger. The transition is
// already committed at this point; a failed append must not undo it.
func appendAfterCommit(db *gorm.DB, event billing.BillingEvent) {
	if err := billing.Append(db, event); err != nil {
		log.Printf("⚠️ ledger append failed after commit (event=%s club=%s): %v", event.EventType, event.ClubID, err)
	}
}
