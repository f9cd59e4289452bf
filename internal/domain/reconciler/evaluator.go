package reconciler

import (
	"fmt"
	"log"
	"time"

	"clubhost-app/internal/domain/billing"
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/tiers"

	"gorm.io/gorm"
)

/*
	Tier threshold reconciler
	-------------------------
	Periodic sweep over paying host clubs. A club that stays above its tier's
	upgrade member threshold for the whole pre-check window gets an automatic
	upgrade scheduled; one that stays below the downgrade threshold for the
	cooldown window gets a downgrade scheduled.

	"Scheduled" means recorded: a pending tier on the club plus a ledger
	event. Money movement goes through the normal change-plan path so Stripe
	stays the source of truth; the reconciler never calls Stripe.
*/

type Decision string

const (
	DecisionNone      Decision = "none"
	DecisionUpgrade   Decision = "upgrade"
	DecisionDowngrade Decision = "downgrade"
)

// Evaluate computes the next watermark state and plan-change decision for a
// club snapshot. Pure: no writes, no clock reads.
func Evaluate(now time.Time, club clubs.Club) (clubs.ClubUsage, Decision, string) {
	cfg := tiers.Config(club.BillingTier)
	usage := club.Billing.Usage
	usage.PayingMembers = club.MembersCount

	above := cfg.UpgradeMembersThreshold > 0 && club.MembersCount > cfg.UpgradeMembersThreshold
	below := cfg.DowngradeMembersThreshold > 0 && club.MembersCount < cfg.DowngradeMembersThreshold

	if above {
		if usage.MembersAboveSince == nil {
			t := now
			usage.MembersAboveSince = &t
		} else if now.Sub(*usage.MembersAboveSince) >= days(cfg.UpgradePrecheckDays) {
			if target := tiers.NextUp(club.BillingTier); target != "" {
				return usage, DecisionUpgrade, target
			}
		}
	} else {
		usage.MembersAboveSince = nil
	}

	if below {
		if usage.MembersBelowSince == nil {
			t := now
			usage.MembersBelowSince = &t
		} else if now.Sub(*usage.MembersBelowSince) >= days(cfg.DowngradeCooldownDays) {
			if target := tiers.NextDown(club.BillingTier); target != "" {
				return usage, DecisionDowngrade, target
			}
		}
	} else {
		usage.MembersBelowSince = nil
	}

	return usage, DecisionNone, ""
}

// Sweep evaluates every paying host club once and persists watermarks and
// decisions. A decision is skipped while a matching pending tier is already
// recorded, so redelivered sweeps do not stack duplicates.
func Sweep(db *gorm.DB, now time.Time) error {
	var eligible []clubs.Club
	if err := db.Where("billing_stripe_subscription_id IS NOT NULL").Find(&eligible).Error; err != nil {
		return fmt.Errorf("failed to list paying clubs: %w", err)
	}

	for _, club := range eligible {
		usage, decision, target := Evaluate(now, club)

		updates := map[string]interface{}{
			"billing_usage_paying_members":      usage.PayingMembers,
			"billing_usage_members_above_since": usage.MembersAboveSince,
			"billing_usage_members_below_since": usage.MembersBelowSince,
		}

		alreadyPending := club.Billing.PendingTier != nil && *club.Billing.PendingTier == target
		if decision != DecisionNone && !alreadyPending {
			updates["billing_pending_tier"] = target
		}

		if err := db.Model(&clubs.Club{}).
			Where("id = ?", club.ID).
			Updates(updates).Error; err != nil {
			log.Printf("⚠️ reconciler: failed to persist usage for club=%s: %v", club.ID, err)
			continue
		}

		if decision == DecisionNone || alreadyPending {
			continue
		}

		eventType := billing.EventHostPlanAutoUpgradeScheduled
		if decision == DecisionDowngrade {
			eventType = billing.EventHostPlanAutoDowngradeScheduled
		}
		if err := billing.Append(db, billing.BillingEvent{
			ClubID:    club.ID,
			UID:       club.HostID,
			EventType: eventType,
			Tier:      target,
		}); err != nil {
			log.Printf("⚠️ reconciler: ledger append failed for club=%s: %v", club.ID, err)
		}
	}

	return nil
}

// StartRunner launches the periodic sweep. Stops when the returned func is called.
func StartRunner(db *gorm.DB, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := Sweep(db, time.Now()); err != nil {
					log.Printf("⚠️ reconciler sweep failed: %v", err)
				}
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
