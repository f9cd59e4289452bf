package billing

import "time"

// Ledger event types written by the host-plan flows.
const (
	EventHostPlanTrialStarted           = "host_plan_trial_started"
	EventHostPlanActivated              = "host_plan_activated"
	EventHostPlanSubscriptionUpdated    = "host_plan_subscription_updated"
	EventHostPlanSubscriptionCancelled  = "host_plan_subscription_cancelled"
	EventHostPlanAutoUpgradeScheduled   = "host_plan_auto_upgrade_scheduled"
	EventHostPlanAutoDowngradeScheduled = "host_plan_auto_downgrade_scheduled"
)

// BillingEvent is one immutable row of the append-only audit trail. It is the
// system of record for billing transitions and is NEVER read back for control
// decisions — no dedup, no conditionals on existing rows.
type BillingEvent struct {
	ID                   uint   `gorm:"primaryKey"`
	ClubID               string `gorm:"index:idx_billing_events_club_id"`
	UID                  string
	EventType            string `gorm:"not null"`
	Phase                string
	AmountCents          int64
	Currency             string `gorm:"type:varchar(3)"`
	Tier                 string
	StripeCustomerID     *string
	StripeSubscriptionID *string
	TrialEndsAt          *time.Time
	CreatedAt            time.Time
}
