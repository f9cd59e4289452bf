package clubs

import (
	"time"

	"clubhost-app/internal/domain/tiers"
)

type ClubInfo struct {
	Name        string
	Slug        string `gorm:"uniqueIndex:idx_clubs_slug"`
	Description string
}

// ClubUsage carries the reconciler's threshold watermarks alongside the
// current paying-member count snapshot.
type ClubUsage struct {
	PayingMembers     int
	MembersAboveSince *time.Time
	MembersBelowSince *time.Time
}

// ClubBilling is the club's billing relationship with the platform.
type ClubBilling struct {
	Tier                  string
	StripeCustomerID      *string
	StripeSubscriptionID  *string
	TransactionFeePercent float64
	SoftLimits            tiers.SoftLimits `gorm:"embedded;embeddedPrefix:soft_"`
	Usage                 ClubUsage        `gorm:"embedded;embeddedPrefix:usage_"`

	// PendingTier is a reconciler or downgrade decision awaiting the next
	// billing cycle; StripeScheduleID points at the schedule that applies it.
	PendingTier      *string
	StripeScheduleID *string
}

type Club struct {
	ID string `gorm:"primaryKey;type:varchar(64)"`

	// HostID is immutable after creation. Exactly one owning user.
	HostID string `gorm:"not null;index:idx_clubs_host_id"`

	Info ClubInfo `gorm:"embedded;embeddedPrefix:info_"`

	PlanType    string
	BillingTier string `gorm:"column:plan_tier"` // billing_tier is taken by the embedded billing block

	Billing ClubBilling `gorm:"embedded;embeddedPrefix:billing_"`

	MembersCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}
