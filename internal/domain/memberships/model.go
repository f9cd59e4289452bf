package memberships

import "time"

// Membership statuses.
const (
	StatusActive    = "active"
	StatusPastDue   = "past_due"
	StatusCancelled = "cancelled"
)

// Payment types recorded on a membership.
const (
	PaymentTypeSubscription = "subscription"
	PaymentTypeOneTime      = "one_time"
)

// ClubMembership tracks ONE member's access to ONE club. Distinct from the
// host-plan state: this is the member's relationship with the club, not the
// host's billing relationship with the platform.
type ClubMembership struct {
	ID     uint   `gorm:"primaryKey"`
	UserID string `gorm:"not null;uniqueIndex:idx_memberships_user_club,priority:1"`
	ClubID string `gorm:"not null;uniqueIndex:idx_memberships_user_club,priority:2"`

	Status      string
	IsTrialing  bool
	TrialEndsAt *time.Time

	StripeSubscriptionID *string

	LastPaymentType *string
	LastPaymentAt   *time.Time

	ConsecutiveFailedPayments int

	CreatedAt time.Time
	UpdatedAt time.Time
}
