package users

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ClubIDList is an ordered set of club ids stored as a JSON array.
type ClubIDList []string

func (l ClubIDList) Value() (driver.Value, error) {
	if l == nil {
		l = ClubIDList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ClubIDList) Scan(v interface{}) error {
	if v == nil {
		*l = nil
		return nil
	}
	switch data := v.(type) {
	case []byte:
		return json.Unmarshal(data, l)
	case string:
		return json.Unmarshal([]byte(data), l)
	default:
		return fmt.Errorf("unsupported clubs_hosted type %T", v)
	}
}

// Contains reports whether clubID is already in the list.
func (l ClubIDList) Contains(clubID string) bool {
	for _, id := range l {
		if id == clubID {
			return true
		}
	}
	return false
}

// Roles a user holds on the platform. Every account is implicitly a "user";
// Host is flipped on ONLY by the host-plan activation transition.
type Roles struct {
	Host  bool
	Admin bool
}

// HostStatus is the authoritative host billing state. Mutated exclusively by
// the host-plan state machine, never by onboarding.
type HostStatus struct {
	Enabled              bool
	BillingTier          string
	StripeCustomerID     *string `gorm:"uniqueIndex:idx_users_stripe_customer_id"`
	StripeSubscriptionID *string
}

// OnboardingHostStatus is a forward-only projection of HostStatus used by the
// onboarding UI. Written in the same transaction as HostStatus, never on its own.
type OnboardingHostStatus struct {
	PendingActivation    bool
	Activated            bool
	ClubID               *string
	BillingTier          string
	StripeSubscriptionID *string
}

// ClubDraft holds the club the user is setting up before any payment exists.
type ClubDraft struct {
	Name        string
	Description string
	ClubID      *string
}

type User struct {
	ID       string `gorm:"primaryKey;type:varchar(64)"`
	Name     string
	Email    string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password *string `gorm:""`

	Roles      Roles      `gorm:"embedded;embeddedPrefix:role_"`
	HostStatus HostStatus `gorm:"embedded;embeddedPrefix:host_"`

	OnboardingHostStatus OnboardingHostStatus `gorm:"embedded;embeddedPrefix:onboarding_host_"`
	ClubDraft            ClubDraft            `gorm:"embedded;embeddedPrefix:onboarding_draft_"`

	// Ordered set of club ids this user hosts.
	ClubsHosted ClubIDList `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
