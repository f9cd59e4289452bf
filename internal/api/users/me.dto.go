package users

import "time"

type MeResponse struct {
	User       UserDTO        `json:"user"`
	HostStatus *HostStatusDTO `json:"host_status,omitempty"`
	Onboarding OnboardingDTO  `json:"onboarding"`
}

type UserDTO struct {
	ID     string   `json:"id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	IsHost bool     `json:"is_host"`
	Clubs  []string `json:"clubs_hosted"`
}

type HostStatusDTO struct {
	Enabled              bool    `json:"enabled"`
	BillingTier          string  `json:"billing_tier"`
	StripeCustomerID     *string `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID *string `json:"stripe_subscription_id,omitempty"`
}

type OnboardingDTO struct {
	Draft      *ClubDraftDTO      `json:"club_draft,omitempty"`
	HostStatus *OnboardingHostDTO `json:"host_status,omitempty"`
}

type ClubDraftDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ClubID      *string `json:"club_id,omitempty"`
}

type OnboardingHostDTO struct {
	PendingActivation bool    `json:"pending_activation"`
	Activated         bool    `json:"activated"`
	ClubID            *string `json:"club_id,omitempty"`
	BillingTier       string  `json:"billing_tier"`
}

type ClubSummaryDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	BillingTier  string    `json:"billing_tier"`
	MembersCount int       `json:"members_count"`
	PendingTier  *string   `json:"pending_tier,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
