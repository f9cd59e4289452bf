package users

import (
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/users"
)

func BuildHostStatusDTO(u users.User) *HostStatusDTO {
	if !u.HostStatus.Enabled && u.HostStatus.BillingTier == "" {
		return nil
	}
	return &HostStatusDTO{
		Enabled:              u.HostStatus.Enabled,
		BillingTier:          u.HostStatus.BillingTier,
		StripeCustomerID:     u.HostStatus.StripeCustomerID,
		StripeSubscriptionID: u.HostStatus.StripeSubscriptionID,
	}
}

func BuildOnboardingDTO(u users.User) OnboardingDTO {
	var dto OnboardingDTO

	if u.ClubDraft.Name != "" {
		dto.Draft = &ClubDraftDTO{
			Name:        u.ClubDraft.Name,
			Description: u.ClubDraft.Description,
			ClubID:      u.ClubDraft.ClubID,
		}
	}

	hs := u.OnboardingHostStatus
	if hs.PendingActivation || hs.Activated {
		dto.HostStatus = &OnboardingHostDTO{
			PendingActivation: hs.PendingActivation,
			Activated:         hs.Activated,
			ClubID:            hs.ClubID,
			BillingTier:       hs.BillingTier,
		}
	}

	return dto
}

func BuildClubSummaryDTO(club clubs.Club) ClubSummaryDTO {
	return ClubSummaryDTO{
		ID:           club.ID,
		Name:         club.Info.Name,
		Slug:         club.Info.Slug,
		BillingTier:  club.BillingTier,
		MembersCount: club.MembersCount,
		PendingTier:  club.Billing.PendingTier,
		CreatedAt:    club.CreatedAt,
	}
}
