package clubs

import (
	"errors"
	"fmt"

	"clubhost-app/internal/domain/tiers"
	"clubhost-app/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotClubOwner is raised when a uid tries to act on a club whose HostID
// belongs to someone else. Surfaced to callers as an authorization failure.
var ErrNotClubOwner = errors.New("club you do not own")

// ErrNoClubDraft means the user has not filled in onboarding.clubDraft yet.
var ErrNoClubDraft = errors.New("no club draft to create from")

type CreateOrReuseResult struct {
	ClubID string
	Slug   string
}

// CreateOrReuse resolves the user's onboarding club draft into a real club
// in one transaction: either a brand new club owned by uid, or a refresh of
// the draft's existing club after verifying ownership.
//
// IMPORTANT: this never touches user.HostStatus or user.Roles — privilege
// escalation happens ONLY inside the activation transition, after payment.
//
// IMPORTANT: pass db in, do NOT import clubhost-app/database here (avoids import cycle).
func CreateOrReuse(db *gorm.DB, uid string) (CreateOrReuseResult, error) {
	var res CreateOrReuseResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var user users.User
		if err := tx.Where("id = ?", uid).First(&user).Error; err != nil {
			return fmt.Errorf("user not found: %w", err)
		}

		draft := user.ClubDraft
		if draft.Name == "" {
			return ErrNoClubDraft
		}

		if draft.ClubID != nil && *draft.ClubID != "" {
			club, err := reuseDraftClub(tx, uid, draft)
			if err != nil {
				return err
			}
			res.ClubID = club.ID
			res.Slug = club.Info.Slug
		} else {
			club, err := createDraftClub(tx, uid, draft)
			if err != nil {
				return err
			}
			res.ClubID = club.ID
			res.Slug = club.Info.Slug
		}

		hosted := user.ClubsHosted
		if !hosted.Contains(res.ClubID) {
			hosted = append(hosted, res.ClubID)
		}

		// Projection only: hostStatus and roles stay untouched until activation.
		return tx.Model(&users.User{}).
			Where("id = ?", uid).
			Updates(map[string]interface{}{
				"onboarding_draft_club_id":           res.ClubID,
				"onboarding_host_pending_activation": true,
				"onboarding_host_activated":          false,
				"onboarding_host_club_id":            res.ClubID,
				"onboarding_host_billing_tier":       tiers.DefaultTier,
				"clubs_hosted":                       hosted,
			}).Error
	})

	return res, err
}

func createDraftClub(tx *gorm.DB, uid string, draft users.ClubDraft) (*Club, error) {
	base := MakeSlug(draft.Name)
	slug, err := EnsureUniqueSlug(tx, base, "")
	if err != nil {
		return nil, err
	}

	cfg := tiers.Config(tiers.DefaultTier)
	club := Club{
		ID:     "club-" + uuid.NewString(),
		HostID: uid,
		Info: ClubInfo{
			Name:        draft.Name,
			Slug:        slug,
			Description: draft.Description,
		},
		PlanType:    tiers.DefaultTier,
		BillingTier: tiers.DefaultTier,
		Billing: ClubBilling{
			Tier:                  tiers.DefaultTier,
			TransactionFeePercent: cfg.TransactionFeePercent,
			SoftLimits:            cfg.SoftLimits,
		},
		MembersCount: 0,
	}

	if err := tx.Create(&club).Error; err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return &club, nil
}

func reuseDraftClub(tx *gorm.DB, uid string, draft users.ClubDraft) (*Club, error) {
	var club Club
	if err := tx.Where("id = ?", *draft.ClubID).First(&club).Error; err != nil {
		return nil, fmt.Errorf("draft club not found: %w", err)
	}
	if club.HostID != uid {
		return nil, ErrNotClubOwner
	}

	slug := club.Info.Slug
	if base := MakeSlug(draft.Name); base != slug {
		fresh, err := EnsureUniqueSlug(tx, base, club.ID)
		if err != nil {
			return nil, err
		}
		slug = fresh
	}

	if err := tx.Model(&Club{}).
		Where("id = ?", club.ID).
		Updates(map[string]interface{}{
			"info_name":        draft.Name,
			"info_slug":        slug,
			"info_description": draft.Description,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to refresh club info: %w", err)
	}

	club.Info.Name = draft.Name
	club.Info.Slug = slug
	club.Info.Description = draft.Description
	return &club, nil
}
