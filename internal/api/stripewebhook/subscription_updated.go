package stripewebhooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"clubhost-app/database"
	"clubhost-app/internal/domain/billing"
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/hostplan"
	"clubhost-app/internal/domain/plans"
	"clubhost-app/internal/domain/tiers"
	stripeinfra "clubhost-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleSubscriptionUpdated(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}
	if sub.ID == "" {
		return nil
	}

	// An explicit non-host_plan tag belongs to the membership billing flow;
	// untagged events are treated as host_plan by default.
	if t := sub.Metadata["type"]; t != "" && t != "host_plan" {
		log.Printf("subscription.updated %s tagged %q, not a host plan, ignoring", sub.ID, t)
		return nil
	}

	uid, clubID, found := resolveHostPlanContext(&sub)
	if !found {
		log.Printf("⚠️ subscription.updated %s: no club matches, dropping", sub.ID)
		return nil
	}

	tier := resolveTier(&sub)
	if tier == "" {
		log.Printf("⚠️ subscription.updated %s: cannot resolve tier, dropping", sub.ID)
		return nil
	}

	status := stripeinfra.NormalizeStripeStatus(string(sub.Status))
	phase := stripeinfra.PhaseFromStatus(status, metadataPhase(sub.Metadata))

	var customerID *string
	if sub.Customer != nil && sub.Customer.ID != "" {
		customerID = stripe.String(sub.Customer.ID)
	}
	var trialEndsAt *time.Time
	if sub.TrialEnd > 0 {
		t := time.Unix(sub.TrialEnd, 0)
		trialEndsAt = &t
	}

	err := hostplan.Activate(database.DB, hostplan.ActivateParams{
		UID:                  uid,
		ClubID:               clubID,
		Tier:                 tier,
		Phase:                phase,
		EventType:            billing.EventHostPlanSubscriptionUpdated,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: stripe.String(sub.ID),
		TrialEndsAt:          trialEndsAt,
	})
	if errors.Is(err, clubs.ErrNotClubOwner) {
		log.Printf("❌ subscription.updated %s: uid=%s does not own club=%s, dropping", sub.ID, uid, clubID)
		return nil
	}
	return err
}

// resolveHostPlanContext finds {uid, clubId} for a subscription event: from
// metadata when present, else by the club whose stored subscription id
// matches. No match is a silent no-op for the caller, not an error.
func resolveHostPlanContext(sub *stripe.Subscription) (uid, clubID string, found bool) {
	if sub.Metadata["uid"] != "" && sub.Metadata["club_id"] != "" {
		return sub.Metadata["uid"], sub.Metadata["club_id"], true
	}

	var club clubs.Club
	if err := database.DB.
		Where("billing_stripe_subscription_id = ?", sub.ID).
		First(&club).Error; err != nil {
		return "", "", false
	}
	return club.HostID, club.ID, true
}

// resolveTier maps the subscription's price id onto a tier via the synced
// plans table, falling back to the metadata tier tag.
func resolveTier(sub *stripe.Subscription) string {
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		priceID := sub.Items.Data[0].Price.ID
		var plan plans.Plan
		if err := database.DB.Where("stripe_price_id = ?", priceID).First(&plan).Error; err == nil {
			return plans.PlanTier(&plan)
		}
	}
	if tier := sub.Metadata["tier"]; tiers.IsValid(tier) {
		return tier
	}
	return ""
}
