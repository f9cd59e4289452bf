package stripewebhooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"clubhost-app/database"
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/hostplan"

	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleSubscriptionDeleted(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}
	if sub.ID == "" {
		return nil
	}

	if t := sub.Metadata["type"]; t != "" && t != "host_plan" {
		log.Printf("subscription.deleted %s tagged %q, not a host plan, ignoring", sub.ID, t)
		return nil
	}

	uid, clubID, found := resolveHostPlanContext(&sub)
	if !found {
		log.Printf("⚠️ subscription.deleted %s: no club matches, dropping", sub.ID)
		return nil
	}

	err := hostplan.Cancel(database.DB, hostplan.CancelParams{
		UID:             uid,
		ClubID:          clubID,
		DowngradeReason: "stripe_subscription_deleted",
	})
	if errors.Is(err, clubs.ErrNotClubOwner) {
		log.Printf("❌ subscription.deleted %s: uid=%s does not own club=%s, dropping", sub.ID, uid, clubID)
		return nil
	}
	return err
}
