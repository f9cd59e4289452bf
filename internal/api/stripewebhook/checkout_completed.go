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
	"clubhost-app/internal/domain/memberships"
	"clubhost-app/internal/domain/tiers"
	stripeinfra "clubhost-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleCheckoutSessionCompleted(event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}

	switch session.Metadata["type"] {
	case "host_plan":
		return h.hostPlanCheckout(&session)
	case "download":
		return h.downloadCheckout(&session)
	default:
		// Unset type means a club membership join (the simpler, non-recurring flow)
		return h.membershipCheckout(&session)
	}
}

// hostPlanCheckout activates the host plan for the club named in the session
// metadata. Missing uid/club_id is a hard failure for this handler: logged,
// dropped, no state change.
func (h *Handler) hostPlanCheckout(session *stripe.CheckoutSession) error {
	md := session.Metadata
	uid, clubID, tier := md["uid"], md["club_id"], md["tier"]
	if uid == "" || clubID == "" {
		log.Printf("❌ host_plan checkout %s missing uid/club_id metadata, dropping", session.ID)
		return nil
	}
	if !tiers.IsValid(tier) {
		log.Printf("❌ host_plan checkout %s has unknown tier %q, dropping", session.ID, tier)
		return nil
	}

	var customerID *string
	if session.Customer != nil && session.Customer.ID != "" {
		customerID = stripe.String(session.Customer.ID)
	}

	// Phase comes from the live subscription status when we can fetch it,
	// else from the metadata hint.
	phase := metadataPhase(md)
	var subscriptionID *string
	var trialEndsAt *time.Time
	if session.Subscription != nil && session.Subscription.ID != "" {
		subscriptionID = stripe.String(session.Subscription.ID)
		if subData, err := h.sc.Subscriptions.Get(session.Subscription.ID, nil); err == nil {
			status := stripeinfra.NormalizeStripeStatus(string(subData.Status))
			phase = stripeinfra.PhaseFromStatus(status, phase)
			if subData.TrialEnd > 0 {
				t := time.Unix(subData.TrialEnd, 0)
				trialEndsAt = &t
			}
		} else {
			log.Printf("⚠️ failed to fetch subscription %s, using metadata phase: %v", session.Subscription.ID, err)
		}
	}
	if phase == "" {
		phase = hostplan.PhaseActive
	}

	err := hostplan.Activate(database.DB, hostplan.ActivateParams{
		UID:                  uid,
		ClubID:               clubID,
		Tier:                 tier,
		Phase:                phase,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: subscriptionID,
		TrialEndsAt:          trialEndsAt,
	})
	if errors.Is(err, clubs.ErrNotClubOwner) {
		// Permanent: retrying will never fix ownership
		log.Printf("❌ host_plan checkout %s: uid=%s does not own club=%s, dropping", session.ID, uid, clubID)
		return nil
	}
	return err
}

// downloadCheckout records a one-time digital-download purchase.
func (h *Handler) downloadCheckout(session *stripe.CheckoutSession) error {
	md := session.Metadata
	if md["uid"] == "" {
		log.Printf("❌ download checkout %s missing uid metadata, dropping", session.ID)
		return nil
	}

	payment := billing.Payment{
		UserID:          md["uid"],
		ClubID:          md["club_id"],
		StripeSessionID: session.ID,
		ProductRef:      md["product_ref"],
		AmountCents:     session.AmountTotal,
		Currency:        string(session.Currency),
		Status:          "completed",
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return fmt.Errorf("failed to record download purchase: %w", err)
	}
	return nil
}

// membershipCheckout upserts the buyer's membership entry for the club.
func (h *Handler) membershipCheckout(session *stripe.CheckoutSession) error {
	md := session.Metadata
	uid, clubID := md["uid"], md["club_id"]
	if uid == "" || clubID == "" {
		log.Printf("❌ membership checkout %s missing uid/club_id metadata, dropping", session.ID)
		return nil
	}

	now := time.Now()
	paymentType := memberships.PaymentTypeOneTime
	var subscriptionID *string
	if session.Subscription != nil && session.Subscription.ID != "" {
		subscriptionID = stripe.String(session.Subscription.ID)
		paymentType = memberships.PaymentTypeSubscription
	}

	var membership memberships.ClubMembership
	err := database.DB.Where("user_id = ? AND club_id = ?", uid, clubID).First(&membership).Error
	if err != nil {
		membership = memberships.ClubMembership{UserID: uid, ClubID: clubID}
	}

	membership.Status = memberships.StatusActive
	membership.IsTrialing = false
	membership.StripeSubscriptionID = subscriptionID
	membership.LastPaymentType = &paymentType
	membership.LastPaymentAt = &now
	membership.ConsecutiveFailedPayments = 0

	if err := database.DB.Save(&membership).Error; err != nil {
		return fmt.Errorf("failed to upsert membership: %w", err)
	}
	return nil
}
