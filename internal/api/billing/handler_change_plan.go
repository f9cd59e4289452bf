package billing

import (
	"net/http"
	"time"

	"clubhost-app/database"
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/hostplan"
	"clubhost-app/internal/domain/plans"
	"clubhost-app/internal/domain/tiers"
	stripeinfra "clubhost-app/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

// ChangePlan moves the caller's club to another tier. Upgrades apply now
// (prorated by Stripe); downgrades are scheduled for the next billing cycle
// via a subscription schedule.
func (h *Handler) ChangePlan(c *gin.Context) {
	var body struct {
		PriceID string `json:"price_id"`
		ClubID  string `json:"club_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PriceID == "" || body.ClubID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid price_id/club_id"})
		return
	}

	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var club clubs.Club
	if err := database.DB.Where("id = ?", body.ClubID).First(&club).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Club not found"})
		return
	}
	if club.HostID != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this club"})
		return
	}

	var targetPlan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", body.PriceID).First(&targetPlan).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Target plan not found in DB (run /admin/sync-plans)"})
		return
	}
	targetTier := plans.PlanTier(&targetPlan)

	if club.Billing.StripeSubscriptionID == nil || *club.Billing.StripeSubscriptionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No active subscription to change. Use checkout first."})
		return
	}

	sub, err := h.sc.Subscriptions.Get(*club.Billing.StripeSubscriptionID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Stripe subscription", "details": err.Error()})
		return
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Subscription has no price item"})
		return
	}

	item := sub.Items.Data[0]
	if item.Price.ID == targetPlan.StripePriceID {
		c.JSON(http.StatusOK, gin.H{"message": "Already on this plan"})
		return
	}

	currentPrice := tiers.Config(club.BillingTier).MonthlyPriceCents
	targetPrice := tiers.Config(targetTier).MonthlyPriceCents
	isUpgrade := targetPrice > currentPrice

	// -------------------------
	// ✅ UPGRADE: effective now
	// -------------------------
	if isUpgrade {
		updateParams := &stripe.SubscriptionParams{
			Items: []*stripe.SubscriptionItemsParams{
				{
					ID:    stripe.String(item.ID),
					Price: stripe.String(targetPlan.StripePriceID),
				},
			},
			ProrationBehavior: stripe.String("create_prorations"),
		}

		updatedSub, err := h.sc.Subscriptions.Update(*club.Billing.StripeSubscriptionID, updateParams)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade subscription", "details": err.Error()})
			return
		}

		phase := stripeinfra.PhaseFromStatus(string(updatedSub.Status), hostplan.PhaseActive)
		if err := hostplan.Activate(database.DB, hostplan.ActivateParams{
			UID:                  uid,
			ClubID:               club.ID,
			Tier:                 targetTier,
			Phase:                phase,
			StripeSubscriptionID: stripe.String(updatedSub.ID),
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply upgrade", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":         "Upgraded now (prorated automatically by Stripe)",
			"is_upgrade":      true,
			"tier":            targetTier,
			"subscription_id": updatedSub.ID,
		})
		return
	}

	// -----------------------------------
	// ✅ DOWNGRADE: schedule next cycle
	// -----------------------------------
	periodStartUnix := sub.CurrentPeriodStart
	periodEndUnix := sub.CurrentPeriodEnd
	effectiveAt := time.Unix(periodEndUnix, 0)

	scheduleID := ""
	if sub.Schedule != nil {
		scheduleID = sub.Schedule.ID
	}

	if scheduleID == "" {
		// create schedule only if none exists
		schedule, err := h.sc.SubscriptionSchedules.New(&stripe.SubscriptionScheduleParams{
			FromSubscription: stripe.String(sub.ID),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule", "details": err.Error()})
			return
		}
		scheduleID = schedule.ID
	}

	_, err = h.sc.SubscriptionSchedules.Update(scheduleID, &stripe.SubscriptionScheduleParams{
		EndBehavior: stripe.String("release"),
		Phases: []*stripe.SubscriptionSchedulePhaseParams{
			{
				StartDate: stripe.Int64(periodStartUnix),
				EndDate:   stripe.Int64(periodEndUnix),
				Items: []*stripe.SubscriptionSchedulePhaseItemParams{
					{Price: stripe.String(item.Price.ID), Quantity: stripe.Int64(1)},
				},
			},
			{
				StartDate: stripe.Int64(periodEndUnix),
				Items: []*stripe.SubscriptionSchedulePhaseItemParams{
					{Price: stripe.String(targetPlan.StripePriceID), Quantity: stripe.Int64(1)},
				},
			},
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update schedule phases", "details": err.Error()})
		return
	}

	// Keep the current tier until Stripe flips the phase; only the pending
	// decision is stored now.
	if err := database.DB.Model(&clubs.Club{}).
		Where("id = ?", club.ID).
		Updates(map[string]interface{}{
			"billing_pending_tier":       targetTier,
			"billing_stripe_schedule_id": scheduleID,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store pending downgrade", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Downgrade scheduled for next billing cycle",
		"is_upgrade":   false,
		"tier":         targetTier,
		"effective_at": effectiveAt,
		"schedule_id":  scheduleID,
	})
}
