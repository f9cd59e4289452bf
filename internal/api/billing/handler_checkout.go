package billing

import (
	"net/http"

	"clubhost-app/config"
	"clubhost-app/database"
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/plans"
	"clubhost-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

// Handler carries the injected Stripe client for all billing endpoints.
type Handler struct {
	sc *client.API
}

func NewHandler(sc *client.API) *Handler {
	return &Handler{sc: sc}
}

// CreateHostPlanCheckout opens a subscription checkout for the caller's
// onboarding club. The session metadata carries everything the webhook
// gateway needs to activate without guessing: type, uid, club_id, tier.
func (h *Handler) CreateHostPlanCheckout(c *gin.Context) {
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

	// allow-list price id
	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", body.PriceID).First(&plan).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan/price_id"})
		return
	}
	tier := plans.PlanTier(&plan)

	var user users.User
	if err := database.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
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

	// ensure stripe customer
	if user.HostStatus.StripeCustomerID == nil || *user.HostStatus.StripeCustomerID == "" {
		cus, err := h.sc.Customers.New(&stripe.CustomerParams{
			Email: stripe.String(user.Email),
			Metadata: map[string]string{
				"uid":     user.ID,
				"club_id": club.ID,
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe customer"})
			return
		}

		if err := database.DB.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("host_stripe_customer_id", cus.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store Stripe customer"})
			return
		}

		user.HostStatus.StripeCustomerID = stripe.String(cus.ID)
	}

	metadata := map[string]string{
		"type":    "host_plan",
		"uid":     user.ID,
		"club_id": club.ID,
		"tier":    tier,
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/host/billing"),
		CancelURL:  stripe.String(config.APP_URL + "/host/billing?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(*user.HostStatus.StripeCustomerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(plan.StripePriceID), Quantity: stripe.Int64(1)},
		},

		ClientReferenceID: stripe.String(user.ID),
		Metadata:          metadata,

		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}

	s, err := h.sc.CheckoutSessions.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

func (h *Handler) CreateBillingPortal(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if user.HostStatus.StripeCustomerID == nil || *user.HostStatus.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe customer yet (subscribe first)"})
		return
	}

	portal, err := h.sc.BillingPortalSessions.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*user.HostStatus.StripeCustomerID),
		ReturnURL: stripe.String(config.APP_URL + "/host/billing"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
