package plans

import (
	"net/http"
	"os"

	"clubhost-app/database"
	"clubhost-app/internal/domain/plans"
	"clubhost-app/internal/domain/tiers"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

type Handler struct {
	sc *client.API
}

func NewHandler(sc *client.API) *Handler {
	return &Handler{sc: sc}
}

// SyncPlansFromStripe mirrors the active recurring Stripe prices into the
// plans table. The `tier` metadata key on the price decides which host-plan
// tier the price maps to; prices without a known tier are skipped.
func (h *Handler) SyncPlansFromStripe(c *gin.Context) {
	targetProductID := os.Getenv("STRIPE_HOST_PLAN_PRODUCT_ID") // recommended

	params := &stripe.PriceListParams{}
	params.Active = stripe.Bool(true)
	params.Type = stripe.String("recurring")
	params.AddExpand("data.product")

	it := h.sc.Prices.List(params)

	synced := 0
	created := 0
	updated := 0
	skipped := 0

	for it.Next() {
		p := it.Price()

		if !p.Active || p.Recurring == nil || p.Product == nil || !p.Product.Active {
			skipped++
			continue
		}

		// ✅ filter by product (recommended)
		if targetProductID != "" && p.Product.ID != targetProductID {
			skipped++
			continue
		}

		// visibility flag
		if p.Metadata != nil && p.Metadata["visible"] == "false" {
			skipped++
			continue
		}

		tier := ""
		if p.Metadata != nil {
			tier = p.Metadata["tier"] // "tier_a|tier_b|tier_c"
		}
		if !tiers.IsValid(tier) {
			skipped++
			continue
		}

		displayName := p.Product.Name
		if p.Metadata != nil {
			if v := p.Metadata["plan"]; v != "" {
				displayName = v
			}
		}

		var existing plans.Plan
		err := database.DB.Where("stripe_price_id = ?", p.ID).First(&existing).Error

		if err != nil {
			plan := plans.Plan{
				Name:          displayName,
				PriceCents:    p.UnitAmount,
				Currency:      string(p.Currency),
				StripePriceID: p.ID,
				Interval:      string(p.Recurring.Interval),
				Tier:          tier,
			}
			if err := database.DB.Create(&plan).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan", "details": err.Error()})
				return
			}
			created++
		} else {
			existing.Name = displayName
			existing.PriceCents = p.UnitAmount
			existing.Currency = string(p.Currency)
			existing.Interval = string(p.Recurring.Interval)
			existing.Tier = tier

			if err := database.DB.Save(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan", "details": err.Error()})
				return
			}
			updated++
		}

		synced++
	}

	if err := it.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Stripe prices", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"synced":  synced,
		"created": created,
		"updated": updated,
		"skipped": skipped,
	})
}

func ListPlans(c *gin.Context) {
	var plansList []plans.Plan
	if err := database.DB.Model(&plans.Plan{}).
		Order("price_cents ASC").
		Find(&plansList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, plansList)
}
