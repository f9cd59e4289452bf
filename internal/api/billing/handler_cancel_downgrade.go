package billing

import (
	"net/http"

	"clubhost-app/database"
	"clubhost-app/internal/domain/clubs"

	"github.com/gin-gonic/gin"
)

// CancelDowngrade releases the pending downgrade schedule so the club keeps
// its current tier.
func (h *Handler) CancelDowngrade(c *gin.Context) {
	var body struct {
		ClubID string `json:"club_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ClubID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid club_id"})
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

	// Nothing scheduled? Then nothing to cancel.
	if club.Billing.StripeScheduleID == nil || *club.Billing.StripeScheduleID == "" || club.Billing.PendingTier == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No pending downgrade to cancel"})
		return
	}

	scheduleID := *club.Billing.StripeScheduleID

	// ✅ Release schedule so the subscription continues normally on the current plan
	if _, err := h.sc.SubscriptionSchedules.Release(scheduleID, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to release Stripe schedule",
			"details": err.Error(),
		})
		return
	}

	if err := database.DB.Model(&clubs.Club{}).
		Where("id = ?", club.ID).
		Updates(map[string]interface{}{
			"billing_pending_tier":       nil,
			"billing_stripe_schedule_id": nil,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to clear pending downgrade in DB",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Pending downgrade cancelled",
		"schedule_id": scheduleID,
	})
}
