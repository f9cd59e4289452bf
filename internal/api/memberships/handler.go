package memberships

import (
	"net/http"
	"time"

	"clubhost-app/database"
	"clubhost-app/internal/domain/memberships"

	"github.com/gin-gonic/gin"
)

// GetMyMembership returns the caller's membership entry for a club plus the
// derived access state. Read-only; consumed by content gating.
func GetMyMembership(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	clubID := c.Param("clubId")

	var m memberships.ClubMembership
	if err := database.DB.
		Where("user_id = ? AND club_id = ?", uid, clubID).
		First(&m).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No membership for this club"})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"status":        m.Status,
		"is_trialing":   m.IsTrialing,
		"trial_ends_at": m.TrialEndsAt,
		"trial_active":  memberships.IsTrialActive(m, now),
		"access_state":  memberships.ComputeAccessState(now, m),
	})
}
