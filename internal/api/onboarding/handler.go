package onboarding

import (
	"errors"
	"net/http"

	"clubhost-app/database"
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// SaveClubDraft stores the club the user wants to create. No club document
// exists yet; this only fills onboarding.clubDraft.
func SaveClubDraft(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", uid).
		Updates(map[string]interface{}{
			"onboarding_draft_name":        input.Name,
			"onboarding_draft_description": input.Description,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save club draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// CreateOrReuseClub turns the caller's draft into a real (or refreshed) club.
// Runs BEFORE any payment: the user gets a playground club but no host
// privileges until the webhook-triggered activation.
func CreateOrReuseClub(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	res, err := clubs.CreateOrReuse(database.DB, uid)
	switch {
	case errors.Is(err, clubs.ErrNotClubOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own the club referenced by your draft"})
		return
	case errors.Is(err, clubs.ErrNoClubDraft):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fill in your club draft first"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create club", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"club_id": res.ClubID, "slug": res.Slug})
}
