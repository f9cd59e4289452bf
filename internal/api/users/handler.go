package users

import (
	"net/http"

	"clubhost-app/database"
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := MeResponse{
		User: UserDTO{
			ID:     user.ID,
			Email:  user.Email,
			Name:   user.Name,
			IsHost: user.Roles.Host,
			Clubs:  user.ClubsHosted,
		},
		HostStatus: BuildHostStatusDTO(user),
		Onboarding: BuildOnboardingDTO(user),
	}

	c.JSON(http.StatusOK, resp)
}

// GetMyClubs lists the clubs the caller hosts.
func GetMyClubs(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var hosted []clubs.Club
	if err := database.DB.Where("host_id = ?", uid).Order("created_at ASC").Find(&hosted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load clubs"})
		return
	}

	out := make([]ClubSummaryDTO, 0, len(hosted))
	for _, club := range hosted {
		out = append(out, BuildClubSummaryDTO(club))
	}

	c.JSON(http.StatusOK, out)
}
