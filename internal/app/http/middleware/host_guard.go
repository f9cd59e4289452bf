package middleware

import (
	"net/http"

	"clubhost-app/database"
	"clubhost-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireActiveHostPlan gates host-only routes on hostStatus.enabled, which
// only the activation transition ever sets.
func RequireActiveHostPlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("uid")

		var user users.User
		if err := database.DB.Where("id = ?", uid).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Host plan not found",
			})
			return
		}

		if !user.HostStatus.Enabled {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your host plan is not active",
			})
			return
		}

		c.Next()
	}
}
