package routes

import (
	authapi "clubhost-app/internal/api/auth"
	billingapi "clubhost-app/internal/api/billing"
	membershipsapi "clubhost-app/internal/api/memberships"
	onboardingapi "clubhost-app/internal/api/onboarding"
	plansapi "clubhost-app/internal/api/plans"
	stripewebhooks "clubhost-app/internal/api/stripewebhook"
	usersapi "clubhost-app/internal/api/users"
	"clubhost-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75/client"
)

func RegisterRoutes(r *gin.Engine, sc *client.API, webhookSecret string) {
	webhookHandler := stripewebhooks.NewHandler(sc, webhookSecret)
	billingHandler := billingapi.NewHandler(sc)
	plansHandler := plansapi.NewHandler(sc)

	// Raw body required for signature verification — no sanitizing here
	r.POST("/webhook/payments", webhookHandler.HandleWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", plansapi.ListPlans)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.GET("/me/clubs", usersapi.GetMyClubs)
	auth.GET("/clubs/:clubId/membership", membershipsapi.GetMyMembership)

	auth.POST("/onboarding/club-draft", onboardingapi.SaveClubDraft)
	auth.POST("/onboarding/club", onboardingapi.CreateOrReuseClub)

	auth.GET("/payments", billingHandler.GetPaymentHistory)
	auth.POST("/create-checkout-session", billingHandler.CreateHostPlanCheckout)
	auth.POST("/billing-portal", billingHandler.CreateBillingPortal)

	// Active hosts only
	host := auth.Group("/")
	host.Use(middleware.RequireActiveHostPlan())
	host.POST("/change-plan", billingHandler.ChangePlan)
	host.POST("/cancel-downgrade", billingHandler.CancelDowngrade)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.POST("/sync-plans", plansHandler.SyncPlansFromStripe)
}
