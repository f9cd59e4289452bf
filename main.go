package main

import (
	"time"

	"clubhost-app/config"
	"clubhost-app/database"
	routes "clubhost-app/internal/app/http"
	"clubhost-app/internal/domain/reconciler"
	stripeinfra "clubhost-app/internal/infra/stripe"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	sc := stripeinfra.NewClient(config.STRIPE_SECRET_KEY)

	if config.RECONCILER_ENABLED {
		stop := reconciler.StartRunner(database.DB, time.Duration(config.RECONCILER_INTERVAL_MIN)*time.Minute)
		defer stop()
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, sc, config.STRIPE_WEBHOOK_SECRET)

	r.Run(":" + config.PORT)
}
