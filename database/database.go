package database

import (
	"fmt"
	"log"
	"os"

	"clubhost-app/internal/domain/billing"
	"clubhost-app/internal/domain/clubs"
	"clubhost-app/internal/domain/memberships"
	"clubhost-app/internal/domain/plans"
	"clubhost-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	// ✅ REQUIRED for UUID generation
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Migrate runs the schema migration for every domain model. Split out so
// tests can run it against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&clubs.Club{},
		&plans.Plan{},

		// billing
		&billing.BillingEvent{},
		&billing.Payment{},
		&billing.ProcessedStripeEvent{},

		// memberships
		&memberships.ClubMembership{},
	)
}
