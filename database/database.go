package database

import (
	"fmt"
	"log"
	"os"

	"teranga-pro/internal/domain/annonces"
	"teranga-pro/internal/domain/billing"
	"teranga-pro/internal/domain/catalog"
	"teranga-pro/internal/domain/moderation"
	"teranga-pro/internal/domain/pros"
	"teranga-pro/internal/domain/users"

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

	// ✅ Auto-migrate all domain models
	if err := DB.AutoMigrate(
		// identity
		&users.User{},
		&users.WhatsAppOTP{},

		// catalog
		&catalog.Location{},
		&catalog.JobCategory{},
		&catalog.Job{},

		// billing
		&billing.Payment{},
		&billing.Subscription{},

		// pros
		&pros.ProProfile{},
		&pros.MediaPro{},
		&pros.ContactFavori{},

		// classifieds
		&annonces.Annonce{},

		// moderation
		&moderation.Report{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	// the search path hits this composite index on every public query
	if err := DB.Exec(
		`CREATE INDEX IF NOT EXISTS idx_pros_search ON pro_profiles (is_published, job_id, location_id, online_status);`,
	).Error; err != nil {
		log.Fatal("❌ Failed to create search index:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
