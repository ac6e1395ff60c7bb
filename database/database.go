package database

import (
	"fmt"
	"log"
	"os"

	"storybuilder-app/internal/domain/authors"
	"storybuilder-app/internal/domain/billing"
	"storybuilder-app/internal/domain/plans"
	"storybuilder-app/internal/domain/writing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	// TranslateError maps duplicate-key violations to
	// gorm.ErrDuplicatedKey so handlers can answer 409 instead of 500.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	// Auto-migrate all domain models
	if err := DB.AutoMigrate(
		// accounts
		&authors.Author{},
		&authors.VerificationToken{},
		&plans.Plan{},
		&billing.Payment{},

		// writing
		&writing.Story{},
		&writing.Plot{},
		&writing.PlotPoint{},
		&writing.Scene{},
		&writing.SceneNote{},
		&writing.Character{},
		&writing.World{},
		&writing.Collection{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	seedPlans()

	fmt.Println("✅ Connected and migrated successfully")
}

// seedPlans makes sure the free and pro plans exist so new authors can
// be attached to the free tier right away.
func seedPlans() {
	defaults := []plans.Plan{
		{Name: "Free", PriceEUR: 0, Interval: "month", Tier: plans.TierFree},
		{Name: "Pro", PriceEUR: 6, Interval: "month", Tier: plans.TierPro},
	}

	for _, p := range defaults {
		var existing plans.Plan
		if err := DB.Where("tier = ?", p.Tier).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := DB.Create(&p).Error; err != nil {
				log.Println("⚠️ Failed to seed plan", p.Name, ":", err)
			}
		}
	}
}
