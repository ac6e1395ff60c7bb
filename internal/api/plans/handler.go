package plans

import (
	"net/http"
	"os"

	"storybuilder-app/database"
	"storybuilder-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/price"
)

// SyncPlansFromStripe refreshes the "pro" plan rows from Stripe prices.
// Admin-only; the free plan is seeded locally and never synced.
func SyncPlansFromStripe(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	targetProductID := os.Getenv("STRIPE_PRO_PRODUCT_ID")

	params := &stripe.PriceListParams{}
	params.Active = stripe.Bool(true)
	params.Type = stripe.String("recurring")
	params.AddExpand("data.product")

	it := price.List(params)

	synced := 0
	created := 0
	updated := 0
	skipped := 0

	for it.Next() {
		p := it.Price()

		if !p.Active || p.Recurring == nil || p.Product == nil || !p.Product.Active {
			skipped++
			continue
		}

		if targetProductID != "" && p.Product.ID != targetProductID {
			skipped++
			continue
		}

		if string(p.Currency) != "eur" {
			skipped++
			continue
		}

		if p.Metadata != nil && p.Metadata["visible"] == "false" {
			skipped++
			continue
		}

		amount := float64(p.UnitAmount) / 100.0

		displayName := p.Product.Name
		if p.Metadata != nil {
			if v := p.Metadata["plan"]; v != "" {
				displayName = v
			}
		}

		var existing plans.Plan
		err := database.DB.Where("stripe_price_id = ?", p.ID).First(&existing).Error

		if err != nil {
			priceID := p.ID
			plan := plans.Plan{
				Name:          displayName,
				PriceEUR:      amount,
				StripePriceID: &priceID,
				Interval:      string(p.Recurring.Interval),
				Tier:          plans.TierPro,
			}
			if err := database.DB.Create(&plan).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan", "details": err.Error()})
				return
			}
			created++
		} else {
			existing.Name = displayName
			existing.PriceEUR = amount
			existing.Interval = string(p.Recurring.Interval)
			existing.Tier = plans.TierPro

			if err := database.DB.Save(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan", "details": err.Error()})
				return
			}
			updated++
		}

		synced++
	}

	if err := it.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Stripe prices", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"synced":  synced,
		"created": created,
		"updated": updated,
		"skipped": skipped,
	})
}

func ListPlans(c *gin.Context) {
	var plansList []plans.Plan
	if err := database.DB.
		Order("price_eur ASC").
		Find(&plansList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, plansList)
}
