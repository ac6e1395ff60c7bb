package stripewebhook

import (
	"fmt"
	"strconv"
	"time"

	"storybuilder-app/database"
	"storybuilder-app/internal/domain/authors"
	"storybuilder-app/internal/domain/plans"

	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionUpdated(sub *stripe.Subscription) error {
	if sub.ID == "" || sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return fmt.Errorf("subscription missing id/items/price")
	}

	subscriptionID := sub.ID
	activePriceID := sub.Items.Data[0].Price.ID
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	status := string(sub.Status)

	// Find author
	var author authors.Author
	authorID := authorIDFromMetadata(sub.Metadata)
	if authorID != 0 {
		if err := database.DB.Where("id = ?", authorID).First(&author).Error; err != nil {
			// acknowledge to avoid Stripe retries if author deleted
			return nil
		}
	} else {
		if err := database.DB.Where("subscription_id = ?", subscriptionID).First(&author).Error; err != nil {
			return nil
		}
	}

	// Map plan
	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", activePriceID).First(&plan).Error; err != nil {
		return nil
	}

	updates := map[string]interface{}{
		"plan_id":                    plan.ID,
		"current_period_end":         periodEnd,
		"stripe_subscription_status": status,
		"subscription_id":            subscriptionID,
	}

	return database.DB.Model(&authors.Author{}).
		Where("id = ?", author.ID).
		Updates(updates).Error
}

func authorIDFromMetadata(md map[string]string) uint {
	if md == nil {
		return 0
	}
	s := md["author_id"]
	if s == "" {
		return 0
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
