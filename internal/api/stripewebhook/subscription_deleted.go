package stripewebhook

import (
	"time"

	"storybuilder-app/database"
	"storybuilder-app/internal/domain/authors"
	"storybuilder-app/internal/domain/plans"

	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	status := string(sub.Status)
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	var author authors.Author
	authorID := authorIDFromMetadata(sub.Metadata)
	if authorID != 0 {
		_ = database.DB.Where("id = ?", authorID).First(&author).Error
	}
	if author.ID == 0 {
		_ = database.DB.Where("subscription_id = ?", sub.ID).First(&author).Error
	}
	if author.ID == 0 {
		return nil
	}

	updates := map[string]interface{}{
		"stripe_subscription_status": status,
		"current_period_end":         periodEnd,
		"subscription_id":            nil,
	}

	// Back to the free tier once the subscription is gone
	var free plans.Plan
	if err := database.DB.Where("tier = ?", plans.TierFree).First(&free).Error; err == nil {
		updates["plan_id"] = free.ID
	}

	return database.DB.Model(&authors.Author{}).
		Where("id = ?", author.ID).
		Updates(updates).Error
}
