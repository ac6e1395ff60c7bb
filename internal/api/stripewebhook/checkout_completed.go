package stripewebhook

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"storybuilder-app/database"
	"storybuilder-app/internal/domain/authors"
	"storybuilder-app/internal/domain/billing"
	"storybuilder-app/internal/domain/plans"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
)

func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	// Fetch full session with expansions
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}
	subscriptionID := fullSession.Subscription.ID

	subData, err := subscription.Get(subscriptionID, nil)
	if err != nil || subData == nil || subData.Items == nil || len(subData.Items.Data) == 0 || subData.Items.Data[0].Price == nil {
		return fmt.Errorf("failed to fetch subscription items: %w", err)
	}

	// Identify author: metadata.author_id preferred, else ClientReferenceID
	authorID, err := authorIDFromSubscriptionOrRef(subData, fullSession.ClientReferenceID)
	if err != nil {
		return err
	}

	var author authors.Author
	if err := database.DB.Where("id = ?", authorID).First(&author).Error; err != nil {
		return fmt.Errorf("author not found: %w", err)
	}

	// Map Stripe price -> Plan
	priceID := subData.Items.Data[0].Price.ID
	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", priceID).First(&plan).Error; err != nil {
		return fmt.Errorf("plan not found for stripe price_id=%s: %w", priceID, err)
	}

	periodEnd := time.Unix(subData.CurrentPeriodEnd, 0)
	status := string(subData.Status)

	updates := map[string]interface{}{
		"plan_id":                    plan.ID,
		"subscription_id":            subscriptionID,
		"current_period_end":         periodEnd,
		"stripe_subscription_status": status,
	}

	if fullSession.Customer != nil && fullSession.Customer.ID != "" {
		updates["stripe_customer_id"] = fullSession.Customer.ID
	}

	// Cancel old sub if a different one is still attached
	if author.SubscriptionId != nil && *author.SubscriptionId != "" && *author.SubscriptionId != subscriptionID {
		_, _ = subscription.Cancel(*author.SubscriptionId, nil)
	}

	if err := database.DB.Model(&authors.Author{}).
		Where("id = ?", author.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update author after checkout: %w", err)
	}

	recordPayment(fullSession, author.ID, plan.ID, subscriptionID)

	return nil
}

// recordPayment is best-effort; the session id is unique so webhook
// retries do not duplicate rows.
func recordPayment(s *stripe.CheckoutSession, authorID, planID uint, subscriptionID string) {
	payment := billing.Payment{
		AuthorID:             authorID,
		PlanID:               &planID,
		StripeSessionID:      s.ID,
		StripeSubscriptionID: &subscriptionID,
		AmountEUR:            float64(s.AmountTotal) / 100,
		Status:               string(s.PaymentStatus),
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		fmt.Println("❌ Failed to record payment:", err)
	}
}

func authorIDFromSubscriptionOrRef(sub *stripe.Subscription, clientRef string) (uint, error) {
	authorIDStr := ""
	if sub.Metadata != nil {
		authorIDStr = sub.Metadata["author_id"]
	}
	if authorIDStr == "" {
		authorIDStr = clientRef
	}
	if authorIDStr == "" {
		return 0, errors.New("missing author_id (metadata.author_id or client_reference_id)")
	}

	id64, err := strconv.ParseUint(authorIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid author_id %q: %w", authorIDStr, err)
	}
	return uint(id64), nil
}
