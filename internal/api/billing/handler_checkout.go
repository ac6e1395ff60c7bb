package billing

import (
	"fmt"
	"net/http"
	"os"

	"storybuilder-app/database"
	"storybuilder-app/internal/domain/authors"
	"storybuilder-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	portalSession "github.com/stripe/stripe-go/v75/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	customer "github.com/stripe/stripe-go/v75/customer"
)

func CreateCheckoutSession(c *gin.Context) {
	var body struct {
		PriceID string `json:"price_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PriceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid price_id"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	authorID := c.GetUint("author_id")
	if authorID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Author not identified"})
		return
	}

	// allow-list price id
	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", body.PriceID).First(&plan).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan/price_id"})
		return
	}
	if plan.StripePriceID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plan is not purchasable"})
		return
	}

	var author authors.Author
	if err := database.DB.Where("id = ?", authorID).First(&author).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Author not found"})
		return
	}

	if !author.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email first"})
		return
	}

	// ensure stripe customer
	if author.StripeCustomerID == nil || *author.StripeCustomerID == "" {
		cus, err := customer.New(&stripe.CustomerParams{
			Email: stripe.String(author.Email),
			Metadata: map[string]string{
				"author_id": fmt.Sprint(author.ID),
				"app_env":   os.Getenv("APP_ENV"),
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe customer"})
			return
		}

		if err := database.DB.Model(&authors.Author{}).
			Where("id = ?", author.ID).
			Update("stripe_customer_id", cus.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store Stripe customer"})
			return
		}

		author.StripeCustomerID = stripe.String(cus.ID)
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:5173"
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(appURL + "/account"),
		CancelURL:  stripe.String(appURL + "/account?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(*author.StripeCustomerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(*plan.StripePriceID), Quantity: stripe.Int64(1)},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(author.ID)),

		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"author_id": fmt.Sprint(author.ID),
				"plan_id":   fmt.Sprint(plan.ID),
			},
		},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

func CreateBillingPortal(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	authorID := c.GetUint("author_id")
	if authorID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Author not identified"})
		return
	}

	var author authors.Author
	if err := database.DB.Where("id = ?", authorID).First(&author).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Author not found"})
		return
	}
	if author.StripeCustomerID == nil || *author.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe customer yet (subscribe first)"})
		return
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:5173"
	}

	portal, err := portalSession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*author.StripeCustomerID),
		ReturnURL: stripe.String(appURL + "/account"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
