package admin

import (
	"net/http"
	"time"

	"storybuilder-app/database"
	"storybuilder-app/internal/domain/authors"
	"storybuilder-app/internal/domain/billing"
	"storybuilder-app/internal/domain/writing"

	"github.com/gin-gonic/gin"
)

type AdminAuthor struct {
	ID               uint    `json:"id"`
	Username         string  `json:"username"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	IsVerified       bool    `json:"is_verified"`
	StoryCount       int64   `json:"story_count"`
	PlanName         *string `json:"plan_name,omitempty"`
	StripeCustomerID *string `json:"stripe_customer_id,omitempty"`
	StripeSubID      *string `json:"stripe_subscription_id,omitempty"`
}

type AdminPayment struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email"`
	PlanName   *string `json:"plan_name,omitempty"`
	AmountEUR  float64 `json:"amount_eur"`
	Status     string  `json:"status"`
	InvoiceID  *string `json:"invoice_id,omitempty"`
	ReceiptURL *string `json:"receipt_url,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type AdminStats struct {
	TotalAuthors   int            `json:"total_authors"`
	TotalStories   int            `json:"total_stories"`
	TotalRevenue   float64        `json:"total_revenue"`
	RecentRevenue  float64        `json:"recent_revenue"`
	AuthorsPerPlan map[string]int `json:"authors_per_plan"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard 👑",
	})
}

func ListAllAuthors(c *gin.Context) {
	var all []authors.Author
	err := database.DB.Preload("Plan").Find(&all).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load authors"})
		return
	}

	var adminAuthors []AdminAuthor
	for _, a := range all {
		var planName *string
		if a.Plan != nil {
			planName = &a.Plan.Name
		}

		var storyCount int64
		database.DB.Model(&writing.Story{}).Where("author_id = ?", a.ID).Count(&storyCount)

		adminAuthors = append(adminAuthors, AdminAuthor{
			ID:               a.ID,
			Username:         a.Username,
			FirstName:        a.FirstName,
			LastName:         a.LastName,
			Email:            a.Email,
			Role:             a.Role,
			IsVerified:       a.IsVerified,
			StoryCount:       storyCount,
			PlanName:         planName,
			StripeCustomerID: a.StripeCustomerID,
			StripeSubID:      a.SubscriptionId,
		})
	}

	c.JSON(http.StatusOK, adminAuthors)
}

func ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	err := database.DB.Preload("Author").Preload("Plan").Order("created_at DESC").Find(&payments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var result []AdminPayment
	for _, p := range payments {
		var planName *string
		if p.Plan != nil {
			planName = &p.Plan.Name
		}
		result = append(result, AdminPayment{
			ID:         p.ID,
			Email:      p.Author.Email,
			PlanName:   planName,
			AmountEUR:  p.AmountEUR,
			Status:     p.Status,
			InvoiceID:  p.InvoiceID,
			ReceiptURL: p.ReceiptURL,
			CreatedAt:  p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalAuthors int64
	var totalStories int64
	var totalRevenue float64
	var recentRevenue float64

	database.DB.Model(&authors.Author{}).Count(&totalAuthors)
	database.DB.Model(&writing.Story{}).Count(&totalStories)
	database.DB.Model(&billing.Payment{}).Where("status = ?", "paid").Select("COALESCE(SUM(amount_eur), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ?", "paid", thirtyDaysAgo).
		Select("COALESCE(SUM(amount_eur), 0)").Scan(&recentRevenue)

	stats.TotalAuthors = int(totalAuthors)
	stats.TotalStories = int(totalStories)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	type PlanCount struct {
		Name  *string
		Count int
	}
	var counts []PlanCount

	database.DB.
		Table("authors").
		Select("plans.name, COUNT(authors.id) as count").
		Joins("LEFT JOIN plans ON authors.plan_id = plans.id").
		Group("plans.name").
		Scan(&counts)

	stats.AuthorsPerPlan = map[string]int{}
	for _, c := range counts {
		name := "No Plan"
		if c.Name != nil {
			name = *c.Name
		}
		stats.AuthorsPerPlan[name] = c.Count
	}

	c.JSON(http.StatusOK, stats)
}

func GetAuthorDetails(c *gin.Context) {
	authorID := c.Param("id")

	var author authors.Author
	if err := database.DB.Preload("Plan").First(&author, authorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		return
	}

	var payments []billing.Payment
	if err := database.DB.Preload("Plan").Where("author_id = ?", authorID).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"author":   author,
		"payments": payments,
	})
}
