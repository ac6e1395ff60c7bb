package authors

import (
	"net/http"

	"storybuilder-app/database"
	"storybuilder-app/internal/domain/authors"
	"storybuilder-app/internal/domain/plans"
	"storybuilder-app/internal/domain/writing"

	"github.com/gin-gonic/gin"
)

func currentAuthor(c *gin.Context) (authors.Author, bool) {
	id, ok := c.Get("author_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return authors.Author{}, false
	}

	var author authors.Author
	if err := database.DB.
		Preload("Plan").
		First(&author, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		return authors.Author{}, false
	}
	return author, true
}

// GET /me
func GetCurrentAuthor(c *gin.Context) {
	author, ok := currentAuthor(c)
	if !ok {
		return
	}

	var storyCount int64
	database.DB.Model(&writing.Story{}).
		Where("author_id = ?", author.ID).
		Count(&storyCount)

	var storyLimit *int
	if plans.PlanTier(author.Plan) == plans.TierFree {
		limit := plans.FreeStoryLimit
		storyLimit = &limit
	}

	resp := MeResponse{
		Author:  buildAuthorDTO(author),
		Billing: buildBillingDTO(author),
		Usage: UsageDTO{
			Stories:    storyCount,
			StoryLimit: storyLimit,
		},
	}

	c.JSON(http.StatusOK, resp)
}

// PUT /me
func UpdateProfile(c *gin.Context) {
	author, ok := currentAuthor(c)
	if !ok {
		return
	}

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if input.FirstName != nil {
		author.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		author.LastName = *input.LastName
	}
	if input.Bio != nil {
		author.Bio = *input.Bio
	}
	if input.Website != nil {
		author.Website = *input.Website
	}

	if err := database.DB.Save(&author).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, buildAuthorDTO(author))
}

/* ---------------- builders ---------------- */

func buildAuthorDTO(a authors.Author) AuthorDTO {
	return AuthorDTO{
		ID:         a.ID,
		Username:   a.Username,
		Email:      a.Email,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Role:       a.Role,
		IsVerified: a.IsVerified,
		Bio:        a.Bio,
		Website:    a.Website,
	}
}

func buildBillingDTO(a authors.Author) BillingDTO {
	return BillingDTO{
		Plan:         buildPlanDTO(a.Plan),
		Subscription: buildSubscriptionDTO(a),
	}
}

func buildPlanDTO(p *plans.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	return &PlanDTO{
		ID:       p.ID,
		Key:      p.Name,
		Tier:     plans.PlanTier(p),
		Interval: p.Interval,
		PriceEUR: p.PriceEUR,
	}
}

func buildSubscriptionDTO(a authors.Author) *SubscriptionDTO {
	if a.SubscriptionId == nil || *a.SubscriptionId == "" {
		return nil
	}

	status := ""
	if a.StripeSubscriptionStatus != nil {
		status = *a.StripeSubscriptionStatus
	}

	return &SubscriptionDTO{
		Status:               status,
		CurrentPeriodEnd:     a.CurrentPeriodEnd,
		StripeSubscriptionID: a.SubscriptionId,
	}
}
