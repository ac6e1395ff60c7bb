package middleware

import (
	"net/http"

	"storybuilder-app/database"
	"storybuilder-app/internal/domain/authors"
	"storybuilder-app/internal/domain/plans"
	"storybuilder-app/internal/domain/writing"

	"github.com/gin-gonic/gin"
)

// RequireStoryQuota blocks story creation once a free-plan author has
// reached the free story limit. Pro authors are uncapped.
func RequireStoryQuota() gin.HandlerFunc {
	return func(c *gin.Context) {
		authorID := c.GetUint("author_id")
		if authorID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var author authors.Author
		if err := database.DB.Preload("Plan").First(&author, authorID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Author not found"})
			return
		}

		if plans.PlanTier(author.Plan) == plans.TierPro {
			c.Next()
			return
		}

		var count int64
		if err := database.DB.Model(&writing.Story{}).
			Where("author_id = ?", authorID).
			Count(&count).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check story quota"})
			return
		}

		if count >= plans.FreeStoryLimit {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Free plan is limited to 3 stories. Upgrade to Pro for unlimited stories.",
			})
			return
		}

		c.Next()
	}
}
