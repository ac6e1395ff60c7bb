package choices

import (
	"net/http"

	"storybuilder-app/internal/domain/writing"

	"github.com/gin-gonic/gin"
)

// GetChoices serves the fixed option tables the forms render.
func GetChoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"genres":    writing.GenreChoices,
		"mbti":      writing.MBTIChoices,
		"enneagram": writing.EnneagramChoices,
	})
}
