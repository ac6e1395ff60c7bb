package characters

import (
	"errors"
	"net/http"
	"strings"

	"storybuilder-app/database"
	"storybuilder-app/internal/api/stories"
	"storybuilder-app/internal/domain/writing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustAuthorID(c *gin.Context) (uint, bool) {
	authorID := c.GetUint("author_id")
	if authorID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return authorID, true
}

func cleanCharacterInput(c *gin.Context, in *CharacterInput) bool {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.MiddleName = strings.TrimSpace(in.MiddleName)
	in.LastName = strings.TrimSpace(in.LastName)

	if in.FirstName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "First name is required", "field": "first_name"})
		return false
	}
	if !writing.ValidMBTIChoice(in.MBTIPersonality) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown MBTI personality type", "field": "mbti_personality"})
		return false
	}
	if !writing.ValidEnneagramChoice(in.EnneagramPersonality) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown enneagram personality type", "field": "enneagram_personality"})
		return false
	}
	return true
}

func applyCharacterInput(ch *writing.Character, in CharacterInput) {
	ch.FirstName = in.FirstName
	ch.MiddleName = in.MiddleName
	ch.LastName = in.LastName
	ch.Gender = in.Gender
	ch.Age = in.Age
	ch.Ethnicity = in.Ethnicity
	ch.Occupation = in.Occupation
	ch.Location = in.Location
	ch.HairColor = in.HairColor
	ch.EyeColor = in.EyeColor
	ch.Height = in.Height
	ch.BodyType = in.BodyType
	ch.MBTIPersonality = in.MBTIPersonality
	ch.EnneagramPersonality = in.EnneagramPersonality
	ch.Description = in.Description
}

// ------------------------------
// GET /stories/:slug/characters
// ------------------------------
func ListCharacters(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	story, err := stories.FindStoryBySlug(database.DB, authorID, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	var list []writing.Character
	err = database.DB.
		Where("story_id = ?", story.ID).
		Order("full_name ASC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load characters"})
		return
	}

	out := make([]CharacterListItem, 0, len(list))
	for _, ch := range list {
		out = append(out, CharacterListItem{ID: ch.ID, FullName: ch.FullName, Slug: ch.Slug})
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /stories/:slug/characters
// ------------------------------
func CreateCharacter(c *gin.Context) {
	var in CharacterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	if !cleanCharacterInput(c, &in) {
		return
	}

	var character writing.Character
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		story, err := stories.FindStoryBySlug(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		character = writing.Character{StoryID: story.ID}
		applyCharacterInput(&character, in)

		// full name first, then the slug derived from it
		writing.DeriveFullName(&character)
		if err := writing.EnsureCharacterSlug(tx, &character); err != nil {
			return err
		}

		return tx.Create(&character).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create character"})
		return
	}

	c.JSON(http.StatusCreated, character)
}

// ------------------------------
// GET /stories/:slug/characters/:cslug
// ------------------------------
func GetCharacter(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	story, err := stories.FindStoryBySlug(database.DB, authorID, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	var character writing.Character
	err = database.DB.First(&character, "story_id = ? AND slug = ?", story.ID, c.Param("cslug")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Character not found"})
		return
	}

	c.JSON(http.StatusOK, character)
}

// ------------------------------
// PUT /stories/:slug/characters/:cslug
// ------------------------------
func UpdateCharacter(c *gin.Context) {
	var in CharacterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	if !cleanCharacterInput(c, &in) {
		return
	}

	var character writing.Character
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		story, err := stories.FindStoryBySlug(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		if err := tx.First(&character, "story_id = ? AND slug = ?", story.ID, c.Param("cslug")).Error; err != nil {
			return err
		}

		applyCharacterInput(&character, in)

		// recompute on every save, not just at creation
		writing.DeriveFullName(&character)
		if err := writing.EnsureCharacterSlug(tx, &character); err != nil {
			return err
		}

		return tx.Save(&character).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Character not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update character"})
		return
	}

	c.JSON(http.StatusOK, character)
}

// ------------------------------
// DELETE /stories/:slug/characters/:cslug
// ------------------------------
func DeleteCharacter(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	story, err := stories.FindStoryBySlug(database.DB, authorID, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	res := database.DB.Delete(&writing.Character{}, "story_id = ? AND slug = ?", story.ID, c.Param("cslug"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete character"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Character not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
