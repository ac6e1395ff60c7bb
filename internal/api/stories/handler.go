package stories

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storybuilder-app/database"
	"storybuilder-app/internal/domain/writing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
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

// cleanStoryInput validates the story form and returns the cleaned
// genre list. Errors are written to the response with the field they
// belong to.
func cleanStoryInput(c *gin.Context, in *StoryInput) ([]string, bool) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required", "field": "title"})
		return nil, false
	}
	if in.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required", "field": "description"})
		return nil, false
	}

	genres, err := writing.CleanGenres(in.Genres, in.OtherChoice)
	if err != nil {
		if errors.Is(err, writing.ErrOtherChoiceRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please specify your other choice", "field": "other_choice"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "genres"})
		}
		return nil, false
	}

	return genres, true
}

// ------------------------------
// GET /stories
// ------------------------------
func ListStories(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	var list []writing.Story
	err := authorStoriesQuery(database.DB, authorID).
		Order("updated_at DESC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stories"})
		return
	}

	out := make([]StoryListItem, 0, len(list))
	for _, s := range list {
		out = append(out, StoryListItem{
			ID:            s.ID,
			Title:         s.Title,
			Slug:          s.Slug,
			Description:   s.Description,
			Genres:        s.Genres,
			WordCount:     s.WordCount,
			DateStarted:   s.CreatedAt,
			DateLastSaved: s.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /stories
// ------------------------------
func CreateStory(c *gin.Context) {
	var in StoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	genres, ok := cleanStoryInput(c, &in)
	if !ok {
		return
	}

	var story writing.Story
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		story = writing.Story{
			AuthorID:     authorID,
			Title:        in.Title,
			Description:  in.Description,
			Premise:      in.Premise,
			Genres:       pq.StringArray(genres),
			DateFinished: in.DateFinished,
		}

		if err := writing.EnsureStorySlug(tx, &story); err != nil {
			return err
		}
		if err := tx.Create(&story).Error; err != nil {
			return err
		}

		// every story gets its plot
		plot := writing.Plot{
			StoryID: story.ID,
			Name:    fmt.Sprintf("Plot for %s", story.Title),
		}
		return tx.Create(&plot).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "You already have a story with this title", "field": "title"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create story"})
		return
	}

	c.JSON(http.StatusCreated, story)
}

// ------------------------------
// GET /stories/:slug
// ------------------------------
func GetStory(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	var story writing.Story
	err := database.DB.
		Preload("Plot.Points", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Scenes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Characters", func(db *gorm.DB) *gorm.DB {
			return db.Order("full_name ASC")
		}).
		First(&story, "author_id = ? AND slug = ?", authorID, c.Param("slug")).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load story"})
		return
	}

	c.JSON(http.StatusOK, story)
}

// ------------------------------
// PUT /stories/:slug
// ------------------------------
func UpdateStory(c *gin.Context) {
	var in StoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	genres, ok := cleanStoryInput(c, &in)
	if !ok {
		return
	}

	var story writing.Story
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		story, err = LockStoryBySlug(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		story.Title = in.Title
		story.Description = in.Description
		story.Premise = in.Premise
		story.Genres = pq.StringArray(genres)
		story.DateFinished = in.DateFinished

		// the slug follows the title
		if err := writing.EnsureStorySlug(tx, &story); err != nil {
			return err
		}

		return tx.Save(&story).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "You already have a story with this title", "field": "title"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update story"})
		return
	}

	c.JSON(http.StatusOK, story)
}

// ------------------------------
// DELETE /stories/:slug
// ------------------------------
func DeleteStory(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	res := database.DB.Delete(&writing.Story{}, "author_id = ? AND slug = ?", authorID, c.Param("slug"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete story"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ------------------------------
// PUT /stories/:slug/word-count
// ------------------------------
func UpdateWordCount(c *gin.Context) {
	var in WordCountInput
	if err := c.ShouldBindJSON(&in); err != nil || in.WordCount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word_count required", "field": "word_count"})
		return
	}
	if *in.WordCount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Word count cannot be negative", "field": "word_count"})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	res := authorStoriesQuery(database.DB, authorID).
		Where("slug = ?", c.Param("slug")).
		Update("word_count", *in.WordCount)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update word count"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "word_count": *in.WordCount})
}
