package scenes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storybuilder-app/database"
	"storybuilder-app/internal/api/stories"
	"storybuilder-app/internal/domain/writing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errPlotPointNotFound = errors.New("plot point not found")

func mustAuthorID(c *gin.Context) (uint, bool) {
	authorID := c.GetUint("author_id")
	if authorID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return authorID, true
}

// order path params are 1-based; anything else reads as "no such scene".
func sceneOrderParam(c *gin.Context) (int, bool) {
	order, err := strconv.Atoi(c.Param("order"))
	if err != nil || order < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scene not found"})
		return 0, false
	}
	return order, true
}

// resolvePlotPointID maps a plot point order inside the story's plot to
// its row ID.
func resolvePlotPointID(tx *gorm.DB, storyID uint, order int) (*uint, error) {
	var plot writing.Plot
	if err := tx.First(&plot, "story_id = ?", storyID).Error; err != nil {
		return nil, errPlotPointNotFound
	}

	var point writing.PlotPoint
	err := tx.First(&point, "plot_id = ? AND sort_order = ?", plot.ID, order).Error
	if err != nil {
		return nil, errPlotPointNotFound
	}
	return &point.ID, nil
}

// ------------------------------
// GET /stories/:slug/scenes
// ------------------------------
func ListScenes(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	story, err := stories.FindStoryBySlug(database.DB, authorID, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	var list []writing.Scene
	err = database.DB.
		Where("story_id = ?", story.ID).
		Order("sort_order ASC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load scenes"})
		return
	}

	out := make([]SceneListItem, 0, len(list))
	for _, s := range list {
		out = append(out, SceneListItem{ID: s.ID, Title: s.Title, Order: s.Order})
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /stories/:slug/scenes
// ------------------------------
func CreateScene(c *gin.Context) {
	var in SceneInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required", "field": "title"})
		return
	}

	var scene writing.Scene
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// FOR UPDATE on the story serializes appends against concurrent
		// creates and renumbers for the same story.
		story, err := stories.LockStoryBySlug(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		var plotPointID *uint
		if in.PlotPointOrder != nil {
			plotPointID, err = resolvePlotPointID(tx, story.ID, *in.PlotPointOrder)
			if err != nil {
				return err
			}
		}

		next, err := writing.NextOrder(tx, &writing.Scene{}, "story_id", story.ID)
		if err != nil {
			return err
		}

		scene = writing.Scene{
			StoryID:     story.ID,
			Title:       in.Title,
			Description: in.Description,
			Order:       next,
			PlotPointID: plotPointID,
		}
		return tx.Create(&scene).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
			return
		}
		if errors.Is(err, errPlotPointNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Plot point not found", "field": "plot_point_order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create scene"})
		return
	}

	c.JSON(http.StatusCreated, scene)
}

// ------------------------------
// GET /stories/:slug/scenes/:order
// ------------------------------
func GetScene(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	order, ok := sceneOrderParam(c)
	if !ok {
		return
	}

	story, err := stories.FindStoryBySlug(database.DB, authorID, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	var scene writing.Scene
	err = database.DB.
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Characters").
		Preload("PlotPoint").
		First(&scene, "story_id = ? AND sort_order = ?", story.ID, order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scene not found"})
		return
	}

	c.JSON(http.StatusOK, scene)
}

// ------------------------------
// PUT /stories/:slug/scenes/:order
// ------------------------------
func UpdateScene(c *gin.Context) {
	var in SceneInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	order, ok := sceneOrderParam(c)
	if !ok {
		return
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required", "field": "title"})
		return
	}

	var scene writing.Scene
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		story, err := stories.LockStoryBySlug(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		if err := tx.First(&scene, "story_id = ? AND sort_order = ?", story.ID, order).Error; err != nil {
			return err
		}

		scene.Title = in.Title
		scene.Description = in.Description

		scene.PlotPointID = nil
		if in.PlotPointOrder != nil {
			scene.PlotPointID, err = resolvePlotPointID(tx, story.ID, *in.PlotPointOrder)
			if err != nil {
				return err
			}
		}

		return tx.Save(&scene).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scene not found"})
			return
		}
		if errors.Is(err, errPlotPointNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Plot point not found", "field": "plot_point_order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update scene"})
		return
	}

	c.JSON(http.StatusOK, scene)
}

// ------------------------------
// DELETE /stories/:slug/scenes/:order
// ------------------------------
func DeleteScene(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	order, ok := sceneOrderParam(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		story, err := stories.LockStoryBySlug(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		res := tx.Delete(&writing.Scene{}, "story_id = ? AND sort_order = ?", story.ID, order)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// keep orders dense
		return writing.CloseGap(tx, &writing.Scene{}, "story_id", story.ID, order)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scene not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete scene"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func moveScene(c *gin.Context, up bool) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	order, ok := sceneOrderParam(c)
	if !ok {
		return
	}

	moved := false
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		story, err := stories.LockStoryBySlug(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		var scene writing.Scene
		if err := tx.First(&scene, "story_id = ? AND sort_order = ?", story.ID, order).Error; err != nil {
			return err
		}

		if up {
			moved, err = writing.MoveUp(tx, &writing.Scene{}, "story_id", story.ID, order)
		} else {
			moved, err = writing.MoveDown(tx, &writing.Scene{}, "story_id", story.ID, order)
		}
		return err
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scene not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move scene"})
		return
	}

	// already first/last is a no-op, not an error
	c.JSON(http.StatusOK, gin.H{"status": "ok", "moved": moved})
}

// POST /stories/:slug/scenes/:order/up
func MoveSceneUp(c *gin.Context) { moveScene(c, true) }

// POST /stories/:slug/scenes/:order/down
func MoveSceneDown(c *gin.Context) { moveScene(c, false) }

// ------------------------------
// POST /stories/:slug/scenes/:order/notes
// ------------------------------
func AddSceneNote(c *gin.Context) {
	var in SceneNoteInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Note) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Note is required (max 500 characters)", "field": "note"})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	order, ok := sceneOrderParam(c)
	if !ok {
		return
	}

	story, err := stories.FindStoryBySlug(database.DB, authorID, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	var scene writing.Scene
	if err := database.DB.First(&scene, "story_id = ? AND sort_order = ?", story.ID, order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scene not found"})
		return
	}

	note := writing.SceneNote{SceneID: scene.ID, Note: strings.TrimSpace(in.Note)}
	if err := database.DB.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add note"})
		return
	}

	c.JSON(http.StatusCreated, note)
}

// ------------------------------
// PUT /stories/:slug/scenes/:order/characters
// ------------------------------
func SetSceneCharacters(c *gin.Context) {
	var in SceneCharactersInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	order, ok := sceneOrderParam(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		story, err := stories.LockStoryBySlug(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		var scene writing.Scene
		if err := tx.First(&scene, "story_id = ? AND sort_order = ?", story.ID, order).Error; err != nil {
			return err
		}

		// only this story's characters can appear in its scenes
		var chars []writing.Character
		if len(in.CharacterSlugs) > 0 {
			err = tx.Where("story_id = ? AND slug IN ?", story.ID, in.CharacterSlugs).Find(&chars).Error
			if err != nil {
				return err
			}
			if len(chars) != len(in.CharacterSlugs) {
				return errUnknownCharacter
			}
		}

		return tx.Model(&scene).Association("Characters").Replace(chars)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scene not found"})
			return
		}
		if errors.Is(err, errUnknownCharacter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown character in selection", "field": "character_slugs"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update scene characters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

var errUnknownCharacter = errors.New("unknown character")
