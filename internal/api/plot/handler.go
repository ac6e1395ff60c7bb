package plot

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
	"gorm.io/gorm/clause"
)

func mustAuthorID(c *gin.Context) (uint, bool) {
	authorID := c.GetUint("author_id")
	if authorID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return authorID, true
}

func pointOrderParam(c *gin.Context) (int, bool) {
	order, err := strconv.Atoi(c.Param("order"))
	if err != nil || order < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plot point not found"})
		return 0, false
	}
	return order, true
}

func findPlot(db *gorm.DB, authorID uint, storySlug string) (writing.Plot, error) {
	story, err := stories.FindStoryBySlug(db, authorID, storySlug)
	if err != nil {
		return writing.Plot{}, err
	}

	var p writing.Plot
	err = db.First(&p, "story_id = ?", story.ID).Error
	return p, err
}

// lockPlot resolves the plot and locks its row FOR UPDATE, serializing
// plot point order maintenance per plot. Call inside a transaction.
func lockPlot(tx *gorm.DB, authorID uint, storySlug string) (writing.Plot, error) {
	story, err := stories.FindStoryBySlug(tx, authorID, storySlug)
	if err != nil {
		return writing.Plot{}, err
	}

	var p writing.Plot
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "story_id = ?", story.ID).Error
	return p, err
}

// ------------------------------
// GET /stories/:slug/plot
// ------------------------------
func GetPlot(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	story, err := stories.FindStoryBySlug(database.DB, authorID, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	var p writing.Plot
	err = database.DB.
		Preload("Points", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&p, "story_id = ?", story.ID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plot not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// ------------------------------
// PUT /stories/:slug/plot
// ------------------------------
func UpdatePlot(c *gin.Context) {
	var in PlotInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	p, err := findPlot(database.DB, authorID, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plot not found"})
		return
	}

	p.Name = in.Name
	p.Description = in.Description
	if err := database.DB.Save(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plot"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// ------------------------------
// GET /stories/:slug/plot/points
// ------------------------------
func ListPlotPoints(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	p, err := findPlot(database.DB, authorID, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plot not found"})
		return
	}

	var points []writing.PlotPoint
	err = database.DB.
		Where("plot_id = ?", p.ID).
		Order("sort_order ASC").
		Find(&points).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plot points"})
		return
	}

	out := make([]PlotPointListItem, 0, len(points))
	for _, pt := range points {
		out = append(out, PlotPointListItem{ID: pt.ID, Name: pt.Name, Order: pt.Order})
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /stories/:slug/plot/points
// ------------------------------
func CreatePlotPoint(c *gin.Context) {
	var in PlotPointInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required", "field": "name"})
		return
	}

	var point writing.PlotPoint
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		p, err := lockPlot(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		next, err := writing.NextOrder(tx, &writing.PlotPoint{}, "plot_id", p.ID)
		if err != nil {
			return err
		}

		point = writing.PlotPoint{
			PlotID:      p.ID,
			Name:        in.Name,
			Description: in.Description,
			Order:       next,
		}
		return tx.Create(&point).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plot point"})
		return
	}

	c.JSON(http.StatusCreated, point)
}

// ------------------------------
// GET /stories/:slug/plot/points/:order
// ------------------------------
func GetPlotPoint(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	order, ok := pointOrderParam(c)
	if !ok {
		return
	}

	p, err := findPlot(database.DB, authorID, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plot not found"})
		return
	}

	var point writing.PlotPoint
	err = database.DB.First(&point, "plot_id = ? AND sort_order = ?", p.ID, order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plot point not found"})
		return
	}

	c.JSON(http.StatusOK, point)
}

// ------------------------------
// PUT /stories/:slug/plot/points/:order
// ------------------------------
func UpdatePlotPoint(c *gin.Context) {
	var in PlotPointInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	order, ok := pointOrderParam(c)
	if !ok {
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required", "field": "name"})
		return
	}

	var point writing.PlotPoint
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		p, err := lockPlot(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		if err := tx.First(&point, "plot_id = ? AND sort_order = ?", p.ID, order).Error; err != nil {
			return err
		}

		point.Name = in.Name
		point.Description = in.Description
		return tx.Save(&point).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plot point not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plot point"})
		return
	}

	c.JSON(http.StatusOK, point)
}

// ------------------------------
// DELETE /stories/:slug/plot/points/:order
// ------------------------------
func DeletePlotPoint(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	order, ok := pointOrderParam(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		p, err := lockPlot(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		res := tx.Delete(&writing.PlotPoint{}, "plot_id = ? AND sort_order = ?", p.ID, order)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return writing.CloseGap(tx, &writing.PlotPoint{}, "plot_id", p.ID, order)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plot point not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plot point"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func movePlotPoint(c *gin.Context, up bool) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	order, ok := pointOrderParam(c)
	if !ok {
		return
	}

	moved := false
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		p, err := lockPlot(tx, authorID, c.Param("slug"))
		if err != nil {
			return err
		}

		var point writing.PlotPoint
		if err := tx.First(&point, "plot_id = ? AND sort_order = ?", p.ID, order).Error; err != nil {
			return err
		}

		if up {
			moved, err = writing.MoveUp(tx, &writing.PlotPoint{}, "plot_id", p.ID, order)
		} else {
			moved, err = writing.MoveDown(tx, &writing.PlotPoint{}, "plot_id", p.ID, order)
		}
		return err
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plot point not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move plot point"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "moved": moved})
}

// POST /stories/:slug/plot/points/:order/up
func MovePlotPointUp(c *gin.Context) { movePlotPoint(c, true) }

// POST /stories/:slug/plot/points/:order/down
func MovePlotPointDown(c *gin.Context) { movePlotPoint(c, false) }
