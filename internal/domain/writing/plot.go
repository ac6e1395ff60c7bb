package writing

import (
	"time"
)

// One plot per story; created automatically with the story.
type Plot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StoryID uint `gorm:"not null;uniqueIndex:idx_plots_story" json:"-"`

	Name        string `json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Points []PlotPoint `gorm:"constraint:OnDelete:CASCADE;" json:"points,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PlotPoint struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PlotID uint `gorm:"not null;uniqueIndex:idx_plot_points_plot_order,priority:1" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Dense 1-based position within the plot.
	Order int `gorm:"column:sort_order;not null;uniqueIndex:idx_plot_points_plot_order,priority:2" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
