package writing

import (
	"time"
)

type Scene struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StoryID uint `gorm:"not null;uniqueIndex:idx_scenes_story_order,priority:1" json:"-"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Dense 1-based position within the story.
	Order int `gorm:"column:sort_order;not null;uniqueIndex:idx_scenes_story_order,priority:2" json:"order"`

	// A scene may mark one plot point; deleting the plot point just
	// clears the reference.
	PlotPointID *uint      `json:"plot_point_id,omitempty"`
	PlotPoint   *PlotPoint `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"plot_point,omitempty"`

	Notes []SceneNote `gorm:"constraint:OnDelete:CASCADE;" json:"notes,omitempty"`

	Characters []Character `gorm:"many2many:scene_characters;constraint:OnDelete:CASCADE;" json:"characters,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SceneNote rows are append-only from the UI.
type SceneNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SceneID   uint      `gorm:"not null;index" json:"-"`
	Note      string    `gorm:"size:500;not null" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
