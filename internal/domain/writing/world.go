package writing

import (
	"time"
)

// Worlds and collections are loose groupings: no ordering, no
// ownership constraints beyond the stories/characters they reference.

type World struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AuthorID uint `gorm:"not null;index" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Stories []Story `gorm:"many2many:world_stories;constraint:OnDelete:CASCADE;" json:"stories,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Collection struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AuthorID uint `gorm:"not null;index" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Stories    []Story     `gorm:"many2many:collection_stories;constraint:OnDelete:CASCADE;" json:"stories,omitempty"`
	Characters []Character `gorm:"many2many:collection_characters;constraint:OnDelete:CASCADE;" json:"characters,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
