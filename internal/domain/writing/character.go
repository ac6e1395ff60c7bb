package writing

import (
	"time"
)

type Character struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StoryID uint `gorm:"not null;uniqueIndex:idx_characters_story_slug,priority:1" json:"-"`

	FirstName  string `gorm:"not null" json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`

	// Derived from the name parts on every save, before the slug.
	FullName string `gorm:"not null;index" json:"full_name"`
	Slug     string `gorm:"not null;uniqueIndex:idx_characters_story_slug,priority:2" json:"slug"`

	Gender     string `json:"gender,omitempty"`
	Age        string `json:"age,omitempty"`
	Ethnicity  string `json:"ethnicity,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Location   string `json:"location,omitempty"`

	HairColor string `gorm:"column:hair_color" json:"hair_color,omitempty"`
	EyeColor  string `gorm:"column:eye_color" json:"eye_color,omitempty"`
	Height    string `json:"height,omitempty"`
	BodyType  string `gorm:"column:body_type" json:"body_type,omitempty"`

	MBTIPersonality      string `gorm:"column:mbti_personality" json:"mbti_personality,omitempty"`
	EnneagramPersonality string `gorm:"column:enneagram_personality" json:"enneagram_personality,omitempty"`

	Description string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
