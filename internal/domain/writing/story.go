package writing

import (
	"time"

	"storybuilder-app/internal/domain/authors"

	"github.com/lib/pq"
)

type Story struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AuthorID uint            `gorm:"not null;uniqueIndex:idx_stories_author_title,priority:1;uniqueIndex:idx_stories_author_slug,priority:1" json:"-"`
	Author   *authors.Author `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Title string `gorm:"not null;uniqueIndex:idx_stories_author_title,priority:2" json:"title"`
	Slug  string `gorm:"not null;uniqueIndex:idx_stories_author_slug,priority:2" json:"slug"`

	Description string         `gorm:"type:text" json:"description"`
	Premise     string         `gorm:"type:text" json:"premise"`
	Genres      pq.StringArray `gorm:"type:text[]" json:"genres"`

	WordCount    int        `gorm:"not null;default:0" json:"word_count"`
	DateFinished *time.Time `json:"date_finished,omitempty"`

	Plot       *Plot       `gorm:"constraint:OnDelete:CASCADE;" json:"plot,omitempty"`
	Scenes     []Scene     `gorm:"constraint:OnDelete:CASCADE;" json:"scenes,omitempty"`
	Characters []Character `gorm:"constraint:OnDelete:CASCADE;" json:"characters,omitempty"`

	CreatedAt time.Time `json:"date_started"`
	UpdatedAt time.Time `json:"date_last_saved"`
}
