package stories

import (
	"storybuilder-app/internal/domain/writing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func authorStoriesQuery(db *gorm.DB, authorID uint) *gorm.DB {
	return db.Model(&writing.Story{}).Where("author_id = ?", authorID)
}

// FindStoryBySlug resolves a slug inside the author's scope. A story
// owned by someone else looks exactly like a missing one.
func FindStoryBySlug(db *gorm.DB, authorID uint, slug string) (writing.Story, error) {
	var story writing.Story
	err := db.First(&story, "author_id = ? AND slug = ?", authorID, slug).Error
	return story, err
}

// LockStoryBySlug resolves and locks the story row FOR UPDATE,
// serializing order maintenance per story. Call inside a transaction.
func LockStoryBySlug(tx *gorm.DB, authorID uint, slug string) (writing.Story, error) {
	var story writing.Story
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&story, "author_id = ? AND slug = ?", authorID, slug).Error
	return story, err
}
