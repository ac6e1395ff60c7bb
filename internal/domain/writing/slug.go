package writing

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

/*
	Slug helpers
	------------
	- Responsible ONLY for:
	  • generating slugs from titles / full names
	  • keeping them unique inside their owning scope
	- No access logic here; callers already scope queries by author.
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// Slugify generates a URL-safe base slug.
// Example: "My Great Novel!" -> "my-great-novel"
func Slugify(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "untitled"
	}
	return base
}

// EnsureStorySlug recomputes story.Slug from the title and keeps it
// unique among the author's stories, adding -2, -3, ... on collision.
// Call inside the same transaction that saves the story.
func EnsureStorySlug(db *gorm.DB, story *Story) error {
	if story == nil {
		return fmt.Errorf("story is nil")
	}

	base := Slugify(story.Title)
	slug := base

	for n := 2; ; n++ {
		var count int64
		err := db.Model(&Story{}).
			Where("author_id = ? AND slug = ? AND id <> ?", story.AuthorID, slug, story.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}

	story.Slug = slug
	return nil
}

// EnsureCharacterSlug recomputes character.Slug from the full name and
// keeps it unique within the story. FullName must already be derived.
func EnsureCharacterSlug(db *gorm.DB, character *Character) error {
	if character == nil {
		return fmt.Errorf("character is nil")
	}

	base := Slugify(character.FullName)
	slug := base

	for n := 2; ; n++ {
		var count int64
		err := db.Model(&Character{}).
			Where("story_id = ? AND slug = ? AND id <> ?", character.StoryID, slug, character.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}

	character.Slug = slug
	return nil
}
