package stories

import "time"

// ---------- requests

type StoryInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Premise     string   `json:"premise"`
	Genres      []string `json:"genres"`
	// Free-text companion for the "Other" genre option.
	OtherChoice  string     `json:"other_choice"`
	DateFinished *time.Time `json:"date_finished"`
}

type WordCountInput struct {
	WordCount *int `json:"word_count" binding:"required"`
}

// ---------- responses

type StoryListItem struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Genres        []string  `json:"genres"`
	WordCount     int       `json:"word_count"`
	DateStarted   time.Time `json:"date_started"`
	DateLastSaved time.Time `json:"date_last_saved"`
}
