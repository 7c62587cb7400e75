package model

import (
	"time"
)

// JournalEntry is a private note. BodyHTML is rendered from BodyMarkdown on
// every write.
type JournalEntry struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	Title        string    `db:"title" json:"title"`
	BodyMarkdown string    `db:"body_markdown" json:"body_markdown"`
	BodyHTML     string    `db:"body_html" json:"body_html"`
	IsSaved      bool      `db:"is_saved" json:"is_saved"`
	IsFavorite   bool      `db:"is_favorite" json:"is_favorite"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
