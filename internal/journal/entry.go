// Package journal holds the backend-independent core of the journal: the
// canonical entry model, the normalizer that erases backend record shapes,
// the keyword sentiment classifier and the search/filter engine.
package journal

import (
	"context"
	"time"
	"unicode/utf8"
)

// InvalidDate is the display timestamp of an entry whose raw timestamp
// could not be resolved.
const InvalidDate = "Invalid Date"

// DisplayLayout renders timestamps the way an en-US locale date-time string does.
const DisplayLayout = "1/2/2006, 3:04:05 PM"

// JournalEntry is the canonical, client-facing entry.
type JournalEntry struct {
	ID               string  `json:"id"`
	Text             string  `json:"text"`
	Timestamp        string  `json:"timestamp"`
	SentimentSummary *string `json:"sentimentSummary,omitempty"`

	// CreatedAt is the resolved instant, zero when the timestamp was invalid.
	CreatedAt time.Time `json:"-"`
}

// Category returns the classified sentiment bucket of the entry.
func (e JournalEntry) Category() Category {
	return Classify(e.SentimentSummary)
}

// Store is the backend-agnostic entry repository facade. Every call names
// the acting user explicitly.
type Store interface {
	// CreateEntry persists a new entry and returns its id. Callers must
	// reject blank text before calling.
	CreateEntry(ctx context.Context, userID, text string) (string, error)
	// GetEntries returns the user's entries, newest first, never nil.
	GetEntries(ctx context.Context, userID string) ([]JournalEntry, error)
	// DeleteEntry removes an entry owned by userID.
	DeleteEntry(ctx context.Context, entryID, userID string) error
}

const titleLength = 50

// Title derives the short title stored next to table rows: the first 50
// characters of the text, with an ellipsis when truncated.
func Title(text string) string {
	if utf8.RuneCountInString(text) <= titleLength {
		return text
	}
	return string([]rune(text)[:titleLength]) + "..."
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
