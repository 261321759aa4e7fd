// Package entries contains the storage adapters of journal entries: one per
// backend, each returning raw records in that backend's own shape.
package entries

import (
	"context"

	"github.com/dmitrijs2005/echojournal/internal/journal"
)

// Repository is implemented by every storage backend. Ownership checks
// happen inside the adapter: Delete and SetSentiment fail with
// common.ErrorNotFound for unknown ids and common.ErrorUnauthorized when
// userID does not own the entry.
type Repository interface {
	Create(ctx context.Context, userID, text string) (string, error)
	List(ctx context.Context, userID string) ([]journal.RawRecord, error)
	Delete(ctx context.Context, entryID, userID string) error
	SetSentiment(ctx context.Context, entryID, userID string, s Sentiment) error
}

// Sentiment is the enrichment stored next to an entry.
type Sentiment struct {
	Summary string
	Score   *float64
}
