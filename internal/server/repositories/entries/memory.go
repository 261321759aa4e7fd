package entries

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/journal"
)

type memoryDoc struct {
	id        string
	userID    string
	text      string
	timestamp *timestamppb.Timestamp
	summary   *string
	score     *float64
}

// MemoryRepository keeps client-style documents in process memory. It is
// the default backend and the one used by tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs []*memoryDoc
	now  func() time.Time
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

// WithClock replaces the clock stamping new documents.
func (r *MemoryRepository) WithClock(now func() time.Time) *MemoryRepository {
	r.now = now
	return r
}

func (r *MemoryRepository) Create(ctx context.Context, userID, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc := &memoryDoc{
		id:        uuid.NewString(),
		userID:    userID,
		text:      text,
		timestamp: timestamppb.New(r.now()),
	}

	r.mu.Lock()
	r.docs = append(r.docs, doc)
	r.mu.Unlock()

	return doc.id, nil
}

// List returns the user's documents in insertion order.
func (r *MemoryRepository) List(ctx context.Context, userID string) ([]journal.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []journal.RawRecord{}
	for _, d := range r.docs {
		if d.userID != userID {
			continue
		}
		rec := journal.ClientRecord{
			ID:        d.id,
			UserID:    d.userID,
			EntryText: d.text,
			Timestamp: d.timestamp,
		}
		if d.summary != nil {
			s := *d.summary
			rec.SentimentSummary = &s
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, entryID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, err := r.find(entryID, userID)
	if err != nil {
		return err
	}
	r.docs = append(r.docs[:i], r.docs[i+1:]...)
	return nil
}

func (r *MemoryRepository) SetSentiment(ctx context.Context, entryID, userID string, s Sentiment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, err := r.find(entryID, userID)
	if err != nil {
		return err
	}
	summary := s.Summary
	r.docs[i].summary = &summary
	r.docs[i].score = s.Score
	return nil
}

// find must be called with mu held.
func (r *MemoryRepository) find(entryID, userID string) (int, error) {
	for i, d := range r.docs {
		if d.id != entryID {
			continue
		}
		if d.userID != userID {
			return -1, common.ErrorUnauthorized
		}
		return i, nil
	}
	return -1, common.ErrorNotFound
}
