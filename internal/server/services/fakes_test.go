package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/echojournal/internal/journal"
	"github.com/dmitrijs2005/echojournal/internal/server/analysis"
	"github.com/dmitrijs2005/echojournal/internal/server/repositories/entries"
)

// -------- test fakes --------

type fakeRepo struct {
	entries.Repository

	records   []journal.RawRecord
	createID  string
	createErr error
	listErr   error
	deleteErr error
	setErr    error

	mu  sync.Mutex
	set []entries.Sentiment
}

func (f *fakeRepo) Create(ctx context.Context, userID, text string) (string, error) {
	return f.createID, f.createErr
}

func (f *fakeRepo) List(ctx context.Context, userID string) ([]journal.RawRecord, error) {
	return f.records, f.listErr
}

func (f *fakeRepo) Delete(ctx context.Context, entryID, userID string) error {
	return f.deleteErr
}

func (f *fakeRepo) SetSentiment(ctx context.Context, entryID, userID string, s entries.Sentiment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set = append(f.set, s)
	return f.setErr
}

func (f *fakeRepo) stored() []entries.Sentiment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entries.Sentiment(nil), f.set...)
}

type fakeEnqueuer struct {
	jobs []Job
}

func (f *fakeEnqueuer) Enqueue(job Job) bool {
	f.jobs = append(f.jobs, job)
	return true
}

type fakeAnalyzer struct {
	sentiment  analysis.Sentiment
	reflection analysis.Reflection
	err        error
	block      chan struct{}

	mu       sync.Mutex
	reflects []string
}

func (f *fakeAnalyzer) Sentiment(ctx context.Context, text string) (analysis.Sentiment, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return analysis.Sentiment{}, ctx.Err()
		}
	}
	return f.sentiment, f.err
}

func (f *fakeAnalyzer) Reflect(ctx context.Context, entries string) (analysis.Reflection, error) {
	f.mu.Lock()
	f.reflects = append(f.reflects, entries)
	f.mu.Unlock()
	return f.reflection, f.err
}

type fakeStore struct {
	journal.Store
	entries []journal.JournalEntry
	err     error
}

func (f *fakeStore) GetEntries(ctx context.Context, userID string) ([]journal.JournalEntry, error) {
	return f.entries, f.err
}
