// Package services implements the server-side operations of the journal:
// the entry facade over a storage adapter, async sentiment enrichment,
// weekly reflections and exports.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/journal"
	"github.com/dmitrijs2005/echojournal/internal/logging"
	"github.com/dmitrijs2005/echojournal/internal/server/repositories/entries"
)

// Enqueuer accepts enrichment jobs without blocking.
type Enqueuer interface {
	Enqueue(job Job) bool
}

// EntryService is the journal.Store backed directly by a storage adapter.
type EntryService struct {
	repo       entries.Repository
	normalizer *journal.Normalizer
	enricher   Enqueuer
	logger     logging.Logger
}

var _ journal.Store = (*EntryService)(nil)

func NewEntryService(repo entries.Repository, normalizer *journal.Normalizer, logger logging.Logger) *EntryService {
	return &EntryService{
		repo:       repo,
		normalizer: normalizer,
		logger:     logger.With("module", "entries"),
	}
}

// WithEnricher makes CreateEntry queue a sentiment job for every new entry.
func (s *EntryService) WithEnricher(e Enqueuer) *EntryService {
	s.enricher = e
	return s
}

// CreateEntry stores text for userID. Callers reject blank text first.
func (s *EntryService) CreateEntry(ctx context.Context, userID, text string) (string, error) {
	id, err := s.repo.Create(ctx, userID, text)
	if err != nil {
		s.logger.Error(ctx, "create entry failed", "user_id", userID, "error", err)
		return "", unavailable(err)
	}

	s.logger.Info(ctx, "entry created", "user_id", userID, "entry_id", id)

	if s.enricher != nil {
		s.enricher.Enqueue(Job{EntryID: id, UserID: userID, Text: text})
	}
	return id, nil
}

// GetEntries returns the user's entries newest first. The slice is never nil.
func (s *EntryService) GetEntries(ctx context.Context, userID string) ([]journal.JournalEntry, error) {
	records, err := s.repo.List(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "list entries failed", "user_id", userID, "error", err)
		return nil, unavailable(err)
	}
	return s.normalizer.NormalizeAll(records), nil
}

// ListEntries returns at most limit of the newest entries and the total
// count. A non-positive limit returns everything.
func (s *EntryService) ListEntries(ctx context.Context, userID string, limit int) ([]journal.JournalEntry, int, error) {
	all, err := s.GetEntries(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	if limit > 0 && limit < total {
		all = all[:limit]
	}
	return all, total, nil
}

// DeleteEntry removes an entry owned by userID.
func (s *EntryService) DeleteEntry(ctx context.Context, entryID, userID string) error {
	err := s.repo.Delete(ctx, entryID, userID)
	switch {
	case err == nil:
		s.logger.Info(ctx, "entry deleted", "user_id", userID, "entry_id", entryID)
		return nil
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorUnauthorized):
		s.logger.Warn(ctx, "delete rejected", "user_id", userID, "entry_id", entryID, "reason", err)
		return err
	default:
		s.logger.Error(ctx, "delete entry failed", "user_id", userID, "entry_id", entryID, "error", err)
		return unavailable(err)
	}
}

// UpdateSentiment stores a sentiment summary on an entry owned by userID.
func (s *EntryService) UpdateSentiment(ctx context.Context, entryID, userID, summary string, score *float64) error {
	err := s.repo.SetSentiment(ctx, entryID, userID, entries.Sentiment{Summary: summary, Score: score})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorUnauthorized):
		return err
	default:
		s.logger.Error(ctx, "update sentiment failed", "user_id", userID, "entry_id", entryID, "error", err)
		return unavailable(err)
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", common.ErrorBackendUnavailable, err)
}
