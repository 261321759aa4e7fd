// Package session keeps one user's view of the journal in the CLI: the
// last loaded entries plus create and delete operations that reload them.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/journal"
)

// ErrSuperseded is returned by a Reload overtaken by a newer one. Its
// result is discarded.
var ErrSuperseded = errors.New("reload superseded")

// Session is safe for concurrent use.
type Session struct {
	store   journal.Store
	userID  string
	timeout time.Duration

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	entries []journal.JournalEntry
}

func New(store journal.Store, userID string, timeout time.Duration) *Session {
	return &Session{
		store:   store,
		userID:  userID,
		timeout: timeout,
		entries: []journal.JournalEntry{},
	}
}

func (s *Session) UserID() string {
	return s.userID
}

func (s *Session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Reload fetches the user's entries. Starting a Reload cancels the one in
// flight; only the newest Reload updates the view.
func (s *Session) Reload(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.mu.Unlock()

	list, err := s.store.GetEntries(ctx, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		return err
	}
	s.entries = list
	return nil
}

// Create saves text and then reloads. Blank text is rejected before any
// backend call.
func (s *Session) Create(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: entry text is empty", common.ErrorValidation)
	}

	cctx, cancel := s.withTimeout(ctx)
	id, err := s.store.CreateEntry(cctx, s.userID, text)
	cancel()
	if err != nil {
		return "", err
	}

	return id, s.Reload(ctx)
}

// Delete removes an entry and then reloads.
func (s *Session) Delete(ctx context.Context, entryID string) error {
	if strings.TrimSpace(entryID) == "" {
		return fmt.Errorf("%w: entry id is empty", common.ErrorValidation)
	}

	dctx, cancel := s.withTimeout(ctx)
	err := s.store.DeleteEntry(dctx, entryID, s.userID)
	cancel()
	if err != nil {
		return err
	}

	return s.Reload(ctx)
}

// Entries returns a copy of the loaded entries, newest first.
func (s *Session) Entries() []journal.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]journal.JournalEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Visible returns the loaded entries that pass f.
func (s *Session) Visible(f journal.Filter) []journal.JournalEntry {
	return f.Apply(s.Entries())
}
