package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/journal"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeStore answers GetEntries from a script. A call with a non-nil gate
// waits for the gate or ctx.
type fakeStore struct {
	mu      sync.Mutex
	calls   int
	gates   []chan struct{}
	results [][]journal.JournalEntry
	started chan int

	createErr error
	deleteErr error
	created   []string
	deleted   []string
}

func (f *fakeStore) CreateEntry(ctx context.Context, userID, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, text)
	return "id-" + text, nil
}

func (f *fakeStore) GetEntries(ctx context.Context, userID string) ([]journal.JournalEntry, error) {
	f.mu.Lock()
	n := f.calls
	f.calls++
	var gate chan struct{}
	if n < len(f.gates) {
		gate = f.gates[n]
	}
	var res []journal.JournalEntry
	if n < len(f.results) {
		res = f.results[n]
	}
	started := f.started
	f.mu.Unlock()

	if started != nil {
		started <- n
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if res == nil {
		res = []journal.JournalEntry{}
	}
	return res, nil
}

func (f *fakeStore) DeleteEntry(ctx context.Context, entryID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, entryID)
	return nil
}

func entries(ids ...string) []journal.JournalEntry {
	out := make([]journal.JournalEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, journal.JournalEntry{ID: id, Text: "text " + id})
	}
	return out
}

func TestReload_UpdatesView(t *testing.T) {
	store := &fakeStore{results: [][]journal.JournalEntry{entries("b", "a")}}
	s := New(store, "u1", time.Second)

	assert.Empty(t, s.Entries())
	require.NoError(t, s.Reload(context.Background()))
	assert.Equal(t, entries("b", "a"), s.Entries())
}

func TestReload_NewerSupersedesOlder(t *testing.T) {
	slow := make(chan struct{})
	store := &fakeStore{
		gates:   []chan struct{}{slow, nil},
		results: [][]journal.JournalEntry{entries("stale"), entries("fresh")},
		started: make(chan int, 2),
	}
	s := New(store, "u1", time.Second)

	firstErr := make(chan error, 1)
	go func() { firstErr <- s.Reload(context.Background()) }()
	require.Equal(t, 0, <-store.started)

	require.NoError(t, s.Reload(context.Background()))
	<-store.started

	err := <-firstErr
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Equal(t, entries("fresh"), s.Entries())
	close(slow)
}

func TestReload_TimesOut(t *testing.T) {
	store := &fakeStore{gates: []chan struct{}{make(chan struct{})}}
	s := New(store, "u1", 20*time.Millisecond)

	err := s.Reload(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, s.Entries())
}

func TestCreate_ThenReload(t *testing.T) {
	store := &fakeStore{results: [][]journal.JournalEntry{entries("id-Hello")}}
	s := New(store, "u1", time.Second)

	id, err := s.Create(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "id-Hello", id)
	assert.Equal(t, []string{"Hello"}, store.created)
	assert.Equal(t, entries("id-Hello"), s.Entries())
}

func TestCreate_BlankIsRejectedBeforeBackend(t *testing.T) {
	store := &fakeStore{}
	s := New(store, "u1", time.Second)

	_, err := s.Create(context.Background(), "  \t ")
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, store.created)
	assert.Zero(t, store.calls)
}

func TestCreate_FailureSkipsReload(t *testing.T) {
	store := &fakeStore{createErr: common.ErrorBackendUnavailable}
	s := New(store, "u1", time.Second)

	_, err := s.Create(context.Background(), "x")
	assert.ErrorIs(t, err, common.ErrorBackendUnavailable)
	assert.Zero(t, store.calls)
}

func TestDelete_ThenReload(t *testing.T) {
	store := &fakeStore{results: [][]journal.JournalEntry{entries("a", "b"), entries("a")}}
	s := New(store, "u1", time.Second)
	require.NoError(t, s.Reload(context.Background()))

	require.NoError(t, s.Delete(context.Background(), "b"))
	assert.Equal(t, []string{"b"}, store.deleted)
	assert.Equal(t, entries("a"), s.Entries())
}

func TestDelete_ErrorKeepsView(t *testing.T) {
	store := &fakeStore{results: [][]journal.JournalEntry{entries("a")}, deleteErr: common.ErrorNotFound}
	s := New(store, "u1", time.Second)
	require.NoError(t, s.Reload(context.Background()))

	err := s.Delete(context.Background(), "zzz")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
	assert.Equal(t, entries("a"), s.Entries())

	assert.ErrorIs(t, s.Delete(context.Background(), ""), common.ErrorValidation)
}

func TestVisible_AppliesFilter(t *testing.T) {
	happy := "So happy"
	list := []journal.JournalEntry{
		{ID: "1", Text: "Beach day", SentimentSummary: &happy},
		{ID: "2", Text: "Office"},
	}
	s := New(&fakeStore{results: [][]journal.JournalEntry{list}}, "u1", time.Second)
	require.NoError(t, s.Reload(context.Background()))

	got := s.Visible(journal.Filter{Category: journal.CategoryPositive})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got = s.Visible(journal.Filter{Search: "office"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}
