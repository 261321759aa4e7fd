package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrijs2005/echojournal/internal/logging"
	"github.com/dmitrijs2005/echojournal/internal/server/analysis"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runEnricher(t *testing.T, e *Enricher) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	return func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("enricher did not stop")
		}
	}
}

func TestEnricher_StoresSentiment(t *testing.T) {
	repo := &fakeRepo{}
	an := &fakeAnalyzer{sentiment: analysis.Sentiment{Sentiment: "positive", Score: 0.6, Summary: "happy"}}
	e := NewEnricher(an, repo, logging.Nop(), 2, 8, time.Second)

	stop := runEnricher(t, e)
	defer stop()

	require.True(t, e.Enqueue(Job{EntryID: "e1", UserID: "u1", Text: "great"}))
	require.True(t, e.Enqueue(Job{EntryID: "e2", UserID: "u1", Text: "fine"}))

	require.Eventually(t, func() bool { return len(repo.stored()) == 2 }, 2*time.Second, 10*time.Millisecond)
	s := repo.stored()[0]
	assert.Equal(t, "happy", s.Summary)
	require.NotNil(t, s.Score)
	assert.InDelta(t, 0.6, *s.Score, 1e-9)
}

func TestEnricher_AnalyzerFailureIsDropped(t *testing.T) {
	repo := &fakeRepo{}
	an := &fakeAnalyzer{err: errors.New("quota exceeded")}
	e := NewEnricher(an, repo, logging.Nop(), 1, 4, time.Second)

	stop := runEnricher(t, e)
	require.True(t, e.Enqueue(Job{EntryID: "e1", UserID: "u1", Text: "x"}))
	require.True(t, e.Enqueue(Job{EntryID: "e2", UserID: "u1", Text: "y"}))

	// both jobs are drained even though each one fails
	require.Eventually(t, func() bool { return len(e.queue) == 0 }, time.Second, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	stop()

	assert.Empty(t, repo.stored())
}

func TestEnricher_QueueFullDrops(t *testing.T) {
	e := NewEnricher(&fakeAnalyzer{}, &fakeRepo{}, logging.Nop(), 1, 1, time.Second)

	assert.True(t, e.Enqueue(Job{EntryID: "e1"}))
	assert.False(t, e.Enqueue(Job{EntryID: "e2"}), "second job must be dropped while nothing drains the queue")
}

func TestEnricher_TimeoutPerJob(t *testing.T) {
	repo := &fakeRepo{}
	an := &fakeAnalyzer{block: make(chan struct{})}
	e := NewEnricher(an, repo, logging.Nop(), 1, 2, 20*time.Millisecond)

	stop := runEnricher(t, e)
	defer stop()

	require.True(t, e.Enqueue(Job{EntryID: "slow"}))
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, repo.stored(), "timed out analysis must not be stored")
}

func TestEnricher_StopsWithoutJobs(t *testing.T) {
	e := NewEnricher(&fakeAnalyzer{}, &fakeRepo{}, logging.Nop(), 3, 1, 0)
	stop := runEnricher(t, e)
	stop()
}
