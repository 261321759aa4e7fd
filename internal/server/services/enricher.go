package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/echojournal/internal/logging"
	"github.com/dmitrijs2005/echojournal/internal/server/analysis"
	"github.com/dmitrijs2005/echojournal/internal/server/repositories/entries"
)

// Job asks for the sentiment annotation of one saved entry.
type Job struct {
	EntryID string
	UserID  string
	Text    string
}

// SentimentWriter persists an annotation.
type SentimentWriter interface {
	SetSentiment(ctx context.Context, entryID, userID string, s entries.Sentiment) error
}

// Enricher annotates new entries in the background. Failures are logged
// and dropped: the entry itself is already saved.
type Enricher struct {
	analyzer analysis.Analyzer
	writer   SentimentWriter
	logger   logging.Logger
	queue    chan Job
	workers  int
	timeout  time.Duration
}

func NewEnricher(analyzer analysis.Analyzer, writer SentimentWriter, logger logging.Logger, workers, queueSize int, timeout time.Duration) *Enricher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Enricher{
		analyzer: analyzer,
		writer:   writer,
		logger:   logger.With("module", "enricher"),
		queue:    make(chan Job, queueSize),
		workers:  workers,
		timeout:  timeout,
	}
}

// Enqueue schedules job and reports whether it was accepted. A full queue
// drops the job.
func (e *Enricher) Enqueue(job Job) bool {
	select {
	case e.queue <- job:
		return true
	default:
		e.logger.Warn(context.Background(), "enrichment queue full, dropping job", "entry_id", job.EntryID)
		return false
	}
}

// Run processes jobs until ctx is canceled.
func (e *Enricher) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case job := <-e.queue:
					e.process(ctx, job)
				}
			}
		})
	}
	return g.Wait()
}

func (e *Enricher) process(ctx context.Context, job Job) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	s, err := e.analyzer.Sentiment(ctx, job.Text)
	if err != nil {
		e.logger.Warn(ctx, "sentiment analysis failed", "entry_id", job.EntryID, "error", err)
		return
	}

	score := s.Score
	if err := e.writer.SetSentiment(ctx, job.EntryID, job.UserID, entries.Sentiment{Summary: s.Summary, Score: &score}); err != nil {
		e.logger.Warn(ctx, "storing sentiment failed", "entry_id", job.EntryID, "error", err)
		return
	}

	e.logger.Debug(ctx, "entry enriched", "entry_id", job.EntryID, "sentiment", s.Sentiment)
}
