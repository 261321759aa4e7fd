package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/journal"
	"github.com/dmitrijs2005/echojournal/internal/logging"
	"github.com/dmitrijs2005/echojournal/internal/server/analysis"
)

// ReflectionService digests a user's latest entries.
type ReflectionService struct {
	store    journal.Store
	analyzer analysis.Analyzer
	window   int
	logger   logging.Logger
}

func NewReflectionService(store journal.Store, analyzer analysis.Analyzer, window int, logger logging.Logger) *ReflectionService {
	if window < 1 {
		window = 7
	}
	return &ReflectionService{
		store:    store,
		analyzer: analyzer,
		window:   window,
		logger:   logger.With("module", "reflection"),
	}
}

// Reflect summarizes the newest entries of userID. It fails with
// common.ErrNoEntries when the user has none.
func (s *ReflectionService) Reflect(ctx context.Context, userID string) (analysis.Reflection, error) {
	all, err := s.store.GetEntries(ctx, userID)
	if err != nil {
		return analysis.Reflection{}, err
	}
	if len(all) > s.window {
		all = all[:s.window]
	}
	if len(all) == 0 {
		return analysis.Reflection{}, common.ErrNoEntries
	}

	texts := make([]string, 0, len(all))
	for _, e := range all {
		texts = append(texts, e.Text)
	}

	s.logger.Debug(ctx, "generating reflection", "user_id", userID, "entries", len(texts))

	r, err := s.analyzer.Reflect(ctx, strings.Join(texts, "\n\n"))
	if err != nil {
		s.logger.Error(ctx, "reflection failed", "user_id", userID, "error", err)
		return analysis.Reflection{}, unavailable(err)
	}
	return r, nil
}

// SentimentService runs one-off sentiment analysis.
type SentimentService struct {
	analyzer analysis.Analyzer
	logger   logging.Logger
}

func NewSentimentService(analyzer analysis.Analyzer, logger logging.Logger) *SentimentService {
	return &SentimentService{analyzer: analyzer, logger: logger.With("module", "sentiment")}
}

// Analyze annotates text. Callers reject blank text first.
func (s *SentimentService) Analyze(ctx context.Context, text string) (analysis.Sentiment, error) {
	res, err := s.analyzer.Sentiment(ctx, text)
	if err != nil {
		s.logger.Error(ctx, "sentiment analysis failed", "error", err)
		return analysis.Sentiment{}, unavailable(err)
	}
	return res, nil
}
