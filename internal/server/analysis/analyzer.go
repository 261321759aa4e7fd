// Package analysis produces sentiment annotations and weekly reflections
// for journal text, either through Gemini or a local keyword heuristic.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/echojournal/internal/journal"
)

// Sentiment is the annotation of one entry.
type Sentiment struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
	Summary   string  `json:"summary"`
}

// Reflection is a digest of recent entries plus a writing prompt.
type Reflection struct {
	Summary string `json:"summary"`
	Prompt  string `json:"prompt"`
}

// Analyzer is the inference backend.
type Analyzer interface {
	Sentiment(ctx context.Context, text string) (Sentiment, error)
	Reflect(ctx context.Context, entries string) (Reflection, error)
}

// normalize coerces a model answer into the three known labels and the
// [-1, 1] score range. An unknown label is re-derived from the summary.
func (s Sentiment) normalize() Sentiment {
	label := journal.Category(strings.ToLower(strings.TrimSpace(s.Sentiment)))
	switch label {
	case journal.CategoryPositive, journal.CategoryNegative, journal.CategoryNeutral:
	default:
		label = journal.ClassifyText(s.Summary)
	}
	s.Sentiment = string(label)

	switch {
	case s.Score > 1:
		s.Score = 1
	case s.Score < -1:
		s.Score = -1
	}
	s.Summary = strings.TrimSpace(s.Summary)
	return s
}

func (r Reflection) validate() error {
	if strings.TrimSpace(r.Summary) == "" || strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("incomplete reflection")
	}
	return nil
}
