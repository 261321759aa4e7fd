package analysis

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dmitrijs2005/echojournal/internal/journal"
)

var (
	upliftingWords = []string{
		"happy", "joy", "glad", "great", "good", "love", "grateful", "thankful",
		"excited", "proud", "calm", "relaxed", "fun", "wonderful", "peaceful",
	}
	heavyWords = []string{
		"sad", "angry", "upset", "tired", "stress", "anxious", "worried", "lonely",
		"bad", "awful", "frustrat", "cry", "hate", "afraid", "exhausted",
	}
)

const (
	summaryPositive = "The entry has a positive, happy tone."
	summaryNegative = "The entry carries a negative, sad tone."
	summaryNeutral  = "The entry reads as calm and neutral."
)

// Heuristic is a deterministic, offline analyzer. Its summaries use the
// same keywords the classifier looks for, so its annotations classify
// consistently.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Sentiment(ctx context.Context, text string) (Sentiment, error) {
	if err := ctx.Err(); err != nil {
		return Sentiment{}, err
	}

	switch tone(text) {
	case journal.CategoryPositive:
		return Sentiment{Sentiment: string(journal.CategoryPositive), Score: 0.6, Summary: summaryPositive}, nil
	case journal.CategoryNegative:
		return Sentiment{Sentiment: string(journal.CategoryNegative), Score: -0.6, Summary: summaryNegative}, nil
	default:
		return Sentiment{Sentiment: string(journal.CategoryNeutral), Score: 0, Summary: summaryNeutral}, nil
	}
}

func (h *Heuristic) Reflect(ctx context.Context, entries string) (Reflection, error) {
	if err := ctx.Err(); err != nil {
		return Reflection{}, err
	}

	n := len(splitEntries(entries))
	switch tone(entries) {
	case journal.CategoryPositive:
		return Reflection{
			Summary: fmt.Sprintf("Across %d entries the mood was mostly positive and happy.", n),
			Prompt:  "What made these good moments possible, and how can you invite more of them next week?",
		}, nil
	case journal.CategoryNegative:
		return Reflection{
			Summary: fmt.Sprintf("Across %d entries the mood leaned negative, with sad or stressful moments.", n),
			Prompt:  "Write about one small thing that could make next week a little lighter.",
		}, nil
	default:
		return Reflection{
			Summary: fmt.Sprintf("Across %d entries the mood was steady and neutral.", n),
			Prompt:  "Describe a moment this week you would like to remember in a year.",
		}, nil
	}
}

func tone(text string) journal.Category {
	folded := cases.Fold().String(text)
	score := 0
	for _, w := range upliftingWords {
		score += strings.Count(folded, w)
	}
	for _, w := range heavyWords {
		score -= strings.Count(folded, w)
	}
	switch {
	case score > 0:
		return journal.CategoryPositive
	case score < 0:
		return journal.CategoryNegative
	default:
		return journal.CategoryNeutral
	}
}

func splitEntries(entries string) []string {
	var out []string
	for _, e := range strings.Split(entries, "\n\n") {
		if strings.TrimSpace(e) != "" {
			out = append(out, e)
		}
	}
	return out
}
