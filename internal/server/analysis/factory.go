package analysis

import (
	"context"
	"fmt"
)

// Kinds accepted by New.
const (
	KindHeuristic = "heuristic"
	KindGemini    = "gemini"
)

// New builds the analyzer named by kind.
func New(ctx context.Context, kind, apiKey, model string) (Analyzer, error) {
	switch kind {
	case KindHeuristic, "":
		return NewHeuristic(), nil
	case KindGemini:
		return NewGemini(ctx, apiKey, model)
	default:
		return nil, fmt.Errorf("unknown analyzer %q", kind)
	}
}
