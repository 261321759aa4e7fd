package journal

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Category is a coarse sentiment bucket.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryPositive Category = "positive"
	CategoryNeutral  Category = "neutral"
	CategoryNegative Category = "negative"
)

var (
	positiveWords = []string{"positive", "happy", "joy"}
	negativeWords = []string{"negative", "sad", "angry"}
)

// Classify maps a sentiment summary to a category. A nil summary is neutral.
func Classify(summary *string) Category {
	if summary == nil {
		return CategoryNeutral
	}
	return ClassifyText(*summary)
}

// ClassifyText applies the keyword rules to s: positive words win over
// negative ones, anything else is neutral.
func ClassifyText(s string) Category {
	folded := fold(s)
	if containsAny(folded, positiveWords) {
		return CategoryPositive
	}
	if containsAny(folded, negativeWords) {
		return CategoryNegative
	}
	return CategoryNeutral
}

// ParseCategory parses a mood filter value. An empty string means all.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CategoryAll, nil
	case CategoryAll, CategoryPositive, CategoryNeutral, CategoryNegative:
		return c, nil
	}
	return "", fmt.Errorf("unknown sentiment category %q", s)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// fold returns a normalized, case-folded form of s suitable for
// case-insensitive substring matching.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
