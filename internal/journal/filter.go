package journal

import "strings"

// Filter selects entries by search term and sentiment category.
// The zero value matches everything.
type Filter struct {
	Search   string
	Category Category
}

// Matches reports whether e passes both the search and category predicates.
func (f Filter) Matches(e JournalEntry) bool {
	return f.matchesSearch(e) && f.matchesCategory(e)
}

func (f Filter) matchesSearch(e JournalEntry) bool {
	if f.Search == "" {
		return true
	}
	term := fold(f.Search)
	if strings.Contains(fold(e.Text), term) {
		return true
	}
	return e.SentimentSummary != nil && strings.Contains(fold(*e.SentimentSummary), term)
}

func (f Filter) matchesCategory(e JournalEntry) bool {
	if f.Category == "" || f.Category == CategoryAll {
		return true
	}
	return e.Category() == f.Category
}

// Apply returns the entries that match f, preserving order. The result is
// never nil.
func (f Filter) Apply(entries []JournalEntry) []JournalEntry {
	out := make([]JournalEntry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
