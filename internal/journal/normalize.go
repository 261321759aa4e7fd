package journal

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Normalizer erases backend record shapes into canonical entries.
// The zero value formats timestamps in UTC.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer returns a Normalizer that renders timestamps in loc.
// A nil loc means UTC.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

func (n *Normalizer) location() *time.Location {
	if n == nil || n.loc == nil {
		return time.UTC
	}
	return n.loc
}

// Normalize converts a raw record into a JournalEntry. It never fails:
// an unresolvable timestamp becomes InvalidDate.
func (n *Normalizer) Normalize(r RawRecord) JournalEntry {
	var (
		e   JournalEntry
		raw any
	)

	switch rec := r.(type) {
	case AdminRecord:
		e = JournalEntry{ID: rec.ID, Text: rec.EntryText, SentimentSummary: rec.SentimentSummary}
		raw = rec.Timestamp
	case ClientRecord:
		e = JournalEntry{ID: rec.ID, Text: rec.EntryText, SentimentSummary: rec.SentimentSummary}
		raw = rec.Timestamp
	case SupabaseRow:
		e = JournalEntry{ID: rec.ID, Text: rec.Content, SentimentSummary: rec.SentimentSummary}
		raw = rec.CreatedAt
	default:
		e.Timestamp = InvalidDate
		return e
	}

	if t, ok := ResolveTimestamp(raw); ok {
		e.CreatedAt = t
		e.Timestamp = t.In(n.location()).Format(DisplayLayout)
	} else {
		e.Timestamp = InvalidDate
	}

	return e
}

// NormalizeAll normalizes every record and orders the result newest first.
// The result is never nil.
func (n *Normalizer) NormalizeAll(records []RawRecord) []JournalEntry {
	out := make([]JournalEntry, 0, len(records))
	for _, r := range records {
		out = append(out, n.Normalize(r))
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders entries by creation time, descending. Entries with
// an invalid timestamp go last. Equal keys keep their relative order.
func SortNewestFirst(entries []JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].CreatedAt, entries[j].CreatedAt
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.After(b)
	})
}

type asTimer interface {
	AsTime() time.Time
}

type toDater interface {
	ToDate() time.Time
}

// ResolveTimestamp turns a raw backend timestamp into an instant. It tries,
// in order: a date conversion capability, a seconds component, then
// generic parsing. It reports false when none applies.
func ResolveTimestamp(v any) (t time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()

	if v == nil {
		return time.Time{}, false
	}

	if t, ok := toDate(v); ok {
		return t, validYear(t)
	}
	if secs, ok := secondsOf(v); ok {
		return fromMillis(secs * 1000)
	}
	return parse(v)
}

func toDate(v any) (time.Time, bool) {
	switch ts := v.(type) {
	case time.Time:
		return ts, !ts.IsZero()
	case *time.Time:
		if ts == nil || ts.IsZero() {
			return time.Time{}, false
		}
		return *ts, true
	case asTimer:
		t := ts.AsTime()
		return t, !t.IsZero()
	case toDater:
		t := ts.ToDate()
		return t, !t.IsZero()
	}
	return time.Time{}, false
}

func secondsOf(v any) (float64, bool) {
	switch s := v.(type) {
	case Seconds:
		return float64(s.Seconds), true
	case *Seconds:
		if s == nil {
			return 0, false
		}
		return float64(s.Seconds), true
	case map[string]any:
		for _, key := range []string{"seconds", "_seconds"} {
			if raw, found := s[key]; found {
				if f, ok := number(raw); ok {
					return f, true
				}
			}
		}
	}
	return 0, false
}

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

func parse(v any) (time.Time, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, validYear(t)
			}
		}
		if ms, err := strconv.ParseFloat(s, 64); err == nil {
			return fromMillis(ms)
		}
		return time.Time{}, false
	}

	if ms, ok := number(v); ok {
		return fromMillis(ms)
	}
	return time.Time{}, false
}

func fromMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	// beyond this the instant does not fit in a calendar year 1..9999
	if math.Abs(ms) > 8.64e15 {
		return time.Time{}, false
	}
	t := time.UnixMilli(int64(ms)).UTC()
	return t, validYear(t)
}

func validYear(t time.Time) bool {
	y := t.Year()
	return y >= 1 && y <= 9999
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
