package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/dmitrijs2005/echojournal/internal/journal"
)

var (
	bold    = color.New(color.Bold)
	faint   = color.New(color.Faint, color.Italic)
	moodFmt = map[journal.Category]*color.Color{
		journal.CategoryPositive: color.New(color.FgGreen),
		journal.CategoryNeutral:  color.New(color.FgHiBlack),
		journal.CategoryNegative: color.New(color.FgRed),
	}
)

func moodLabel(c journal.Category) string {
	if f, ok := moodFmt[c]; ok {
		return f.Sprint(string(c))
	}
	return string(c)
}

func printEntries(w io.Writer, entries []journal.JournalEntry, full bool) {
	if len(entries) == 0 {
		_, _ = faint.Fprintln(w, " none")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = full
	if full {
		tbl.MaxColWidth = 80
	}
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Date"), bold.Sprint("Mood"), bold.Sprint("Entry"))
	for _, e := range entries {
		text := journal.Title(e.Text)
		if full {
			text = e.Text
		}
		tbl.AddRow(e.ID, e.Timestamp, moodLabel(e.Category()), text)
	}

	_, _ = fmt.Fprintln(w, tbl)
}

func printSummary(w io.Writer, shown, total int) {
	switch total {
	case 1:
		_, _ = faint.Fprintf(w, "%d of 1 entry\n", shown)
	default:
		_, _ = faint.Fprintf(w, "%d of %d entries\n", shown, total)
	}
}
