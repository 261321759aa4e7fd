package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/echojournal/internal/journal"
)

func newListCommand(a *App) *cobra.Command {
	var (
		search string
		mood   string
		limit  int
		full   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries, newest first",
		Example: `journal list --mood positive
journal list --search lake --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := journal.ParseCategory(mood)
			if err != nil {
				return err
			}

			s, err := a.session()
			if err != nil {
				return err
			}
			if err := s.Reload(cmd.Context()); err != nil {
				return fmt.Errorf("failed to fetch journal entries: %w", err)
			}

			visible := s.Visible(journal.Filter{Search: search, Category: category})
			total := len(visible)
			if limit > 0 && limit < total {
				visible = visible[:limit]
			}

			printEntries(a.out, visible, full)
			printSummary(a.out, len(visible), total)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&search, "search", "s", "", "case-insensitive text or mood search")
	f.StringVarP(&mood, "mood", "m", "", "all, positive, neutral or negative")
	f.IntVarP(&limit, "limit", "n", 0, "show at most n entries")
	f.BoolVar(&full, "full", false, "show full entry text instead of titles")
	return cmd
}
