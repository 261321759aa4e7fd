package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/echojournal/internal/client/api"
	"github.com/dmitrijs2005/echojournal/internal/filex"
	"github.com/dmitrijs2005/echojournal/internal/journal"
)

// unavailableSentiment stands in when analysis fails.
var unavailableSentiment = api.Sentiment{
	Sentiment: string(journal.CategoryNeutral),
	Score:     0,
	Summary:   "Sentiment analysis unavailable",
}

func newAnalyzeCommand(a *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Show the sentiment of a piece of text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if file != "" {
				var err error
				if text, err = filex.ReadText(a.fs, file); err != nil {
					return err
				}
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("nothing to analyze")
			}

			ctx, cancel := a.callContext(cmd)
			defer cancel()

			s, err := a.assistant.Analyze(ctx, text)
			if err != nil {
				s = unavailableSentiment
			}

			fmt.Fprintf(a.out, "%s %s (%+.2f)\n", bold.Sprint("Sentiment:"), moodLabel(journal.Category(s.Sentiment)), s.Score)
			fmt.Fprintln(a.out, s.Summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the text from a file")
	return cmd
}
