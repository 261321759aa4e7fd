package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/echojournal/internal/filex"
)

func newAddCommand(a *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Save a journal entry",
		Example: `journal add "Walked to the lake, felt calm"
journal add --file today.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if file != "" {
				var err error
				if text, err = filex.ReadText(a.fs, file); err != nil {
					return err
				}
			}
			if strings.TrimSpace(text) == "" {
				var err error
				if text, err = GetMultiline(a.reader(), "Write your entry", a.out); err != nil {
					return err
				}
			}

			s, err := a.session()
			if err != nil {
				return err
			}

			id, err := s.Create(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("failed to add journal entry: %w", err)
			}

			fmt.Fprintf(a.out, "Journal entry added (%s). You have %d entries.\n", id, len(s.Entries()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the entry text from a file")
	return cmd
}
