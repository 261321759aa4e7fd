package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/echojournal/internal/common"
)

func (a *App) callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.config.Timeout)
}

func newReflectCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reflect",
		Short: "Summarize your latest entries and get a writing prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.config.UserID == "" {
				return errNoUser
			}

			ctx, cancel := a.callContext(cmd)
			defer cancel()

			r, err := a.assistant.Reflect(ctx, a.config.UserID)
			switch {
			case errors.Is(err, common.ErrNoEntries):
				fmt.Fprintln(a.out, "No journal entries found. Write some entries first!")
				return nil
			case err != nil:
				return fmt.Errorf("error generating weekly reflection: %w", err)
			}

			fmt.Fprintln(a.out, bold.Sprint("This week"))
			fmt.Fprintln(a.out, r.Summary)
			fmt.Fprintln(a.out)
			fmt.Fprintln(a.out, bold.Sprint("Prompt"))
			fmt.Fprintln(a.out, r.Prompt)
			return nil
		},
	}
}
