package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/echojournal/internal/common"
)

var errNeedsConfirmation = errors.New("refusing to delete without confirmation: pass --yes")

func newDeleteCommand(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <entry-id>",
		Aliases: []string{"rm"},
		Short:   "Delete one of your entries",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if !yes {
				if !a.isTerminal() {
					return errNeedsConfirmation
				}
				ok, err := Confirm(a.reader(), fmt.Sprintf("Delete entry %s? This cannot be undone.", id), a.out)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.out, "Cancelled.")
					return nil
				}
			}

			s, err := a.session()
			if err != nil {
				return err
			}

			err = s.Delete(cmd.Context(), id)
			switch {
			case err == nil:
				fmt.Fprintf(a.out, "Entry deleted successfully. You have %d entries.\n", len(s.Entries()))
				return nil
			case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorUnauthorized):
				return fmt.Errorf("error deleting entry: no entry %s among your entries", id)
			default:
				return fmt.Errorf("error deleting entry: %w", err)
			}
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}
