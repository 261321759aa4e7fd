package cli

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/echojournal/internal/filex"
	"github.com/dmitrijs2005/echojournal/internal/netx"
)

func newExportCommand(a *App) *cobra.Command {
	var (
		download bool
		dir      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your journal to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.config.UserID == "" {
				return errNoUser
			}

			ctx, cancel := a.callContext(cmd)
			defer cancel()

			res, err := a.assistant.Export(ctx, a.config.UserID)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Fprintf(a.out, "Exported to %s\n", res.Key)
			if !download {
				fmt.Fprintln(a.out, res.URL)
				return nil
			}

			body, err := netx.DownloadFromPresignedURL(ctx, a.http, res.URL)
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}

			if dir == "" {
				dir = a.config.ExportDir
			}
			p, err := filex.WriteInDir(a.fs, dir, path.Base(res.Key), body)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved %s\n", p)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&download, "download", "d", false, "download the export to a local file")
	cmd.Flags().StringVar(&dir, "dir", "", "target directory for --download (default from config)")
	return cmd
}
