package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/echojournal/internal/client/config"
)

// NewRootCommand builds the journal command tree around a.
func NewRootCommand(a *App) *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:           "journal",
		Short:         "Write, search and reflect on your journal from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			for flag, key := range map[string]string{
				"server":       config.KeyServer,
				"mode":         config.KeyMode,
				"database-dsn": config.KeyDatabaseDSN,
				"user":         config.KeyUser,
				"token":        config.KeyToken,
				"timeout":      config.KeyTimeout,
				"timezone":     config.KeyTimezone,
			} {
				if err := a.viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
					return err
				}
			}

			cfg, err := config.Load(a.viper, configDir)
			if err != nil {
				return err
			}
			a.config = cfg
			return a.connect(cmd.Context(), a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configDir, "config-dir", "", "directory holding .journal.yaml")
	pf.String("server", "", "journal API base URL")
	pf.String("mode", "", "data access mode: api or postgres")
	pf.String("database-dsn", "", "PostgreSQL DSN for postgres mode")
	pf.StringP("user", "u", "", "user id owning the entries")
	pf.String("token", "", "bearer token for the API")
	pf.Duration("timeout", 0, "per-call timeout")
	pf.String("timezone", "", "time zone for displayed dates in postgres mode")

	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.out)

	cmd.AddCommand(
		newAddCommand(a),
		newListCommand(a),
		newDeleteCommand(a),
		newAnalyzeCommand(a),
		newReflectCommand(a),
		newExportCommand(a),
	)
	return cmd
}
