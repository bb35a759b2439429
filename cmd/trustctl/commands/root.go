package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyshare/internal/app"
)

var (
	wire *app.Wire

	home         string
	directoryURL string
	databaseURL  string
	logLevel     string
	metricsOut   string
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return execute(newRootCmd())
}

// execute runs root and then dumps the resolution metrics when --metrics is
// set, also after a failed command.
func execute(root *cobra.Command) error {
	wire = nil
	err := root.Execute()
	if metricsOut == "" || wire == nil {
		return err
	}
	if werr := wire.WriteMetrics(metricsOut); werr != nil && err == nil {
		return fmt.Errorf("write metrics: %w", werr)
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "trustctl",
		Short:        "Resolve which devices may receive end-to-end encryption keys",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			if directoryURL != "" {
				cfg.DirectoryURL = directoryURL
			}
			if databaseURL != "" {
				cfg.DatabaseURL = databaseURL
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			wire, err = app.NewWire(cmd.Context(), cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.keyshare)")
	root.PersistentFlags().StringVar(&directoryURL, "directory", "", "key directory base URL (e.g. http://127.0.0.1:8008)")
	root.PersistentFlags().StringVar(&databaseURL, "database", "", "store snapshots in this database instead of the state dir")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().StringVar(&metricsOut, "metrics", "", "write resolution metrics to this file in the Prometheus text format")

	root.AddCommand(resolveCmd(), inspectCmd(), pullCmd(), fixtureCmd(), fingerprintCmd())
	return root
}
