// Command fakturactl is the operator tool for dunning runs and development tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faktura/backend/internal/infrastructure/config"
	"github.com/faktura/backend/internal/infrastructure/logger"
)

// cli carries the state shared by all subcommands
type cli struct {
	logLevel string
	cfg      *config.Config
	log      *zap.Logger

	loadConfig func() (*config.Config, error)
}

func newRootCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	app := &cli{loadConfig: loadConfig}

	root := &cobra.Command{
		Use:   "fakturactl",
		Short: "Faktura operator tool",
		Long: `Runs and previews dunning for one or all tenants and issues access
tokens for development. Reads the same config.toml and FAKTURA_* variables
as the server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			app.cfg = cfg
			app.log, err = logger.New(logger.Config{
				Level:   app.logLevel,
				Format:  "console",
				Output:  "stderr",
				Service: "fakturactl",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.log != nil {
				_ = app.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(newTokenCmd(app), newDunningCmd(app))
	return root
}

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		os.Exit(1)
	}
}
