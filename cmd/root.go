package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"repodash/config"
	"repodash/logger"
)

var cfg = config.NewConfig()

var rootCmd = &cobra.Command{
	Use:   "repodash",
	Short: "A dashboard of GitHub repository statistics.",
	Long: `repodash loads a dataset of GitHub repositories (CSV or Postgres) and
presents stars, forks and pull requests by language, as a web dashboard,
a JSON summary or a directory of PNG charts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Load(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return logger.Initialize(cfg.LogLevel)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("dataset", "", "Dataset CSV path, or table name with --source postgres (env DATASET_PATH)")
	flags.String("source", "", "Dataset source: csv or postgres (env DATASET_SOURCE)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")

	viper.BindPFlag("DATASET_PATH", flags.Lookup("dataset"))
	viper.BindPFlag("DATASET_SOURCE", flags.Lookup("source"))
	viper.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))
}
