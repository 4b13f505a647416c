package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alun/pai/config"
	"github.com/alun/pai/internal/logging"
	"github.com/alun/pai/store"
)

var rootCmd = &cobra.Command{
	Use:   "pai",
	Short: "Position analysis for broker deal feeds",
	Long: `pai replays normalized broker deal feeds, reconstructs the account's
position history by FIFO matching, and reduces it to the canonical
17-column trade table used by FxBlue CSV exports.

It provides tools for:
  - Replaying deal feeds (CSV, compressed CSV or zipped parts) into tables
  - Computing performance statistics, trading costs and grid-run breakdowns
  - Archiving ingested tables as runs in SQLite
  - Serving archived runs over an HTTP API
  - Fetching published FxBlue CSV feeds by URL

Complete documentation is available at https://github.com/alun/pai`,
}

var (
	cfgPath   string
	dbPath    string
	logLevel  string
	logPretty bool

	cfg    *config.Config
	logger logging.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the run archive database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "pretty", false, "human-readable log output")

	rootCmd.PersistentPreRunE = setup
}

// setup runs before every command: config first, then flag overrides,
// then the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}

	if dbPath != "" {
		cfg.Store.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logPretty {
		cfg.Logging.Pretty = true
	}

	logger = logging.New(cfg.Logging.Level, cfg.Logging.Pretty)
	return nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", cfg.Store.DBPath, err)
	}
	return st, nil
}
