// LogSieve - streaming audit log analyzer.
// Aggregates statistics and classifies entity churn across large,
// line-oriented JSON audit logs (plain, gzip, or zstd).
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/logsieve/logsieve/pkg/config"
	"github.com/logsieve/logsieve/pkg/engine"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// Global CLI flags
var (
	configPath string
	verbose    bool
	quiet      bool

	modeFlag    string
	workersFlag int
)

// cfg is loaded once before any subcommand runs.
var cfg config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logsieve",
	Short: "LogSieve - analyze streaming audit logs",
	Long: `LogSieve streams large line-oriented JSON audit log files (optionally
gzip or zstd compressed), aggregates statistics, and classifies entity
lifecycle and churn. Malformed lines are skipped and counted, never fatal.`,
	Version:       fmt.Sprintf("%s (%s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./"+config.FileName+", then ~/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(churnCmd)
	rootCmd.AddCommand(watchCmd)
}

// engineOptions builds engine options from config and flags. Flags win.
func engineOptions() engine.Options {
	opts := engine.Options{
		Mode:       engine.ParseMode(cfg.Engine.Mode),
		Workers:    cfg.Engine.Workers,
		BatchLines: cfg.Engine.BatchLines,
	}
	if modeFlag != "" {
		opts.Mode = engine.ParseMode(modeFlag)
	}
	if workersFlag > 0 {
		opts.Workers = workersFlag
	}
	if quiet {
		opts.ProgressWriter = io.Discard
	}
	return opts
}
