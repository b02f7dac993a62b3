package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/logsieve/logsieve/pkg/summary"
	"github.com/logsieve/logsieve/pkg/tui"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <files...>",
	Short: "Aggregate traffic statistics across audit log files",
	Long: `Stream one or more audit log files and print aggregate statistics:
request/response counts, operations, mounts, top paths, and error counts.

Files may be plain, gzip (.gz), or zstd (.zst) compressed. Pass files in
chronological order; two or more files are processed in parallel unless
--mode overrides it.

Examples:
  logsieve summary audit-2026-03-01.json audit-2026-03-02.json.gz
  logsieve summary --mode sequential audit/*.json.zst`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Execution mode: auto, sequential, parallel")
	summaryCmd.Flags().IntVarP(&workersFlag, "workers", "w", 0, "Parallel workers (default: one per CPU)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	report, err := summary.Run(ctx, args, engineOptions())
	if err != nil {
		tui.PrintError(err)
		return err
	}

	slog.Debug("summary run complete", "run_id", report.RunID, "stats", report.Stats)
	tui.PrintSummary(report, time.Since(start))
	return nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, stopping...")
		cancel()
	}()

	return ctx, cancel
}
