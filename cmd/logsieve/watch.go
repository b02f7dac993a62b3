package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/logsieve/logsieve/pkg/summary"
	"github.com/logsieve/logsieve/pkg/tui"
	"github.com/logsieve/logsieve/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a log directory and refresh the summary on changes",
	Long: `Watch a directory of audit log files and re-run the summary report
whenever a log file is created or appended to. Changes are debounced so
bursts of writes trigger one refresh.

Examples:
  logsieve watch /var/log/audit
  logsieve watch --quiet ./logs`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	w, err := watch.NewWatcher(args[0])
	if err != nil {
		return err
	}
	defer w.Close()

	refresh := func(files []string) error {
		if len(files) == 0 {
			return nil
		}
		start := time.Now()
		report, err := summary.Run(ctx, files, engineOptions())
		if err != nil {
			return err
		}
		tui.PrintSummary(report, time.Since(start))
		return nil
	}

	w.OnChange = refresh
	w.OnError = func(path string, err error) {
		fmt.Fprintf(os.Stderr, "watch error (%s): %v\n", path, err)
	}

	// Initial report for whatever is already in the directory.
	files, err := w.LogFiles()
	if err != nil {
		return err
	}
	if err := refresh(files); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Watching %s for changes (Ctrl-C to stop)...\n", args[0])
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
