package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/logsieve/logsieve/pkg/churn"
	"github.com/logsieve/logsieve/pkg/tui"
)

// Churn flags
var (
	baselinePath string
	outputPath   string
	outputFormat string
	threshold    float64
)

var churnCmd = &cobra.Command{
	Use:   "churn <files...>",
	Short: "Classify entity lifecycle and churn across daily log files",
	Long: `Analyze entity login activity across a chronologically ordered set of
audit log files (typically one per day) and flag ephemeral entities:
identities whose activity pattern resembles short-lived automation
(CI pipeline credentials, batch jobs) rather than persistent users.

The --baseline file lists entity IDs (one per line) known to exist
before the analyzed window; those are tagged pre-existing instead of new.

Examples:
  logsieve churn audit-2026-03-0{1,2,3}.json
  logsieve churn --baseline entities.txt --output churn.csv audit/*.json.gz
  logsieve churn --format xlsx --output churn.xlsx audit/*.json.zst`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChurn,
}

func init() {
	churnCmd.Flags().StringVarP(&baselinePath, "baseline", "b", "", "File of pre-existing entity IDs, one per line")
	churnCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the full report to a file")
	churnCmd.Flags().StringVarP(&outputFormat, "format", "f", "csv", "Output format: csv, json, xlsx")
	churnCmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "Override the ephemeral confidence threshold")
	churnCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Execution mode: auto, sequential, parallel")
	churnCmd.Flags().IntVarP(&workersFlag, "workers", "w", 0, "Parallel workers (default: one per CPU)")
}

func runChurn(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	churnCfg := cfg.Churn
	if threshold > 0 {
		churnCfg.EphemeralThreshold = threshold
	}

	analyzer := churn.New(churnCfg).WithEngineOptions(engineOptions())

	if baselinePath != "" {
		ids, err := readBaseline(baselinePath)
		if err != nil {
			return err
		}
		analyzer.WithBaseline(ids)
		slog.Debug("baseline loaded", "path", baselinePath, "entities", len(ids))
	}

	start := time.Now()
	report, err := analyzer.Run(ctx, args)
	if err != nil {
		tui.PrintError(err)
		return err
	}

	slog.Debug("churn run complete", "run_id", report.RunID, "entities", len(report.Entities), "stats", report.Stats)
	tui.PrintChurn(report, time.Since(start))

	if outputPath == "" {
		return nil
	}
	return writeReport(report, outputPath, outputFormat)
}

func writeReport(report *churn.Report, path, format string) error {
	switch strings.ToLower(format) {
	case "xlsx":
		if err := churn.WriteXLSX(path, report); err != nil {
			return err
		}
	case "json":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		if err := churn.WriteJSON(f, report); err != nil {
			return err
		}
	case "csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		if err := churn.WriteCSV(f, report); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format %q (want csv, json, or xlsx)", format)
	}

	fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
	return nil
}

// readBaseline loads entity IDs, one per line; blank lines and
// #-comments are ignored.
func readBaseline(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open baseline %s: %w", path, err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read baseline %s: %w", path, err)
	}
	return ids, nil
}
