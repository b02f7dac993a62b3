// Package tui renders styled terminal reports.
// Simple, streaming, no complex TUI - just clean output.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/logsieve/logsieve/pkg/churn"
	"github.com/logsieve/logsieve/pkg/summary"
)

// Colors (Swiss minimal)
var (
	accent  = lipgloss.Color("#FF0000")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	white   = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	accentStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
)

// PrintSummary renders the summary report.
func PrintSummary(r *summary.Report, elapsed time.Duration) {
	s := r.Summary

	fmt.Println()
	fmt.Println(successStyle.Render("  ✓ SUMMARY COMPLETE"))
	fmt.Println()
	fmt.Printf("  %s %s\n", mutedStyle.Render("Run:"), titleStyle.Render(r.RunID))
	fmt.Printf("  %s %d\n", mutedStyle.Render("Files:"), len(r.Files))
	fmt.Printf("  %s %s requests, %s responses\n",
		mutedStyle.Render("Records:"),
		titleStyle.Render(formatNumber(s.Requests)),
		titleStyle.Render(formatNumber(s.Responses)))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Logins:"), titleStyle.Render(formatNumber(s.Logins)))
	if s.Errors > 0 {
		fmt.Printf("  %s %s\n", mutedStyle.Render("Errors:"), accentStyle.Render(formatNumber(s.Errors)))
	}

	if len(s.ByOperation) > 0 {
		fmt.Println()
		fmt.Println(accentStyle.Render("  ▸ BY OPERATION"))
		for op, count := range s.ByOperation {
			if op == "" {
				op = "(none)"
			}
			fmt.Printf("    %-12s %s\n", op, formatNumber(count))
		}
	}

	top := s.TopPaths(10)
	if len(top) > 0 {
		fmt.Println()
		fmt.Println(accentStyle.Render("  ▸ TOP PATHS"))
		for _, pc := range top {
			fmt.Printf("    %-48s %s\n", pc.Path, formatNumber(pc.Count))
		}
	}

	printRunStats(r.Stats.Lines(), r.Stats.Parsed(), r.Stats.Skipped(), elapsed)
}

// PrintChurn renders the churn report, listing ephemeral entities.
func PrintChurn(r *churn.Report, elapsed time.Duration) {
	fmt.Println()
	fmt.Println(successStyle.Render("  ✓ CHURN ANALYSIS COMPLETE"))
	fmt.Println()
	fmt.Printf("  %s %s\n", mutedStyle.Render("Run:"), titleStyle.Render(r.RunID))
	fmt.Printf("  %s %d across %d files\n", mutedStyle.Render("Entities:"), len(r.Entities), len(r.Files))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Ephemeral:"), accentStyle.Render(formatNumber(int64(r.EphemeralCount()))))

	shown := 0
	for _, e := range r.Entities {
		if !e.Ephemeral {
			continue
		}
		if shown == 0 {
			fmt.Println()
			fmt.Println(accentStyle.Render("  ▸ EPHEMERAL ENTITIES"))
		}
		name := e.DisplayName
		if name == "" {
			name = e.ID
		}
		fmt.Printf("    %-36s %s %s %s\n",
			name,
			titleStyle.Render(fmt.Sprintf("%.2f", e.Confidence)),
			mutedStyle.Render(e.Pattern.String()),
			mutedStyle.Render(fmt.Sprintf("(%d logins, %d files)", e.Logins, len(e.Files))))
		shown++
		if shown >= 20 {
			fmt.Println(mutedStyle.Render("    ..."))
			break
		}
	}

	printRunStats(r.Stats.Lines(), r.Stats.Parsed(), r.Stats.Skipped(), elapsed)
}

// printRunStats shows line totals so operators can judge data quality
// even when skips occurred.
func printRunStats(lines, parsed, skipped int64, elapsed time.Duration) {
	fmt.Println()
	fmt.Println(mutedStyle.Render("  ─────────────────────────────────────"))
	skipNote := ""
	if skipped > 0 {
		skipNote = accentStyle.Render(fmt.Sprintf(" (%s skipped)", formatNumber(skipped)))
	}
	fmt.Printf("  %s %s lines, %s parsed%s\n",
		mutedStyle.Render("Read:"),
		titleStyle.Render(formatNumber(lines)),
		titleStyle.Render(formatNumber(parsed)),
		skipNote)
	if elapsed > 0 {
		throughput := float64(lines) / elapsed.Seconds()
		fmt.Printf("  %s %s %s\n",
			mutedStyle.Render("Time:"),
			titleStyle.Render(formatDuration(elapsed)),
			mutedStyle.Render(fmt.Sprintf("(%s lines/sec)", formatNumber(int64(throughput)))))
	}
	fmt.Println()
}

// PrintError renders a fatal run error.
func PrintError(err error) {
	fmt.Println(accentStyle.Render("  ✗ " + err.Error()))
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}

func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}
