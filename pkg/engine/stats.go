package engine

import (
	"log/slog"
	"sync/atomic"
)

// Stats holds run-wide counters with thread-safe access. Counter
// fields use atomic operations so parallel file tasks can publish
// their per-file totals without extra locking. Stats are advisory
// summary data; classification decisions never read them.
type Stats struct {
	lines   atomic.Int64
	parsed  atomic.Int64
	skipped atomic.Int64
	files   atomic.Int64
}

// Lines returns the total number of lines read, including skipped ones.
func (s *Stats) Lines() int64 { return s.lines.Load() }

// Parsed returns the number of successfully parsed records.
func (s *Stats) Parsed() int64 { return s.parsed.Load() }

// Skipped returns the number of malformed lines that were skipped.
func (s *Stats) Skipped() int64 { return s.skipped.Load() }

// Files returns the number of files processed.
func (s *Stats) Files() int64 { return s.files.Load() }

// LogValue implements slog.LogValuer for structured logging.
func (s *Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("lines", s.Lines()),
		slog.Int64("parsed", s.Parsed()),
		slog.Int64("skipped", s.Skipped()),
		slog.Int64("files", s.Files()),
	)
}

// fileStats are the single-task counters for one file, folded into the
// shared Stats in one atomic batch when the file completes.
type fileStats struct {
	lines   int64
	parsed  int64
	skipped int64
}

func (s *Stats) addFile(fs fileStats) {
	s.lines.Add(fs.lines)
	s.parsed.Add(fs.parsed)
	s.skipped.Add(fs.skipped)
	s.files.Add(1)
}
