package engine

import (
	"io"
	"os"
	"runtime"

	"github.com/logsieve/logsieve/pkg/progress"
)

// Mode selects how a run schedules its files.
type Mode uint8

const (
	// ModeAuto processes a single file sequentially and two or more
	// files in parallel.
	ModeAuto Mode = iota

	// ModeSequential processes files one at a time in the given order.
	ModeSequential

	// ModeParallel processes files on a bounded worker pool.
	ModeParallel
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeParallel:
		return "parallel"
	default:
		return "auto"
	}
}

// ParseMode parses a mode string, defaulting to ModeAuto.
func ParseMode(s string) Mode {
	switch s {
	case "sequential", "seq":
		return ModeSequential
	case "parallel", "par":
		return ModeParallel
	default:
		return ModeAuto
	}
}

// Options control a processing run. The zero value gives automatic
// mode selection, one worker per CPU, default progress batching, and
// progress rendering on stderr.
type Options struct {
	// Mode forces sequential or parallel execution. ModeAuto picks
	// based on file count.
	Mode Mode

	// Workers bounds the parallel worker pool. Values < 1 use
	// runtime.NumCPU().
	Workers int

	// BatchLines is how many lines each worker counts locally before
	// flushing to the shared progress tracker. Values < 1 use
	// progress.DefaultBatchLines.
	BatchLines int64

	// ProgressWriter receives progress rendering, os.Stderr when nil.
	// Pass io.Discard to disable rendering.
	ProgressWriter io.Writer

	// Description labels the progress bar.
	Description string
}

func (o Options) resolveWorkers() int {
	if o.Workers >= 1 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o Options) resolveBatchLines() int64 {
	if o.BatchLines >= 1 {
		return o.BatchLines
	}
	return progress.DefaultBatchLines
}

func (o Options) resolveProgressWriter() io.Writer {
	if o.ProgressWriter != nil {
		return o.ProgressWriter
	}
	return os.Stderr
}

func (o Options) resolveDescription() string {
	if o.Description != "" {
		return o.Description
	}
	return "processing"
}

func (o Options) resolveMode(fileCount int) Mode {
	if o.Mode != ModeAuto {
		return o.Mode
	}
	if fileCount < 2 {
		return ModeSequential
	}
	return ModeParallel
}
