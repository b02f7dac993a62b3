// Package engine implements the streaming multi-file processing core.
//
// A run streams N line-oriented audit log files (optionally gzip or
// zstd compressed), parses each line defensively, and folds records
// into caller-supplied accumulators. Files are processed on a bounded
// worker pool or one at a time; the two paths produce equal results
// for any Job whose Merge honors the associative/commutative contract.
//
// Per-line parse failures are counted and never abort a run. Any I/O
// failure opening or reading a file is fatal to the whole run: partial
// aggregates are discarded rather than silently returned.
package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/logsieve/logsieve/pkg/parser"
	"github.com/logsieve/logsieve/pkg/progress"
	"github.com/logsieve/logsieve/pkg/util"
)

// readBufferSize is the line reader buffer size per file.
const readBufferSize = 256 * 1024

// Process streams every file in the caller-supplied order through job
// and returns the folded accumulator plus run statistics.
//
// In parallel mode every file is first pre-scanned to count lines so
// the progress display has an honest total; the extra sequential read
// is a small constant factor against the main pass.
func Process[A any](ctx context.Context, files []string, job Job[A], opts Options) (A, *Stats, error) {
	if len(files) == 0 {
		return job.Identity(), &Stats{}, nil
	}

	if opts.resolveMode(len(files)) == ModeParallel {
		return processParallel(ctx, files, job, opts)
	}
	return processSequential(ctx, files, job, opts)
}

// processSequential handles files one at a time in order, folding each
// file's accumulator into the running total as soon as it completes.
func processSequential[A any](ctx context.Context, files []string, job Job[A], opts Options) (A, *Stats, error) {
	var zero A
	stats := &Stats{}
	tracker := progress.NewUnbounded(opts.resolveDescription(), opts.resolveProgressWriter())

	acc := job.Identity()
	for i, path := range files {
		fileAcc := job.Identity()
		counter := tracker.Counter(opts.resolveBatchLines())

		fs, err := processFile(ctx, File{Index: i, Path: path}, job, fileAcc, counter)
		if err != nil {
			return zero, nil, err
		}
		stats.addFile(fs)
		acc = job.Merge(acc, fileAcc)
	}

	tracker.Finish()
	return acc, stats, nil
}

// processParallel dispatches one task per file onto a bounded pool.
// Each task owns a private accumulator; results are folded only after
// every task completes, so the fold runs single-threaded.
func processParallel[A any](ctx context.Context, files []string, job Job[A], opts Options) (A, *Stats, error) {
	var zero A

	total, err := countTotalLines(ctx, files)
	if err != nil {
		return zero, nil, err
	}

	stats := &Stats{}
	tracker := progress.NewBounded(total, opts.resolveDescription(), opts.resolveProgressWriter())

	results := make([]A, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.resolveWorkers())

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			acc := job.Identity()
			counter := tracker.Counter(opts.resolveBatchLines())

			fs, err := processFile(gctx, File{Index: i, Path: path}, job, acc, counter)
			if err != nil {
				return err
			}
			stats.addFile(fs)
			results[i] = acc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return zero, nil, err
	}

	acc := job.Identity()
	for _, r := range results {
		acc = job.Merge(acc, r)
	}

	tracker.Finish()
	return acc, stats, nil
}

// processFile streams one file: blank lines are skipped silently,
// malformed lines are counted, parsed records are reduced into acc.
// The counter is flushed before returning so the shared tracker sees
// any remainder below the batch threshold.
func processFile[A any](ctx context.Context, file File, job Job[A], acc A, counter *progress.Counter) (fileStats, error) {
	var fs fileStats

	r, cleanup, err := util.OpenFile(file.Path)
	if err != nil {
		return fs, fmt.Errorf("engine: open %s: %w", file.Path, err)
	}
	defer cleanup()
	defer counter.Flush()

	reader := bufio.NewReaderSize(r, readBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return fs, err
		}

		line, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return fs, fmt.Errorf("engine: read %s: %w", file.Path, err)
		}
		if len(line) == 0 && err == io.EOF {
			break
		}

		fs.lines++
		counter.Incr()

		rec, perr := parser.Parse(line)
		switch {
		case perr == nil:
			fs.parsed++
			job.Reduce(acc, rec, file)
		case errors.Is(perr, parser.ErrBlankLine):
			// Skipped silently, not counted as a failure.
		default:
			fs.skipped++
		}

		if err == io.EOF {
			break
		}
	}

	return fs, nil
}

// countTotalLines pre-scans every file (decompressing as needed) and
// returns the combined line count.
func countTotalLines(ctx context.Context, files []string) (int64, error) {
	var total int64
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := countLines(path)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// countLines counts lines in one file without parsing them.
func countLines(path string) (int64, error) {
	r, cleanup, err := util.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("engine: open %s: %w", path, err)
	}
	defer cleanup()

	var count int64
	buf := make([]byte, readBufferSize)
	sawTail := false
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if b == '\n' {
				count++
				sawTail = false
			} else {
				sawTail = true
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("engine: read %s: %w", path, err)
		}
	}
	if sawTail {
		count++ // final line without trailing newline
	}
	return count, nil
}
