// Package summary aggregates run-wide traffic statistics; the standard
// consumer of the processing engine.
package summary

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/logsieve/logsieve/internal/model"
	"github.com/logsieve/logsieve/pkg/engine"
)

// Summary is the engine accumulator for the summary report. All
// counters are plain additions, so Merge is trivially commutative.
type Summary struct {
	Requests  int64
	Responses int64
	Logins    int64
	Errors    int64

	ByOperation map[string]int64
	ByMount     map[string]int64
	ByPath      map[string]int64
}

// Report wraps a folded Summary with run metadata.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Files       []string
	Summary     *Summary
	Stats       *engine.Stats
}

// PathCount is one row of the top-paths table.
type PathCount struct {
	Path  string
	Count int64
}

// TopPaths returns the n most-requested paths, most frequent first,
// ties broken by path for deterministic output.
func (s *Summary) TopPaths(n int) []PathCount {
	out := make([]PathCount, 0, len(s.ByPath))
	for p, c := range s.ByPath {
		out = append(out, PathCount{Path: p, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Path < out[j].Path
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

type job struct{}

func (job) Identity() *Summary {
	return &Summary{
		ByOperation: make(map[string]int64),
		ByMount:     make(map[string]int64),
		ByPath:      make(map[string]int64),
	}
}

func (job) Reduce(acc *Summary, rec *model.Record, _ engine.File) {
	switch rec.Type {
	case "request":
		acc.Requests++
	case "response":
		acc.Responses++
	}
	if rec.IsLogin() {
		acc.Logins++
	}
	if rec.Error != "" {
		acc.Errors++
	}
	if rec.IsRequest() {
		acc.ByOperation[rec.Request.Operation]++
		acc.ByMount[rec.MountKey()]++
		acc.ByPath[rec.Request.Path]++
	}
}

func (job) Merge(dst, src *Summary) *Summary {
	dst.Requests += src.Requests
	dst.Responses += src.Responses
	dst.Logins += src.Logins
	dst.Errors += src.Errors
	for k, v := range src.ByOperation {
		dst.ByOperation[k] += v
	}
	for k, v := range src.ByMount {
		dst.ByMount[k] += v
	}
	for k, v := range src.ByPath {
		dst.ByPath[k] += v
	}
	return dst
}

// Run streams the files through the engine and returns the report.
func Run(ctx context.Context, files []string, opts engine.Options) (*Report, error) {
	if opts.Description == "" {
		opts.Description = "summarizing"
	}

	sum, stats, err := engine.Process(ctx, files, job{}, opts)
	if err != nil {
		return nil, err
	}

	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Files:       files,
		Summary:     sum,
		Stats:       stats,
	}, nil
}
