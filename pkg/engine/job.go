package engine

import "github.com/logsieve/logsieve/internal/model"

// File identifies the input file a record was read from. Index is the
// file's position in the caller-supplied order, so accumulators can
// encode ordering facts in an order-independent way (store both
// endpoints and let Merge take min/max) instead of relying on arrival
// order.
type File struct {
	Index int
	Path  string
}

// Job defines the caller side of a processing run.
//
// The engine constructs one accumulator per file from Identity, feeds
// every successfully parsed record to Reduce against that file's
// private accumulator, and folds the per-file accumulators with Merge
// once streaming completes.
//
// Merge must be associative and commutative: the final result must not
// depend on file processing order or on how many parallel workers ran.
// This is the engine's core correctness contract; it is enforced by
// tests, not by the type system. Accumulators needing "first seen"
// style facts must store file indexes and resolve them with min/max
// inside Merge.
type Job[A any] interface {
	// Identity returns a fresh accumulator. Called once per file; the
	// returned value is owned exclusively by that file's task.
	Identity() A

	// Reduce folds one record into the accumulator. The record is only
	// valid for the duration of the call; copy any fields the
	// accumulator needs to retain.
	Reduce(acc A, rec *model.Record, file File)

	// Merge combines src into dst and returns the result.
	Merge(dst, src A) A
}

// FuncJob adapts plain closures to the Job interface for callers that
// don't want a named type.
type FuncJob[A any] struct {
	IdentityFunc func() A
	ReduceFunc   func(acc A, rec *model.Record, file File)
	MergeFunc    func(dst, src A) A
}

func (j FuncJob[A]) Identity() A { return j.IdentityFunc() }

func (j FuncJob[A]) Reduce(acc A, rec *model.Record, file File) {
	j.ReduceFunc(acc, rec, file)
}

func (j FuncJob[A]) Merge(dst, src A) A { return j.MergeFunc(dst, src) }
