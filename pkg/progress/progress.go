// Package progress provides throttled progress tracking for streaming
// runs, safe for concurrent use by multiple workers.
package progress

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
)

const (
	// renderInterval bounds how often the bar is redrawn. Updates may
	// arrive once per parsed line; unthrottled rendering would dominate
	// runtime on fast storage.
	renderInterval = 200 * time.Millisecond

	// DefaultBatchLines is how many lines a worker accumulates locally
	// before flushing to the shared tracker.
	DefaultBatchLines = 1000
)

// Tracker tracks a monotonically increasing position against an
// optional known total and renders a terminal bar (bounded mode) or
// spinner (unbounded mode). Position updates are atomic; rendering is
// serialized by an internal mutex so workers can share one Tracker.
type Tracker struct {
	position atomic.Int64
	total    int64 // -1 when unknown

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewBounded creates a tracker with a known total. The initial state is
// rendered immediately. Output goes to w (typically os.Stderr); pass
// io.Discard to suppress rendering entirely.
func NewBounded(total int64, description string, w io.Writer) *Tracker {
	return &Tracker{
		total: total,
		bar:   newBar(total, description, w),
	}
}

// NewUnbounded creates a spinner-style tracker for runs whose total is
// not known up front.
func NewUnbounded(description string, w io.Writer) *Tracker {
	return &Tracker{
		total: -1,
		bar:   newBar(-1, description, w),
	}
}

func newBar(total int64, description string, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("lines"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionThrottle(renderInterval),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

// Add advances the position by n. Negative deltas are ignored so the
// reported position is non-decreasing. Rendering is throttled.
func (t *Tracker) Add(n int64) {
	if n <= 0 {
		return
	}
	t.position.Add(n)
	t.mu.Lock()
	t.bar.Add64(n)
	t.mu.Unlock()
}

// Position returns the current position.
func (t *Tracker) Position() int64 {
	return t.position.Load()
}

// Total returns the known total, or -1 in unbounded mode.
func (t *Tracker) Total() int64 {
	return t.total
}

// Finish force-renders the final state. In bounded mode the position is
// advanced to the total, covering any remainder below a worker's batch
// threshold that was already counted elsewhere.
func (t *Tracker) Finish() {
	if t.total >= 0 {
		if rem := t.total - t.position.Load(); rem > 0 {
			t.position.Add(rem)
		}
	}
	t.mu.Lock()
	t.bar.Finish()
	t.mu.Unlock()
}

// Describe replaces the rendered description text.
func (t *Tracker) Describe(description string) {
	t.mu.Lock()
	t.bar.Describe(description)
	t.mu.Unlock()
}

// Counter is a worker-local batching handle for a shared Tracker.
// Workers increment it once per line; the shared tracker only sees one
// update per batch, bounding lock contention. Not safe for concurrent
// use: each worker owns its own Counter.
type Counter struct {
	tracker *Tracker
	batch   int64
	local   int64
}

// Counter returns a new worker-local counter flushing every batch
// increments. A batch of <= 0 uses DefaultBatchLines.
func (t *Tracker) Counter(batch int64) *Counter {
	if batch <= 0 {
		batch = DefaultBatchLines
	}
	return &Counter{tracker: t, batch: batch}
}

// Incr counts one line, flushing to the shared tracker when the local
// batch is full.
func (c *Counter) Incr() {
	c.local++
	if c.local >= c.batch {
		c.Flush()
	}
}

// Flush pushes any locally accumulated count to the shared tracker.
// Workers must call Flush once after their last line.
func (c *Counter) Flush() {
	if c.local > 0 {
		c.tracker.Add(c.local)
		c.local = 0
	}
}
