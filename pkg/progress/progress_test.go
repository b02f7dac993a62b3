package progress

import (
	"io"
	"sync"
	"testing"
)

func TestTracker_Monotonic(t *testing.T) {
	tr := NewBounded(100, "test", io.Discard)

	tr.Add(10)
	tr.Add(-5) // ignored
	tr.Add(0)  // ignored
	if got := tr.Position(); got != 10 {
		t.Errorf("Position() = %d, want 10", got)
	}

	tr.Add(40)
	if got := tr.Position(); got != 50 {
		t.Errorf("Position() = %d, want 50", got)
	}
}

func TestTracker_FinishReachesTotal(t *testing.T) {
	tr := NewBounded(1000, "test", io.Discard)
	tr.Add(700)
	tr.Finish()

	if got := tr.Position(); got != 1000 {
		t.Errorf("Position() after Finish = %d, want 1000", got)
	}
}

func TestTracker_Unbounded(t *testing.T) {
	tr := NewUnbounded("scanning", io.Discard)
	if tr.Total() != -1 {
		t.Errorf("Total() = %d, want -1", tr.Total())
	}
	tr.Add(123)
	tr.Finish()
	if got := tr.Position(); got != 123 {
		t.Errorf("Position() = %d, want 123", got)
	}
}

func TestCounter_Batching(t *testing.T) {
	tr := NewBounded(100, "test", io.Discard)
	c := tr.Counter(10)

	for i := 0; i < 9; i++ {
		c.Incr()
	}
	if got := tr.Position(); got != 0 {
		t.Errorf("Position() before batch full = %d, want 0", got)
	}

	c.Incr() // 10th: flushes
	if got := tr.Position(); got != 10 {
		t.Errorf("Position() after batch full = %d, want 10", got)
	}

	c.Incr()
	c.Flush() // remainder below threshold
	if got := tr.Position(); got != 11 {
		t.Errorf("Position() after Flush = %d, want 11", got)
	}
}

func TestTracker_ConcurrentWorkers(t *testing.T) {
	const workers = 8
	const perWorker = 2500

	tr := NewBounded(workers*perWorker, "test", io.Discard)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := tr.Counter(100)
			for j := 0; j < perWorker; j++ {
				c.Incr()
			}
			c.Flush()
		}()
	}
	wg.Wait()

	if got := tr.Position(); got != workers*perWorker {
		t.Errorf("Position() = %d, want %d", got, workers*perWorker)
	}
}
