package semaphore

import (
	"context"
	"math"
	"sync/atomic"

	xsemaphore "golang.org/x/sync/semaphore"
)

// weightedSize is the capacity of the underlying weighted semaphore. The
// count of a weighted primitive is its free capacity, so it can grow up to
// this bound.
const weightedSize = math.MaxInt64

// weighted adapts golang.org/x/sync/semaphore.Weighted, which tracks held
// tokens against a fixed size, into an unbounded counting primitive by
// pre-acquiring everything except the initial count.
type weighted struct {
	sem     *xsemaphore.Weighted
	waiting atomic.Int64
}

// NewWeighted creates a primitive backed by golang.org/x/sync/semaphore.
// Waiters are served in FIFO order, and a context-bounded wait that gives up
// leaves the count untouched. Negative initial counts are rejected with
// ErrNegativeCount. Wake reporting is approximate.
func NewWeighted(initial int64) (Primitive, error) {
	if initial < 0 {
		return nil, ErrNegativeCount
	}
	w := &weighted{sem: xsemaphore.NewWeighted(weightedSize)}
	if held := weightedSize - initial; held > 0 {
		w.sem.TryAcquire(held)
	}
	return w, nil
}

func (w *weighted) Wait(ctx context.Context) error {
	if w.sem.TryAcquire(1) {
		return nil
	}
	w.waiting.Add(1)
	defer w.waiting.Add(-1)
	return w.sem.Acquire(ctx, 1)
}

func (w *weighted) TryWait() bool {
	return w.sem.TryAcquire(1)
}

func (w *weighted) Signal() bool {
	woke := w.waiting.Load() > 0
	w.sem.Release(1)
	return woke
}

func (w *weighted) Close() error { return nil }
