package semaphore

import (
	"context"
	"fmt"
	"sync/atomic"
)

// tokens is a bounded Primitive implemented as a buffered channel holding one
// element per unit of count, so len(ch) is the count and cap(ch) the limit.
type tokens struct {
	ch      chan struct{}
	waiting atomic.Int64
}

// Channel returns a Factory for primitives bounded by limit. The count lives
// in a buffered channel, so it can never exceed limit: creating one with an
// initial count above limit fails with ErrCapacity, and a Signal that would
// overflow it panics, since it can only come from a release without a
// matching acquisition.
//
// Waiters are not served in any particular order, and TryWait may barge ahead
// of blocked waiters.
func Channel(limit int) Factory {
	return func(initial int64) (Primitive, error) {
		if initial < 0 {
			return nil, ErrNegativeCount
		}
		if limit < 0 || initial > int64(limit) {
			return nil, fmt.Errorf("%w: %d > %d", ErrCapacity, initial, limit)
		}
		t := &tokens{ch: make(chan struct{}, limit)}
		for range initial {
			t.ch <- struct{}{}
		}
		return t, nil
	}
}

func (t *tokens) Wait(ctx context.Context) error {
	select {
	case <-t.ch:
		return nil
	default:
	}
	t.waiting.Add(1)
	defer t.waiting.Add(-1)
	select {
	case <-t.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *tokens) TryWait() bool {
	select {
	case <-t.ch:
		return true
	default:
		return false
	}
}

func (t *tokens) Signal() bool {
	woke := t.waiting.Load() > 0
	select {
	case t.ch <- struct{}{}:
		return woke
	default:
		panic(fmt.Sprintf("semaphore: signal exceeds channel limit %d", cap(t.ch)))
	}
}

// Close leaves the channel open: closing it would let blocked waiters
// receive and believe they acquired.
func (t *tokens) Close() error { return nil }
