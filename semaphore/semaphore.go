package semaphore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Result is the outcome of a wait. A timeout is an expected result, not an
// error.
type Result int

const (
	// Acquired means the count was decremented on behalf of the caller.
	Acquired Result = iota
	// TimedOut means the timeout elapsed first; the count is unchanged.
	TimedOut
)

func (r Result) String() string {
	switch r {
	case Acquired:
		return "Acquired"
	case TimedOut:
		return "TimedOut"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// WakeResult reports whether a Signal handed its increment to a blocked
// waiter. It exists for diagnostics; correctness must never depend on it.
type WakeResult int

const (
	NoWaiterWoken WakeResult = iota
	WokeWaiter
)

func (w WakeResult) String() string {
	switch w {
	case NoWaiterWoken:
		return "NoWaiterWoken"
	case WokeWaiter:
		return "WokeWaiter"
	default:
		return fmt.Sprintf("WakeResult(%d)", int(w))
	}
}

const (
	// Forever makes Wait block until the semaphore is acquired. Any negative
	// timeout behaves the same way.
	Forever time.Duration = -1
	// Now makes Wait return immediately, like TryWait.
	Now time.Duration = 0
)

// Semaphore is a counting semaphore. Wait decrements the count, blocking
// while it is not positive, and Signal increments it, unblocking one waiter.
//
// Each Semaphore exclusively owns one Primitive, allocated by New and released
// by Close. The count itself lives in the Primitive and is not observable.
//
// A Semaphore is safe for concurrent use. Using it after Close is undefined.
type Semaphore struct {
	prim    Primitive
	initial int64
	name    string
	log     zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

// New creates a semaphore whose count starts at initial. A negative initial
// count is accepted by the default primitive and simply requires that many
// extra signals before a wait succeeds.
//
// The only error New returns is an *AllocationError, reported when the
// configured primitive cannot be created.
func New(initial int64, opts ...Option) (*Semaphore, error) {
	o := newOptions(opts)
	prim, err := o.factory(initial)
	if err != nil {
		return nil, &AllocationError{Initial: initial, Err: err}
	}
	s := &Semaphore{
		prim:    prim,
		initial: initial,
		name:    o.name,
		log:     o.logger,
	}
	s.log.Debug().Str("semaphore", s.name).Int64("initial", initial).Msg("semaphore created")
	return s, nil
}

// String returns a human-readable representation of the semaphore. The
// current count is not observable, so only the initial count is shown.
func (s *Semaphore) String() string {
	if s.name != "" {
		return fmt.Sprintf("Semaphore(%s, initial=%d)", s.name, s.initial)
	}
	return fmt.Sprintf("Semaphore(initial=%d)", s.initial)
}

// Wait blocks until the count is positive, then decrements it and returns
// Acquired. If timeout elapses first, Wait returns TimedOut without touching
// the count. A timeout of Now never blocks and a negative timeout (Forever)
// never returns TimedOut.
//
// Each net increment by Signal lets exactly one Wait proceed. Which waiter is
// chosen is up to the primitive.
//
// Typical usage pattern:
//
//	if s.Wait(time.Second) == semaphore.Acquired {
//	    defer s.Signal()
//	    // ... do work ...
//	}
func (s *Semaphore) Wait(timeout time.Duration) Result {
	if timeout == Now {
		return s.TryWait()
	}
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := s.prim.Wait(ctx); err != nil {
		s.log.Debug().Str("semaphore", s.name).Dur("timeout", timeout).Msg("wait timed out")
		return TimedOut
	}
	return Acquired
}

// TryWait is Wait with a zero timeout: it decrements a positive count and
// returns Acquired, or returns TimedOut immediately.
func (s *Semaphore) TryWait() Result {
	if s.prim.TryWait() {
		return Acquired
	}
	return TimedOut
}

// WaitContext is Wait bounded by ctx instead of a timeout. It returns nil once
// the count is decremented, or ctx.Err() if ctx is done first, in which case
// the count is unchanged.
func (s *Semaphore) WaitContext(ctx context.Context) error {
	if err := s.prim.Wait(ctx); err != nil {
		s.log.Debug().Str("semaphore", s.name).Err(err).Msg("wait abandoned")
		return err
	}
	return nil
}

// Signal increments the count. If goroutines are blocked in Wait, one of them
// is unblocked. Signal never blocks.
func (s *Semaphore) Signal() WakeResult {
	if s.prim.Signal() {
		return WokeWaiter
	}
	return NoWaiterWoken
}

// Close releases the underlying primitive. The primitive is released exactly
// once; further calls return the result of the first. Goroutines still blocked
// in Wait when Close is called are not woken.
func (s *Semaphore) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.prim.Close()
		s.log.Debug().Str("semaphore", s.name).Err(s.closeErr).Msg("semaphore closed")
	})
	return s.closeErr
}
