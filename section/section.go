package section

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/notorious-go/sync/semaphore"
)

// Semaphore is the part of *semaphore.Semaphore that a Guard needs.
type Semaphore interface {
	Wait(timeout time.Duration) semaphore.Result
	Signal() semaphore.WakeResult
}

// noCopy makes go vet's copylocks check flag copies of a Guard.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Guard scopes one acquisition of a semaphore to a block of code. It is
// created by Enter, acquires on the first call to RunOnce, and releases on
// Close if and only if that acquisition succeeded.
//
// A Guard belongs to the goroutine that created it and must not be copied;
// a copy could release the same acquisition twice.
type Guard struct {
	_ noCopy

	sem     Semaphore
	timeout time.Duration
	log     zerolog.Logger

	entered  bool
	acquired bool
	released bool
}

// Enter binds a new Guard to sem. It does not acquire anything; acquisition
// is deferred to RunOnce. The guard waits forever unless WithTimeout is given.
//
// Close must be deferred right after Enter:
//
//	g := section.Enter(sem)
//	defer g.Close()
//	if g.RunOnce() {
//	    // ... critical section ...
//	}
func Enter(sem Semaphore, opts ...Option) *Guard {
	o := newOptions(opts)
	return &Guard{
		sem:     sem,
		timeout: o.timeout,
		log:     o.logger,
	}
}

// RunOnce acquires the semaphore on its first call and reports whether the
// acquisition succeeded, which is always the case with the default infinite
// timeout. Every later call returns false without touching the semaphore.
func (g *Guard) RunOnce() bool {
	if g.entered {
		return false
	}
	g.entered = true
	if g.sem.Wait(g.timeout) != semaphore.Acquired {
		g.log.Debug().Dur("timeout", g.timeout).Msg("section not entered: wait timed out")
		return false
	}
	g.acquired = true
	return true
}

// Acquired reports whether RunOnce acquired the semaphore.
func (g *Guard) Acquired() bool { return g.acquired }

// Close ends the guarded scope. The semaphore is signalled exactly once if
// RunOnce acquired it; a guard that never acquired, whether because RunOnce
// was not called or because it timed out, releases nothing. Calls after the
// first are no-ops.
func (g *Guard) Close() {
	if g.released {
		return
	}
	g.released = true
	if !g.acquired {
		if g.entered {
			g.log.Debug().Msg("section closed without acquisition: nothing to release")
		}
		return
	}
	g.sem.Signal()
}

// Section returns a single-pass sequence that runs the body of a range loop at
// most once while holding sem:
//
//	for range section.Section(sem) {
//	    // ... critical section ...
//	}
//
// The semaphore is released when the body finishes, including when it exits
// through break, return, goto or a panic. With a finite timeout the body is
// skipped if the semaphore cannot be acquired in time.
func Section(sem Semaphore, opts ...Option) func(yield func() bool) {
	return func(yield func() bool) {
		g := Enter(sem, opts...)
		defer g.Close()
		if g.RunOnce() {
			yield()
		}
	}
}

// Do runs fn while holding sem and returns fn's error. The semaphore is
// released even if fn panics. If the configured timeout elapses before the
// semaphore is acquired, fn is not run and Do returns TimedOut with a nil
// error.
func Do(sem Semaphore, fn func() error, opts ...Option) (semaphore.Result, error) {
	g := Enter(sem, opts...)
	defer g.Close()
	if !g.RunOnce() {
		return semaphore.TimedOut, nil
	}
	return semaphore.Acquired, fn()
}
