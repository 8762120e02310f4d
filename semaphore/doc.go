// Package semaphore provides a counting semaphore with timed, non-blocking and
// context-bounded waits, delegating the actual sleeping and waking to a
// pluggable platform primitive.
//
// # Semantics
//
// A Semaphore holds an integer count. Wait blocks until the count is positive,
// then decrements it; Signal increments it and unblocks one waiter, if any.
// Each net increment lets exactly one Wait proceed, but no ordering between
// waiters is promised by the Semaphore itself.
//
// A timeout is an ordinary outcome, not a failure. Wait and TryWait report it
// as the Result TimedOut, and the count is left unchanged:
//
//	switch s.Wait(100 * time.Millisecond) {
//	case semaphore.Acquired:
//	    defer s.Signal()
//	    // ... do work ...
//	case semaphore.TimedOut:
//	    // ... handle the "too busy" case ...
//	}
//
// The only error in the package is the *AllocationError returned by New when
// the primitive cannot be created. Misuse, such as signalling more often than
// waiting on a bounded primitive or using a Semaphore after Close, is a
// programmer error and is not detected in general.
//
// # Primitives
//
// The Primitive interface is the seam between the Semaphore and whatever
// actually parks goroutines. Three implementations are provided:
//
//   - NewCounter (default): a mutex-guarded signed count with FIFO waiters.
//     Accepts negative initial counts and reports wakes exactly.
//   - NewWeighted: golang.org/x/sync/semaphore.Weighted, for callers already
//     standardised on it. Rejects negative initial counts.
//   - Channel(limit): a buffered channel of tokens, bounded by limit.
//
// Semaphore never adds locking of its own around a Primitive; all mutation of
// the count happens inside the primitive.
//
// # Scoped acquisition
//
// Pairing each successful Wait with exactly one Signal is the caller's job.
// Package github.com/notorious-go/sync/section wraps that pairing in a guard
// that releases on every exit path.
package semaphore
