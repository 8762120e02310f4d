package semaphore

import "context"

// Primitive is the platform counting semaphore that a Semaphore delegates to.
// Implementations own all of their internal locking; a Semaphore never wraps
// calls to a Primitive in a mutex of its own.
//
// Implementations must be safe for concurrent use by multiple goroutines,
// except for Close, which is called exactly once by the owning Semaphore.
type Primitive interface {
	// Wait blocks until the count is positive, then decrements it and returns
	// nil. If ctx is done first, Wait returns ctx.Err() and leaves the count
	// unchanged.
	Wait(ctx context.Context) error

	// TryWait decrements the count and returns true if it is positive.
	// Otherwise it returns false immediately.
	TryWait() bool

	// Signal increments the count, unblocking one waiter if there is any. It
	// reports whether a waiter was handed the increment. The result is
	// informational; implementations may approximate it.
	Signal() bool

	// Close releases the resources held by the primitive.
	Close() error
}

// Factory allocates a Primitive whose count starts at initial.
type Factory func(initial int64) (Primitive, error)
