package semaphore

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeCount is returned by primitives that cannot represent a
	// negative initial count.
	ErrNegativeCount = errors.New("negative initial count")

	// ErrCapacity is returned by bounded primitives when the initial count
	// exceeds their capacity.
	ErrCapacity = errors.New("initial count exceeds capacity")
)

// AllocationError reports that the platform primitive backing a Semaphore
// could not be created. It is the only error New returns.
type AllocationError struct {
	Initial int64
	Err     error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("semaphore: allocate primitive with initial count %d: %v", e.Initial, e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }
