package semaphore_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/notorious-go/sync/semaphore"
)

func Example() {
	sem, err := semaphore.New(2, semaphore.WithName("pool"))
	if err != nil {
		fmt.Println("allocation failed:", err)
		return
	}
	defer sem.Close()
	fmt.Println("Created:", sem)

	// Both permits are available, so neither wait blocks.
	fmt.Println("first wait:", sem.Wait(semaphore.Forever))
	fmt.Println("try wait:", sem.TryWait())

	// The count is now zero. A timed wait gives up and reports it as a
	// result, without disturbing the count.
	fmt.Println("timed wait:", sem.Wait(10*time.Millisecond))

	// Nobody is blocked, so the signal only raises the count.
	fmt.Println("signal:", sem.Signal())
	fmt.Println("wait after signal:", sem.Wait(semaphore.Now))

	// Output:
	// Created: Semaphore(pool, initial=2)
	// first wait: Acquired
	// try wait: Acquired
	// timed wait: TimedOut
	// signal: NoWaiterWoken
	// wait after signal: Acquired
}

// A negative initial count biases the semaphore: it takes that many extra
// signals before any wait can succeed.
func Example_negativeInitialCount() {
	sem, _ := semaphore.New(-1)
	defer sem.Close()

	sem.Signal()
	fmt.Println("after one signal:", sem.TryWait())
	sem.Signal()
	fmt.Println("after two signals:", sem.TryWait())

	// Output:
	// after one signal: TimedOut
	// after two signals: Acquired
}

// Allocation failures surface from New as an *AllocationError, which unwraps
// to the primitive's reason.
func Example_allocationError() {
	_, err := semaphore.New(3, semaphore.WithPrimitive(semaphore.Channel(2)))
	fmt.Println(err)

	var allocErr *semaphore.AllocationError
	fmt.Println("is allocation error:", errors.As(err, &allocErr))
	fmt.Println("over capacity:", errors.Is(err, semaphore.ErrCapacity))

	// Output:
	// semaphore: allocate primitive with initial count 3: initial count exceeds capacity: 3 > 2
	// is allocation error: true
	// over capacity: true
}
