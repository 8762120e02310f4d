// Package section scopes the acquisition of a counting semaphore to a block of
// code, so that every successful acquisition is paired with exactly one
// release on every exit path.
//
// # Guard
//
// The building block is the Guard. Enter binds a guard to a semaphore without
// acquiring; RunOnce acquires on its first call and is a no-op afterwards;
// Close releases, but only if RunOnce actually acquired:
//
//	g := section.Enter(sem)
//	defer g.Close()
//	if g.RunOnce() {
//	    // ... critical section ...
//	}
//
// Release is conditional on acquisition. A guard configured with a finite
// timeout whose wait expires never signals the semaphore, so the count cannot
// drift above the number of outstanding acquisitions.
//
// # Section and Do
//
// Section expresses the same pairing as a loop whose body runs at most once:
//
//	for range section.Section(sem) {
//	    if done {
//	        return // the semaphore is still released
//	    }
//	    // ... critical section ...
//	}
//
// Do is the function form, for callers that already have the body as a
// closure:
//
//	res, err := section.Do(sem, func() error {
//	    return write(ctx, record)
//	}, section.WithTimeout(time.Second))
//
// All three forms release on panics too.
//
// # Concurrency
//
// A Guard is single-owner: it must stay in the goroutine and scope that
// created it, and it must not be copied. The semaphore it guards is of course
// shared, and any number of goroutines may enter sections on it at once.
package section
