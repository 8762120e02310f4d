package section_test

import (
	"fmt"
	"sync"

	"github.com/notorious-go/sync/section"
	"github.com/notorious-go/sync/semaphore"
)

// This example serializes appends to a shared slice with a binary semaphore.
func Example() {
	sem, err := semaphore.New(1)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer sem.Close()

	var (
		wg    sync.WaitGroup
		total int
	)
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range section.Section(sem) {
				total += i
			}
		}()
	}
	wg.Wait()
	fmt.Println("total:", total)

	// Output:
	// total: 45
}

// The Guard form spells out what Section does: enter, acquire once, and
// release when the enclosing function returns.
func ExampleEnter() {
	sem, _ := semaphore.New(1)
	defer sem.Close()

	func() {
		g := section.Enter(sem)
		defer g.Close()
		for g.RunOnce() {
			fmt.Println("inside: permit free?", sem.TryWait() == semaphore.Acquired)
		}
	}()
	fmt.Println("after: permit free?", sem.TryWait() == semaphore.Acquired)

	// Output:
	// inside: permit free? false
	// after: permit free? true
}

// A finite timeout makes the section optional: the body is skipped, and
// nothing is released, if the semaphore cannot be acquired in time.
func ExampleDo() {
	sem, _ := semaphore.New(0)
	defer sem.Close()

	res, err := section.Do(sem, func() error {
		fmt.Println("never printed")
		return nil
	}, section.WithTimeout(semaphore.Now))
	fmt.Println(res, err)

	sem.Signal()
	res, err = section.Do(sem, func() error {
		fmt.Println("working")
		return nil
	})
	fmt.Println(res, err)

	// Output:
	// TimedOut <nil>
	// working
	// Acquired <nil>
}
