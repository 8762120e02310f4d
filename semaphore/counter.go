package semaphore

import (
	"container/list"
	"context"
	"sync"
)

// counter is the default Primitive: a signed count guarded by a mutex, with
// blocked waiters parked on channels in FIFO order.
//
// Whenever waiters are queued the count is not positive, because Signal hands
// an increment directly to the oldest waiter instead of banking it.
type counter struct {
	mu      sync.Mutex
	count   int64
	waiters list.List // of chan struct{}
}

// NewCounter creates the default primitive. It accepts any initial count,
// including negative ones, and reports wakes exactly.
func NewCounter(initial int64) (Primitive, error) {
	return &counter{count: initial}, nil
}

func (c *counter) Wait(ctx context.Context) error {
	c.mu.Lock()
	if c.count > 0 {
		c.count--
		c.mu.Unlock()
		return nil
	}
	done := ctx.Done()
	if done == nil {
		ready := make(chan struct{})
		c.waiters.PushBack(ready)
		c.mu.Unlock()
		<-ready
		return nil
	}
	select {
	case <-done:
		c.mu.Unlock()
		return ctx.Err()
	default:
	}
	ready := make(chan struct{})
	elem := c.waiters.PushBack(ready)
	c.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-done:
		c.mu.Lock()
		defer c.mu.Unlock()
		select {
		case <-ready:
			// Signal won the race; the increment is ours.
			return nil
		default:
		}
		c.waiters.Remove(elem)
		return ctx.Err()
	}
}

func (c *counter) TryWait() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count > 0 {
		c.count--
		return true
	}
	return false
}

func (c *counter) Signal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	if c.count <= 0 {
		return false
	}
	front := c.waiters.Front()
	if front == nil {
		return false
	}
	c.count--
	c.waiters.Remove(front)
	close(front.Value.(chan struct{}))
	return true
}

func (c *counter) Close() error { return nil }
