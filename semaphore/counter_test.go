package semaphore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (c *counter) queued() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiters.Len()
}

func TestCounter_SignalHandsOffToOldestWaiter(t *testing.T) {
	prim, err := NewCounter(0)
	require.NoError(t, err)
	c := prim.(*counter)

	assert.False(t, c.Signal(), "no waiter to wake")
	require.True(t, c.TryWait())

	order := make(chan int, 2)
	for i := range 2 {
		go func() {
			_ = c.Wait(context.Background())
			order <- i
		}()
		require.Eventually(t, func() bool { return c.queued() == i+1 }, time.Second, time.Millisecond)
	}

	assert.True(t, c.Signal())
	assert.Equal(t, 0, <-order)
	assert.True(t, c.Signal())
	assert.Equal(t, 1, <-order)
	assert.Equal(t, int64(0), c.count)
}

func TestCounter_AbandonedWaitLeavesQueue(t *testing.T) {
	prim, err := NewCounter(0)
	require.NoError(t, err)
	c := prim.(*counter)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Wait(ctx), context.DeadlineExceeded)
	assert.Equal(t, 0, c.queued())

	assert.False(t, c.Signal())
	assert.True(t, c.TryWait())
}

func TestCounter_NegativeInitialCount(t *testing.T) {
	prim, err := NewCounter(-2)
	require.NoError(t, err)
	c := prim.(*counter)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Wait(context.Background())
	}()
	require.Eventually(t, func() bool { return c.queued() == 1 }, time.Second, time.Millisecond)

	assert.False(t, c.Signal())
	assert.False(t, c.Signal())
	assert.True(t, c.Signal(), "third signal lifts the count above zero")
	<-done
}
