package locking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	m := NewFairMutex()
	require.True(t, m.Acquire(context.Background(), time.Second))
	m.Release()
	require.True(t, m.Acquire(context.Background(), time.Second))
	m.Release()
}

func TestAcquireTimesOutWhileHeld(t *testing.T) {
	m := NewFairMutex()
	require.True(t, m.Acquire(context.Background(), time.Second))
	defer m.Release()

	start := time.Now()
	assert.False(t, m.Acquire(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestAcquireHonorsContextCancellation(t *testing.T) {
	m := NewFairMutex()
	require.True(t, m.Acquire(context.Background(), time.Second))
	defer m.Release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	assert.False(t, m.Acquire(ctx, time.Minute))
}

func TestWaitersGrantedInArrivalOrder(t *testing.T) {
	m := NewFairMutex()
	require.True(t, m.Acquire(context.Background(), time.Second))

	const waiters = 5
	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)
	for i := 0; i < waiters; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !m.Acquire(context.Background(), 5*time.Second) {
				return
			}
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			m.Release()
		}()
		// let waiter i block before launching i+1
		time.Sleep(20 * time.Millisecond)
	}

	m.Release()
	wg.Wait()

	require.Len(t, order, waiters)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestTimedOutWaiterLeavesLockUsable(t *testing.T) {
	m := NewFairMutex()
	require.True(t, m.Acquire(context.Background(), time.Second))
	assert.False(t, m.Acquire(context.Background(), 10*time.Millisecond))
	m.Release()

	// the failed waiter must not have consumed the slot
	require.True(t, m.Acquire(context.Background(), time.Second))
	m.Release()
}

func TestReleaseUnheldPanics(t *testing.T) {
	m := NewFairMutex()
	assert.Panics(t, func() { m.Release() })
}
