// Package locking provides the mutual-exclusion primitive that
// serializes booking critical sections. It is an interface so a later
// implementation can shard by date range without touching the
// coordinator.
package locking

import (
	"context"
	"time"
)

type Locker interface {
	// Acquire blocks until the lock is held, the timeout elapses, or
	// ctx is done. It reports whether the lock was acquired; a false
	// return leaves no state behind.
	Acquire(ctx context.Context, timeout time.Duration) bool
	// Release releases the lock. It must only be called after a
	// successful Acquire.
	Release()
}

// FairMutex grants the lock to waiters in arrival order. Goroutines
// blocked on a channel send are woken FIFO by the runtime, which gives
// the queue discipline a plain sync.Mutex does not guarantee.
type FairMutex struct {
	ch chan struct{}
}

func NewFairMutex() *FairMutex {
	return &FairMutex{ch: make(chan struct{}, 1)}
}

func (m *FairMutex) Acquire(ctx context.Context, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case m.ch <- struct{}{}:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

func (m *FairMutex) Release() {
	select {
	case <-m.ch:
	default:
		panic("locking: release of unheld lock")
	}
}
