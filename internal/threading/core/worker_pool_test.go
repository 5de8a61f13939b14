package core

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRange(t *testing.T) {
	pool := NewWorkerPool(3)
	pool.Start()
	defer pool.Stop()

	seen := make([]int32, 50)
	pool.ParallelFor(0, len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("index %d visited %d times", i, n)
		}
	}
}

func TestParallelForEmptyRange(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	called := false
	pool.ParallelFor(5, 5, func(int) { called = true })
	if called {
		t.Error("fn called for empty range")
	}
}

func TestParallelForCancelled(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	pool.ParallelForWithContext(ctx, 0, 100, func(int) { calls.Add(1) })
	if calls.Load() != 0 {
		t.Errorf("cancelled loop ran %d iterations", calls.Load())
	}
}

type counter struct {
	mu   sync.Mutex
	last float64
	n    int
}

func (c *counter) Tick(now float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = now
	c.n++
}

func TestForEach(t *testing.T) {
	pool := CreateDefaultWorkerPool()
	defer pool.Stop()

	items := make([]*counter, 20)
	for i := range items {
		items[i] = &counter{}
	}
	ForEach(pool, items, func(c *counter) { c.Tick(1.5) })
	ForEach(pool, items, func(c *counter) { c.Tick(2.5) })

	for i, c := range items {
		if c.n != 2 || c.last != 2.5 {
			t.Errorf("item %d: n=%d last=%v", i, c.n, c.last)
		}
	}
	pool.Stop()
}
