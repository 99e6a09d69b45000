package parallel

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapPreservesOrder(t *testing.T) {
	ctx := context.Background()
	items := []int{0, 1, 2, 3, 4, 5, 6, 7}

	// Make early items finish last so completion order is reversed.
	results := Map(ctx, items, 4, func(ctx context.Context, idx int, item int) int {
		time.Sleep(time.Duration(len(items)-idx) * 5 * time.Millisecond)
		return item * 10
	})

	if len(results) != len(items) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(items))
	}
	for i, r := range results {
		if r != i*10 {
			t.Errorf("results[%d] = %d, want %d", i, r, i*10)
		}
	}
}

func TestMapBoundsConcurrency(t *testing.T) {
	ctx := context.Background()
	items := make([]int, 20)

	var active, peak int64
	var mu sync.Mutex

	Map(ctx, items, 3, func(ctx context.Context, idx int, item int) int {
		cur := atomic.AddInt64(&active, 1)
		mu.Lock()
		if cur > peak {
			peak = cur
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&active, -1)
		return 0
	})

	if peak > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", peak)
	}
}

func TestMapEmptyInput(t *testing.T) {
	results := Map(context.Background(), nil, 4, func(ctx context.Context, idx int, item int) int {
		return item
	})
	if results != nil {
		t.Errorf("Map(nil) = %v, want nil", results)
	}
}

func TestMapCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int64
	results := Map(ctx, []int{1, 2, 3}, 1, func(ctx context.Context, idx int, item int) int {
		atomic.AddInt64(&calls, 1)
		return item
	})

	// Results slice keeps input alignment even when dispatch stops early.
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
}
