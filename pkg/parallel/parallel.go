// Package parallel provides a bounded concurrent map that preserves input
// order in its results regardless of completion order.
package parallel

import (
	"context"
	"sync"
)

// WorkFunc processes one item. The index is the item's position in the
// input slice; implementations must absorb their own failures and return
// a usable zero/placeholder result instead of panicking.
type WorkFunc[T, R any] func(ctx context.Context, index int, item T) R

// Map runs fn over items using at most workers goroutines and returns the
// results indexed by submission order. Completion order is unconstrained;
// the result slice is always aligned with the input slice.
func Map[T, R any](ctx context.Context, items []T, workers int, fn WorkFunc[T, R]) []R {
	if len(items) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	results := make([]R, len(items))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, item := range items {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			// Stop dispatching new work; already-running workers finish.
			wg.Wait()
			return results
		}

		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = fn(ctx, idx, it)
		}(i, item)
	}

	wg.Wait()
	return results
}
