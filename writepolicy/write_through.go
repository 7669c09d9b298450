package writepolicy

import (
	"context"

	"github.com/krisalay/lru-cache/types"
)

/*
This file implements the "write-through" policy.

Whenever the cache evicts a pair, it is immediately written to the backing
store.

So the flow is: Eviction → store write (synchronous)
*/

/*
WriteThroughPolicy directly forwards every evicted pair to the backing store.
*/
type WriteThroughPolicy[K comparable, V any] struct {

	// store is the backing store (DB, API, etc.) where evicted data must
	// be persisted immediately.
	store types.Loader[K, V]
}

/*
NewWriteThroughPolicy creates a new write-through policy.
*/
func NewWriteThroughPolicy[K comparable, V any](store types.Loader[K, V]) *WriteThroughPolicy[K, V] {
	return &WriteThroughPolicy[K, V]{store: store}
}

/*
OnEvict is called whenever the cache evicts a pair. We immediately write
the data to the backing store.
  - This call is synchronous
  - The eviction is not considered complete
    until the backing store write finishes
  - If the backing store is slow, evicting puts become slow
*/
func (w *WriteThroughPolicy[K, V]) OnEvict(ctx context.Context, key K, value V) {
	// Ignore errors for simplicity.
	// In real systems, this might be handled or logged.
	_ = w.store.Put(ctx, key, value)
}

/*
Close is required by the Policy interface. Write-through does not use
background workers, so there is nothing to clean up. We intentionally
leave this empty.
*/
func (w *WriteThroughPolicy[K, V]) Close() error { return nil }
