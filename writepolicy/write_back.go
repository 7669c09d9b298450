package writepolicy

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/krisalay/lru-cache/types"
)

// This file implements the "write-back" policy.

// writeReq represents one evicted pair that still needs to be sent to the
// backing store.
type writeReq[K comparable, V any] struct {
	ctx   context.Context
	key   K
	value V
}

/*
WriteBackPolicy persists evicted pairs asynchronously.
*/
type WriteBackPolicy[K comparable, V any] struct {

	// store is the backing store (DB, API, etc.)
	store types.Loader[K, V]

	// ch is a buffered channel that holds pending write requests.
	//
	// Buffering is important:
	// - Allows bursts of evictions without blocking
	// - Keeps Put fast even when the store is slow
	ch chan writeReq[K, V]

	// wg is used to wait for the worker to finish during shutdown.
	wg sync.WaitGroup

	// errMu guards errs, which accumulates store failures so Close can
	// report them all at once.
	errMu sync.Mutex
	errs  *multierror.Error
}

// NewWriteBackPolicy creates a new write-back policy.
func NewWriteBackPolicy[K comparable, V any](store types.Loader[K, V], buffer int) *WriteBackPolicy[K, V] {
	w := &WriteBackPolicy[K, V]{
		store: store,
		ch:    make(chan writeReq[K, V], buffer),
	}

	// Start one background worker
	w.wg.Add(1)
	go w.worker()

	return w
}

// OnEvict is called whenever the cache evicts a pair.
// We do NOT write to the backing store immediately. Instead, we push the
// write into a queue. If the queue is full, we DROP the write, because
// blocking would slow down the cache and defeat the purpose of write-back.
func (w *WriteBackPolicy[K, V]) OnEvict(ctx context.Context, key K, value V) {
	select {
	case w.ch <- writeReq[K, V]{ctx, key, value}:
		// queued successfully
	default:
		// intentional drop under pressure. This means:
		// - Cache stays fast
		// - Backing store may miss some evicted pairs
	}
}

/*
worker runs in the background and processes queued writes.
It continuously reads from the channel and writes data to the backing
store.

This is where eventual consistency happens. Store errors are collected
rather than ignored, so Close can surface every failed write.
*/
func (w *WriteBackPolicy[K, V]) worker() {
	defer w.wg.Done()

	for req := range w.ch {
		if err := w.store.Put(req.ctx, req.key, req.value); err != nil {
			w.errMu.Lock()
			w.errs = multierror.Append(w.errs, err)
			w.errMu.Unlock()
		}
	}
}

/*
Close shuts down the write-back policy gracefully.
------------------
1. Close the channel (no more writes accepted)
2. Wait for the worker to finish processing queued writes
3. Return every store error accumulated along the way

Without this, pending writes could be lost when the application shuts down.
*/
func (w *WriteBackPolicy[K, V]) Close() error {
	close(w.ch)
	w.wg.Wait()

	w.errMu.Lock()
	defer w.errMu.Unlock()
	return w.errs.ErrorOrNil()
}
