package engine

import (
	"context"
	"fmt"

	"github.com/krisalay/lru-cache/api"
	"github.com/krisalay/lru-cache/types"
	"github.com/krisalay/lru-cache/writepolicy"
	"golang.org/x/sync/singleflight"
)

/*
ReadThrough is the "brain" layered on top of the core cache.
It is responsible for the BEHAVIOR around the cache, NOT its storage.

It decides:
- How data is loaded on cache miss
- How evicted pairs are propagated to the backing store
- How metrics are recorded

It does NOT:
- Store data
- Decide eviction order
- Handle locking (the wrapped cache does that)
*/
type ReadThrough[K comparable, V any] struct {

	// cache is the in-memory LRU this engine fronts. Any api.Cache works:
	// a single Synced cache or a Sharded one.
	cache api.Cache[K, V]

	// loader is how the engine talks to the outside world when the cache
	// does NOT have the data. This can be a database call, an API call,
	// or any external call. This enables "read-through caching".
	loader types.Loader[K, V]

	// policy decides what happens to evicted pairs.
	// If nil, evicted pairs are simply dropped.
	policy writepolicy.Policy[K, V]

	// metrics is how we keep track of what the cache is doing.
	// Hits, misses, evictions.
	metrics types.Metrics

	// sf prevents multiple goroutines from loading the same key from the
	// backing store simultaneously.
	sf singleflight.Group
}

/*
NewReadThrough creates a read-through engine around a cache.
*/
func NewReadThrough[K comparable, V any](
	cache api.Cache[K, V],
	loader types.Loader[K, V],
	policy writepolicy.Policy[K, V],
	metrics types.Metrics,
) *ReadThrough[K, V] {

	// Ensure metrics is always non-nil.
	// This avoids defensive nil checks throughout the codebase.
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}

	return &ReadThrough[K, V]{
		cache:   cache,
		loader:  loader,
		policy:  policy,
		metrics: metrics,
	}
}

/*
Get retrieves a value, loading it from the backing store on a miss.

BEHAVIOR:
---------
1. Cache hit  → record the hit and return (the cache touched the entry)
2. Cache miss → record the miss, load from the backing store, install the
   result in the cache, return it

singleflight ensures that:
- If 100 goroutines request the same missing key,
  only ONE of them loads it from the backing store.
- Others wait for the result.
*/
func (e *ReadThrough[K, V]) Get(ctx context.Context, key K) (V, error) {
	if v, ok := e.cache.Get(key); ok {
		e.metrics.Hit()
		return v, nil
	}

	e.metrics.Miss()

	res, _, _ := e.sf.Do(flightKey(key), func() (any, error) {
		v, err := e.loader.Load(ctx, key)
		return flightResult[K, V]{key: key, value: v, err: err}, nil
	})

	fr := res.(flightResult[K, V])
	if fr.key != key {
		// Two distinct keys can fold to the same flight string, making
		// this caller join a flight that loaded the OTHER key. Its result
		// must never be returned or installed under our key, so load ours
		// directly. The collision only costs the dedup, never correctness.
		v, err := e.loader.Load(ctx, key)
		if err != nil {
			var zero V
			return zero, err
		}
		e.install(ctx, key, v)
		return v, nil
	}
	if fr.err != nil {
		var zero V
		return zero, fr.err
	}

	e.install(ctx, key, fr.value)
	return fr.value, nil
}

// flightResult carries the loaded value through singleflight together with
// the typed key the flight actually loaded. The flight function always
// returns a nil error so the result is present even on a failed load:
// a waiter needs fr.key to tell a shared failure on its own key from a
// colliding flight for a different key.
type flightResult[K comparable, V any] struct {
	key   K
	value V
	err   error
}

/*
Put stores a value in the cache, forwarding any evicted pair to the
write policy.
*/
func (e *ReadThrough[K, V]) Put(ctx context.Context, key K, value V) {
	e.install(ctx, key, value)
}

// install is the shared write path for Put and miss-loading.
func (e *ReadThrough[K, V]) install(ctx context.Context, key K, value V) {
	ev, ok := e.cache.Put(key, value)
	if !ok {
		return
	}
	e.metrics.Eviction()
	if e.policy != nil {
		e.policy.OnEvict(ctx, ev.Key, ev.Value)
	}
}

/*
Remove deletes a key from the cache immediately.
The backing store is not touched.
*/
func (e *ReadThrough[K, V]) Remove(key K) bool {
	return e.cache.Remove(key)
}

/*
Close gracefully shuts down the engine.
This is important for the write-back policy, so pending writes are flushed.
*/
func (e *ReadThrough[K, V]) Close() error {
	if e.policy != nil {
		return e.policy.Close()
	}
	return nil
}

// flightKey folds a generic key into the string space singleflight works
// in. The fold is lossy: distinct keys MAY collide, which is why Get
// checks flightResult.key before trusting a shared result.
func flightKey[K comparable](key K) string {
	return fmt.Sprintf("%v", key)
}
