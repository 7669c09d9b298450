package engine_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	lru "github.com/krisalay/lru-cache"
	"github.com/krisalay/lru-cache/engine"
	"github.com/krisalay/lru-cache/writepolicy"
)

//
// ================= TEST BACKING STORE =================
//

type TestStore struct {
	mu    sync.RWMutex
	data  map[string]string
	loads atomic.Int64
	delay time.Duration
}

func NewTestStore() *TestStore {
	return &TestStore{data: make(map[string]string)}
}

func (s *TestStore) Load(ctx context.Context, key string) (string, error) {
	s.loads.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key], nil
}

func (s *TestStore) Put(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

//
// ================= TEST METRICS =================
//

type countingMetrics struct {
	hits, misses, evictions atomic.Int64
}

func (m *countingMetrics) Hit()      { m.hits.Add(1) }
func (m *countingMetrics) Miss()     { m.misses.Add(1) }
func (m *countingMetrics) Eviction() { m.evictions.Add(1) }

//
// ================= HELPERS =================
//

func newTestEngine(t *testing.T, capacity int) (*engine.ReadThrough[string, string], *TestStore, *countingMetrics) {
	t.Helper()
	store := NewTestStore()
	metrics := &countingMetrics{}

	cache, err := lru.NewSynced[string, string](capacity)
	require.NoError(t, err)

	eng := engine.NewReadThrough[string, string](
		cache,
		store,
		writepolicy.NewWriteThroughPolicy[string, string](store),
		metrics,
	)
	return eng, store, metrics
}

//
// ================= TESTS =================
//

func TestReadThroughMissLoadsFromStore(t *testing.T) {
	ctx := context.Background()
	eng, store, metrics := newTestEngine(t, 10)

	store.Put(ctx, "keyX", "store-value")

	v, err := eng.Get(ctx, "keyX")
	require.NoError(t, err)
	require.Equal(t, "store-value", v)
	require.EqualValues(t, 1, metrics.misses.Load())

	// The loaded value is now cached: the second read is a hit and the
	// store is not consulted again.
	v, err = eng.Get(ctx, "keyX")
	require.NoError(t, err)
	require.Equal(t, "store-value", v)
	require.EqualValues(t, 1, metrics.hits.Load())
	require.EqualValues(t, 1, store.loads.Load())
}

func TestPutThenGetIsAHit(t *testing.T) {
	ctx := context.Background()
	eng, store, metrics := newTestEngine(t, 10)

	eng.Put(ctx, "key1", "value1")

	v, err := eng.Get(ctx, "key1")
	require.NoError(t, err)
	require.Equal(t, "value1", v)
	require.EqualValues(t, 1, metrics.hits.Load())
	require.EqualValues(t, 0, store.loads.Load())
}

func TestEvictionReachesWritePolicy(t *testing.T) {
	ctx := context.Background()
	eng, store, metrics := newTestEngine(t, 2)

	eng.Put(ctx, "key1", "value1")
	eng.Put(ctx, "key2", "value2")
	eng.Put(ctx, "key3", "value3") // evicts key1

	require.EqualValues(t, 1, metrics.evictions.Load())

	store.mu.RLock()
	persisted := store.data["key1"]
	store.mu.RUnlock()
	require.Equal(t, "value1", persisted, "write-through must persist the evicted pair")

	// And since the pair reached the store, a later Get reloads it.
	v, err := eng.Get(ctx, "key1")
	require.NoError(t, err)
	require.Equal(t, "value1", v)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t, 10)

	eng.Put(ctx, "key1", "value1")
	require.True(t, eng.Remove("key1"))
	require.False(t, eng.Remove("key1"))
}

func TestSingleflightCollapsesConcurrentLoads(t *testing.T) {
	ctx := context.Background()
	store := NewTestStore()
	store.Put(ctx, "key", "value")
	store.delay = 20 * time.Millisecond

	cache, err := lru.NewSynced[string, string](10)
	require.NoError(t, err)
	eng := engine.NewReadThrough[string, string](cache, store, nil, nil)

	wg := sync.WaitGroup{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := eng.Get(ctx, "key")
			require.NoError(t, err)
			require.Equal(t, "value", v)
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, store.loads.Load(),
		"concurrent misses on one key must trigger a single load")
}

// pairKey is a composite key whose %v formatting is ambiguous:
// {"a b", ""} and {"a", "b "} both render as "{a b }".
type pairKey struct {
	A, B string
}

// pairLoader derives each value from the key it was asked for, so a value
// served for the wrong key is detectable.
type pairLoader struct {
	delay time.Duration
	loads atomic.Int64
}

func (l *pairLoader) Load(ctx context.Context, key pairKey) (string, error) {
	l.loads.Add(1)
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	return "A=" + key.A + "|B=" + key.B, nil
}

func (l *pairLoader) Put(ctx context.Context, key pairKey, value string) error {
	return nil
}

func TestCollidingFlightKeysLoadIndependently(t *testing.T) {
	ctx := context.Background()

	// Both keys fold to the same flight string, so concurrent misses
	// share one flight. Each caller must still get, and cache, the value
	// for its OWN key.
	k1 := pairKey{A: "a b", B: ""}
	k2 := pairKey{A: "a", B: "b "}

	loader := &pairLoader{delay: 50 * time.Millisecond}
	cache, err := lru.NewSynced[pairKey, string](10)
	require.NoError(t, err)
	eng := engine.NewReadThrough[pairKey, string](cache, loader, nil, nil)

	var v1, v2 string
	var err1, err2 error
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() { defer wg.Done(); v1, err1 = eng.Get(ctx, k1) }()
	go func() { defer wg.Done(); v2, err2 = eng.Get(ctx, k2) }()
	wg.Wait()

	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, "A=a b|B=", v1)
	require.Equal(t, "A=a|B=b ", v2)

	// Neither key may be cached under the other's value.
	cached1, ok := cache.Peek(k1)
	require.True(t, ok)
	require.Equal(t, "A=a b|B=", cached1)
	cached2, ok := cache.Peek(k2)
	require.True(t, ok)
	require.Equal(t, "A=a|B=b ", cached2)
}

func TestCloseFlushesWriteBack(t *testing.T) {
	ctx := context.Background()
	store := NewTestStore()

	cache, err := lru.NewSynced[string, string](1)
	require.NoError(t, err)
	eng := engine.NewReadThrough[string, string](
		cache,
		store,
		writepolicy.NewWriteBackPolicy[string, string](store, 16),
		nil,
	)

	eng.Put(ctx, "key1", "value1")
	eng.Put(ctx, "key2", "value2") // evicts key1 into the write-back queue

	require.NoError(t, eng.Close())

	store.mu.RLock()
	defer store.mu.RUnlock()
	require.Equal(t, "value1", store.data["key1"], "Close must flush queued evictions")
}
