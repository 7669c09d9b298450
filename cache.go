package lru

import (
	"errors"
	"fmt"

	"github.com/krisalay/lru-cache/arena"
	"github.com/krisalay/lru-cache/index"
	"github.com/krisalay/lru-cache/recency"
	"github.com/krisalay/lru-cache/types"
)

// ErrInvalidCapacity is returned by New when capacity is zero or negative.
// It is the ONLY error this package can produce: every steady-state
// operation is total. A miss is a normal result, not a failure, and a put
// at full capacity evicts instead of failing.
var ErrInvalidCapacity = errors.New("lru: capacity must be positive")

/*
Cache is a fixed-capacity cache with least-recently-used eviction and O(1)
get/put.

This struct is the controller that connects:
- the storage arena (owns entries, hands out slot indices)
- the recency list (most-recent to least-recent ordering)
- the key index (key → slot lookup)

The three structures are tied by one invariant:

	len(index) == occupied arena slots == real list nodes == Len() <= Cap()

Every public operation preserves it; Check verifies it.

Cache is NOT safe for concurrent use. Wrap it in Synced for that
(the three internal structures must move under one lock, see Synced).
*/
type Cache[K comparable, V any] struct {
	arena    *arena.Arena[K, V]
	order    *recency.List
	index    *index.KeyIndex[K]
	capacity int
}

// New creates a cache holding at most capacity entries.
// Capacity is immutable after construction: there is no resize, because
// resizing would invalidate the fixed arena the slot indices point into.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}
	a := arena.New[K, V](capacity)
	return &Cache[K, V]{
		arena:    a,
		order:    recency.New(a),
		index:    index.New[K](capacity),
		capacity: capacity,
	}, nil
}

/*
Get returns the value stored under key.

A hit is also a TOUCH: the entry becomes most-recently-used. Reading an
entry is what keeps it alive under LRU. A miss returns the zero value and
false; it is a routine outcome, never an error.
*/
func (c *Cache[K, V]) Get(key K) (V, bool) {
	i, ok := c.index.Lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(i)
	return c.arena.Value(i), true
}

/*
Put stores value under key.

Three cases, in order:
 1. key exists      → overwrite in place, touch. Size unchanged, no eviction.
 2. key new, space  → allocate, index, push front.
 3. key new, full   → evict the back of the recency list FIRST, then insert.

Put returns the evicted pair and true exactly when case 3 ran, so callers
can react to the eviction (write-back, logging). The cache itself does
nothing with the pair.

Put never fails: eviction absorbs the full-cache case deterministically.
*/
func (c *Cache[K, V]) Put(key K, value V) (types.Evicted[K, V], bool) {
	var evicted types.Evicted[K, V]

	if i, ok := c.index.Lookup(key); ok {
		c.arena.SetValue(i, value)
		c.order.MoveToFront(i)
		return evicted, false
	}

	didEvict := false
	if c.arena.Len() == c.capacity {
		// Full and the key is new: make room before inserting.
		i, _ := c.order.PopBack()
		evicted.Key = c.arena.Key(i)
		evicted.Value = c.arena.Value(i)
		c.index.Remove(evicted.Key)
		c.arena.Free(i)
		didEvict = true
	}

	i, _ := c.arena.Alloc(key, value)
	c.index.Insert(key, i)
	c.order.PushFront(i)
	return evicted, didEvict
}

/*
Contains reports whether key is present WITHOUT touching it.

This is the peek/touch distinction: calling Contains on the
least-recently-used key any number of times does not save it from
eviction, while a single Get does. Conflating the two is a classic LRU
bug, so the recency list is deliberately not consulted here.
*/
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index.Lookup(key)
	return ok
}

// Peek returns the value under key without refreshing its recency.
// Like Contains, it leaves the eviction order untouched.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	i, ok := c.index.Lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	return c.arena.Value(i), true
}

// Oldest returns the least-recently-used entry, the one the next
// capacity eviction would remove, without touching it. Reports false
// when the cache is empty.
func (c *Cache[K, V]) Oldest() (K, V, bool) {
	i, ok := c.order.Back()
	if !ok {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	return c.arena.Key(i), c.arena.Value(i), true
}

// Remove deletes key immediately, reporting whether it was present.
// Removing an absent key is safe and does nothing.
func (c *Cache[K, V]) Remove(key K) bool {
	i, ok := c.index.Lookup(key)
	if !ok {
		return false
	}
	c.order.Remove(i)
	c.index.Remove(key)
	c.arena.Free(i)
	return true
}

// Len returns the number of entries currently stored.
func (c *Cache[K, V]) Len() int {
	return c.index.Len()
}

// Cap returns the fixed maximum number of entries.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Clear resets the cache to empty without reallocating its capacity.
func (c *Cache[K, V]) Clear() {
	c.index.Clear()
	c.arena.Clear()
	c.order.Reset()
}

// Keys returns the cached keys from most to least recently used.
// This is a debug/inspection helper, not a hot-path operation.
func (c *Cache[K, V]) Keys() []K {
	slots := c.order.Slots()
	keys := make([]K, 0, len(slots))
	for _, i := range slots {
		keys = append(keys, c.arena.Key(i))
	}
	return keys
}
