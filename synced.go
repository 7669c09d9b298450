package lru

import (
	"sync"

	"github.com/krisalay/lru-cache/types"
)

/*
Synced wraps a Cache with a single mutex for concurrent use.

Why ONE lock over all three internal structures?
------------------------------------------------
Get has a write side effect: a hit moves the entry to the front of the
recency list. Per-structure locks would let another goroutine observe a
torn state (the list says slot X is front while the arena says slot X is
empty) or deadlock on lock ordering. The arena, recency list and key index
must move as one atomic unit, so the lock covers the full duration of
every call.

No operation blocks, suspends, or does I/O, so the critical sections are
pure in-memory index rewiring and stay short.
*/
type Synced[K comparable, V any] struct {
	mu sync.Mutex
	c  *Cache[K, V]
}

// NewSynced creates a goroutine-safe cache with the given capacity.
// It fails with ErrInvalidCapacity exactly like New.
func NewSynced[K comparable, V any](capacity int) (*Synced[K, V], error) {
	c, err := New[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return &Synced[K, V]{c: c}, nil
}

// Get returns the value stored under key, touching it on a hit.
func (s *Synced[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Get(key)
}

// Put stores value under key, returning the evicted pair if the insert
// pushed one out.
func (s *Synced[K, V]) Put(key K, value V) (types.Evicted[K, V], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Put(key, value)
}

// Contains reports presence without touching the entry.
func (s *Synced[K, V]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Contains(key)
}

// Peek returns the value under key without touching the entry.
func (s *Synced[K, V]) Peek(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Peek(key)
}

// Oldest returns the least-recently-used entry without touching it.
func (s *Synced[K, V]) Oldest() (K, V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Oldest()
}

// Remove deletes key, reporting whether it was present.
func (s *Synced[K, V]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Remove(key)
}

// Len returns the number of entries currently stored.
func (s *Synced[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Len()
}

// Cap returns the fixed maximum number of entries.
func (s *Synced[K, V]) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Cap()
}

// Clear resets the cache to empty without reallocating its capacity.
func (s *Synced[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Clear()
}

// Keys returns the cached keys from most to least recently used.
func (s *Synced[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Keys()
}
