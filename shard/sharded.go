package shard

import (
	"fmt"

	lru "github.com/krisalay/lru-cache"
	"github.com/krisalay/lru-cache/types"
)

/*
This file defines the sharded cache.

A shard is a small, independent piece of the cache.
Instead of having one big cache and one big lock, we split the key space
into many shards. Each shard:
- Holds some portion of the data
- Maintains its own recency order
- Has its own lock

Contention drops because goroutines touching different shards never wait
on each other. The price is that LRU order is per shard, not global: each
shard evicts its own least-recently-used key.
*/

// Sharded partitions keys across independent Synced LRU caches.
type Sharded[K comparable, V any] struct {
	shards []*lru.Synced[K, V]
	hash   KeyHasher[K]
}

/*
NewSharded creates a sharded cache.

The total capacity is divided evenly across shards. Construction fails
with lru.ErrInvalidCapacity when the split would leave a shard with no
room (capacity < shards), for the same reason a plain cache rejects a
non-positive capacity.
*/
func NewSharded[K comparable, V any](shards, capacity int, hash KeyHasher[K]) (*Sharded[K, V], error) {
	if shards <= 0 {
		return nil, fmt.Errorf("shard: shard count must be positive, got %d", shards)
	}
	perShard := capacity / shards
	if perShard <= 0 {
		return nil, fmt.Errorf("%w: capacity %d across %d shards", lru.ErrInvalidCapacity, capacity, shards)
	}

	s := make([]*lru.Synced[K, V], shards)
	for i := range s {
		c, err := lru.NewSynced[K, V](perShard)
		if err != nil {
			return nil, err
		}
		s[i] = c
	}
	return &Sharded[K, V]{shards: s, hash: hash}, nil
}

// pick routes a key to its shard.
func (c *Sharded[K, V]) pick(key K) *lru.Synced[K, V] {
	return c.shards[int(c.hash(key))%len(c.shards)]
}

// Get retrieves a value, touching it on a hit.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	return c.pick(key).Get(key)
}

// Put stores a value, returning the pair evicted from the key's shard
// if the insert pushed one out.
func (c *Sharded[K, V]) Put(key K, value V) (types.Evicted[K, V], bool) {
	return c.pick(key).Put(key, value)
}

// Contains reports presence without touching the entry.
func (c *Sharded[K, V]) Contains(key K) bool {
	return c.pick(key).Contains(key)
}

// Remove deletes a key, reporting whether it was present.
func (c *Sharded[K, V]) Remove(key K) bool {
	return c.pick(key).Remove(key)
}

// Len returns the total number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for _, s := range c.shards {
		n += s.Len()
	}
	return n
}

// Cap returns the total capacity across all shards.
func (c *Sharded[K, V]) Cap() int {
	n := 0
	for _, s := range c.shards {
		n += s.Cap()
	}
	return n
}

// Clear empties every shard.
func (c *Sharded[K, V]) Clear() {
	for _, s := range c.shards {
		s.Clear()
	}
}
