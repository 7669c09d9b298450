package api

import "github.com/krisalay/lru-cache/types"

/*
Cache defines the PUBLIC contract of the LRU cache.
This is a contract that guarantees certain behaviors, without exposing
internals. All of the details like (arena slots, recency links, sharding,
locking) are hidden behind this interface.

It is implemented by lru.Cache (single-threaded), lru.Synced (one lock)
and shard.Sharded (N locks, keys partitioned by hash).
*/
type Cache[K comparable, V any] interface {

	/*
		Get retrieves the value associated with the given key.

		BEHAVIOR:
		---------
		1. If the key exists:
		   - The entry becomes most-recently-used (reading keeps it alive)
		   - Return the value and true

		2. If the key does not exist:
		   - Return the zero value and false

		A miss is a routine outcome, not an error.
	*/
	Get(key K) (V, bool)

	/*
		Put stores a key-value pair.

		BEHAVIOR:
		---------
		- Existing key: value overwritten in place, entry touched,
		  size unchanged
		- New key with room: inserted as most-recently-used
		- New key at capacity: the least-recently-used entry is evicted
		  first, then the insert happens

		Put returns the evicted pair and true exactly when an eviction
		occurred. Put never fails.
	*/
	Put(key K, value V) (types.Evicted[K, V], bool)

	/*
		Contains reports whether the key is present WITHOUT refreshing
		its recency.

		This is a peek, not a touch: repeated Contains calls on the
		least-recently-used key do not prevent its eviction, while a
		single Get does.
	*/
	Contains(key K) bool

	/*
		Remove deletes a key immediately, reporting whether it was present.

		This operation is idempotent:
		- Removing a non-existing key is safe
	*/
	Remove(key K) bool

	// Len returns the number of entries currently stored.
	Len() int

	// Cap returns the fixed maximum number of entries.
	Cap() int

	// Clear resets the cache to empty without releasing its capacity.
	Clear()
}
