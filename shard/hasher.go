package shard

import "hash/fnv"

/*
This file decides HOW a cache key is assigned to a shard.
If every key went to the same shard, that shard's lock would become a
bottleneck. Shard selection is about:
- Load balancing
- Avoiding hot spots
- Scaling under concurrency
*/

/*
KeyHasher folds a key into a number. The Sharded cache takes the hash
modulo the shard count to pick a shard, so the same key always lands on
the same shard.

The cache does not care HOW the hash is computed. Different key types plug
in different hashers.
*/
type KeyHasher[K comparable] func(K) uint32

// StringHasher hashes string keys with FNV-1a. FNV is a fast,
// non-cryptographic hash commonly used in systems like this.
func StringHasher(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
