package types

// Evicted is the key/value pair that a put pushed out of the cache.
//
// The cache itself does nothing with an evicted pair beyond returning it.
// Callers (or a write policy layered on top) decide whether the pair is
// persisted, logged, or simply dropped.
type Evicted[K comparable, V any] struct {
	Key   K
	Value V
}
