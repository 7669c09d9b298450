package index

/*
This file implements the key index: the hash mapping from external key to
arena slot.

The index answers ONE question in O(1) average time:
"does this key exist, and in which slot does it live?"

No recency or storage logic lives here. The invariant the controller
maintains is that the index is a bijection onto the occupied arena slots:
every live slot has exactly one key pointing at it, and every indexed key
points at a live slot holding that same key.
*/

// KeyIndex maps keys to arena slot indices.
type KeyIndex[K comparable] struct {
	slots map[K]int
}

// New creates an empty index sized for the expected capacity.
func New[K comparable](capacity int) *KeyIndex[K] {
	return &KeyIndex[K]{slots: make(map[K]int, capacity)}
}

// Lookup returns the slot for a key, if present.
func (x *KeyIndex[K]) Lookup(key K) (int, bool) {
	i, ok := x.slots[key]
	return i, ok
}

// Insert records a key → slot mapping.
// The controller checks via Lookup first; the key must not already exist.
func (x *KeyIndex[K]) Insert(key K, slot int) {
	x.slots[key] = slot
}

// Remove deletes a key's mapping. The key must be present.
func (x *KeyIndex[K]) Remove(key K) {
	delete(x.slots, key)
}

// Len returns the number of mapped keys.
func (x *KeyIndex[K]) Len() int {
	return len(x.slots)
}

// Clear drops every mapping without shrinking the underlying map.
func (x *KeyIndex[K]) Clear() {
	clear(x.slots)
}

// Each calls fn for every key → slot mapping. Iteration order is
// unspecified. Used by the invariant checker.
func (x *KeyIndex[K]) Each(fn func(key K, slot int)) {
	for k, i := range x.slots {
		fn(k, i)
	}
}
