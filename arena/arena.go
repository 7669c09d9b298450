package arena

/*
This file implements the storage arena: a fixed-size, pre-allocated pool of
slots addressed by integer indices instead of pointers.

Why an arena instead of heap-allocated nodes?
---------------------------------------------
A doubly linked list built from individually allocated nodes scatters
entries across the heap and forces the recency logic to juggle pointers.
By keeping every entry in ONE flat slice and linking slots with plain ints:
- No allocation happens after construction
- Slot indices stay valid for the lifetime of the cache
- The recency list becomes simple integer rewiring

The arena knows NOTHING about hashing or recency order. It only owns
storage and hands out / reclaims slot indices.
*/

const (
	// FrontSentinel and BackSentinel are two permanently reserved slots.
	// They never hold a real entry and are never returned by Alloc.
	// The recency list uses them as fixed anchors so it never has to
	// special-case an empty list.
	FrontSentinel = 0
	BackSentinel  = 1

	// None marks "no slot". Used for unlinked prev/next references.
	None = -1

	// realBase is the first index that can hold a real entry.
	realBase = 2
)

// slot is one cell of the arena. A slot is either empty or holds exactly
// one live entry. The prev/next links belong to the recency list but live
// here so that list and storage share one flat array.
type slot[K comparable, V any] struct {
	key   K
	value V
	prev  int
	next  int
	live  bool
}

// Arena is a fixed-capacity pool of entry slots.
// Capacity is fixed at construction and never changes.
type Arena[K comparable, V any] struct {

	// slots holds the two sentinels followed by capacity real cells.
	slots []slot[K, V]

	// free is a stack of currently empty real slot indices.
	free []int

	// liveCount tracks how many real slots hold an entry.
	liveCount int
}

// New creates an arena with room for capacity real entries plus the two
// sentinel slots. capacity must already be validated by the caller.
func New[K comparable, V any](capacity int) *Arena[K, V] {
	a := &Arena[K, V]{
		slots: make([]slot[K, V], capacity+realBase),
		free:  make([]int, 0, capacity),
	}
	a.resetFree()
	return a
}

// resetFree rebuilds the free stack so that every real slot is available.
func (a *Arena[K, V]) resetFree() {
	a.free = a.free[:0]
	for i := len(a.slots) - 1; i >= realBase; i-- {
		a.free = append(a.free, i)
	}
}

/*
Alloc stores a new entry and returns its slot index.

The controller must never call Alloc over capacity: it evicts first.
The ok result exists so a misusing caller gets a detectable failure
instead of silent corruption.
*/
func (a *Arena[K, V]) Alloc(key K, value V) (int, bool) {
	if len(a.free) == 0 {
		return None, false
	}
	i := a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]

	s := &a.slots[i]
	s.key = key
	s.value = value
	s.prev = None
	s.next = None
	s.live = true
	a.liveCount++
	return i, true
}

/*
Free marks a slot empty and clears its contents so the GC can reclaim
whatever the key and value referenced.

Freeing a sentinel or an already-empty slot is a no-op. This guards the
double-free case instead of corrupting the free stack.
*/
func (a *Arena[K, V]) Free(i int) {
	if i < realBase || i >= len(a.slots) || !a.slots[i].live {
		return
	}
	var zeroK K
	var zeroV V
	s := &a.slots[i]
	s.key = zeroK
	s.value = zeroV
	s.prev = None
	s.next = None
	s.live = false
	a.liveCount--
	a.free = append(a.free, i)
}

// Key returns the key stored in a slot.
func (a *Arena[K, V]) Key(i int) K {
	return a.slots[i].key
}

// Value returns the value stored in a slot.
func (a *Arena[K, V]) Value(i int) V {
	return a.slots[i].value
}

// SetValue overwrites the value in a slot. O(1) direct update.
func (a *Arena[K, V]) SetValue(i int, value V) {
	a.slots[i].value = value
}

// Live reports whether a slot currently holds an entry.
func (a *Arena[K, V]) Live(i int) bool {
	return i >= realBase && i < len(a.slots) && a.slots[i].live
}

// Len returns the number of occupied real slots.
func (a *Arena[K, V]) Len() int {
	return a.liveCount
}

// Cap returns the fixed number of real slots.
func (a *Arena[K, V]) Cap() int {
	return len(a.slots) - realBase
}

// Clear empties every real slot without reallocating the backing array.
func (a *Arena[K, V]) Clear() {
	var zero slot[K, V]
	zero.prev = None
	zero.next = None
	for i := realBase; i < len(a.slots); i++ {
		a.slots[i] = zero
	}
	a.liveCount = 0
	a.resetFree()
}

//
// ================= RECENCY LINKS =================
//
// The link accessors below exist for the recency list. The list stores its
// prev/next references inside arena slots but never touches keys or values.
//

// Next returns the slot linked after i.
func (a *Arena[K, V]) Next(i int) int {
	return a.slots[i].next
}

// Prev returns the slot linked before i.
func (a *Arena[K, V]) Prev(i int) int {
	return a.slots[i].prev
}

// SetNext links slot j after slot i.
func (a *Arena[K, V]) SetNext(i, j int) {
	a.slots[i].next = j
}

// SetPrev links slot j before slot i.
func (a *Arena[K, V]) SetPrev(i, j int) {
	a.slots[i].prev = j
}
