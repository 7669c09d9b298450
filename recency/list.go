// This file implements the recency ordering used for LRU eviction.

package recency

import "github.com/krisalay/lru-cache/arena"

/*
Links is the contract between the recency list and the storage arena.

The list needs exactly four things: read and write the prev/next link of a
slot. It never sees keys or values. This keeps the dependency one-way:
the list knows slot identities, nothing else.
*/
type Links interface {
	Next(i int) int
	Prev(i int) int
	SetNext(i, j int)
	SetPrev(i, j int)
}

/*
List maintains most-recent-to-least-recent ordering over live arena slots.

The front of the list (just after the front sentinel) is the MOST recently
used slot. The back (just before the back sentinel) is the LEAST recently
used slot, which is the one eviction removes.

Two permanent sentinel slots anchor the list:

	front-sentinel ⇄ mru ⇄ ... ⇄ lru ⇄ back-sentinel

Because the sentinels always exist, push/remove/pop never special-case an
empty list. Every operation is O(1): slots carry their own links, so no
scanning is ever required.
*/
type List struct {
	links Links
	count int
}

// New creates an empty list: the two sentinels linked to each other.
func New(links Links) *List {
	l := &List{links: links}
	l.Reset()
	return l
}

// Reset rewires the sentinels into an empty ring. Used by New and by the
// controller's Clear.
func (l *List) Reset() {
	l.links.SetNext(arena.FrontSentinel, arena.BackSentinel)
	l.links.SetPrev(arena.FrontSentinel, arena.None)
	l.links.SetPrev(arena.BackSentinel, arena.FrontSentinel)
	l.links.SetNext(arena.BackSentinel, arena.None)
	l.count = 0
}

// PushFront inserts a slot immediately after the front sentinel,
// marking it most-recently-used. Rewires four links.
func (l *List) PushFront(i int) {
	oldFront := l.links.Next(arena.FrontSentinel)
	l.links.SetNext(i, oldFront)
	l.links.SetPrev(i, arena.FrontSentinel)
	l.links.SetPrev(oldFront, i)
	l.links.SetNext(arena.FrontSentinel, i)
	l.count++
}

// Remove unlinks a slot from wherever it currently sits.
// The caller guarantees the slot is presently in the list.
func (l *List) Remove(i int) {
	p := l.links.Prev(i)
	n := l.links.Next(i)
	l.links.SetNext(p, n)
	l.links.SetPrev(n, p)
	l.links.SetNext(i, arena.None)
	l.links.SetPrev(i, arena.None)
	l.count--
}

// MoveToFront marks an already-linked slot most-recently-used.
// Exposed as one operation so the controller never does the
// remove/push dance itself.
func (l *List) MoveToFront(i int) {
	l.Remove(i)
	l.PushFront(i)
}

/*
PopBack removes and returns the least-recently-used slot.

This is the eviction primitive. When only the sentinels remain the list is
empty and PopBack reports false.
*/
func (l *List) PopBack() (int, bool) {
	i := l.links.Prev(arena.BackSentinel)
	if i == arena.FrontSentinel {
		return arena.None, false
	}
	l.Remove(i)
	return i, true
}

// Back returns the least-recently-used slot without removing it.
func (l *List) Back() (int, bool) {
	i := l.links.Prev(arena.BackSentinel)
	if i == arena.FrontSentinel {
		return arena.None, false
	}
	return i, true
}

// Len returns the number of real slots currently linked.
func (l *List) Len() int {
	return l.count
}

// Slots returns the linked slots from most to least recently used.
// Used by Keys and the invariant checker; not part of the hot path.
func (l *List) Slots() []int {
	out := make([]int, 0, l.count)
	for i := l.links.Next(arena.FrontSentinel); i != arena.BackSentinel; i = l.links.Next(i) {
		out = append(out, i)
	}
	return out
}
