package lru

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

/*
Check validates the invariant tying the three internal structures together
and returns every violation it finds, aggregated into one error.

Checked:
- index size, live arena slots and list length all agree
- the list traversal visits each slot exactly once
- every indexed key points at a live slot holding that same key (bijection)

A healthy cache returns nil. Check walks the whole structure, so it is for
tests and debugging, not the hot path.
*/
func (c *Cache[K, V]) Check() error {
	var result *multierror.Error

	if c.index.Len() != c.arena.Len() {
		result = multierror.Append(result, fmt.Errorf(
			"lru: index has %d keys but arena has %d live slots",
			c.index.Len(), c.arena.Len()))
	}
	if c.order.Len() != c.arena.Len() {
		result = multierror.Append(result, fmt.Errorf(
			"lru: recency list has %d nodes but arena has %d live slots",
			c.order.Len(), c.arena.Len()))
	}
	if c.arena.Len() > c.capacity {
		result = multierror.Append(result, fmt.Errorf(
			"lru: %d live slots exceed capacity %d", c.arena.Len(), c.capacity))
	}

	seen := make(map[int]bool, c.order.Len())
	for _, i := range c.order.Slots() {
		if seen[i] {
			result = multierror.Append(result, fmt.Errorf(
				"lru: slot %d linked twice in recency list", i))
			continue
		}
		seen[i] = true
		if !c.arena.Live(i) {
			result = multierror.Append(result, fmt.Errorf(
				"lru: recency list links empty slot %d", i))
		}
	}

	c.index.Each(func(key K, slot int) {
		if !c.arena.Live(slot) {
			result = multierror.Append(result, fmt.Errorf(
				"lru: key %v indexed to empty slot %d", key, slot))
			return
		}
		if c.arena.Key(slot) != key {
			result = multierror.Append(result, fmt.Errorf(
				"lru: key %v indexed to slot %d holding key %v",
				key, slot, c.arena.Key(slot)))
		}
		if !seen[slot] {
			result = multierror.Append(result, fmt.Errorf(
				"lru: key %v in slot %d missing from recency list", key, slot))
		}
	})

	return result.ErrorOrNil()
}
