package writepolicy

import "context"

/*
This file defines what a "write policy" is.

The base cache returns an evicted pair from Put and does nothing else with
it. A write policy is the layer that REACTS to that pair. Different systems
have different needs:
- Some want evicted state persisted before it is forgotten (write-through)
- Some want high throughput and accept async persistence (write-back)
- Some want custom behavior

Instead of hard-coding one behavior, we define an interface so we can plug
in different strategies.
*/

/*
Policy is the contract that all write policies must follow.
The read-through engine does not care which policy is used. It simply
calls these methods.
*/
type Policy[K comparable, V any] interface {

	/*
		OnEvict is called with every key/value pair the cache pushed out.
	*/
	OnEvict(ctx context.Context, key K, value V)

	/*
		Close is called when the cache is shutting down. It flushes any
		pending writes and reports what could not be persisted.
	*/
	Close() error
}
