// Package lru implements a fixed-capacity, generically-typed cache with
// least-recently-used eviction and O(1) amortized get/put.
//
// Entries live in a flat pre-allocated arena and the recency order is a
// doubly linked list over arena slot indices with two permanent sentinel
// slots, so no operation ever scans, allocates nodes, or branches on an
// empty list.
//
// Cache is single-threaded; Synced wraps it with one mutex for concurrent
// use. The surrounding packages (engine, shard, writepolicy) layer
// read-through loading, sharding and eviction write-back on top without
// the core depending on any of them.
package lru
