// Package store provides a concurrency-safe in-memory store for Todo entities.
//
// The store is the sole owner of every Todo. Callers receive copies and
// mutate only by whole-value replacement through the store's operations.
//
// # Key Features
//
//   - Identifier assignment on create (UUIDv4 when the caller supplies none)
//   - Create never overwrites an existing key
//   - Atomic replace: existence check and write under one lock
//   - Idempotent delete
//   - Lock striping so unrelated keys do not contend
//
// # Consistency
//
// Operations are linearizable per key: a Get issued after a successful
// Create, Replace or Delete of the same key observes its effect, whichever
// goroutine issued it. There is no ordering guarantee across keys, and
// [Store.List] is not a point-in-time snapshot of the whole collection.
//
// # Configuration
//
// Use [DefaultConfig] for a typical service (32 stripes).
// NumShards=1 turns the store into a single global lock:
//
//	cfg := store.DefaultConfig()
//	cfg.NumShards = 1
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotFound] - replace targeted an id that doesn't exist
//   - [ErrAlreadyExists] - create was given an id that is already in use
//
// Absence on Get and Delete is a normal outcome and is reported through
// their boolean results rather than an error.
package store
