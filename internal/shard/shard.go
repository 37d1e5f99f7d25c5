// Package shard maps identifiers onto lock stripes for the in-memory store.
package shard

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// MaxShards is the upper bound on the number of stripes a store may use.
const MaxShards = 256

// Index returns the stripe that owns id.
// With numShards<=1, every id lands in stripe 0.
// With numShards>1, ids are distributed by an FNV-1a hash of their bytes.
func Index(id uuid.UUID, numShards int) int {
	if numShards <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write(id[:])
	return int(h.Sum32() % uint32(numShards))
}

// Clamp bounds numShards to the range [1, MaxShards].
func Clamp(numShards int) int {
	if numShards < 1 {
		return 1
	}
	if numShards > MaxShards {
		return MaxShards
	}
	return numShards
}
