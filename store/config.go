package store

import "github.com/jacentio/todos/internal/shard"

// DefaultNumShards is the stripe count used by DefaultConfig.
const DefaultNumShards = 32

// Config holds configuration for the Store.
type Config struct {
	// NumShards is the number of lock stripes the key space is split into.
	// Operations on keys in different stripes never contend with each other.
	// Default: 32
	// Max: 256
	//
	// NumShards=1 degenerates to a single global lock. That is correct but
	// serializes every writer, so it is the throughput ceiling of the store.
	NumShards int
}

// DefaultConfig returns sensible defaults for a single-process service.
func DefaultConfig() Config {
	return Config{
		NumShards: DefaultNumShards,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	c.NumShards = shard.Clamp(c.NumShards)
}
