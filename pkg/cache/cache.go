// Package cache provides result caching for variation runs.
//
// A variation run is fully determined by its dialogue, intensities, count and
// seed, so a run with an explicit seed can be served from cache instead of
// being regenerated. Runs without an explicit seed draw a fresh one and are
// never looked up.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [RedisCache]: shared cache for the HTTP API
//
// # Keys
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes the key options;
// [ScopedKeyer] prefixes every key for namespace isolation.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries.
const (
	// TTLVariations is how long a generated variation set stays cached.
	TTLVariations = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. hit is false on a miss or an expired entry.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// VariationKeyOpts are the parameters besides the dialogue that determine a run.
type VariationKeyOpts struct {
	Count  int    `json:"count"`
	Letter int    `json:"letter"`
	Word   int    `json:"word"`
	Emoji  int    `json:"emoji"`
	Typo   int    `json:"typo"`
	Caps   int    `json:"caps"`
	Punct  int    `json:"punct"`
	Seed   uint64 `json:"seed"`
}

// Keyer generates cache keys.
type Keyer interface {
	// VariationKey returns the key for a variation set of the given input.
	VariationKey(inputHash string, opts VariationKeyOpts) string
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// VariationKey generates a key of the form "variations:<sha256>".
func (DefaultKeyer) VariationKey(inputHash string, opts VariationKeyOpts) string {
	return hashKey("variations", inputHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
