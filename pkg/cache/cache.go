// Package cache provides caching for scene documents and rendered artifacts.
//
// Rendering is deterministic: the same scene document with the same target
// options always yields the same bytes. That makes rendered output a natural
// cache value, keyed on a hash of the document plus the render options.
//
// The package ships several backends behind a single Cache interface:
//
//   - MemoryCache: in-process, for servers and tests
//   - FileCache: on-disk, for CLI usage across invocations
//   - RedisCache: shared, for multi-instance deployments
//   - NullCache: disabled caching
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached value class.
const (
	// SceneTTL applies to normalized scene documents.
	SceneTTL = 24 * time.Hour

	// ArtifactTTL applies to rendered output bytes. Artifacts are pure
	// functions of their key, so they can live long.
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry does not expire.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts captures the render options that affect output bytes.
type ArtifactKeyOpts struct {
	Format   string
	Width    int
	Height   int
	Frames   int
	Duration float64
	Quality  int
}

// Keyer generates cache keys for the value classes the pipeline caches.
type Keyer interface {
	// SceneKey generates a key for a normalized scene document,
	// identified by the hash of its canonical JSON form.
	SceneKey(docHash string) string

	// ArtifactKey generates a key for rendered output.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SceneKey generates a key for a scene document.
// Format: scene:<docHash>
func (k *DefaultKeyer) SceneKey(docHash string) string {
	return "scene:" + docHash
}

// ArtifactKey generates a key for rendered output.
// The options are folded into the hash so any change in target
// invalidates the entry.
func (k *DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
