// Package cache provides pluggable artifact caches for rendered output.
// Backends: null (disabled), in-memory, file-based for CLI runs, and redis
// for the preview server.
package cache

import (
	"context"
	"time"
)

// DefaultArtifactTTL bounds how long rendered artifacts stay cached.
const DefaultArtifactTTL = 24 * time.Hour

// Cache stores opaque byte payloads under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact. The hash covers
// everything that determines the bytes: contour geometry, group settings,
// and group identity.
func ArtifactKey(hash, format string) string {
	return "artifact:" + hash + ":" + format
}
