// Package cache provides the byte cache used by the raster exporter and
// the preview server. Backends share one interface; the file backend is
// the default for CLI runs, redis serves shared preview deployments and
// null disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports a hit; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Stats describes a cache's contents, for backends that can count them
// cheaply.
type Stats struct {
	Entries int
	Bytes   int64
}

// StatsProvider is implemented by backends that can report Stats.
type StatsProvider interface {
	Stats() (Stats, error)
}

// Clearer is implemented by backends that can drop all entries.
type Clearer interface {
	Clear() error
}
