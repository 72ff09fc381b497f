package cache

import (
	"context"
	"time"
)

// Scoped wraps a cache with a key prefix so independent users of one
// backend cannot collide: the preview server scopes per spec hash, the
// raster exporter per output format.
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a prefix-scoped view of a cache.
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close is a no-op: the wrapped cache may be shared, so closing it is
// the owner's responsibility.
func (s *Scoped) Close() error {
	return nil
}

var _ Cache = (*Scoped)(nil)
