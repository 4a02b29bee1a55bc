// Package declcache wraps a boundary.Loader with an explicit LRU cache of
// parsed declaration models. The cache is owned by whoever constructs it,
// never by process-wide state, so repeated validation runs in tests stay
// fully isolated from each other.
package declcache

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vk/fence/internal/boundary"
	"github.com/vk/fence/internal/ctxlog"
)

// Cache is a caching decorator around a boundary.Loader, keyed by the
// requested path set.
type Cache struct {
	loader boundary.Loader
	models *lru.Cache[string, []boundary.Boundary]
}

// New creates a cache holding up to size parsed declaration models.
func New(loader boundary.Loader, size int) (*Cache, error) {
	models, err := lru.New[string, []boundary.Boundary](size)
	if err != nil {
		return nil, err
	}
	return &Cache{loader: loader, models: models}, nil
}

// Load implements boundary.Loader. A hit returns a copy of the cached
// declarations so callers cannot corrupt the cache through the shared
// backing array.
func (c *Cache) Load(ctx context.Context, paths ...string) ([]boundary.Boundary, error) {
	key := cacheKey(paths)
	if cached, ok := c.models.Get(key); ok {
		ctxlog.FromContext(ctx).Debug("Declaration cache hit.", "key", key)
		return append([]boundary.Boundary(nil), cached...), nil
	}

	loaded, err := c.loader.Load(ctx, paths...)
	if err != nil {
		return nil, err
	}
	c.models.Add(key, append([]boundary.Boundary(nil), loaded...))
	return loaded, nil
}

// Invalidate drops the cached model for the given path set, if present.
func (c *Cache) Invalidate(paths ...string) {
	c.models.Remove(cacheKey(paths))
}

// Purge drops every cached model.
func (c *Cache) Purge() {
	c.models.Purge()
}

func cacheKey(paths []string) string {
	return strings.Join(paths, "\x00")
}
