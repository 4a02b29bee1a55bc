package declcache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/fence/internal/boundary"
)

// countingLoader serves a fixed declaration set and counts invocations.
type countingLoader struct {
	decls []boundary.Boundary
	err   error
	calls int
}

func (l *countingLoader) Load(_ context.Context, _ ...string) ([]boundary.Boundary, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.decls, nil
}

func TestCacheHit(t *testing.T) {
	inner := &countingLoader{decls: []boundary.Boundary{{Name: "core", App: "shop"}}}
	cache, err := New(inner, 4)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := cache.Load(ctx, "boundaries.hcl")
	require.NoError(t, err)
	second, err := cache.Load(ctx, "boundaries.hcl")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
}

func TestCacheKeyIsPathSet(t *testing.T) {
	inner := &countingLoader{}
	cache, err := New(inner, 4)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cache.Load(ctx, "a.hcl", "b.hcl")
	require.NoError(t, err)
	_, err = cache.Load(ctx, "a.hcl")
	require.NoError(t, err)
	_, err = cache.Load(ctx, "a.hcl", "b.hcl")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCacheHitReturnsCopy(t *testing.T) {
	inner := &countingLoader{decls: []boundary.Boundary{{Name: "core", App: "shop"}}}
	cache, err := New(inner, 4)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cache.Load(ctx, "boundaries.hcl")
	require.NoError(t, err)

	hit, err := cache.Load(ctx, "boundaries.hcl")
	require.NoError(t, err)
	hit[0].Name = "mutated"

	again, err := cache.Load(ctx, "boundaries.hcl")
	require.NoError(t, err)
	assert.Equal(t, "core", again[0].Name)
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	inner := &countingLoader{err: errors.New("parse failed")}
	cache, err := New(inner, 4)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cache.Load(ctx, "boundaries.hcl")
	require.Error(t, err)
	_, err = cache.Load(ctx, "boundaries.hcl")
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCacheInvalidate(t *testing.T) {
	inner := &countingLoader{}
	cache, err := New(inner, 4)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cache.Load(ctx, "boundaries.hcl")
	require.NoError(t, err)
	cache.Invalidate("boundaries.hcl")
	_, err = cache.Load(ctx, "boundaries.hcl")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachePurge(t *testing.T) {
	inner := &countingLoader{}
	cache, err := New(inner, 4)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cache.Load(ctx, "a.hcl")
	require.NoError(t, err)
	_, err = cache.Load(ctx, "b.hcl")
	require.NoError(t, err)
	cache.Purge()
	_, err = cache.Load(ctx, "a.hcl")
	require.NoError(t, err)

	assert.Equal(t, 3, inner.calls)
}
