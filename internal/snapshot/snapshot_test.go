package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/fence/internal/boundary"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calls.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sample = `
app: shop
modules:
  - name: shop.core
    app: shop
  - name: shop.web
    app: shop
  - name: ecto.query
    app: ecto
calls:
  - from: shop.web
    to: shop.core
    callee: shop.core.get_user/1
    mode: runtime
    file: lib/web.ex
    line: 14
  - from: shop.core
    to: ecto.query
    callee: ecto.query.from/2
    mode: compile
    macro: true
    file: lib/core.ex
    line: 3
`

func TestLoad(t *testing.T) {
	snap, err := Load(context.Background(), writeSnapshot(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "shop", snap.App)
	assert.Len(t, snap.Modules, 3)
	assert.Len(t, snap.Calls, 2)

	apps := snap.ModuleApps()
	assert.Equal(t, "shop", apps["shop.core"])
	assert.Equal(t, "ecto", apps["ecto.query"])

	calls, err := snap.BoundaryCalls()
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, boundary.Call{
		FromModule: "shop.web",
		ToModule:   "shop.core",
		Callee:     "shop.core.get_user/1",
		Mode:       boundary.Runtime,
		Loc:        boundary.SourceLocation{File: "lib/web.ex", Line: 14},
	}, calls[0])
	assert.True(t, calls[1].Macro)
	assert.Equal(t, boundary.Compile, calls[1].Mode)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "cannot read snapshot")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(context.Background(), writeSnapshot(t, "app: [unclosed"))
		assert.ErrorContains(t, err, "failed to decode snapshot")
	})

	t.Run("missing app", func(t *testing.T) {
		_, err := Load(context.Background(), writeSnapshot(t, "modules: []"))
		assert.ErrorContains(t, err, "names no app")
	})

	t.Run("bad call mode", func(t *testing.T) {
		snap, err := Load(context.Background(), writeSnapshot(t, `
app: shop
calls:
  - from: a
    to: b
    mode: linktime
`))
		require.NoError(t, err)
		_, err = snap.BoundaryCalls()
		assert.ErrorContains(t, err, "unknown mode")
	})
}
