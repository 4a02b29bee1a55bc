package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/fence/internal/boundary"
)

type stubLoader struct {
	decls []boundary.Boundary
	err   error
}

func (l *stubLoader) Load(_ context.Context, _ ...string) ([]boundary.Boundary, error) {
	return l.decls, l.err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T, snapshotContent string) *Config {
	t.Helper()
	cfg, err := NewConfig(Config{
		ConfigPath:   "unused-by-stub.hcl",
		SnapshotPath: writeFile(t, "calls.yaml", snapshotContent),
		LogFormat:    "text",
		LogLevel:     "warn",
	})
	require.NoError(t, err)
	return cfg
}

func TestNewConfigValidation(t *testing.T) {
	_, err := NewConfig(Config{SnapshotPath: "s"})
	assert.ErrorContains(t, err, "ConfigPath")

	_, err = NewConfig(Config{ConfigPath: "c"})
	assert.ErrorContains(t, err, "SnapshotPath")

	_, err = NewConfig(Config{ConfigPath: "c", SnapshotPath: "s", CacheSize: -1})
	assert.ErrorContains(t, err, "CacheSize")
}

func TestRunCleanUnit(t *testing.T) {
	loader := &stubLoader{decls: []boundary.Boundary{
		{Name: "core", App: "shop", CheckIn: true, CheckOut: true, Implicit: true},
		{Name: "web", App: "shop", CheckIn: true, CheckOut: true,
			Deps: []boundary.Dep{{To: "core", Mode: boundary.Runtime}}},
	}}
	cfg := testConfig(t, `
app: shop
modules:
  - name: core
    app: shop
  - name: web
    app: shop
calls:
  - from: web
    to: core
    callee: core.fetch/1
    mode: runtime
`)

	var out, errOut bytes.Buffer
	a, err := NewApp(&out, &errOut, cfg, loader)
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Contains(t, out.String(), "no boundary violations found")
}

func TestRunReportsViolations(t *testing.T) {
	loader := &stubLoader{decls: []boundary.Boundary{
		{Name: "core", App: "shop", CheckIn: true, CheckOut: true},
		{Name: "web", App: "shop", CheckIn: true, CheckOut: true},
	}}
	cfg := testConfig(t, `
app: shop
modules:
  - name: core
    app: shop
  - name: web
    app: shop
calls:
  - from: web
    to: core
    callee: core.fetch/1
    mode: runtime
`)

	var out, errOut bytes.Buffer
	a, err := NewApp(&out, &errOut, cfg, loader)
	require.NoError(t, err)

	err = a.Run(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrViolationsFound)
	assert.Contains(t, out.String(), "forbidden_call")
	assert.Contains(t, out.String(), "1 boundary violation(s) found")
}

func TestRunLoaderFailure(t *testing.T) {
	loader := &stubLoader{err: errors.New("disk on fire")}
	cfg := testConfig(t, "app: shop\n")

	var out, errOut bytes.Buffer
	a, err := NewApp(&out, &errOut, cfg, loader)
	require.NoError(t, err)

	err = a.Run(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to load boundary declarations")
}

func TestRunSnapshotFailure(t *testing.T) {
	loader := &stubLoader{}
	cfg, err := NewConfig(Config{
		ConfigPath:   "unused-by-stub.hcl",
		SnapshotPath: filepath.Join(t.TempDir(), "missing.yaml"),
	})
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	a, err := NewApp(&out, &errOut, cfg, loader)
	require.NoError(t, err)

	err = a.Run(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to load call-graph snapshot")
}
