package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/fence/internal/app"
	"github.com/vk/fence/internal/cli"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const cleanManifest = `
app = "shop"

boundary "core" {
  export "core.user" {}
}

boundary "web" {
  deps {
    runtime = ["core"]
  }
}
`

const cleanSnapshot = `
app: shop
modules:
  - name: core
    app: shop
  - name: core.user
    app: shop
  - name: web
    app: shop
calls:
  - from: web
    to: core
    callee: core.user.get/1
    mode: runtime
    file: lib/web.ex
    line: 7
`

func TestRunCleanUnit(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "boundaries.hcl", cleanManifest)
	snap := writeFile(t, dir, "calls.yaml", cleanSnapshot)

	var out, errOut bytes.Buffer
	err := run(&out, &errOut, []string{"-c", manifest, "-s", snap, "--no-color"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "no boundary violations found")
}

func TestRunViolations(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "boundaries.hcl", `
app = "shop"

boundary "core" {}
boundary "web" {}
`)
	snap := writeFile(t, dir, "calls.yaml", cleanSnapshot)

	var out, errOut bytes.Buffer
	err := run(&out, &errOut, []string{"-c", manifest, "-s", snap, "--no-color"})
	require.ErrorIs(t, err, app.ErrViolationsFound)
	assert.Contains(t, out.String(), "boundary violation(s) found")
}

func TestRunMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "boundaries.hcl", `boundary "core" {`)
	snap := writeFile(t, dir, "calls.yaml", cleanSnapshot)

	var out, errOut bytes.Buffer
	err := run(&out, &errOut, []string{"-c", manifest, "-s", snap})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load boundary declarations")
}

func TestRunUsageError(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run(&out, &errOut, []string{"-c", "boundaries.hcl"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRunHelpExitsCleanly(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, run(&out, &errOut, []string{"--help"}))
}
