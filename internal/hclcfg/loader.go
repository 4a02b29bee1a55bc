// Package hclcfg is the HCL implementation of the boundary.Loader
// interface: it discovers `.hcl` boundary manifests, decodes them, and
// translates them into the format-agnostic boundary model.
package hclcfg

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fence/internal/boundary"
	"github.com/vk/fence/internal/ctxlog"
	"github.com/vk/fence/internal/fsutil"
)

// Loader parses HCL boundary manifests.
type Loader struct{}

// NewLoader creates a new HCL declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// rootSchema describes the top level of a manifest file: an optional
// file-wide `app` attribute plus any number of `boundary "name"` blocks.
// Walking blocks through the low-level API keeps each block's DefRange,
// which becomes the boundary's source location.
var rootSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "app"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "boundary", LabelNames: []string{"name"}},
	},
}

// Load implements boundary.Loader. Each path may be a single manifest file
// or a directory searched recursively for `.hcl` files. The returned
// boundaries carry computed ancestor chains and are sorted by name.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]boundary.Boundary, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := discoverManifests(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered boundary manifests.", "count", len(files))

	parser := hclparse.NewParser()
	var all []boundary.Boundary
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}

		content, diags := hclFile.Body.Content(rootSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		defaultApp, err := fileApp(content)
		if err != nil {
			return nil, fmt.Errorf("in manifest %s: %w", file, err)
		}

		for _, block := range content.Blocks {
			b, err := translateBoundary(block, defaultApp)
			if err != nil {
				return nil, fmt.Errorf("in manifest %s: %w", file, err)
			}
			all = append(all, b)
		}
	}

	populateAncestors(all)
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	logger.Debug("Boundary declarations loaded.", "count", len(all))
	return all, nil
}

// fileApp evaluates the optional file-level `app` attribute.
func fileApp(content *hcl.BodyContent) (string, error) {
	attr, ok := content.Attributes["app"]
	if !ok {
		return "", nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("invalid 'app' attribute: %w", diags)
	}
	if val.Type() != cty.String {
		return "", fmt.Errorf("the 'app' attribute must be a string, got %s", val.Type().FriendlyName())
	}
	return val.AsString(), nil
}

// discoverManifests expands each path into the list of manifest files it
// names: a file path is taken as-is, a directory is searched recursively.
func discoverManifests(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read manifest path %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to search %s for manifests: %w", path, err)
		}
		files = append(files, found...)
	}
	sort.Strings(files)
	return files, nil
}

// populateAncestors records, for every boundary, the chain of enclosing
// declared boundary names, nearest first. Only declared prefixes count.
func populateAncestors(all []boundary.Boundary) {
	declared := make(map[string]struct{}, len(all))
	for i := range all {
		declared[all[i].Name] = struct{}{}
	}
	for i := range all {
		all[i].Ancestors = nil
		name := all[i].Name
		for {
			j := strings.LastIndex(name, ".")
			if j < 0 {
				break
			}
			name = name[:j]
			if _, ok := declared[name]; ok {
				all[i].Ancestors = append(all[i].Ancestors, name)
			}
		}
	}
}
