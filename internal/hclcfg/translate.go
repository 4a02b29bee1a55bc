// This file translates decoded HCL boundary blocks into the
// format-agnostic model defined in the boundary package.

package hclcfg

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fence/internal/boundary"
	"github.com/vk/fence/internal/schema"
)

// declEvalContext lets manifests spell keyword attributes without quotes:
// `kind = strict` instead of `kind = "strict"`.
func declEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"strict":  cty.StringVal("strict"),
			"relaxed": cty.StringVal("relaxed"),
			"compile": cty.StringVal("compile"),
			"runtime": cty.StringVal("runtime"),
		},
	}
}

// translateBoundary converts one `boundary "name"` block into the model.
func translateBoundary(block *hcl.Block, defaultApp string) (boundary.Boundary, error) {
	name := block.Labels[0]

	var raw schema.Boundary
	if diags := gohcl.DecodeBody(block.Body, declEvalContext(), &raw); diags.HasErrors() {
		return boundary.Boundary{}, fmt.Errorf("invalid boundary %q: %w", name, diags)
	}

	app := raw.App
	if app == "" {
		app = defaultApp
	}
	if app == "" {
		return boundary.Boundary{}, fmt.Errorf("boundary %q declares no app and the manifest has no file-level 'app'", name)
	}

	kind, err := parseKind(raw.Kind)
	if err != nil {
		return boundary.Boundary{}, fmt.Errorf("boundary %q: %w", name, err)
	}

	b := boundary.Boundary{
		Name:     name,
		App:      app,
		Kind:     kind,
		CheckIn:  true,
		CheckOut: true,
		Implicit: raw.Implicit,
		Loc: boundary.SourceLocation{
			File: block.DefRange.Filename,
			Line: block.DefRange.Start.Line,
		},
	}

	if raw.Check != nil {
		if raw.Check.In != nil {
			b.CheckIn = *raw.Check.In
		}
		if raw.Check.Out != nil {
			b.CheckOut = *raw.Check.Out
		}
		for _, entry := range raw.Check.Apps {
			pairs, err := parseCheckedApp(entry)
			if err != nil {
				return boundary.Boundary{}, fmt.Errorf("boundary %q: %w", name, err)
			}
			b.CheckedApps = append(b.CheckedApps, pairs...)
		}
	}

	if raw.Deps != nil {
		for _, to := range raw.Deps.Compile {
			b.Deps = append(b.Deps, boundary.Dep{To: to, Mode: boundary.Compile})
		}
		for _, to := range raw.Deps.Runtime {
			b.Deps = append(b.Deps, boundary.Dep{To: to, Mode: boundary.Runtime})
		}
	}

	for _, e := range raw.Exports {
		if len(e.Except) > 0 && !e.Tree {
			return boundary.Boundary{}, fmt.Errorf("boundary %q: export %q uses 'except' without 'tree = true'", name, e.Module)
		}
		b.Exports = append(b.Exports, boundary.ExportRule{
			Module: e.Module,
			Tree:   e.Tree,
			Except: append([]string(nil), e.Except...),
		})
	}

	return b, nil
}

func parseKind(s string) (boundary.Kind, error) {
	switch s {
	case "", "relaxed":
		return boundary.Relaxed, nil
	case "strict":
		return boundary.Strict, nil
	}
	return 0, fmt.Errorf("unknown kind %q (expected 'strict' or 'relaxed')", s)
}

// parseCheckedApp expands one `check { apps = [...] }` entry. A bare app
// name checks both modes; "app:compile" or "app:runtime" checks one.
func parseCheckedApp(entry string) ([]boundary.AppMode, error) {
	app, modeStr, found := strings.Cut(entry, ":")
	if app == "" {
		return nil, fmt.Errorf("invalid checked app entry %q", entry)
	}
	if !found {
		return []boundary.AppMode{
			{App: app, Mode: boundary.Compile},
			{App: app, Mode: boundary.Runtime},
		}, nil
	}
	mode, err := boundary.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid checked app entry %q: %w", entry, err)
	}
	return []boundary.AppMode{{App: app, Mode: mode}}, nil
}
