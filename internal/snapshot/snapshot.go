// Package snapshot decodes the call-graph snapshot produced by the
// extractor that traces a compiled unit: the app under check, every known
// module with its owning app, and the observed inter-module calls.
package snapshot

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/fence/internal/boundary"
	"github.com/vk/fence/internal/ctxlog"
)

// Snapshot is the decoded form of one snapshot file.
type Snapshot struct {
	// App is the deployable unit the snapshot was extracted from.
	App string `yaml:"app"`

	Modules []Module `yaml:"modules"`
	Calls   []Call   `yaml:"calls"`
}

// Module records the app ownership of one module of the compiled unit.
type Module struct {
	Name string `yaml:"name"`
	App  string `yaml:"app"`
}

// Call is one observed inter-module reference as the extractor saw it.
type Call struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Callee string `yaml:"callee"`
	Mode   string `yaml:"mode"`
	Macro  bool   `yaml:"macro"`
	File   string `yaml:"file"`
	Line   int    `yaml:"line"`
}

// Load reads and decodes a snapshot file.
func Load(ctx context.Context, path string) (*Snapshot, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read snapshot %s: %w", path, err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	if snap.App == "" {
		return nil, fmt.Errorf("snapshot %s names no app", path)
	}

	logger.Debug("Snapshot loaded.", "app", snap.App, "modules", len(snap.Modules), "calls", len(snap.Calls))
	return &snap, nil
}

// ModuleApps returns the module-to-app classification table.
func (s *Snapshot) ModuleApps() map[string]string {
	out := make(map[string]string, len(s.Modules))
	for _, m := range s.Modules {
		out[m.Name] = m.App
	}
	return out
}

// BoundaryCalls translates the raw call records into the model consumed by
// the checker. An unparseable mode is a malformed snapshot, not a finding.
func (s *Snapshot) BoundaryCalls() ([]boundary.Call, error) {
	out := make([]boundary.Call, 0, len(s.Calls))
	for i, c := range s.Calls {
		mode, err := boundary.ParseMode(c.Mode)
		if err != nil {
			return nil, fmt.Errorf("call #%d (%s -> %s): %w", i, c.From, c.To, err)
		}
		out = append(out, boundary.Call{
			FromModule: c.From,
			ToModule:   c.To,
			Callee:     c.Callee,
			Mode:       mode,
			Macro:      c.Macro,
			Loc:        boundary.SourceLocation{File: c.File, Line: c.Line},
		})
	}
	return out, nil
}
