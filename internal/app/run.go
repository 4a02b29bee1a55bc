package app

import (
	"context"
	"fmt"

	"github.com/vk/fence/internal/boundary"
	"github.com/vk/fence/internal/check"
	"github.com/vk/fence/internal/ctxlog"
	"github.com/vk/fence/internal/report"
	"github.com/vk/fence/internal/snapshot"
)

// ErrViolationsFound is returned by Run when the checked unit failed; the
// CLI maps it to a non-zero exit code after the report was already printed.
var ErrViolationsFound = fmt.Errorf("boundary violations found")

// Run executes one full check: load declarations, load the snapshot, build
// the view, run every validator, and render the report.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	decls, err := a.loader.Load(ctx, cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load boundary declarations: %w", err)
	}
	a.logger.Debug("Boundary declarations ready.", "count", len(decls))

	snap, err := snapshot.Load(ctx, cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to load call-graph snapshot: %w", err)
	}
	calls, err := snap.BoundaryCalls()
	if err != nil {
		return fmt.Errorf("malformed call-graph snapshot: %w", err)
	}

	view := boundary.NewView(snap.App, decls, snap.ModuleApps())
	violations := check.Run(ctx, view, calls)

	renderer := report.NewRenderer(cfg.Color)
	renderer.Render(a.outW, violations)

	if len(violations) > 0 {
		return ErrViolationsFound
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
