package check

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vk/fence/internal/boundary"
	"github.com/vk/fence/internal/ctxlog"
)

// Run executes every validator against the immutable view and call list
// and returns the concatenated violation list. Validators are independent
// and read-only, so they run concurrently; their outputs are concatenated
// in a fixed order, and each validator is deterministic internally, so the
// result is stable across runs over the same input.
//
// An empty result means the checked unit passed.
func Run(ctx context.Context, v *boundary.View, calls []boundary.Call) []Violation {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Check run started.", "boundaries", len(v.All()), "calls", len(calls))

	validators := []func() []Violation{
		func() []Violation { return validateConfig(v) },
		func() []Violation { return validateDeps(v) },
		func() []Violation { return validateExports(v) },
		func() []Violation { return detectCycles(v) },
		func() []Violation { return reportUnclassified(v) },
		func() []Violation { return validateCalls(v, calls) },
	}

	results := make([][]Violation, len(validators))
	g, _ := errgroup.WithContext(ctx)
	for i, validate := range validators {
		i, validate := i, validate
		g.Go(func() error {
			results[i] = validate()
			return nil
		})
	}
	// The validators return findings, never errors.
	_ = g.Wait()

	var out []Violation
	for _, r := range results {
		out = append(out, r...)
	}
	logger.Debug("Check run finished.", "violations", len(out))
	return out
}

// reportUnclassified flags every module of the app under check that
// belongs to no declared boundary.
func reportUnclassified(v *boundary.View) []Violation {
	var out []Violation
	for _, m := range v.UnclassifiedModules() {
		out = append(out, Violation{Kind: UnclassifiedModule, Module: m})
	}
	return out
}
