// Package check is the validation engine: it decides whether every declared
// dependency, export, and observed cross-boundary call is legal under the
// hierarchical visibility rules, and reports every violation it finds.
//
// # Design
//
// Run executes a fixed set of independent validators against one immutable
// boundary.View plus the observed call list:
//
//   - config: structural invariants of the declarations themselves
//     (ancestor chains, parent app ownership, duplicate names, check
//     toggles on nested boundaries)
//   - deps: legality of every declared dependency edge
//   - exports: every export rule must resolve to a module the boundary owns
//   - cycles: distinct dependency cycles, deduplicated by vertex set
//   - unclassified: modules of the app under check owned by no boundary
//   - calls: legality of every observed cross-boundary call, including
//     multi-candidate resolution through re-exporting parents
//
// Validators never abort on the first finding: a single run surfaces the
// full set of violations. Because every validator reads only the immutable
// View, they execute concurrently; output order is fixed per validator and
// deterministic within each one, so repeated runs produce identical output.
//
// All findings are Violation values, never Go errors. A Go error from this
// package would indicate a broken input model, which the loaders rule out.
package check
