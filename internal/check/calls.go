package check

import "github.com/vk/fence/internal/boundary"

// crossOutcome is the closed result set of judging the cross-boundary
// legality of one (caller boundary, candidate target) pair, before the
// export check is applied.
type crossOutcome int

const (
	crossLegal crossOutcome = iota
	crossForbidden
	crossRuntimeMismatch
)

// validateCalls judges every observed call. Candidate targets are resolved
// first: the boundary owning the callee module and, when the callee module
// is that boundary's own root, the re-exporting parent as a second
// candidate. Candidates are tried lazily in that order; the first legal one
// wins, otherwise the first failure is reported.
func validateCalls(v *boundary.View, calls []boundary.Call) []Violation {
	var out []Violation
	for _, call := range calls {
		from := v.BoundaryFor(call.FromModule)
		if from == nil || !from.CheckOut {
			continue
		}

		candidates := resolveTargets(v, call.ToModule)
		if len(candidates) == 0 {
			if viol := judgeExternalCall(v, from, call); viol != nil {
				out = append(out, *viol)
			}
			continue
		}

		var firstFailure *Violation
		legal := false
		for _, to := range candidates {
			viol := judgeCall(v, from, to, call)
			if viol == nil {
				legal = true
				break
			}
			if firstFailure == nil {
				firstFailure = viol
			}
		}
		if !legal {
			out = append(out, *firstFailure)
		}
	}
	return out
}

// resolveTargets returns the candidate target boundaries for a callee
// module: its owning boundary and, when the module is exactly that
// boundary's root module, the parent that may legitimately re-export it.
func resolveTargets(v *boundary.View, calleeModule string) []*boundary.Boundary {
	to := v.BoundaryFor(calleeModule)
	if to == nil {
		return nil
	}
	candidates := []*boundary.Boundary{to}
	if calleeModule == to.Name {
		if p := v.Parent(to); p != nil {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

// judgeExternalCall handles calls whose target resolves to no declared
// boundary. Cross-app calls are permitted by default; they become
// violations only when the caller is strict or the (app, mode) pair is
// explicitly flagged for checking. Same-app unresolved targets are the
// unclassified-module reporter's concern.
func judgeExternalCall(v *boundary.View, from *boundary.Boundary, call boundary.Call) *Violation {
	targetApp, known := v.AppOf(call.ToModule)
	if known && targetApp == from.App {
		return nil
	}
	if externalChecked(v, from, targetApp, call.Mode) {
		return &Violation{
			Kind:     InvalidExternalDependencyCall,
			Boundary: from.Name,
			Module:   call.ToModule,
			Callee:   call.Callee,
			Loc:      call.Loc,
		}
	}
	return nil
}

// externalChecked reports whether calls from the boundary into the given
// external app at the given mode require an explicit dependency. A strict
// caller checks every external app. Otherwise the (app, mode) pair is
// looked up in the checked_apps sets of the boundary and its ancestors,
// nearest first, stopping at (and including) the first strict ancestor: a
// strict boundary fences off its ancestors' permissiveness.
func externalChecked(v *boundary.View, from *boundary.Boundary, app string, mode boundary.Mode) bool {
	if from.Kind == boundary.Strict {
		return true
	}
	for b := from; b != nil; b = v.Parent(b) {
		for _, cm := range b.CheckedApps {
			if cm.App == app && cm.Mode == mode {
				return true
			}
		}
		if b.Kind == boundary.Strict {
			break
		}
	}
	return false
}

// judgeCall applies the single-candidate rule: inbound-check opt-out, then
// same-boundary short circuit, then cross-boundary legality, and finally
// the export membership requirement.
func judgeCall(v *boundary.View, from, to *boundary.Boundary, call boundary.Call) *Violation {
	if !to.CheckIn {
		return nil
	}
	if to == from {
		return nil
	}

	switch judgeCross(v, from, to, call) {
	case crossForbidden:
		return &Violation{Kind: ForbiddenCall, Boundary: from.Name, Target: to.Name, Callee: call.Callee, Loc: call.Loc}
	case crossRuntimeMismatch:
		return &Violation{Kind: RuntimeDependencyMismatch, Boundary: from.Name, Target: to.Name, Callee: call.Callee, Loc: call.Loc}
	case crossLegal:
	}

	if !exportsModule(to, call.ToModule) {
		return &Violation{Kind: NotExported, Boundary: from.Name, Target: to.Name, Callee: call.Callee, Loc: call.Loc}
	}
	return nil
}

// judgeCross decides whether the caller boundary may reference the target
// boundary at all, ignoring exports.
func judgeCross(v *boundary.View, from, to *boundary.Boundary, call boundary.Call) crossOutcome {
	legal := false
	switch {
	case v.Parent(to) == from:
		// A boundary may always call into its own child.
		legal = true
	case v.Siblings(from, to) || v.Parent(from) == to:
		// Siblings and the own parent must be declared as direct
		// dependencies; inheritance does not apply here.
		legal = depAuthorizes(from.Deps, to.Name, call)
	case to.App != from.App && !externalChecked(v, from, to.App, call.Mode):
		// Implicit cross-app permission.
		legal = true
	default:
		legal = inheritedDepAuthorizes(v, from, to.Name, call)
	}
	if legal {
		return crossLegal
	}
	if call.Mode == boundary.Runtime && compileOnlyDep(from, to.Name) {
		// The relationship exists, but at the wrong mode.
		return crossRuntimeMismatch
	}
	return crossForbidden
}

// depAuthorizes reports whether any of the declared edges on target covers
// the call: a runtime edge covers either mode, a compile edge covers
// compile-time references and macro invocations.
func depAuthorizes(deps []boundary.Dep, target string, call boundary.Call) bool {
	for _, d := range deps {
		if d.To != target {
			continue
		}
		switch d.Mode {
		case boundary.Runtime:
			return true
		case boundary.Compile:
			if call.Mode == boundary.Compile || call.Macro {
				return true
			}
		}
	}
	return false
}

// inheritedDepAuthorizes scans the caller's own dependencies and then its
// ancestors' nearest-first, stopping after the first strict scope.
func inheritedDepAuthorizes(v *boundary.View, from *boundary.Boundary, target string, call boundary.Call) bool {
	for b := from; b != nil; b = v.Parent(b) {
		if depAuthorizes(b.Deps, target, call) {
			return true
		}
		if b.Kind == boundary.Strict {
			break
		}
	}
	return false
}

// compileOnlyDep reports whether the boundary declares a compile edge on
// target without a runtime edge.
func compileOnlyDep(b *boundary.Boundary, target string) bool {
	return b.HasDep(target, boundary.Compile) && !b.HasDep(target, boundary.Runtime)
}

// exportsModule is the export membership test: implicit boundaries export
// everything they own, every boundary exports its own root module, and
// otherwise some rule must match. Subtree rules use segment-aware prefix
// matching against the dotted module path.
func exportsModule(b *boundary.Boundary, module string) bool {
	if b.Implicit || module == b.Name {
		return true
	}
	for _, rule := range b.Exports {
		if !rule.Tree {
			if module == rule.Module {
				return true
			}
			continue
		}
		if !boundary.Underneath(module, rule.Module) {
			continue
		}
		excepted := false
		for _, e := range rule.Except {
			if module == e {
				excepted = true
				break
			}
		}
		if !excepted {
			return true
		}
	}
	return false
}
