package check

import (
	"fmt"
	"strings"

	"github.com/vk/fence/internal/boundary"
)

// Kind is the closed set of violation categories the engine can report.
// Rendering switches over this set exhaustively, so adding a category
// forces every consumer to be revisited.
type Kind int

const (
	InvalidConfig Kind = iota
	InvalidIgnores
	AncestorWithIgnoredChecks
	UnknownDependency
	CheckInDisabledDependency
	ForbiddenDependency
	UnknownExport
	ExportNotInBoundary
	Cycle
	UnclassifiedModule
	InvalidExternalDependencyCall
	ForbiddenCall
	RuntimeDependencyMismatch
	NotExported
)

func (k Kind) String() string {
	switch k {
	case InvalidConfig:
		return "invalid_config"
	case InvalidIgnores:
		return "invalid_ignores"
	case AncestorWithIgnoredChecks:
		return "ancestor_with_ignored_checks"
	case UnknownDependency:
		return "unknown_dependency"
	case CheckInDisabledDependency:
		return "check_in_disabled_dependency"
	case ForbiddenDependency:
		return "forbidden_dependency"
	case UnknownExport:
		return "unknown_export"
	case ExportNotInBoundary:
		return "export_not_in_boundary"
	case Cycle:
		return "cycle"
	case UnclassifiedModule:
		return "unclassified_module"
	case InvalidExternalDependencyCall:
		return "invalid_external_dependency_call"
	case ForbiddenCall:
		return "forbidden_call"
	case RuntimeDependencyMismatch:
		return "runtime_dependency_mismatch"
	case NotExported:
		return "not_exported"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Violation is one reported rule breach, carrying the data needed to render
// a diagnostic. Fields beyond Kind are populated per category; unused ones
// stay zero.
type Violation struct {
	Kind Kind

	// Boundary names the boundary being validated, or the caller boundary
	// for call violations.
	Boundary string

	// Target names the offending dependency target or callee boundary.
	Target string

	// Module names the module involved in export, classification, and
	// external-call violations.
	Module string

	// Ancestor names the fenced ancestor for AncestorWithIgnoredChecks.
	Ancestor string

	// Cycle holds the boundary names forming a dependency cycle, in
	// traversal order.
	Cycle []string

	// Callee is the referenced symbol for call violations, diagnostics only.
	Callee string

	// Detail carries free-form context for InvalidConfig.
	Detail string

	Loc boundary.SourceLocation
}

// Message renders the human-readable description of the violation, without
// the source location prefix.
func (v Violation) Message() string {
	switch v.Kind {
	case InvalidConfig:
		return fmt.Sprintf("invalid boundary configuration for %s: %s", v.Boundary, v.Detail)
	case InvalidIgnores:
		return fmt.Sprintf("boundary %s cannot disable checks: only top-level boundaries may do so", v.Boundary)
	case AncestorWithIgnoredChecks:
		return fmt.Sprintf("boundary %s is nested under %s, which has checks disabled", v.Boundary, v.Ancestor)
	case UnknownDependency:
		return fmt.Sprintf("boundary %s depends on unknown boundary %s", v.Boundary, v.Target)
	case CheckInDisabledDependency:
		return fmt.Sprintf("boundary %s depends on %s, which has incoming checks disabled", v.Boundary, v.Target)
	case ForbiddenDependency:
		return fmt.Sprintf("boundary %s may not depend on %s", v.Boundary, v.Target)
	case UnknownExport:
		return fmt.Sprintf("boundary %s exports unknown module %s", v.Boundary, v.Module)
	case ExportNotInBoundary:
		return fmt.Sprintf("boundary %s exports module %s, which it does not own", v.Boundary, v.Module)
	case Cycle:
		return fmt.Sprintf("dependency cycle: %s", strings.Join(v.Cycle, " -> "))
	case UnclassifiedModule:
		return fmt.Sprintf("module %s belongs to no declared boundary", v.Module)
	case InvalidExternalDependencyCall:
		return fmt.Sprintf("call from %s to %s (%s) is not covered by an explicit external dependency", v.Boundary, v.Module, v.Callee)
	case ForbiddenCall:
		return fmt.Sprintf("call from %s into boundary %s (%s) is forbidden", v.Boundary, v.Target, v.Callee)
	case RuntimeDependencyMismatch:
		return fmt.Sprintf("call from %s into %s (%s) needs a runtime dependency, but only a compile-time one is declared", v.Boundary, v.Target, v.Callee)
	case NotExported:
		return fmt.Sprintf("call from %s references %s, which boundary %s does not export", v.Boundary, v.Callee, v.Target)
	}
	return fmt.Sprintf("unknown violation kind %d", int(v.Kind))
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Loc, v.Message())
}
