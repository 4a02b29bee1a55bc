package boundary

import (
	"fmt"
	"strings"
)

// Kind controls how strictly a boundary treats calls that are not covered
// by its own declared dependencies.
type Kind int

const (
	// Relaxed boundaries inherit their ancestors' declared dependencies and
	// benefit from the implicit cross-app permission.
	Relaxed Kind = iota
	// Strict boundaries require explicit, non-inherited permission for
	// every call, and fence off ancestor scanning for their descendants.
	Strict
)

func (k Kind) String() string {
	switch k {
	case Relaxed:
		return "relaxed"
	case Strict:
		return "strict"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Mode distinguishes compile-time references (macro expansion, code
// generation) from references only resolved at run time. It tags both
// declared dependency edges and observed calls.
type Mode int

const (
	Compile Mode = iota
	Runtime
)

func (m Mode) String() string {
	switch m {
	case Compile:
		return "compile"
	case Runtime:
		return "runtime"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts the snapshot/manifest spelling of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "compile":
		return Compile, nil
	case "runtime":
		return Runtime, nil
	}
	return 0, fmt.Errorf("unknown mode %q (expected 'compile' or 'runtime')", s)
}

// SourceLocation points at the declaration or call site for diagnostics.
type SourceLocation struct {
	File string
	Line int
}

func (l SourceLocation) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Dep is a declared permission for the owning boundary to call into the
// target boundary at the given mode. A Runtime edge covers calls of either
// mode; a Compile edge covers only compile-time references and macro calls.
type Dep struct {
	To   string
	Mode Mode
}

// AppMode names an external app whose calls at the given mode are subject
// to explicit dependency checking.
type AppMode struct {
	App  string
	Mode Mode
}

// ExportRule declares which modules inside a boundary are visible to
// outside callers. An exact rule (Tree false) matches a single module. A
// subtree rule (Tree true) matches the root module and everything beneath
// it, minus the names in Except.
type ExportRule struct {
	Module string
	Tree   bool
	Except []string
}

// Boundary is one named architectural unit with its dependency and export
// policy. Names are dot-separated hierarchical paths; nesting is derived
// from the name, not from containment in the declaration source.
type Boundary struct {
	Name string
	App  string
	Loc  SourceLocation
	Kind Kind

	// CheckIn false disables validation of calls into this boundary;
	// CheckOut false disables validation of calls leaving it.
	CheckIn  bool
	CheckOut bool

	// CheckedApps lists external (app, mode) pairs whose calls must be
	// covered by an explicit dependency instead of the permissive default.
	CheckedApps []AppMode

	// Ancestors holds the enclosing declared boundary names, nearest
	// first. Empty for a top-level boundary.
	Ancestors []string

	Deps    []Dep
	Exports []ExportRule

	// Implicit marks every module owned by the boundary as exported,
	// regardless of Exports.
	Implicit bool
}

// ParentName returns the name of the immediate enclosing boundary, or ""
// for a top-level boundary.
func (b *Boundary) ParentName() string {
	if len(b.Ancestors) == 0 {
		return ""
	}
	return b.Ancestors[0]
}

// HasDep reports whether the boundary declares a dependency on target at
// exactly the given mode.
func (b *Boundary) HasDep(target string, mode Mode) bool {
	for _, d := range b.Deps {
		if d.To == target && d.Mode == mode {
			return true
		}
	}
	return false
}

// Call is one observed reference between two modules, extracted from the
// compiled unit by an external tracer.
type Call struct {
	FromModule string
	ToModule   string

	// Callee is the referenced symbol, kept for diagnostics only.
	Callee string

	Mode Mode

	// Macro is set when the referenced symbol is macro-exported by the
	// callee module; a compile-time dependency still authorizes invoking
	// such symbols at a nominally runtime call site.
	Macro bool

	Loc SourceLocation
}

// Underneath reports whether module lies at or under root in the module
// hierarchy. The test is segment-aware: "foo.ba" does not cover "foo.bar".
func Underneath(module, root string) bool {
	return module == root || strings.HasPrefix(module, root+".")
}
