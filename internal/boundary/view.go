package boundary

import (
	"sort"
	"strings"
)

// View is the immutable, queryable snapshot of all declared boundaries plus
// the module classification for one compiled unit. Boundaries are held in a
// flat map keyed by name with parent relationships resolved by name lookup,
// so ancestor walks and sibling tests are plain map accesses.
type View struct {
	app        string
	byName     map[string]*Boundary
	names      []string
	duplicated []string
	moduleApps map[string]string
	owners     map[string]string
}

// NewView builds a View for the app under check. moduleApps maps every
// module of the compiled unit (including modules of dependency apps that
// appear in the call graph) to its owning app. Construction never fails;
// declaration-level invariant breaches are surfaced later by the checker.
func NewView(app string, boundaries []Boundary, moduleApps map[string]string) *View {
	v := &View{
		app:        app,
		byName:     make(map[string]*Boundary, len(boundaries)),
		moduleApps: make(map[string]string, len(moduleApps)),
		owners:     make(map[string]string, len(moduleApps)),
	}
	for i := range boundaries {
		b := &boundaries[i]
		if _, dup := v.byName[b.Name]; dup {
			// First declaration wins; the checker reports the duplicate.
			v.duplicated = append(v.duplicated, b.Name)
			continue
		}
		v.byName[b.Name] = b
		v.names = append(v.names, b.Name)
	}
	sort.Strings(v.names)
	sort.Strings(v.duplicated)

	for m, a := range moduleApps {
		v.moduleApps[m] = a
		if owner := v.classify(m); owner != "" {
			v.owners[m] = owner
		}
	}
	return v
}

// classify finds the deepest declared boundary whose name is a dot-path
// prefix of the module name.
func (v *View) classify(module string) string {
	name := module
	for {
		if _, ok := v.byName[name]; ok {
			return name
		}
		i := strings.LastIndex(name, ".")
		if i < 0 {
			return ""
		}
		name = name[:i]
	}
}

// App returns the name of the app under check.
func (v *View) App() string { return v.app }

// DuplicateNames lists boundary names that were declared more than once,
// in name order.
func (v *View) DuplicateNames() []string { return v.duplicated }

// Boundary looks up a declared boundary by name.
func (v *View) Boundary(name string) (*Boundary, bool) {
	b, ok := v.byName[name]
	return b, ok
}

// All returns every declared boundary in name order. The slice is shared;
// callers must not mutate it.
func (v *View) All() []*Boundary {
	out := make([]*Boundary, 0, len(v.names))
	for _, name := range v.names {
		out = append(out, v.byName[name])
	}
	return out
}

// Parent resolves the immediate enclosing boundary, or nil for a top-level
// boundary (or when the recorded ancestor was never declared).
func (v *View) Parent(b *Boundary) *Boundary {
	p := b.ParentName()
	if p == "" {
		return nil
	}
	return v.byName[p]
}

// Siblings reports whether two boundaries share the same immediate parent.
// Two top-level boundaries are not siblings: both parents must exist.
func (v *View) Siblings(a, b *Boundary) bool {
	pa, pb := v.Parent(a), v.Parent(b)
	return pa != nil && pa == pb
}

// AppOf returns the owning app of a module, if the module is known to the
// snapshot.
func (v *View) AppOf(module string) (string, bool) {
	a, ok := v.moduleApps[module]
	return a, ok
}

// BoundaryFor returns the boundary owning the module, or nil when no
// declared boundary name prefixes it. Classification is purely name-based,
// so modules of dependency apps resolve when an external boundary is
// declared for them.
func (v *View) BoundaryFor(module string) *Boundary {
	if owner, ok := v.owners[module]; ok {
		return v.byName[owner]
	}
	if owner := v.classify(module); owner != "" {
		return v.byName[owner]
	}
	return nil
}

// UnclassifiedModules lists the modules of the app under check that belong
// to no declared boundary, in name order.
func (v *View) UnclassifiedModules() []string {
	var out []string
	for m, a := range v.moduleApps {
		if a != v.app {
			continue
		}
		if _, ok := v.owners[m]; !ok {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// DeclaredAncestors computes the chain of declared enclosing boundaries for
// a name, nearest first. Used by the checker to verify the ancestor chain
// recorded on each boundary.
func (v *View) DeclaredAncestors(name string) []string {
	var out []string
	for {
		i := strings.LastIndex(name, ".")
		if i < 0 {
			return out
		}
		name = name[:i]
		if _, ok := v.byName[name]; ok {
			out = append(out, name)
		}
	}
}
