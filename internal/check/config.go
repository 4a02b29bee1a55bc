package check

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vk/fence/internal/boundary"
)

// validateConfig verifies the structural invariants of the declarations:
// boundary names are unique, each recorded ancestor chain matches the chain
// of declared dot-path prefixes, and a nested boundary belongs to the same
// app as its parent.
func validateConfig(v *boundary.View) []Violation {
	var out []Violation

	for _, name := range v.DuplicateNames() {
		b, _ := v.Boundary(name)
		out = append(out, Violation{
			Kind:     InvalidConfig,
			Boundary: name,
			Detail:   "declared more than once",
			Loc:      b.Loc,
		})
	}

	for _, b := range v.All() {
		want := v.DeclaredAncestors(b.Name)
		if !slices.Equal(b.Ancestors, want) {
			out = append(out, Violation{
				Kind:     InvalidConfig,
				Boundary: b.Name,
				Detail: fmt.Sprintf("ancestor chain [%s] does not match declared enclosing boundaries [%s]",
					strings.Join(b.Ancestors, ", "), strings.Join(want, ", ")),
				Loc: b.Loc,
			})
		}
		if p := v.Parent(b); p != nil && p.App != b.App {
			out = append(out, Violation{
				Kind:     InvalidConfig,
				Boundary: b.Name,
				Detail:   fmt.Sprintf("belongs to app %q but its parent %s belongs to app %q", b.App, p.Name, p.App),
				Loc:      b.Loc,
			})
		}
	}

	out = append(out, validateIgnores(v)...)
	return out
}

// validateIgnores enforces that check toggles are only disabled on
// top-level boundaries, and that no boundary is nested under one with
// disabled checks.
func validateIgnores(v *boundary.View) []Violation {
	var out []Violation
	for _, b := range v.All() {
		if b.App != v.App() {
			continue
		}
		if (!b.CheckIn || !b.CheckOut) && len(b.Ancestors) > 0 {
			out = append(out, Violation{Kind: InvalidIgnores, Boundary: b.Name, Loc: b.Loc})
		}
		for _, name := range b.Ancestors {
			a, ok := v.Boundary(name)
			if !ok {
				continue
			}
			if !a.CheckIn || !a.CheckOut {
				out = append(out, Violation{
					Kind:     AncestorWithIgnoredChecks,
					Boundary: b.Name,
					Ancestor: a.Name,
					Loc:      b.Loc,
				})
			}
		}
	}
	return out
}
