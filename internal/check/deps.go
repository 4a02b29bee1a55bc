package check

import "github.com/vk/fence/internal/boundary"

// depOutcome is the closed result set of judging one declared dependency
// edge. The switch in validateDeps is exhaustive over it.
type depOutcome int

const (
	depLegal depOutcome = iota
	depUnknown
	depCheckInDisabled
	depForbidden
)

// validateDeps checks every declared dependency edge of every boundary for
// existence, inbound-check eligibility, and structural legality.
func validateDeps(v *boundary.View) []Violation {
	var out []Violation
	for _, b := range v.All() {
		for _, d := range b.Deps {
			switch judgeDep(v, b, d) {
			case depLegal:
			case depUnknown:
				out = append(out, Violation{Kind: UnknownDependency, Boundary: b.Name, Target: d.To, Loc: b.Loc})
			case depCheckInDisabled:
				out = append(out, Violation{Kind: CheckInDisabledDependency, Boundary: b.Name, Target: d.To, Loc: b.Loc})
			case depForbidden:
				out = append(out, Violation{Kind: ForbiddenDependency, Boundary: b.Name, Target: d.To, Loc: b.Loc})
			}
		}
	}
	return out
}

func judgeDep(v *boundary.View, b *boundary.Boundary, d boundary.Dep) depOutcome {
	target, ok := v.Boundary(d.To)
	if !ok {
		return depUnknown
	}
	if !target.CheckIn {
		return depCheckInDisabled
	}
	if d.To == b.Name {
		// Self-dependency is always illegal.
		return depForbidden
	}

	parent := v.Parent(b)
	switch {
	case parent != nil && parent.Name == d.To:
		// A boundary may declare its own parent.
		return depLegal
	case target.ParentName() == b.ParentName():
		// Siblings under one parent, or two top-level boundaries.
		return depLegal
	case parent != nil && parent.HasDep(d.To, d.Mode):
		// A boundary inherits its parent's declared dependencies.
		return depLegal
	}
	return depForbidden
}
