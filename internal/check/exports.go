package check

import "github.com/vk/fence/internal/boundary"

// validateExports checks that every module named by an export rule resolves
// to a real module owned by the boundary, or to the root module of a direct
// child boundary. For subtree rules only the exception list is validated;
// the implicit "everything under the root" is not individually checked.
//
// Findings are deduplicated per (boundary, module) pair, keeping the first
// occurrence in declaration order.
func validateExports(v *boundary.View) []Violation {
	var out []Violation
	type key struct{ boundary, module string }
	seen := make(map[key]struct{})

	report := func(b *boundary.Boundary, module string) {
		k := key{b.Name, module}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		if viol := judgeExport(v, b, module); viol != nil {
			out = append(out, *viol)
		}
	}

	for _, b := range v.All() {
		for _, rule := range b.Exports {
			if !rule.Tree {
				report(b, rule.Module)
				continue
			}
			for _, m := range rule.Except {
				report(b, m)
			}
		}
	}
	return out
}

func judgeExport(v *boundary.View, b *boundary.Boundary, module string) *Violation {
	if _, known := v.AppOf(module); !known {
		return &Violation{Kind: UnknownExport, Boundary: b.Name, Module: module, Loc: b.Loc}
	}
	// A boundary may re-export the root module of a direct child.
	if child, ok := v.Boundary(module); ok && child.ParentName() == b.Name {
		return nil
	}
	if owner := v.BoundaryFor(module); owner == nil || owner.Name != b.Name {
		return &Violation{Kind: ExportNotInBoundary, Boundary: b.Name, Module: module, Loc: b.Loc}
	}
	return nil
}
