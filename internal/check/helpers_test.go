package check

import (
	"sort"
	"strings"

	"github.com/vk/fence/internal/boundary"
)

// newBoundary returns a boundary with the defaults the loader would apply:
// relaxed, both check directions enabled.
func newBoundary(name, app string) boundary.Boundary {
	return boundary.Boundary{
		Name:     name,
		App:      app,
		CheckIn:  true,
		CheckOut: true,
	}
}

// newView builds a view after computing each boundary's ancestor chain
// from the declared names, the way the loader does.
func newView(app string, moduleApps map[string]string, bs ...boundary.Boundary) *boundary.View {
	declared := make(map[string]struct{}, len(bs))
	for _, b := range bs {
		declared[b.Name] = struct{}{}
	}
	for i := range bs {
		bs[i].Ancestors = nil
		name := bs[i].Name
		for {
			j := strings.LastIndex(name, ".")
			if j < 0 {
				break
			}
			name = name[:j]
			if _, ok := declared[name]; ok {
				bs[i].Ancestors = append(bs[i].Ancestors, name)
			}
		}
	}
	return boundary.NewView(app, bs, moduleApps)
}

// kinds projects the violations onto their kinds, sorted, for compact
// assertions.
func kinds(violations []Violation) []string {
	var out []string
	for _, v := range violations {
		out = append(out, v.Kind.String())
	}
	sort.Strings(out)
	return out
}

// compileDep and runtimeDep are shorthands for declared edges.
func compileDep(to string) boundary.Dep { return boundary.Dep{To: to, Mode: boundary.Compile} }
func runtimeDep(to string) boundary.Dep { return boundary.Dep{To: to, Mode: boundary.Runtime} }
