package check

import (
	"sort"
	"strings"

	"github.com/vk/fence/internal/boundary"
)

// detectCycles builds the boundary dependency graph (edge mode is
// irrelevant here) and reports every distinct dependency cycle. Cycles are
// deduplicated by vertex set: rotations and reversals over the same
// boundaries are one report. Adjacency lists and start vertices are sorted,
// so the reported cycles are deterministic.
func detectCycles(v *boundary.View) []Violation {
	adj := make(map[string][]string)
	var names []string
	for _, b := range v.All() {
		names = append(names, b.Name)
		targets := make(map[string]struct{})
		for _, d := range b.Deps {
			if _, ok := v.Boundary(d.To); !ok {
				continue // unknown targets are the dependency validator's concern
			}
			if d.To == b.Name {
				continue // self-dependency is already reported as forbidden
			}
			targets[d.To] = struct{}{}
		}
		for t := range targets {
			adj[b.Name] = append(adj[b.Name], t)
		}
		sort.Strings(adj[b.Name])
	}

	var out []Violation
	seen := make(map[string]struct{})
	for _, start := range names {
		cycle := findCycle(adj, start)
		if cycle == nil {
			continue
		}
		key := vertexSetKey(cycle)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		b, _ := v.Boundary(start)
		out = append(out, Violation{Kind: Cycle, Cycle: cycle, Loc: b.Loc})
	}
	return out
}

// findCycle searches depth-first for any simple cycle passing through
// start, returning the vertices in traversal order (start first) or nil.
// Each vertex is entered at most once per search, so the walk is bounded
// even on dense graphs.
func findCycle(adj map[string][]string, start string) []string {
	visited := map[string]bool{start: true}
	var path []string

	var visit func(from string) bool
	visit = func(from string) bool {
		path = append(path, from)
		for _, to := range adj[from] {
			if to == start {
				return true
			}
			if visited[to] {
				continue
			}
			visited[to] = true
			if visit(to) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}

	if visit(start) {
		return path
	}
	return nil
}

func vertexSetKey(cycle []string) string {
	vs := append([]string(nil), cycle...)
	sort.Strings(vs)
	return strings.Join(vs, "\x00")
}
