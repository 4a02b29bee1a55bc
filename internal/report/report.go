// Package report renders the checker's violation list as stable,
// human-readable diagnostics.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/vk/fence/internal/check"
)

// Renderer writes diagnostics, optionally styled for terminals.
type Renderer struct {
	locStyle  lipgloss.Style
	kindStyle lipgloss.Style
	okStyle   lipgloss.Style
}

// NewRenderer creates a renderer. With color disabled every style is a
// no-op and the output is plain text.
func NewRenderer(color bool) *Renderer {
	if !color {
		return &Renderer{}
	}
	return &Renderer{
		locStyle:  lipgloss.NewStyle().Bold(true),
		kindStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		okStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// Render writes one line per violation, sorted by (file, line, message) so
// the report is deterministic regardless of validator scheduling, followed
// by a summary line.
func (r *Renderer) Render(w io.Writer, violations []check.Violation) {
	if len(violations) == 0 {
		fmt.Fprintln(w, r.okStyle.Render("no boundary violations found"))
		return
	}

	sorted := append([]check.Violation(nil), violations...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Loc.File != b.Loc.File {
			return a.Loc.File < b.Loc.File
		}
		if a.Loc.Line != b.Loc.Line {
			return a.Loc.Line < b.Loc.Line
		}
		return a.Message() < b.Message()
	})

	for _, v := range sorted {
		fmt.Fprintf(w, "%s %s %s\n",
			r.locStyle.Render(v.Loc.String()+":"),
			r.kindStyle.Render("["+v.Kind.String()+"]"),
			v.Message(),
		)
	}
	fmt.Fprintf(w, "\n%d boundary violation(s) found\n", len(sorted))
}
