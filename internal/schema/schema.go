// Package schema holds the HCL-facing declaration structures for boundary
// manifests, decoded by the hclcfg loader and translated into the
// format-agnostic boundary model.
package schema

// Check represents the `check` block of a boundary: per-boundary toggles
// for incoming and outgoing validation, plus the external apps whose calls
// must be covered by explicit dependencies.
type Check struct {
	In  *bool `hcl:"in,optional"`
	Out *bool `hcl:"out,optional"`

	// Apps entries are "app" (both modes) or "app:compile" / "app:runtime".
	Apps []string `hcl:"apps,optional"`
}

// Deps represents the `deps` block: the boundaries this one is allowed to
// call, split by edge mode.
type Deps struct {
	Compile []string `hcl:"compile,optional"`
	Runtime []string `hcl:"runtime,optional"`
}

// Export represents one `export` block. Without `tree`, exactly the named
// module is exported. With `tree = true`, everything under it is exported
// except the modules listed in `except`.
type Export struct {
	Module string   `hcl:"module,label"`
	Tree   bool     `hcl:"tree,optional"`
	Except []string `hcl:"except,optional"`
}

// Boundary represents the body of a `boundary "name"` block. The name
// label and the declaration range are captured separately by the loader,
// which walks blocks with the low-level HCL API to keep source locations.
type Boundary struct {
	App      string    `hcl:"app,optional"`
	Kind     string    `hcl:"kind,optional"`
	Implicit bool      `hcl:"implicit_exports,optional"`
	Check    *Check    `hcl:"check,block"`
	Deps     *Deps     `hcl:"deps,block"`
	Exports  []*Export `hcl:"export,block"`
}
