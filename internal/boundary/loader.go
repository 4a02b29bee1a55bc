package boundary

import "context"

// Loader is the interface for a format-specific declaration loader. It
// reads boundary declarations from the given paths and returns them fully
// populated, including ancestor chains and source locations.
//
// Implementations must be safe for repeated use; the declcache package
// wraps a Loader with an explicit, caller-owned cache.
type Loader interface {
	Load(ctx context.Context, paths ...string) ([]Boundary, error)
}
