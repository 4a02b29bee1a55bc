// Package app wires the linter together: configuration, logging, the
// declaration loader (optionally cached), the snapshot reader, the check
// engine, and the report renderer.
package app
