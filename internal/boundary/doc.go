// Package boundary defines the format-agnostic data model for declared
// architectural boundaries, observed cross-module calls, and the read-only
// View that the check package queries.
//
// The model is produced once per run from declaration manifests and a
// call-graph snapshot, is immutable for the duration of validation, and is
// discarded afterwards. Concrete sources of the model, such as the HCL
// loader, live in separate packages and implement the Loader interface so
// that this package never depends on a particular declaration format.
package boundary
