// Package analyze owns the model snapshot (types, properties, constructors)
// and the type graph analyzer that classifies every property into a mapping
// category and rejects cyclic nested-object graphs.
//
// Analysis is pure: it operates over immutable snapshots supplied by a host
// front end (or built by the Go package Loader) and produces new immutable
// structures. Traversal follows declaration order so diagnostics are stable
// across runs on unchanged input.
package analyze
