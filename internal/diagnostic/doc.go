// Package diagnostic provides structured errors, warnings, and informational
// messages for the mapping-plan compiler.
//
// Key capabilities:
//   - Stable machine-readable codes per failure cause
//   - Message templates with positional arguments
//   - Opaque source-location passthrough for host tooling
//   - A distinct internal-error class for compiler invariant violations
package diagnostic
