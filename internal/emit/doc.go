// Package emit lowers rendered instruction lists into Go source files: one
// Marshal and one Unmarshal function per mapper.
//
// Emission walks the instruction lists in order and produces code whose
// statement order matches the step order, so regenerating from an unchanged
// plan yields byte-identical files. Leaf scalar conversions go through the
// primitive package at runtime; emission only decides the casts around them.
package emit
