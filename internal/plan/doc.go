// Package plan turns classified model types plus validated mapper
// configuration into mapping-plan documents.
//
// Resolution is pure and deterministic: the same type graph and the same
// configuration always produce byte-identical plans. Precedence between
// conflicting signals is fixed, custom converter first, and no rule ever
// falls back silently; every conflict is a diagnostic.
package plan
