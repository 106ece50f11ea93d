// Package construct decides, per model type, how reverse mapping builds the
// object: default-construct plus assignment, or a specific constructor. It
// then derives one binding per property.
//
// Selection is a state machine over four ordered priorities; the first match
// wins. There is never a silent fallback to a less safe strategy: a required
// parameter with no matching property, or a read-only property nothing can
// populate, fails analysis.
package construct

import (
	"strings"

	"docmap-generator/internal/analyze"
	"docmap-generator/internal/common"
	"docmap-generator/internal/diagnostic"
)

// Select decides the construction strategy for a model type.
//
// Priorities, first match wins:
//  1. Exactly one attributed constructor. Two or more attributed
//     constructors fail, naming the second offender.
//  2. No parameterless constructor exists: the constructor with the most
//     parameters wins, first declared on ties.
//  3. A parameterless constructor exists and every property is either
//     settable or beyond the reach of any constructor parameter:
//     default-construct.
//  4. Otherwise some read-only property is only satisfiable through a
//     constructor: most parameters wins, same tie-break as (2).
func Select(t *analyze.Type, mapper string) (Selection, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	none := Selection{Index: -1}

	// Priority 1: attributed constructor.
	attributed := -1

	for i := range t.Constructors {
		if !t.Constructors[i].Attributed {
			continue
		}

		if attributed >= 0 {
			diags.AddError(diagnostic.CodeMultipleAttributedConstructors, mapper, "",
				"multiple attributed constructors: constructor %d is also attributed", i)

			return none, diags
		}

		attributed = i
	}

	if attributed >= 0 {
		return finishSelection(t, attributed, mapper, diags)
	}

	// No declared constructors: default-construct is the only option.
	// Read-only properties then surface during binding derivation.
	if len(t.Constructors) == 0 {
		return none, diags
	}

	parameterless := common.IndexOf(t.Constructors, func(c analyze.Constructor) bool {
		return len(c.Parameters) == 0
	})

	// Priority 2: no parameterless constructor means one must be used.
	if parameterless < 0 && len(t.Constructors) > 0 {
		return finishSelection(t, widestConstructor(t), mapper, diags)
	}

	// Priority 3: default-construct when assignment can cover everything.
	if !anyReadOnlyNeedsConstructor(t) {
		return none, diags
	}

	// Priority 4: a read-only property is only reachable via a constructor.
	return finishSelection(t, widestConstructor(t), mapper, diags)
}

// widestConstructor returns the index of the constructor with the most
// parameters; declaration order breaks ties (first declared wins).
func widestConstructor(t *analyze.Type) int {
	best := 0
	for i := 1; i < len(t.Constructors); i++ {
		if len(t.Constructors[i].Parameters) > len(t.Constructors[best].Parameters) {
			best = i
		}
	}

	return best
}

// anyReadOnlyNeedsConstructor reports whether some non-settable property has
// a constructor parameter that could populate it.
func anyReadOnlyNeedsConstructor(t *analyze.Type) bool {
	for i := range t.Properties {
		p := &t.Properties[i]
		if p.Settable() {
			continue
		}

		for j := range t.Constructors {
			for k := range t.Constructors[j].Parameters {
				if strings.EqualFold(t.Constructors[j].Parameters[k].Name, p.Name) {
					return true
				}
			}
		}
	}

	return false
}

// finishSelection matches the chosen constructor's parameters to properties.
// Matching is case-insensitive by name only; an unmatched parameter must be
// optional or selection fails.
func finishSelection(
	t *analyze.Type,
	index int,
	mapper string,
	diags *diagnostic.Diagnostics,
) (Selection, *diagnostic.Diagnostics) {
	ctor := &t.Constructors[index]
	sel := Selection{Index: index}

	for i := range ctor.Parameters {
		param := &ctor.Parameters[i]
		m := ParameterMatch{Parameter: param.Name}

		if j := common.IndexOf(t.Properties, func(p analyze.Property) bool {
			return strings.EqualFold(p.Name, param.Name)
		}); j >= 0 {
			m.Property = t.Properties[j].Name
		}

		if !m.Matched() && !param.Optional {
			diags.AddError(diagnostic.CodeUnmatchedParameter, mapper, param.Name,
				"constructor parameter %q matches no property and has no default", param.Name)
		}

		sel.Matches = append(sel.Matches, m)
	}

	if diags.HasErrors() {
		return Selection{Index: -1}, diags
	}

	return sel, diags
}

// DeriveBindings produces one binding per property, in declaration order:
// matched constructor parameter first, then init-time assignment, then plain
// assignment. A read-only property no parameter matched is a hard failure,
// never silently dropped.
func DeriveBindings(
	t *analyze.Type,
	sel Selection,
	mapper string,
) ([]PropertyBinding, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	paramFor := make(map[string]int)

	for i := range sel.Matches {
		if sel.Matches[i].Matched() {
			paramFor[sel.Matches[i].Property] = i
		}
	}

	var out []PropertyBinding

	for i := range t.Properties {
		p := &t.Properties[i]

		if idx, ok := paramFor[p.Name]; ok {
			out = append(out, PropertyBinding{
				Property:       p.Name,
				Kind:           BindConstructorParameter,
				ParameterIndex: idx,
			})

			continue
		}

		switch p.Setter {
		case analyze.AccessInitOnly:
			out = append(out, PropertyBinding{
				Property:       p.Name,
				Kind:           BindInitAssignment,
				ParameterIndex: -1,
			})
		case analyze.AccessPublic:
			out = append(out, PropertyBinding{
				Property:       p.Name,
				Kind:           BindPostAssignment,
				ParameterIndex: -1,
			})
		default:
			diags.AddError(diagnostic.CodeReadOnlyUnbound, mapper, p.Name,
				"read-only property %q is not matched by any constructor parameter", p.Name)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return out, diags
}
