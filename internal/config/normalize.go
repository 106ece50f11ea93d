package config

import (
	"docmap-generator/internal/analyze"
	"docmap-generator/internal/diagnostic"
	"docmap-generator/internal/match"
)

// Normalized is a validated mapper configuration, ready for the strategy
// resolver. Overrides are keyed by member name, exactly one per member.
type Normalized struct {
	Name      string
	Naming    NamingFunc
	Required  *bool
	Overrides map[string]*Override
	Hooks     Hooks
}

// Override returns the override for a member, or nil.
func (n *Normalized) Override(member string) *Override {
	return n.Overrides[member]
}

// Normalize validates a mapper configuration against its model type.
//
// Failures reported here are configuration errors: an override targeting a
// member the model does not declare (with ranked "did you mean" suggestions),
// or more than one override for the same member.
func Normalize(mc *MapperConfig, model *analyze.Type) (*Normalized, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	n := &Normalized{
		Name:      mc.Name,
		Naming:    Naming(mc.Naming),
		Required:  mc.Required,
		Overrides: make(map[string]*Override, len(mc.Overrides)),
		Hooks:     mc.Hooks,
	}

	if n.Name == "" {
		n.Name = model.ID.String()
	}

	names := model.PropertyNames()

	for i := range mc.Overrides {
		ov := &mc.Overrides[i]

		if model.Property(ov.Member) == nil {
			d := diagnostic.Diagnostic{
				Severity: diagnostic.SeverityError,
				Code:     diagnostic.CodeInvalidOverrideTarget,
				Message:  "override targets unknown member %q",
				Args:     []any{ov.Member},
				Mapper:   n.Name,
				Property: ov.Member,
				Suggestions: match.Rank(
					ov.Member, names, match.DefaultSuggestionScore, 3,
				).Names(),
			}
			diags.Add(d)

			continue
		}

		if _, dup := n.Overrides[ov.Member]; dup {
			diags.AddError(diagnostic.CodeDuplicateOverride, n.Name, ov.Member,
				"duplicate override for member %q", ov.Member)

			continue
		}

		n.Overrides[ov.Member] = ov
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return n, diags
}
