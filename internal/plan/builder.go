package plan

import (
	"docmap-generator/internal/analyze"
	"docmap-generator/internal/config"
	"docmap-generator/internal/construct"
	"docmap-generator/internal/diagnostic"
)

// Build assembles the complete plan document for one mapper: resolved
// property plans, construction selection, and property bindings.
//
// Stages run in order and the first hard failure is terminal; diagnostics
// from every stage that ran are merged into the returned set.
func Build(
	graph *analyze.TypeGraph,
	t *analyze.Type,
	cfg *config.Normalized,
	known []analyze.TypeID,
) (*Document, *diagnostic.Diagnostics) {
	r := NewResolver(graph, known)

	props, diags := r.Resolve(t, cfg)
	if props == nil {
		return nil, diags
	}

	sel, selDiags := construct.Select(t, cfg.Name)
	diags.Merge(*selDiags)

	if selDiags.HasErrors() {
		return nil, diags
	}

	bindings, bindDiags := construct.DeriveBindings(t, sel, cfg.Name)
	diags.Merge(*bindDiags)

	if bindDiags.HasErrors() {
		return nil, diags
	}

	return &Document{
		Mapper:       cfg.Name,
		Model:        t.ID,
		Properties:   props,
		Construction: sel,
		Bindings:     bindings,
		Hooks:        cfg.Hooks,
	}, diags
}
