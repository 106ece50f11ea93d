package render

import (
	"docmap-generator/document"
	"docmap-generator/internal/construct"
	"docmap-generator/internal/diagnostic"
	"docmap-generator/internal/plan"
)

// Render lowers one plan document into its forward and reverse instruction
// lists. Steps come out in the document's property order, untouched.
//
// A plan that reaches rendering with an invalid strategy is an invariant
// violation upstream and reports as an internal error, never a user-facing
// configuration error.
func Render(doc *plan.Document) (*Rendered, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	out := &Rendered{
		Forward: ForwardPlan{
			Mapper:     doc.Mapper,
			Model:      doc.Model,
			BeforeHook: doc.Hooks.BeforeForward,
			AfterHook:  doc.Hooks.AfterForward,
		},
		Reverse: ReversePlan{
			Mapper:       doc.Mapper,
			Model:        doc.Model,
			BeforeHook:   doc.Hooks.BeforeReverse,
			AfterHook:    doc.Hooks.AfterReverse,
			Construction: doc.Construction,
		},
	}

	bindings := bindingIndex(doc)

	for i := range doc.Properties {
		p := &doc.Properties[i]

		conv, ok := lowerConversion(p, doc.Mapper, p.Property, diags)
		if !ok {
			return nil, diags
		}

		out.Forward.Steps = append(out.Forward.Steps, ForwardStep{
			Property:    p.Property,
			WireName:    p.WireName,
			SkipIfNull:  p.OmitNull,
			SkipIfEmpty: p.OmitEmpty,
			Convert:     conv,
		})

		step := ReverseStep{
			WireName:       p.WireName,
			Property:       p.Property,
			Required:       p.Required,
			ParameterIndex: -1,
			Convert:        conv,
		}

		if b, found := bindings[p.Property]; found {
			step.Binding = b.Kind
			step.ParameterIndex = b.ParameterIndex
		}

		out.Reverse.Steps = append(out.Reverse.Steps, step)
	}

	return out, diags
}

func bindingIndex(doc *plan.Document) map[string]*constructBinding {
	idx := make(map[string]*constructBinding, len(doc.Bindings))
	for i := range doc.Bindings {
		b := &doc.Bindings[i]
		idx[b.Property] = &constructBinding{Kind: b.Kind, ParameterIndex: b.ParameterIndex}
	}

	return idx
}

type constructBinding struct {
	Kind           construct.BindingKind
	ParameterIndex int
}

// lowerConversion translates one strategy tree into a conversion tree.
// The path argument is the property path used in internal-error diagnostics.
func lowerConversion(
	p *plan.PropertyPlan,
	mapper, path string,
	diags *diagnostic.Diagnostics,
) (Conversion, bool) {
	s := &p.Strategy

	switch s.Kind {
	case plan.StrategyBuiltinScalar:
		return Conversion{
			Kind:     ConvertScalar,
			TypeName: s.TypeName,
			WireKind: p.WireKind,
			Scalar:   s.Scalar,
		}, true

	case plan.StrategyEnum:
		return Conversion{
			Kind:       ConvertEnum,
			TypeName:   s.TypeName,
			WireKind:   p.WireKind,
			Scalar:     s.Scalar,
			EnumFormat: s.EnumFormat,
		}, true

	case plan.StrategyNestedMapper:
		return Conversion{
			Kind:     ConvertNested,
			TypeName: s.TypeName,
			WireKind: document.KindMap,
			Nested:   s.Nested,
		}, true

	case plan.StrategyCustomMethod:
		return Conversion{
			Kind:     ConvertCustom,
			TypeName: s.TypeName,
			Forward:  s.Forward,
			Reverse:  s.Reverse,
		}, true

	case plan.StrategyCollection:
		elem, ok := lowerConversion(s.Elem, mapper, path+"[]", diags)
		if !ok {
			return Conversion{}, false
		}

		kind := ConvertList
		if p.WireKind.IsSet() {
			kind = ConvertSet
		}

		return Conversion{Kind: kind, TypeName: s.TypeName, WireKind: p.WireKind, Elem: &elem}, true

	case plan.StrategyMap:
		key, ok := lowerConversion(s.Key, mapper, path+"[key]", diags)
		if !ok {
			return Conversion{}, false
		}

		value, ok := lowerConversion(s.Value, mapper, path+"[value]", diags)
		if !ok {
			return Conversion{}, false
		}

		return Conversion{
			Kind:     ConvertMap,
			TypeName: s.TypeName,
			WireKind: document.KindMap,
			Key:      &key,
			Value:    &value,
		}, true

	default:
		diags.AddInternal(mapper, path, "invalid strategy reached rendering")
		return Conversion{}, false
	}
}
