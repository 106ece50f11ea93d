package plan

import (
	"docmap-generator/document"
	"docmap-generator/internal/analyze"
	"docmap-generator/internal/config"
	"docmap-generator/internal/diagnostic"
	"docmap-generator/primitive"
)

// Resolver reconciles property classifications with declarative overrides
// into one unambiguous plan per property.
type Resolver struct {
	graph *analyze.TypeGraph
	// known holds the model types for which a mapper is available, either
	// generated in this batch or assumed present. Nested-object resolution
	// checks it eagerly rather than deferring to use time.
	known map[analyze.TypeID]bool
}

// NewResolver creates a Resolver over an analyzed type graph.
func NewResolver(graph *analyze.TypeGraph, known []analyze.TypeID) *Resolver {
	k := make(map[analyze.TypeID]bool, len(known))
	for _, id := range known {
		k[id] = true
	}

	return &Resolver{graph: graph, known: k}
}

// Resolve produces one PropertyPlan per property of the model type, in
// declaration order. The first hard failure is terminal for the mapper:
// no partial plan list is returned. Warnings accumulate across properties.
func (r *Resolver) Resolve(
	t *analyze.Type,
	cfg *config.Normalized,
) ([]PropertyPlan, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	cls := r.graph.Classifications(t.ID)
	if len(cls) != len(t.Properties) {
		diags.AddInternal(cfg.Name, "",
			"classification count %d does not match property count %d",
			len(cls), len(t.Properties))

		return nil, diags
	}

	plans := make([]PropertyPlan, 0, len(t.Properties))

	for i := range t.Properties {
		p, ok := r.resolveProperty(&t.Properties[i], &cls[i], cfg, diags)
		if !ok {
			return nil, diags
		}

		plans = append(plans, p)
	}

	return plans, diags
}

// resolveProperty applies the precedence rules for one property:
//  1. a custom converter pair wins outright and bypasses kind and
//     requiredness inference;
//  2. an explicit wire name replaces the naming convention's;
//  3. an explicit wire kind must be compatible with the classification;
//  4. requiredness defaults from nullability;
//  5. optional properties omit null values unless configured otherwise.
func (r *Resolver) resolveProperty(
	prop *analyze.Property,
	cls *analyze.Classification,
	cfg *config.Normalized,
	diags *diagnostic.Diagnostics,
) (PropertyPlan, bool) {
	ov := cfg.Override(prop.Name)
	mapper := cfg.Name

	// Precedence rule 2: a configured wire name beats the inline tag hint,
	// which beats the naming convention.
	name := cfg.Naming(prop.Name)
	if prop.Tag.WireName != "" {
		name = prop.Tag.WireName
	}

	if ov != nil && ov.Name != "" {
		name = ov.Name
	}

	// Precedence rule 1: custom converters bypass everything else. The kind
	// override, if any, is ignored without diagnosing a conflict.
	if ov != nil && ov.HasCustomConverter() {
		if ov.Forward == "" || ov.Reverse == "" {
			diags.AddError(diagnostic.CodeConverterPairIncomplete, mapper, prop.Name,
				"custom converter needs both halves: forward %q, reverse %q",
				ov.Forward, ov.Reverse)

			return PropertyPlan{}, false
		}

		p := PropertyPlan{
			Property: prop.Name,
			WireName: name,
			WireKind: document.KindInvalid, // the converter owns the representation
			Strategy: Strategy{
				Kind:     StrategyCustomMethod,
				TypeName: cls.TypeName,
				Forward:  ov.Forward,
				Reverse:  ov.Reverse,
			},
		}

		if ov.Required != nil {
			p.Required = *ov.Required
		}

		r.applyOmission(&p, prop, ov, cls, mapper, diags)

		return p, true
	}

	if cls.Category == analyze.CategoryUnsupported {
		code := diagnostic.CodeUnsupportedMember
		if cls.Scalar != 0 {
			code = diagnostic.CodeUnsupportedScalar
		}

		diags.AddError(code, mapper, prop.Name,
			"type %s is not mappable: %s", cls.TypeName, cls.Reason)

		return PropertyPlan{}, false
	}

	kindOverride, ok := r.parseKindOverride(ov, mapper, prop.Name, diags)
	if !ok {
		return PropertyPlan{}, false
	}

	p := PropertyPlan{
		Property: prop.Name,
		WireName: name,
		Required: r.resolveRequired(prop, ov, cfg),
	}

	if !r.resolveStrategy(&p, prop.Name, cls, kindOverride, mapper, diags) {
		return PropertyPlan{}, false
	}

	r.applyOmission(&p, prop, ov, cls, mapper, diags)

	return p, true
}

func (r *Resolver) parseKindOverride(
	ov *config.Override,
	mapper, property string,
	diags *diagnostic.Diagnostics,
) (document.Kind, bool) {
	if ov == nil || ov.Kind == "" {
		return document.KindInvalid, true
	}

	k, err := document.ParseKind(ov.Kind)
	if err != nil {
		diags.AddError(diagnostic.CodeUnknownWireKind, mapper, property,
			"unknown wire kind %q", ov.Kind)

		return document.KindInvalid, false
	}

	return k, true
}

// resolveRequired applies precedence rule 4: explicit override, then the
// inline tag hint, then the mapper's default policy, then nullability of the
// declared type.
func (r *Resolver) resolveRequired(
	prop *analyze.Property,
	ov *config.Override,
	cfg *config.Normalized,
) bool {
	if ov != nil && ov.Required != nil {
		return *ov.Required
	}

	if prop.Tag.Required {
		return true
	}

	if cfg.Required != nil {
		return *cfg.Required
	}

	return !prop.Nullable
}

// applyOmission applies precedence rule 5. Requiredness and omission are
// validated independently: a required property may legally omit nulls on the
// forward path while the reverse path still enforces presence. That pairing
// gets a warning so the configuration author sees the asymmetry.
func (r *Resolver) applyOmission(
	p *PropertyPlan,
	prop *analyze.Property,
	ov *config.Override,
	cls *analyze.Classification,
	mapper string,
	diags *diagnostic.Diagnostics,
) {
	switch {
	case ov != nil && ov.OmitNull != nil:
		p.OmitNull = *ov.OmitNull
		if p.OmitNull && p.Required {
			diags.AddWarning(diagnostic.CodeRequiredOmittable, mapper, p.Property,
				"property is required yet configured to omit null values; "+
					"a null forward value will fail the reverse path")
		}
	case prop.Tag.OmitNull:
		p.OmitNull = true
	case !p.Required:
		p.OmitNull = true
	}

	// Omit-if-empty-string only applies to string-classified properties;
	// elsewhere it is ignored, not erroneous.
	if cls.Category == analyze.CategoryScalar && cls.Scalar == primitive.KindString {
		switch {
		case ov != nil && ov.OmitEmpty != nil:
			p.OmitEmpty = *ov.OmitEmpty
		case prop.Tag.OmitEmpty:
			p.OmitEmpty = true
		}
	}
}

// resolveStrategy fills the plan's wire kind and conversion strategy from
// the classification, honoring a compatible explicit kind override.
func (r *Resolver) resolveStrategy(
	p *PropertyPlan,
	property string,
	cls *analyze.Classification,
	kindOverride document.Kind,
	mapper string,
	diags *diagnostic.Diagnostics,
) bool {
	switch cls.Category {
	case analyze.CategoryScalar:
		p.WireKind = primitive.DefaultWireKind(cls.Scalar)

		if kindOverride != document.KindInvalid {
			if !primitive.CanRepresent(cls.Scalar, kindOverride) {
				diags.AddError(diagnostic.CodeIncompatibleKindOverride, mapper, property,
					"wire kind %s cannot carry a %s value", kindOverride, cls.Scalar)

				return false
			}

			p.WireKind = kindOverride
		}

		p.Strategy = Strategy{Kind: StrategyBuiltinScalar, TypeName: cls.TypeName, Scalar: cls.Scalar}

		return true

	case analyze.CategoryEnum:
		// The wire representation follows the underlying type: string enums
		// carry their symbolic value, integer enums their numeric one. A
		// cross-representation override has no lossless conversion.
		p.WireKind, p.Strategy = enumStrategy(cls)

		if kindOverride != document.KindInvalid && kindOverride != p.WireKind {
			diags.AddError(diagnostic.CodeIncompatibleKindOverride, mapper, property,
				"wire kind %s cannot carry enum %s with %s underlying",
				kindOverride, cls.TypeName, cls.Scalar)

			return false
		}

		return true

	case analyze.CategoryCollection:
		return r.resolveCollection(p, property, cls, kindOverride, mapper, diags)

	case analyze.CategoryMap:
		return r.resolveMap(p, property, cls, kindOverride, mapper, diags)

	case analyze.CategoryNestedObject:
		if !r.known[cls.Object.ID] {
			diags.AddError(diagnostic.CodeUnresolvedDependency, mapper, property,
				"nested type %s has no mapper", cls.Object.ID)

			return false
		}

		if kindOverride != document.KindInvalid && kindOverride != document.KindMap {
			diags.AddError(diagnostic.CodeIncompatibleKindOverride, mapper, property,
				"wire kind %s cannot carry nested object %s", kindOverride, cls.TypeName)

			return false
		}

		p.WireKind = document.KindMap
		p.Strategy = Strategy{Kind: StrategyNestedMapper, TypeName: cls.TypeName, Nested: cls.Object.ID}

		return true

	default:
		diags.AddInternal(mapper, property,
			"classification category %s reached strategy resolution", cls.Category)

		return false
	}
}

// enumStrategy derives the enum wire kind and strategy from the underlying
// type: symbolic names for string enums, numeric values for integer enums.
func enumStrategy(cls *analyze.Classification) (document.Kind, Strategy) {
	kind := document.KindString
	format := EnumAsString

	if cls.Scalar.IsInteger() {
		kind = document.KindNumber
		format = EnumAsNumber
	}

	return kind, Strategy{
		Kind:       StrategyEnum,
		TypeName:   cls.TypeName,
		Scalar:     cls.Scalar,
		EnumFormat: format,
	}
}

// resolveCollection handles CollectionOf: list kind by default, a native set
// kind when explicitly overridden for scalar string/number elements.
func (r *Resolver) resolveCollection(
	p *PropertyPlan,
	property string,
	cls *analyze.Classification,
	kindOverride document.Kind,
	mapper string,
	diags *diagnostic.Diagnostics,
) bool {
	elem, ok := r.resolveTemplate(cls.Elem, property, mapper, diags)
	if !ok {
		return false
	}

	p.WireKind = document.KindList

	if kindOverride != document.KindInvalid {
		switch kindOverride {
		case document.KindList:
		case document.KindStringSet, document.KindNumberSet:
			setKind, settable := setKindFor(cls.Elem)
			if !settable || setKind != kindOverride {
				diags.AddError(diagnostic.CodeIncompatibleKindOverride, mapper, property,
					"collection of %s cannot form a %s", cls.Elem.TypeName, kindOverride)

				return false
			}

			p.WireKind = kindOverride
		default:
			diags.AddError(diagnostic.CodeIncompatibleKindOverride, mapper, property,
				"wire kind %s cannot carry collection %s", kindOverride, cls.TypeName)

			return false
		}
	}

	p.Strategy = Strategy{Kind: StrategyCollection, TypeName: cls.TypeName, Elem: elem}

	return true
}

// setKindFor returns the native set kind a collection of the given element
// classification may occupy, if any.
func setKindFor(elem *analyze.Classification) (document.Kind, bool) {
	if elem == nil || elem.Category != analyze.CategoryScalar {
		return document.KindInvalid, false
	}

	return primitive.SetElementKind(elem.Scalar)
}

func (r *Resolver) resolveMap(
	p *PropertyPlan,
	property string,
	cls *analyze.Classification,
	kindOverride document.Kind,
	mapper string,
	diags *diagnostic.Diagnostics,
) bool {
	if !stringLikeKey(cls.Key) {
		diags.AddError(diagnostic.CodeMapKeyNotString, mapper, property,
			"map key type %s is not string-like", cls.Key.TypeName)

		return false
	}

	key, ok := r.resolveTemplate(cls.Key, property, mapper, diags)
	if !ok {
		return false
	}

	value, ok := r.resolveTemplate(cls.Value, property, mapper, diags)
	if !ok {
		return false
	}

	if kindOverride != document.KindInvalid && kindOverride != document.KindMap {
		diags.AddError(diagnostic.CodeIncompatibleKindOverride, mapper, property,
			"wire kind %s cannot carry map %s", kindOverride, cls.TypeName)

		return false
	}

	p.WireKind = document.KindMap
	p.Strategy = Strategy{Kind: StrategyMap, TypeName: cls.TypeName, Key: key, Value: value}

	return true
}

// stringLikeKey admits string and guid scalar keys plus string-underlying
// enums. Anything else is the distinct non-string-key failure, never folded
// into the generic unsupported-type error.
func stringLikeKey(key *analyze.Classification) bool {
	if key == nil {
		return false
	}

	switch key.Category {
	case analyze.CategoryScalar:
		return key.Scalar.IsStringLike()
	case analyze.CategoryEnum:
		return key.Scalar == primitive.KindString
	default:
		return false
	}
}

// resolveTemplate resolves the element, key, or value slot of a container.
// Container overrides never reach nested slots: templates resolve with
// defaults only. A non-mappable slot becomes the container's own
// element-type diagnostic.
func (r *Resolver) resolveTemplate(
	cls *analyze.Classification,
	container, mapper string,
	diags *diagnostic.Diagnostics,
) (*PropertyPlan, bool) {
	t := &PropertyPlan{}

	switch cls.Category {
	case analyze.CategoryScalar:
		t.WireKind = primitive.DefaultWireKind(cls.Scalar)
		t.Strategy = Strategy{Kind: StrategyBuiltinScalar, TypeName: cls.TypeName, Scalar: cls.Scalar}

	case analyze.CategoryEnum:
		t.WireKind, t.Strategy = enumStrategy(cls)

	case analyze.CategoryCollection:
		elem, ok := r.resolveTemplate(cls.Elem, container, mapper, diags)
		if !ok {
			return nil, false
		}

		t.WireKind = document.KindList
		t.Strategy = Strategy{Kind: StrategyCollection, TypeName: cls.TypeName, Elem: elem}

	case analyze.CategoryMap:
		if !stringLikeKey(cls.Key) {
			diags.AddError(diagnostic.CodeMapKeyNotString, mapper, container,
				"map key type %s is not string-like", cls.Key.TypeName)

			return nil, false
		}

		key, ok := r.resolveTemplate(cls.Key, container, mapper, diags)
		if !ok {
			return nil, false
		}

		value, ok := r.resolveTemplate(cls.Value, container, mapper, diags)
		if !ok {
			return nil, false
		}

		t.WireKind = document.KindMap
		t.Strategy = Strategy{Kind: StrategyMap, TypeName: cls.TypeName, Key: key, Value: value}

	case analyze.CategoryNestedObject:
		if !r.known[cls.Object.ID] {
			diags.AddError(diagnostic.CodeUnresolvedDependency, mapper, container,
				"nested type %s has no mapper", cls.Object.ID)

			return nil, false
		}

		t.WireKind = document.KindMap
		t.Strategy = Strategy{Kind: StrategyNestedMapper, TypeName: cls.TypeName, Nested: cls.Object.ID}

	default:
		diags.AddError(diagnostic.CodeUnsupportedElement, mapper, container,
			"container %s has unsupported element type %s: %s",
			container, cls.TypeName, cls.Reason)

		return nil, false
	}

	return t, true
}
