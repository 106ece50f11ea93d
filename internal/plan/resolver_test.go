package plan

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmap-generator/document"
	"docmap-generator/internal/analyze"
	"docmap-generator/internal/config"
	"docmap-generator/internal/diagnostic"
	"docmap-generator/primitive"
)

func prop(name string, ref analyze.TypeRef) analyze.Property {
	return analyze.Property{
		Name:   name,
		Type:   ref,
		Getter: analyze.AccessPublic,
		Setter: analyze.AccessPublic,
	}
}

func nullableProp(name string, ref analyze.TypeRef) analyze.Property {
	p := prop(name, ref)
	p.Nullable = true

	return p
}

func analyzed(t *testing.T, typ *analyze.Type) *analyze.TypeGraph {
	t.Helper()

	graph, diags := analyze.Analyze(context.Background(), typ)
	require.NotNil(t, graph, "analysis failed: %v", diags.Errors)

	return graph
}

func exactConfig(overrides ...config.Override) *config.Normalized {
	n := &config.Normalized{
		Name:      "TestMapper",
		Naming:    config.Exact,
		Overrides: make(map[string]*config.Override, len(overrides)),
	}

	for i := range overrides {
		n.Overrides[overrides[i].Member] = &overrides[i]
	}

	return n
}

func resolveOne(
	t *testing.T,
	typ *analyze.Type,
	cfg *config.Normalized,
	known ...analyze.TypeID,
) ([]PropertyPlan, *diagnostic.Diagnostics) {
	t.Helper()

	graph := analyzed(t, typ)

	return NewResolver(graph, known).Resolve(typ, cfg)
}

func TestResolveScalarDefaults(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Name", analyze.ScalarRef(primitive.KindString)),
			nullableProp("Notes", analyze.ScalarRef(primitive.KindString)),
			prop("CreatedAt", analyze.ScalarRef(primitive.KindTime)),
		},
	}

	plans, diags := resolveOne(t, typ, exactConfig())
	require.NotNil(t, plans, "%v", diags.Errors)
	require.Len(t, plans, 3)

	assert.Equal(t, "Name", plans[0].WireName)
	assert.Equal(t, document.KindString, plans[0].WireKind)
	assert.True(t, plans[0].Required)
	assert.False(t, plans[0].OmitNull)
	assert.Equal(t, StrategyBuiltinScalar, plans[0].Strategy.Kind)

	assert.False(t, plans[1].Required)
	assert.True(t, plans[1].OmitNull)

	// Time defaults to its first wire candidate.
	assert.Equal(t, document.KindString, plans[2].WireKind)
}

func TestResolveNamingConventionAndOverride(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("OrderID", analyze.ScalarRef(primitive.KindString)),
			prop("Reference", analyze.ScalarRef(primitive.KindString)),
		},
	}

	cfg := exactConfig(config.Override{Member: "Reference", Name: "ref"})
	cfg.Naming = config.SnakeCase

	plans, _ := resolveOne(t, typ, cfg)
	require.Len(t, plans, 2)

	assert.Equal(t, "order_id", plans[0].WireName)
	assert.Equal(t, "ref", plans[1].WireName, "explicit name beats the convention")
}

func TestResolveRequiredPrecedence(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("A", analyze.ScalarRef(primitive.KindString)),
			nullableProp("B", analyze.ScalarRef(primitive.KindString)),
		},
	}

	f := false
	tr := true

	// Mapper-wide default replaces nullability inference.
	cfg := exactConfig()
	cfg.Required = &f

	plans, _ := resolveOne(t, typ, cfg)
	assert.False(t, plans[0].Required)
	assert.False(t, plans[1].Required)

	// A member override beats the mapper-wide default.
	cfg = exactConfig(config.Override{Member: "B", Required: &tr})
	cfg.Required = &f

	plans, _ = resolveOne(t, typ, cfg)
	assert.False(t, plans[0].Required)
	assert.True(t, plans[1].Required)
}

func TestResolveKindOverride(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("CreatedAt", analyze.ScalarRef(primitive.KindTime)),
		},
	}

	plans, diags := resolveOne(t, typ,
		exactConfig(config.Override{Member: "CreatedAt", Kind: "number"}))
	require.NotNil(t, plans, "%v", diags.Errors)
	assert.Equal(t, document.KindNumber, plans[0].WireKind)
}

func TestResolveIncompatibleKindOverride(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Name", analyze.ScalarRef(primitive.KindString)),
		},
	}

	plans, diags := resolveOne(t, typ,
		exactConfig(config.Override{Member: "Name", Kind: "number"}))
	assert.Nil(t, plans)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeIncompatibleKindOverride, diags.Errors[0].Code)
}

func TestResolveUnknownKindOverride(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Name", analyze.ScalarRef(primitive.KindString)),
		},
	}

	plans, diags := resolveOne(t, typ,
		exactConfig(config.Override{Member: "Name", Kind: "decimal"}))
	assert.Nil(t, plans)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeUnknownWireKind, diags.Errors[0].Code)
}

func TestResolveCustomConverterWins(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Money", analyze.OpaqueRef("money.Amount")),
		},
	}

	// The kind override is ignored, not diagnosed, and the opaque
	// classification never surfaces: the converter owns the member.
	plans, diags := resolveOne(t, typ, exactConfig(config.Override{
		Member:  "Money",
		Kind:    "number",
		Forward: "MoneyToDoc",
		Reverse: "MoneyFromDoc",
	}))
	require.NotNil(t, plans, "%v", diags.Errors)
	assert.False(t, diags.HasErrors())

	p := plans[0]
	assert.Equal(t, StrategyCustomMethod, p.Strategy.Kind)
	assert.Equal(t, document.KindInvalid, p.WireKind)
	assert.Equal(t, "MoneyToDoc", p.Strategy.Forward)
	assert.Equal(t, "MoneyFromDoc", p.Strategy.Reverse)
}

func TestResolveConverterPairIncomplete(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Money", analyze.ScalarRef(primitive.KindString)),
		},
	}

	plans, diags := resolveOne(t, typ,
		exactConfig(config.Override{Member: "Money", Forward: "MoneyToDoc"}))
	assert.Nil(t, plans)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeConverterPairIncomplete, diags.Errors[0].Code)
}

func TestResolveEnum(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Status", analyze.EnumRef("Status", primitive.KindString)),
			prop("Level", analyze.EnumRef("Level", primitive.KindInt)),
		},
	}

	// No overrides: the underlying type decides the representation.
	plans, diags := resolveOne(t, typ, exactConfig())
	require.NotNil(t, plans, "%v", diags.Errors)

	assert.Equal(t, document.KindString, plans[0].WireKind)
	assert.Equal(t, EnumAsString, plans[0].Strategy.EnumFormat)

	assert.Equal(t, document.KindNumber, plans[1].WireKind)
	assert.Equal(t, EnumAsNumber, plans[1].Strategy.EnumFormat)
}

func TestResolveEnumRedundantOverrideIsFine(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Level", analyze.EnumRef("Level", primitive.KindInt)),
		},
	}

	plans, diags := resolveOne(t, typ,
		exactConfig(config.Override{Member: "Level", Kind: "number"}))
	require.NotNil(t, plans, "%v", diags.Errors)
	assert.Equal(t, EnumAsNumber, plans[0].Strategy.EnumFormat)
}

func TestResolveEnumCrossRepresentationOverrideFails(t *testing.T) {
	tests := []struct {
		name       string
		underlying primitive.Kind
		kind       string
	}{
		{"number onto string enum", primitive.KindString, "number"},
		{"string onto int enum", primitive.KindInt, "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := &analyze.Type{
				ID: analyze.TypeID{Name: "T"},
				Properties: []analyze.Property{
					prop("Value", analyze.EnumRef("Value", tt.underlying)),
				},
			}

			plans, diags := resolveOne(t, typ,
				exactConfig(config.Override{Member: "Value", Kind: tt.kind}))
			assert.Nil(t, plans)
			require.True(t, diags.HasErrors())
			assert.Equal(t, diagnostic.CodeIncompatibleKindOverride, diags.Errors[0].Code)
		})
	}
}

func TestResolveCollection(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Tags", analyze.CollectionRef(analyze.ScalarRef(primitive.KindString))),
		},
	}

	plans, _ := resolveOne(t, typ, exactConfig())
	require.Len(t, plans, 1)

	p := plans[0]
	assert.Equal(t, document.KindList, p.WireKind)
	assert.Equal(t, StrategyCollection, p.Strategy.Kind)
	require.NotNil(t, p.Strategy.Elem)
	assert.Equal(t, StrategyBuiltinScalar, p.Strategy.Elem.Strategy.Kind)
	assert.Empty(t, p.Strategy.Elem.Property, "templates carry no property name")
}

func TestResolveCollectionSetOverride(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Tags", analyze.CollectionRef(analyze.ScalarRef(primitive.KindString))),
			prop("Scores", analyze.CollectionRef(analyze.ScalarRef(primitive.KindInt))),
		},
	}

	plans, diags := resolveOne(t, typ, exactConfig(
		config.Override{Member: "Tags", Kind: "string-set"},
		config.Override{Member: "Scores", Kind: "number-set"},
	))
	require.NotNil(t, plans, "%v", diags.Errors)

	assert.Equal(t, document.KindStringSet, plans[0].WireKind)
	assert.Equal(t, document.KindNumberSet, plans[1].WireKind)
}

func TestResolveSetOverrideNeedsMatchingElements(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Scores", analyze.CollectionRef(analyze.ScalarRef(primitive.KindInt))),
		},
	}

	plans, diags := resolveOne(t, typ,
		exactConfig(config.Override{Member: "Scores", Kind: "string-set"}))
	assert.Nil(t, plans)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeIncompatibleKindOverride, diags.Errors[0].Code)
}

func TestResolveUnsupportedElement(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Conns", analyze.CollectionRef(analyze.OpaqueRef("net.Conn"))),
		},
	}

	plans, diags := resolveOne(t, typ, exactConfig())
	assert.Nil(t, plans)
	require.True(t, diags.HasErrors())

	d := diags.Errors[0]
	assert.Equal(t, diagnostic.CodeUnsupportedElement, d.Code)
	assert.Equal(t, "Conns", d.Property, "the container carries the diagnostic")
}

func TestResolveMap(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Attrs", analyze.MapRef(
				analyze.ScalarRef(primitive.KindString),
				analyze.ScalarRef(primitive.KindInt),
			)),
		},
	}

	plans, _ := resolveOne(t, typ, exactConfig())
	require.Len(t, plans, 1)

	p := plans[0]
	assert.Equal(t, document.KindMap, p.WireKind)
	assert.Equal(t, StrategyMap, p.Strategy.Kind)
	require.NotNil(t, p.Strategy.Key)
	require.NotNil(t, p.Strategy.Value)
	assert.Equal(t, document.KindNumber, p.Strategy.Value.WireKind)
}

func TestResolveMapKeyMustBeStringLike(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("ByCode", analyze.MapRef(
				analyze.ScalarRef(primitive.KindInt),
				analyze.ScalarRef(primitive.KindString),
			)),
		},
	}

	plans, diags := resolveOne(t, typ, exactConfig())
	assert.Nil(t, plans)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeMapKeyNotString, diags.Errors[0].Code)
}

func TestResolveNestedObject(t *testing.T) {
	address := &analyze.Type{
		ID: analyze.TypeID{Namespace: "shop", Name: "Address"},
		Properties: []analyze.Property{
			prop("City", analyze.ScalarRef(primitive.KindString)),
		},
	}
	typ := &analyze.Type{
		ID: analyze.TypeID{Namespace: "shop", Name: "Order"},
		Properties: []analyze.Property{
			prop("ShipTo", analyze.ObjectRef(address)),
		},
	}

	plans, diags := resolveOne(t, typ, exactConfig(), address.ID)
	require.NotNil(t, plans, "%v", diags.Errors)
	assert.Equal(t, StrategyNestedMapper, plans[0].Strategy.Kind)
	assert.Equal(t, address.ID, plans[0].Strategy.Nested)
}

func TestResolveNestedObjectWithoutMapperFails(t *testing.T) {
	address := &analyze.Type{
		ID: analyze.TypeID{Namespace: "shop", Name: "Address"},
		Properties: []analyze.Property{
			prop("City", analyze.ScalarRef(primitive.KindString)),
		},
	}
	typ := &analyze.Type{
		ID: analyze.TypeID{Namespace: "shop", Name: "Order"},
		Properties: []analyze.Property{
			prop("ShipTo", analyze.ObjectRef(address)),
		},
	}

	plans, diags := resolveOne(t, typ, exactConfig())
	assert.Nil(t, plans)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeUnresolvedDependency, diags.Errors[0].Code)
}

func TestResolveRequiredOmittableWarns(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Name", analyze.ScalarRef(primitive.KindString)),
		},
	}

	tr := true

	plans, diags := resolveOne(t, typ,
		exactConfig(config.Override{Member: "Name", OmitNull: &tr}))
	require.NotNil(t, plans)
	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeRequiredOmittable, diags.Warnings[0].Code)
	assert.True(t, plans[0].Required)
	assert.True(t, plans[0].OmitNull)
}

func TestResolveOmitEmptyOnlyForStrings(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Name", analyze.ScalarRef(primitive.KindString)),
			prop("Count", analyze.ScalarRef(primitive.KindInt)),
		},
	}

	tr := true

	plans, diags := resolveOne(t, typ, exactConfig(
		config.Override{Member: "Name", OmitEmpty: &tr},
		config.Override{Member: "Count", OmitEmpty: &tr},
	))
	require.NotNil(t, plans)
	assert.False(t, diags.HasErrors(), "omit-empty elsewhere is ignored, not an error")
	assert.True(t, plans[0].OmitEmpty)
	assert.False(t, plans[1].OmitEmpty)
}

func TestResolveIsDeterministic(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Name", analyze.ScalarRef(primitive.KindString)),
			nullableProp("Notes", analyze.ScalarRef(primitive.KindString)),
			prop("Tags", analyze.CollectionRef(analyze.ScalarRef(primitive.KindString))),
			prop("Attrs", analyze.MapRef(
				analyze.ScalarRef(primitive.KindString),
				analyze.ScalarRef(primitive.KindFloat64),
			)),
		},
	}

	cfg := exactConfig(config.Override{Member: "Tags", Kind: "string-set"})

	first, _ := resolveOne(t, typ, cfg)

	for i := 0; i < 5; i++ {
		next, _ := resolveOne(t, typ, cfg)
		if diff := cmp.Diff(first, next); diff != "" {
			t.Fatalf("plans differ between runs (-first +next):\n%s", diff)
		}
	}
}

func TestBuildAssemblesDocument(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Name", analyze.ScalarRef(primitive.KindString)),
		},
	}

	graph := analyzed(t, typ)

	doc, diags := Build(graph, typ, exactConfig(), nil)
	require.NotNil(t, doc, "%v", diags.Errors)
	assert.Equal(t, "TestMapper", doc.Mapper)
	assert.Len(t, doc.Properties, 1)
	assert.Len(t, doc.Bindings, 1)
	assert.False(t, doc.Construction.UsesConstructor())
}

func TestBuildFailureIsTerminal(t *testing.T) {
	typ := &analyze.Type{
		ID: analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{
			prop("Conn", analyze.OpaqueRef("net.Conn")),
			prop("Name", analyze.ScalarRef(primitive.KindString)),
		},
	}

	graph := analyzed(t, typ)

	doc, diags := Build(graph, typ, exactConfig(), nil)
	assert.Nil(t, doc)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeUnsupportedMember, diags.Errors[0].Code)
}

func TestResolveTagHints(t *testing.T) {
	ref := prop("Reference", analyze.ScalarRef(primitive.KindString))
	ref.Tag = analyze.Tag{WireName: "ref"}

	notes := prop("Notes", analyze.ScalarRef(primitive.KindString))
	notes.Tag = analyze.Tag{OmitEmpty: true}

	legacy := nullableProp("Legacy", analyze.ScalarRef(primitive.KindString))
	legacy.Tag = analyze.Tag{Required: true}

	typ := &analyze.Type{
		ID:         analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{ref, notes, legacy},
	}

	plans, diags := resolveOne(t, typ, exactConfig())
	require.NotNil(t, plans, "%v", diags.Errors)

	assert.Equal(t, "ref", plans[0].WireName)
	assert.True(t, plans[1].OmitEmpty)
	assert.True(t, plans[2].Required, "tag requiredness beats nullability")
}

func TestResolveConfigOverrideBeatsTag(t *testing.T) {
	ref := prop("Reference", analyze.ScalarRef(primitive.KindString))
	ref.Tag = analyze.Tag{WireName: "ref"}

	typ := &analyze.Type{
		ID:         analyze.TypeID{Name: "T"},
		Properties: []analyze.Property{ref},
	}

	cfg := exactConfig(config.Override{Member: "Reference", Name: "reference_no"})

	plans, diags := resolveOne(t, typ, cfg)
	require.NotNil(t, plans, "%v", diags.Errors)
	assert.Equal(t, "reference_no", plans[0].WireName)
}
