package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmap-generator/document"
	"docmap-generator/internal/diagnostic"
	"docmap-generator/primitive"
)

func prop(name string, ref TypeRef) Property {
	return Property{
		Name:   name,
		Type:   ref,
		Getter: AccessPublic,
		Setter: AccessPublic,
	}
}

func TestAnalyzeClassifiesProperties(t *testing.T) {
	address := &Type{
		ID: TypeID{Namespace: "shop", Name: "Address"},
		Properties: []Property{
			prop("City", ScalarRef(primitive.KindString)),
		},
	}

	order := &Type{
		ID: TypeID{Namespace: "shop", Name: "Order"},
		Properties: []Property{
			prop("ID", ScalarRef(primitive.KindGUID)),
			prop("Status", EnumRef("Status", primitive.KindString)),
			prop("Tags", CollectionRef(ScalarRef(primitive.KindString))),
			prop("Attrs", MapRef(ScalarRef(primitive.KindString), ScalarRef(primitive.KindInt))),
			prop("ShipTo", ObjectRef(address)),
			prop("Conn", OpaqueRef("net.Conn")),
		},
	}

	graph, diags := Analyze(context.Background(), order)
	require.NotNil(t, graph)
	assert.False(t, diags.HasErrors())

	cls := graph.Classifications(order.ID)
	require.Len(t, cls, 6)

	assert.Equal(t, CategoryScalar, cls[0].Category)
	assert.Equal(t, primitive.KindGUID, cls[0].Scalar)
	assert.Equal(t, []document.Kind{document.KindString}, cls[0].WireCandidates)

	assert.Equal(t, CategoryEnum, cls[1].Category)
	assert.Equal(t, primitive.KindString, cls[1].Scalar)

	assert.Equal(t, CategoryCollection, cls[2].Category)
	require.NotNil(t, cls[2].Elem)
	assert.Equal(t, CategoryScalar, cls[2].Elem.Category)

	assert.Equal(t, CategoryMap, cls[3].Category)
	require.NotNil(t, cls[3].Key)
	require.NotNil(t, cls[3].Value)

	assert.Equal(t, CategoryNestedObject, cls[4].Category)
	assert.Equal(t, address, cls[4].Object)

	assert.Equal(t, CategoryUnsupported, cls[5].Category)
	assert.NotEmpty(t, cls[5].Reason)
}

func TestAnalyzeDiscoveryOrderIsDeclarationOrder(t *testing.T) {
	c := &Type{ID: TypeID{Name: "C"}, Properties: []Property{
		prop("X", ScalarRef(primitive.KindInt)),
	}}
	b := &Type{ID: TypeID{Name: "B"}, Properties: []Property{
		prop("X", ScalarRef(primitive.KindInt)),
	}}
	a := &Type{ID: TypeID{Name: "A"}, Properties: []Property{
		prop("First", ObjectRef(c)),
		prop("Second", ObjectRef(b)),
	}}

	graph, _ := Analyze(context.Background(), a)
	require.NotNil(t, graph)

	assert.Equal(t, []TypeID{a.ID, c.ID, b.ID}, graph.Order)
}

func TestAnalyzeDetectsDirectCycle(t *testing.T) {
	a := &Type{ID: TypeID{Name: "Node"}}
	a.Properties = []Property{prop("Next", ObjectRef(a))}

	graph, diags := Analyze(context.Background(), a)
	assert.Nil(t, graph)
	require.True(t, diags.HasErrors())

	d := diags.Errors[0]
	assert.Equal(t, diagnostic.CodeCyclicReference, d.Code)
	assert.Contains(t, d.Rendered(), "Node -> Node")
}

func TestAnalyzeDetectsIndirectCycle(t *testing.T) {
	a := &Type{ID: TypeID{Name: "B"}}
	b := &Type{ID: TypeID{Name: "C"}}
	c := &Type{ID: TypeID{Name: "A"}}

	a.Properties = []Property{prop("Next", ObjectRef(b))}
	b.Properties = []Property{prop("Next", ObjectRef(c))}
	c.Properties = []Property{prop("Next", ObjectRef(a))}

	graph, diags := Analyze(context.Background(), a)
	assert.Nil(t, graph)
	require.True(t, diags.HasErrors())

	// The rendered path starts at the lexicographically smallest name no
	// matter where traversal entered the cycle.
	assert.Contains(t, diags.Errors[0].Rendered(), "A -> B -> C -> A")
}

func TestAnalyzeDetectsCycleThroughCollection(t *testing.T) {
	tree := &Type{ID: TypeID{Name: "Tree"}}
	tree.Properties = []Property{
		prop("Children", CollectionRef(ObjectRef(tree))),
	}

	graph, diags := Analyze(context.Background(), tree)
	assert.Nil(t, graph)
	assert.True(t, diags.HasErrors())
}

func TestAnalyzeSharedNestedTypeIsNotACycle(t *testing.T) {
	leaf := &Type{ID: TypeID{Name: "Leaf"}, Properties: []Property{
		prop("V", ScalarRef(primitive.KindString)),
	}}
	root := &Type{ID: TypeID{Name: "Root"}, Properties: []Property{
		prop("Left", ObjectRef(leaf)),
		prop("Right", ObjectRef(leaf)),
	}}

	graph, diags := Analyze(context.Background(), root)
	require.NotNil(t, graph)
	assert.False(t, diags.HasErrors())
	assert.Len(t, graph.Order, 2)
}

func TestAnalyzeUnsupportedIsNotTerminal(t *testing.T) {
	a := &Type{ID: TypeID{Name: "A"}, Properties: []Property{
		prop("Conn", OpaqueRef("net.Conn")),
		prop("Name", ScalarRef(primitive.KindString)),
	}}

	graph, diags := Analyze(context.Background(), a)
	require.NotNil(t, graph)
	assert.False(t, diags.HasErrors())

	cls := graph.Classifications(a.ID)
	assert.Equal(t, CategoryUnsupported, cls[0].Category)
	assert.Equal(t, CategoryScalar, cls[1].Category)
}

func TestAnalyzeEnumUnderlyingMustBeStringOrInteger(t *testing.T) {
	a := &Type{ID: TypeID{Name: "A"}, Properties: []Property{
		prop("Rate", EnumRef("Rate", primitive.KindFloat64)),
	}}

	graph, _ := Analyze(context.Background(), a)
	require.NotNil(t, graph)

	cls := graph.Classifications(a.ID)
	assert.Equal(t, CategoryUnsupported, cls[0].Category)
}

func TestAnalyzeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &Type{ID: TypeID{Name: "A"}, Properties: []Property{
		prop("Name", ScalarRef(primitive.KindString)),
	}}

	graph, _ := Analyze(ctx, a)
	assert.Nil(t, graph)
}

func TestAnalyzeNilRootIsInternalError(t *testing.T) {
	graph, diags := Analyze(context.Background(), nil)
	assert.Nil(t, graph)
	require.True(t, diags.HasErrors())
	assert.True(t, diags.Errors[0].Internal)
}
