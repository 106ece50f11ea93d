package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmap-generator/internal/analyze"
	"docmap-generator/internal/diagnostic"
	"docmap-generator/primitive"
)

const sampleYAML = `
version: "1"
mappers:
  - model: shop.Order
    naming: snake
    required: true
    overrides:
      - member: Reference
        name: ref
      - member: Tags
        kind: string-set
    hooks:
      afterReverse: Validate
  - model: shop.Address
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, f.Mappers, 2)

	m := f.Mappers[0]
	assert.Equal(t, "shop.Order", m.Model)
	assert.Equal(t, "snake", m.Naming)
	require.NotNil(t, m.Required)
	assert.True(t, *m.Required)
	require.Len(t, m.Overrides, 2)
	assert.Equal(t, "ref", m.Overrides[0].Name)
	assert.Equal(t, "string-set", m.Overrides[1].Kind)
	assert.Equal(t, "Validate", m.Hooks.AfterReverse)
}

func TestParseDefaults(t *testing.T) {
	f, err := Parse([]byte("mappers:\n  - model: shop.Item\n"))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)

	m := f.Mappers[0]
	assert.Equal(t, "shop.Item", m.Name)
	assert.Equal(t, "camel", m.Naming)
	assert.Nil(t, m.Required)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("mappers: {broken"))
	assert.Error(t, err)
}

func TestHasCustomConverter(t *testing.T) {
	assert.False(t, (&Override{}).HasCustomConverter())
	assert.True(t, (&Override{Forward: "ToDoc"}).HasCustomConverter())
	assert.True(t, (&Override{Reverse: "FromDoc"}).HasCustomConverter())
}

func modelFixture() *analyze.Type {
	return &analyze.Type{
		ID: analyze.TypeID{Namespace: "shop", Name: "Order"},
		Properties: []analyze.Property{
			{Name: "Reference", Type: analyze.ScalarRef(primitive.KindString), Getter: analyze.AccessPublic, Setter: analyze.AccessPublic},
			{Name: "CreatedAt", Type: analyze.ScalarRef(primitive.KindTime), Getter: analyze.AccessPublic, Setter: analyze.AccessPublic},
		},
	}
}

func TestNormalize(t *testing.T) {
	mc := &MapperConfig{
		Name:  "OrderMapper",
		Model: "shop.Order",
		Overrides: []Override{
			{Member: "Reference", Name: "ref"},
		},
	}

	n, diags := Normalize(mc, modelFixture())
	require.NotNil(t, n)
	assert.False(t, diags.HasErrors())
	assert.Equal(t, "OrderMapper", n.Name)
	require.NotNil(t, n.Override("Reference"))
	assert.Nil(t, n.Override("CreatedAt"))
}

func TestNormalizeUnknownMemberSuggests(t *testing.T) {
	mc := &MapperConfig{
		Model: "shop.Order",
		Overrides: []Override{
			{Member: "Referense"},
		},
	}

	n, diags := Normalize(mc, modelFixture())
	assert.Nil(t, n)
	require.True(t, diags.HasErrors())

	d := diags.Errors[0]
	assert.Equal(t, diagnostic.CodeInvalidOverrideTarget, d.Code)
	assert.Contains(t, d.Suggestions, "Reference")
}

func TestNormalizeDuplicateOverride(t *testing.T) {
	mc := &MapperConfig{
		Model: "shop.Order",
		Overrides: []Override{
			{Member: "Reference", Name: "a"},
			{Member: "Reference", Name: "b"},
		},
	}

	n, diags := Normalize(mc, modelFixture())
	assert.Nil(t, n)
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.CodeDuplicateOverride, diags.Errors[0].Code)
}

func TestNamingConventions(t *testing.T) {
	tests := []struct {
		convention string
		input      string
		expected   string
	}{
		{"exact", "OrderID", "OrderID"},
		{"camel", "OrderID", "orderId"},
		{"camel", "CreatedAt", "createdAt"},
		{"pascal", "created_at", "CreatedAt"},
		{"snake", "OrderID", "order_id"},
		{"snake", "ShipTo", "ship_to"},
		{"bogus", "OrderID", "OrderID"},
	}

	for _, tt := range tests {
		t.Run(tt.convention+"/"+tt.input, func(t *testing.T) {
			got := Naming(tt.convention)(tt.input)
			if got != tt.expected {
				t.Errorf("Naming(%q)(%q) = %q, want %q", tt.convention, tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadShippingExampleFile(t *testing.T) {
	f, err := LoadFile("../../examples/shipping/mapping.yaml")
	require.NoError(t, err)
	require.Len(t, f.Mappers, 3)

	order := f.Mappers[0]
	assert.Equal(t, "shipping.Order", order.Model)
	assert.Equal(t, "snake", order.Naming)
	require.Len(t, order.Overrides, 3)
	assert.Equal(t, "Tags", order.Overrides[0].Member)
	assert.Equal(t, "string-set", order.Overrides[0].Kind)

	// Defaults applied on load: unnamed mappers take the model identifier.
	assert.Equal(t, "shipping.Order", order.Name)
}
