package analyze

import (
	"docmap-generator/document"
	"docmap-generator/internal/common"
	"docmap-generator/primitive"
)

// Category is the resolved mapping category of a property's shape.
type Category int

const (
	CategoryUnsupported Category = iota
	CategoryScalar
	CategoryEnum
	CategoryCollection
	CategoryMap
	CategoryNestedObject
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryScalar:
		return "scalar"
	case CategoryEnum:
		return "enum"
	case CategoryCollection:
		return "collection"
	case CategoryMap:
		return "map"
	case CategoryNestedObject:
		return "nested-object"
	case CategoryUnsupported:
		return "unsupported"
	default:
		return common.UnknownStr
	}
}

// Classification is the computed mapping category for one type reference.
// Computed once per property during analysis, never mutated afterwards.
type Classification struct {
	Category Category

	// TypeName is the declared type name the classification was computed for.
	TypeName string

	// Scalar is set for CategoryScalar, and holds the underlying kind for
	// CategoryEnum.
	Scalar primitive.Kind

	// WireCandidates are the wire kinds that can legally carry the value,
	// default first. Set for CategoryScalar and CategoryEnum.
	WireCandidates []document.Kind

	// Elem is set for CategoryCollection.
	Elem *Classification

	// Key and Value are set for CategoryMap.
	Key   *Classification
	Value *Classification

	// Object is set for CategoryNestedObject.
	Object *Type

	// Reason explains a CategoryUnsupported classification.
	Reason string
}

// TypeGraph is the validated output of type graph analysis: every model type
// reachable from the root, with one classification per property.
type TypeGraph struct {
	// Root is the analysis entry point.
	Root *Type
	// Types maps TypeID to the reachable model types, root included.
	Types map[TypeID]*Type
	// Order records discovery order for deterministic iteration.
	Order []TypeID
	// Properties maps TypeID to per-property classifications, in the
	// declaration order of the type's properties.
	Properties map[TypeID][]Classification
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:      make(map[TypeID]*Type),
		Properties: make(map[TypeID][]Classification),
	}
}

// Type returns the reachable model type with the given ID, or nil.
func (g *TypeGraph) Type(id TypeID) *Type {
	return g.Types[id]
}

// Classifications returns the per-property classifications for a type,
// in property declaration order.
func (g *TypeGraph) Classifications(id TypeID) []Classification {
	return g.Properties[id]
}

// Classification returns the classification of one property of one type.
func (g *TypeGraph) Classification(id TypeID, property string) *Classification {
	t := g.Types[id]
	if t == nil {
		return nil
	}

	for i := range t.Properties {
		if t.Properties[i].Name == property {
			cls := g.Properties[id]
			if i < len(cls) {
				return &cls[i]
			}

			return nil
		}
	}

	return nil
}
