package analyze

import (
	"docmap-generator/primitive"
)

// TypeID uniquely identifies a model type by its namespace and name.
type TypeID struct {
	Namespace string // e.g., "shop"
	Name      string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.Namespace == "" {
		return t.Name
	}

	return t.Namespace + "." + t.Name
}

// Type is the immutable snapshot of one model type, as supplied by the host
// front end. The analyzer never mutates or re-queries it mid-analysis.
type Type struct {
	ID           TypeID
	Properties   []Property    // declaration order
	Constructors []Constructor // declaration order
}

// Property finds a property by exact name, or nil.
func (t *Type) Property(name string) *Property {
	for i := range t.Properties {
		if t.Properties[i].Name == name {
			return &t.Properties[i]
		}
	}

	return nil
}

// PropertyNames returns the property names in declaration order.
func (t *Type) PropertyNames() []string {
	names := make([]string, len(t.Properties))
	for i := range t.Properties {
		names[i] = t.Properties[i].Name
	}

	return names
}

// Access describes the accessibility of a property accessor.
type Access int

const (
	// AccessNone means the accessor does not exist.
	AccessNone Access = iota
	// AccessInitOnly means the setter is usable only during initialization.
	AccessInitOnly
	// AccessPublic means the accessor is freely usable.
	AccessPublic
)

// String returns a human-readable access name.
func (a Access) String() string {
	switch a {
	case AccessNone:
		return "none"
	case AccessInitOnly:
		return "init-only"
	case AccessPublic:
		return "public"
	default:
		return "invalid"
	}
}

// Property describes one property of a model type.
type Property struct {
	Name     string
	Type     TypeRef
	Nullable bool
	Getter   Access
	Setter   Access

	// Tag carries inline mapping hints declared on the property itself.
	Tag Tag
}

// Tag holds the inline mapping hints a host front end found on a property,
// for Go models the `docmap` struct tag. Hints rank below configuration
// overrides and above convention-based inference.
type Tag struct {
	// WireName renames the wire attribute. Empty means no rename.
	WireName string

	OmitNull  bool
	OmitEmpty bool
	Required  bool
}

// Readable reports whether forward mapping can read the property.
func (p *Property) Readable() bool { return p.Getter != AccessNone }

// Settable reports whether the property accepts assignment at any point.
func (p *Property) Settable() bool { return p.Setter != AccessNone }

// Constructor describes one declared constructor of a model type.
type Constructor struct {
	// Name is the constructor function name as written in the source model.
	Name       string
	Parameters []Parameter
	// Attributed marks the constructor explicitly chosen by configuration.
	Attributed bool
}

// Parameter describes one constructor parameter.
type Parameter struct {
	Name string
	Type TypeRef
	// Optional parameters carry a default and may stay unmatched.
	Optional bool
}

// Shape is the syntactic shape of a declared type reference.
type Shape int

const (
	ShapeInvalid Shape = iota
	// ShapeScalar is a primitive or value type (string, numbers, time, ...).
	ShapeScalar
	// ShapeEnum is a named type over an integer or string underlying.
	ShapeEnum
	// ShapeCollection is a single-element-parameter container.
	ShapeCollection
	// ShapeMap is a two-parameter container keyed by a scalar.
	ShapeMap
	// ShapeObject is a reference to another model type.
	ShapeObject
	// ShapeOpaque is anything the model cannot see into.
	ShapeOpaque
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeEnum:
		return "enum"
	case ShapeCollection:
		return "collection"
	case ShapeMap:
		return "map"
	case ShapeObject:
		return "object"
	case ShapeOpaque:
		return "opaque"
	default:
		return "invalid"
	}
}

// TypeRef describes the declared type of a property or parameter.
// Exactly the fields implied by Shape are set.
type TypeRef struct {
	// Name is the declared type name as written in the source model.
	Name string

	Shape Shape

	// Scalar is the scalar kind for ShapeScalar, and the underlying kind
	// for ShapeEnum.
	Scalar primitive.Kind

	// Elem is the element type for ShapeCollection.
	Elem *TypeRef

	// Key and Value are set for ShapeMap.
	Key   *TypeRef
	Value *TypeRef

	// Object is the referenced model type for ShapeObject.
	Object *Type
}

// ScalarRef builds a scalar type reference.
func ScalarRef(k primitive.Kind) TypeRef {
	return TypeRef{Name: k.String(), Shape: ShapeScalar, Scalar: k}
}

// EnumRef builds an enum type reference over the given underlying kind.
func EnumRef(name string, underlying primitive.Kind) TypeRef {
	return TypeRef{Name: name, Shape: ShapeEnum, Scalar: underlying}
}

// CollectionRef builds a collection type reference.
func CollectionRef(elem TypeRef) TypeRef {
	return TypeRef{Name: "[]" + elem.Name, Shape: ShapeCollection, Elem: &elem}
}

// MapRef builds a map type reference.
func MapRef(key, value TypeRef) TypeRef {
	return TypeRef{
		Name:  "map[" + key.Name + "]" + value.Name,
		Shape: ShapeMap,
		Key:   &key,
		Value: &value,
	}
}

// ObjectRef builds a nested-object type reference.
func ObjectRef(t *Type) TypeRef {
	return TypeRef{Name: t.ID.String(), Shape: ShapeObject, Object: t}
}

// OpaqueRef builds an opaque type reference.
func OpaqueRef(name string) TypeRef {
	return TypeRef{Name: name, Shape: ShapeOpaque}
}
