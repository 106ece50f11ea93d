package plan

import (
	"docmap-generator/document"
	"docmap-generator/internal/analyze"
	"docmap-generator/internal/common"
	"docmap-generator/internal/config"
	"docmap-generator/internal/construct"
	"docmap-generator/primitive"
)

// Document is the aggregate output for one mapper: the ordered property
// plans (forward order equals declaration order of the model's public
// surface), the construction selection, and the derived bindings.
//
// Created once per mapper per generation pass, immutable, consumed by the
// renderer. Rebuilt from scratch whenever the model or configuration
// changes; recomputation is the unit of caching upstream.
type Document struct {
	// Mapper is the owning mapper's name.
	Mapper string
	// Model identifies the mapped model type.
	Model analyze.TypeID
	// Properties holds one resolved plan per property, in declaration order.
	Properties []PropertyPlan
	// Construction is the reverse-direction construction strategy.
	Construction construct.Selection
	// Bindings has one entry per property, in declaration order.
	Bindings []construct.PropertyBinding
	// Hooks carries the configured lifecycle method names.
	Hooks config.Hooks
}

// PropertyPlan is the resolved, final decision for one property.
// Exactly one strategy variant is populated, tagged by Strategy.Kind.
type PropertyPlan struct {
	// Property is the model property name. Empty for the element, key, and
	// value templates nested inside container strategies.
	Property string

	// WireName is the resolved wire attribute name. Empty for templates.
	WireName string

	// WireKind is the wire kind the value occupies. Custom-converter plans
	// leave it KindInvalid: the converter owns the representation.
	WireKind document.Kind

	// Required marks absence of the wire attribute a hard reverse-path error.
	Required bool

	// OmitNull omits the wire attribute when the value is null.
	OmitNull bool

	// OmitEmpty omits the wire attribute for empty strings.
	// Only ever true for string-classified properties.
	OmitEmpty bool

	Strategy Strategy
}

// StrategyKind tags the conversion strategy variant.
type StrategyKind int

const (
	// StrategyInvalid is the zero value; reaching the renderer with it is an
	// internal error.
	StrategyInvalid StrategyKind = iota
	// StrategyBuiltinScalar converts through the scalar capability table.
	StrategyBuiltinScalar
	// StrategyEnum converts an enum by name or by underlying number.
	StrategyEnum
	// StrategyNestedMapper delegates to the referenced type's own mapper.
	StrategyNestedMapper
	// StrategyCustomMethod calls a user-supplied converter pair.
	StrategyCustomMethod
	// StrategyCollection applies an element template in a loop.
	StrategyCollection
	// StrategyMap applies key and value templates per entry.
	StrategyMap
)

// String returns a human-readable strategy name.
func (k StrategyKind) String() string {
	switch k {
	case StrategyBuiltinScalar:
		return "builtin-scalar"
	case StrategyEnum:
		return "enum"
	case StrategyNestedMapper:
		return "nested-mapper"
	case StrategyCustomMethod:
		return "custom-method"
	case StrategyCollection:
		return "collection"
	case StrategyMap:
		return "map"
	case StrategyInvalid:
		return "invalid"
	default:
		return common.UnknownStr
	}
}

// EnumFormat selects the wire representation of an enum value.
type EnumFormat int

const (
	// EnumAsString writes the symbolic name.
	EnumAsString EnumFormat = iota
	// EnumAsNumber writes the integer underlying value.
	EnumAsNumber
)

// String returns a human-readable format name.
func (f EnumFormat) String() string {
	if f == EnumAsNumber {
		return "number"
	}

	return "string"
}

// Strategy describes how one property's value converts between the model
// and the wire. The Kind tag decides which fields are meaningful.
type Strategy struct {
	Kind StrategyKind

	// TypeName is the declared model type name the strategy converts.
	TypeName string

	// Scalar is the scalar kind for StrategyBuiltinScalar, and the enum
	// underlying kind for StrategyEnum.
	Scalar primitive.Kind

	// EnumFormat is set for StrategyEnum.
	EnumFormat EnumFormat

	// Nested identifies the delegate mapper's model type for
	// StrategyNestedMapper.
	Nested analyze.TypeID

	// Forward and Reverse name the converter pair for StrategyCustomMethod.
	Forward string
	Reverse string

	// Elem is the element template for StrategyCollection.
	Elem *PropertyPlan

	// Key and Value are the entry templates for StrategyMap.
	Key   *PropertyPlan
	Value *PropertyPlan
}
