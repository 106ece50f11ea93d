// Package render lowers resolved plan documents into ordered instruction
// lists, one forward and one reverse per mapper.
//
// The instruction order is the plan's property order and is never changed
// here: rendering adds no optimization passes, so a plan diff always maps
// one-to-one onto an instruction diff.
package render

import (
	"docmap-generator/document"
	"docmap-generator/internal/analyze"
	"docmap-generator/internal/construct"
	"docmap-generator/internal/plan"
	"docmap-generator/primitive"
)

// Rendered is the lowered output for one mapper.
type Rendered struct {
	Forward ForwardPlan
	Reverse ReversePlan
}

// ForwardPlan writes a model object into a wire document.
type ForwardPlan struct {
	Mapper string
	Model  analyze.TypeID

	// BeforeHook and AfterHook are user method names run at the plan
	// boundaries, empty when not configured.
	BeforeHook string
	AfterHook  string

	// Steps execute in order, one per mapped property.
	Steps []ForwardStep
}

// ForwardStep emits one wire attribute.
type ForwardStep struct {
	Property string
	WireName string

	// SkipIfNull drops the attribute instead of writing a null value.
	SkipIfNull bool

	// SkipIfEmpty drops the attribute for an empty string value.
	SkipIfEmpty bool

	Convert Conversion
}

// ReversePlan reads a wire document back into a model object: required
// attributes are checked first, then construction runs, then the remaining
// assignments.
type ReversePlan struct {
	Mapper string
	Model  analyze.TypeID

	BeforeHook string
	AfterHook  string

	// Construction is the selected construction strategy.
	Construction construct.Selection

	// Steps execute in order, one per mapped property.
	Steps []ReverseStep
}

// ReverseStep reads one wire attribute and routes it into the object.
type ReverseStep struct {
	WireName string
	Property string

	// Required makes attribute absence a hard error; optional absence
	// leaves the property at its default.
	Required bool

	// Binding says how the parsed value reaches the property.
	Binding construct.BindingKind

	// ParameterIndex is set for constructor-parameter bindings, -1 otherwise.
	ParameterIndex int

	Convert Conversion
}

// ConversionKind tags a conversion instruction.
type ConversionKind int

const (
	// ConvertScalar formats or parses through the scalar capability table.
	ConvertScalar ConversionKind = iota
	// ConvertEnum maps between enum values and their wire representation.
	ConvertEnum
	// ConvertNested delegates to another mapper's rendered plans.
	ConvertNested
	// ConvertCustom calls the configured converter pair.
	ConvertCustom
	// ConvertList applies the element conversion per item.
	ConvertList
	// ConvertSet applies the element conversion per item into a native set.
	ConvertSet
	// ConvertMap applies key and value conversions per entry.
	ConvertMap
)

// String returns a human-readable conversion name.
func (k ConversionKind) String() string {
	switch k {
	case ConvertScalar:
		return "scalar"
	case ConvertEnum:
		return "enum"
	case ConvertNested:
		return "nested"
	case ConvertCustom:
		return "custom"
	case ConvertList:
		return "list"
	case ConvertSet:
		return "set"
	case ConvertMap:
		return "map"
	default:
		return "invalid"
	}
}

// Conversion is one value-conversion instruction. Conversions nest for
// containers; the tree mirrors the plan's strategy tree exactly.
type Conversion struct {
	Kind ConversionKind

	// TypeName is the declared model type name the conversion operates on.
	TypeName string

	// WireKind the converted value occupies. KindInvalid for custom
	// conversions, whose representation the converter owns.
	WireKind document.Kind

	// Scalar is set for ConvertScalar and ConvertEnum.
	Scalar primitive.Kind

	// EnumFormat is set for ConvertEnum.
	EnumFormat plan.EnumFormat

	// Nested names the delegate mapper's model type for ConvertNested.
	Nested analyze.TypeID

	// Forward and Reverse are the converter method names for ConvertCustom.
	Forward string
	Reverse string

	// Elem is set for ConvertList and ConvertSet.
	Elem *Conversion

	// Key and Value are set for ConvertMap.
	Key   *Conversion
	Value *Conversion
}
