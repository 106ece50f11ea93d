package construct

import (
	"docmap-generator/internal/common"
)

// Selection is the chosen construction strategy for one model type: either
// default-construct plus assignment (Constructor == nil) or a specific
// constructor with its parameter-to-property matches.
type Selection struct {
	// Index is the constructor's declaration index, or -1 for
	// default-construct.
	Index int

	// Matches has one entry per parameter of the selected constructor,
	// in parameter order. Empty when Index is -1.
	Matches []ParameterMatch
}

// UsesConstructor reports whether a specific constructor was selected.
func (s *Selection) UsesConstructor() bool { return s.Index >= 0 }

// ParameterMatch binds one constructor parameter to a model property.
type ParameterMatch struct {
	// Parameter is the parameter name.
	Parameter string

	// Property is the matched property name; empty when unmatched.
	Property string
}

// Matched reports whether the parameter resolved to a property.
func (m *ParameterMatch) Matched() bool { return m.Property != "" }

// BindingKind says how reverse mapping supplies one property's value.
type BindingKind int

const (
	// BindConstructorParameter routes the value into a constructor argument.
	BindConstructorParameter BindingKind = iota
	// BindInitAssignment stages the value for an init-time assignment.
	BindInitAssignment
	// BindPostAssignment assigns the value after construction.
	BindPostAssignment
)

// String returns a human-readable binding name.
func (b BindingKind) String() string {
	switch b {
	case BindConstructorParameter:
		return "constructor-parameter"
	case BindInitAssignment:
		return "init-assignment"
	case BindPostAssignment:
		return "post-assignment"
	default:
		return common.UnknownStr
	}
}

// PropertyBinding is the derived binding for one property.
type PropertyBinding struct {
	// Property is the bound property name.
	Property string

	Kind BindingKind

	// ParameterIndex is the constructor parameter index for
	// BindConstructorParameter, -1 otherwise.
	ParameterIndex int
}
