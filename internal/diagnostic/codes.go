package diagnostic

// Stable diagnostic codes. Codes are part of the public contract: hosts key
// quick-fixes and suppression lists on them, so existing codes never change
// meaning.
const (
	// Type graph analysis.
	CodeUnsupportedScalar = "unsupported_scalar_type"
	CodeUnsupportedMember = "unsupported_member_type"
	CodeCyclicReference   = "cyclic_nested_reference"

	// Strategy resolution.
	CodeUnsupportedElement       = "unsupported_element_type"
	CodeMapKeyNotString          = "map_key_not_string"
	CodeIncompatibleKindOverride = "incompatible_kind_override"
	CodeUnresolvedDependency     = "unresolved_type_dependency"
	CodeRequiredOmittable        = "required_omittable"

	// Configuration normalization.
	CodeDuplicateOverride       = "duplicate_override"
	CodeInvalidOverrideTarget   = "invalid_override_target"
	CodeConverterPairIncomplete = "converter_pair_incomplete"
	CodeUnknownWireKind         = "unknown_wire_kind"
	CodeNoMapperModel           = "no_mapper_model"

	// Constructor selection.
	CodeMultipleAttributedConstructors = "multiple_attributed_constructors"
	CodeUnmatchedParameter             = "unmatched_parameter"
	CodeReadOnlyUnbound                = "readonly_property_unbound"

	// Invariant violations inside the compiler.
	CodeInternal = "internal_error"
)
