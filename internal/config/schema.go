package config

// File represents the root of a YAML mapper configuration file.
// This is the authoritative, human-reviewed mapping configuration.
type File struct {
	// Version of the configuration schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Mappers is the list of per-model mapper configurations.
	Mappers []MapperConfig `yaml:"mappers"`
}

// MapperConfig configures one mapper: the named unit that owns one model
// type's forward/reverse mapping.
type MapperConfig struct {
	// Name of the mapper. Defaults to the model identifier.
	Name string `yaml:"name,omitempty"`

	// Model identifies the mapped model type (e.g., "shop.Order").
	Model string `yaml:"model"`

	// Naming selects the wire-name convention for properties without an
	// explicit name override: exact | camel | pascal | snake.
	// Defaults to camel.
	Naming string `yaml:"naming,omitempty"`

	// Required, when set, replaces nullability-based requiredness inference
	// for every property without an explicit requiredness override.
	Required *bool `yaml:"required,omitempty"`

	// Overrides are per-member declarative overrides. At most one override
	// per member; duplicates are a configuration error.
	Overrides []Override `yaml:"overrides,omitempty"`

	// Hooks are custom method names invoked at plan boundaries.
	Hooks Hooks `yaml:"hooks,omitempty"`
}

// Override is one per-member declarative override.
type Override struct {
	// Member is the property name the override targets.
	Member string `yaml:"member"`

	// Name replaces the wire attribute name produced by the naming convention.
	Name string `yaml:"name,omitempty"`

	// Kind forces a wire kind; it must be compatible with the member's
	// classification (see document.ParseKind for accepted names).
	Kind string `yaml:"kind,omitempty"`

	// Required overrides requiredness inferred from nullability.
	Required *bool `yaml:"required,omitempty"`

	// OmitNull controls whether a null value omits the wire attribute.
	OmitNull *bool `yaml:"omitNull,omitempty"`

	// OmitEmpty omits the wire attribute for empty strings. Applies to
	// string-classified members only; ignored elsewhere.
	OmitEmpty *bool `yaml:"omitEmpty,omitempty"`

	// Forward and Reverse name a custom converter method pair. Both must be
	// supplied together; a lone half is a configuration error.
	Forward string `yaml:"forward,omitempty"`
	Reverse string `yaml:"reverse,omitempty"`
}

// HasCustomConverter reports whether either half of a converter pair is set.
func (o *Override) HasCustomConverter() bool {
	return o.Forward != "" || o.Reverse != ""
}

// Hooks are custom lifecycle method names. Empty names mean no hook.
type Hooks struct {
	BeforeForward string `yaml:"beforeForward,omitempty"`
	AfterForward  string `yaml:"afterForward,omitempty"`
	BeforeReverse string `yaml:"beforeReverse,omitempty"`
	AfterReverse  string `yaml:"afterReverse,omitempty"`
}
