package document

import "fmt"

// Kind identifies the wire kind of a document value.
type Kind int

const (
	KindInvalid Kind = iota

	KindString
	KindNumber
	KindBool
	KindNull
	KindBinary
	KindList
	KindMap
	KindStringSet
	KindNumberSet
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	case KindBinary:
		return "binary"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindStringSet:
		return "string-set"
	case KindNumberSet:
		return "number-set"
	default:
		return "invalid"
	}
}

// IsScalar returns true for non-container kinds.
func (k Kind) IsScalar() bool {
	switch k {
	case KindString, KindNumber, KindBool, KindNull, KindBinary:
		return true
	default:
		return false
	}
}

// IsSet returns true for the native set kinds.
func (k Kind) IsSet() bool {
	return k == KindStringSet || k == KindNumberSet
}

// ParseKind parses a kind name as it appears in mapper configuration.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "string":
		return KindString, nil
	case "number":
		return KindNumber, nil
	case "boolean", "bool":
		return KindBool, nil
	case "null":
		return KindNull, nil
	case "binary":
		return KindBinary, nil
	case "list":
		return KindList, nil
	case "map":
		return KindMap, nil
	case "string-set":
		return KindStringSet, nil
	case "number-set":
		return KindNumberSet, nil
	default:
		return KindInvalid, fmt.Errorf("unknown wire kind %q", s)
	}
}
