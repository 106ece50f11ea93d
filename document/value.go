// Package document models the tagged wire value exchanged with key-value
// document stores: five scalar kinds (string, number, boolean, null, binary)
// and four container kinds (list, map, string-set, number-set).
//
// Values are immutable after construction. Numbers are carried as their
// decimal string representation; the store, not this package, assigns them a
// machine width. Map entries preserve insertion order so that rendering a
// value is deterministic.
package document

import (
	"bytes"
	"encoding/base64"
	"strings"
)

// Entry is a single named attribute of a map value.
type Entry struct {
	Name  string
	Value Value
}

// Value is one wire document value of any kind.
// The zero Value has KindInvalid and is not a legal wire value.
type Value struct {
	kind    Kind
	str     string // KindString and KindNumber payload
	boolean bool
	bin     []byte
	list    []Value
	entries []Entry
	set     []string // KindStringSet and KindNumberSet members
}

// String constructs a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number constructs a number value from its decimal representation.
func Number(repr string) Value { return Value{kind: KindNumber, str: repr} }

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Null constructs the null value.
func Null() Value { return Value{kind: KindNull} }

// Binary constructs a binary value. The payload is copied.
func Binary(b []byte) Value {
	return Value{kind: KindBinary, bin: bytes.Clone(b)}
}

// List constructs a list value from the given items.
func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

// Map constructs a map value. Entry order is preserved.
func Map(entries ...Entry) Value {
	return Value{kind: KindMap, entries: append([]Entry(nil), entries...)}
}

// StringSet constructs a native string-set value.
func StringSet(members ...string) Value {
	return Value{kind: KindStringSet, set: append([]string(nil), members...)}
}

// NumberSet constructs a native number-set value from decimal representations.
func NumberSet(members ...string) Value {
	return Value{kind: KindNumberSet, set: append([]string(nil), members...)}
}

// Kind returns the wire kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull returns true for the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// StringValue returns the payload of a string value.
func (v Value) StringValue() string { return v.str }

// NumberValue returns the decimal representation of a number value.
func (v Value) NumberValue() string { return v.str }

// BoolValue returns the payload of a boolean value.
func (v Value) BoolValue() bool { return v.boolean }

// BinaryValue returns a copy of the payload of a binary value.
func (v Value) BinaryValue() []byte { return bytes.Clone(v.bin) }

// ListValue returns the items of a list value.
func (v Value) ListValue() []Value { return append([]Value(nil), v.list...) }

// Entries returns the attributes of a map value in insertion order.
func (v Value) Entries() []Entry { return append([]Entry(nil), v.entries...) }

// SetValues returns the members of a string-set or number-set value.
func (v Value) SetValues() []string { return append([]string(nil), v.set...) }

// Lookup returns the named attribute of a map value.
func (v Value) Lookup(name string) (Value, bool) {
	for _, e := range v.entries {
		if e.Name == name {
			return e.Value, true
		}
	}

	return Value{}, false
}

// Len returns the number of items, entries, or members of a container value,
// or the byte length of a binary/string value.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.entries)
	case KindStringSet, KindNumberSet:
		return len(v.set)
	case KindBinary:
		return len(v.bin)
	case KindString, KindNumber:
		return len(v.str)
	default:
		return 0
	}
}

// Equal reports deep equality of two values.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindString, KindNumber:
		return v.str == other.str
	case KindBool:
		return v.boolean == other.boolean
	case KindNull:
		return true
	case KindBinary:
		return bytes.Equal(v.bin, other.bin)
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}

		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}

		return true
	case KindMap:
		if len(v.entries) != len(other.entries) {
			return false
		}

		for i := range v.entries {
			if v.entries[i].Name != other.entries[i].Name {
				return false
			}

			if !v.entries[i].Value.Equal(other.entries[i].Value) {
				return false
			}
		}

		return true
	case KindStringSet, KindNumberSet:
		if len(v.set) != len(other.set) {
			return false
		}

		for i := range v.set {
			if v.set[i] != other.set[i] {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// String renders the value for debugging. The rendering is deterministic for
// identical values but is not a serialization format.
func (v Value) String() string {
	var b strings.Builder

	v.render(&b)

	return b.String()
}

func (v Value) render(b *strings.Builder) {
	switch v.kind {
	case KindString:
		b.WriteByte('"')
		b.WriteString(v.str)
		b.WriteByte('"')
	case KindNumber:
		b.WriteString(v.str)
	case KindBool:
		if v.boolean {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNull:
		b.WriteString("null")
	case KindBinary:
		b.WriteString("b64:")
		b.WriteString(base64.StdEncoding.EncodeToString(v.bin))
	case KindList:
		b.WriteByte('[')

		for i, item := range v.list {
			if i > 0 {
				b.WriteByte(',')
			}

			item.render(b)
		}

		b.WriteByte(']')
	case KindMap:
		b.WriteByte('{')

		for i, e := range v.entries {
			if i > 0 {
				b.WriteByte(',')
			}

			b.WriteString(e.Name)
			b.WriteByte(':')
			e.Value.render(b)
		}

		b.WriteByte('}')
	case KindStringSet, KindNumberSet:
		b.WriteByte('<')

		for i, m := range v.set {
			if i > 0 {
				b.WriteByte(',')
			}

			b.WriteString(m)
		}

		b.WriteByte('>')
	default:
		b.WriteString("invalid")
	}
}
