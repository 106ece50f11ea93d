// Package primitive is the scalar capability table: for every scalar kind a
// model property can declare, it answers which wire kinds can carry it and
// which of those is the default. It also hosts the runtime parse/format
// helpers that sit at the leaves of a mapping plan.
package primitive

import "docmap-generator/document"

// wireCandidates lists, per scalar kind, the wire kinds that can carry it.
// The first candidate is the default chosen when no explicit kind override
// is configured. Order is part of the public contract; do not sort.
var wireCandidates map[Kind][]document.Kind

func init() {
	wireCandidates = make(map[Kind][]document.Kind, KindTotal)

	wireCandidates[KindString] = []document.Kind{document.KindString}
	wireCandidates[KindBool] = []document.Kind{
		document.KindBool,
		document.KindNumber, // 0/1
		document.KindString, // "true"/"false"
	}

	for k := Kind(0); int(k) < KindTotal; k++ {
		if k.IsNumber() {
			wireCandidates[k] = []document.Kind{
				document.KindNumber,
				document.KindString, // textual number representation
			}
		}
	}

	wireCandidates[KindTime] = []document.Kind{
		document.KindString, // RFC3339Nano
		document.KindNumber, // Unix seconds
	}
	wireCandidates[KindDuration] = []document.Kind{
		document.KindString, // "2h45m"
		document.KindNumber, // nanoseconds
	}
	wireCandidates[KindGUID] = []document.Kind{document.KindString}
	wireCandidates[KindBytes] = []document.Kind{
		document.KindBinary,
		document.KindString, // base64
	}
	wireCandidates[KindEnum] = []document.Kind{
		document.KindString,
		document.KindNumber, // integer underlying only
	}
}

// WireCandidates returns the wire kinds that can carry the scalar kind,
// default first. Returns nil for kinds the table does not support.
func WireCandidates(k Kind) []document.Kind {
	c := wireCandidates[k]
	if c == nil {
		return nil
	}

	return append([]document.Kind(nil), c...)
}

// DefaultWireKind returns the default wire kind for the scalar kind, or
// document.KindInvalid if the kind is not supported.
func DefaultWireKind(k Kind) document.Kind {
	c := wireCandidates[k]
	if len(c) == 0 {
		return document.KindInvalid
	}

	return c[0]
}

// CanRepresent reports whether wire kind w can carry scalar kind k.
func CanRepresent(k Kind, w document.Kind) bool {
	for _, c := range wireCandidates[k] {
		if c == w {
			return true
		}
	}

	return false
}

// SetElementKind returns the native set kind for collections of the scalar
// kind, if one exists: string-like elements form string-sets, numeric
// elements form number-sets.
func SetElementKind(k Kind) (document.Kind, bool) {
	switch {
	case k.IsStringLike():
		return document.KindStringSet, true
	case k.IsNumber():
		return document.KindNumberSet, true
	default:
		return document.KindInvalid, false
	}
}
