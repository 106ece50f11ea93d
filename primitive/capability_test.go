package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmap-generator/document"
)

func TestDefaultWireKindIsFirstCandidate(t *testing.T) {
	for k := Kind(1); int(k) < KindTotal; k++ {
		candidates := WireCandidates(k)
		require.NotEmpty(t, candidates, "kind %s has no candidates", k)
		assert.Equal(t, candidates[0], DefaultWireKind(k), "kind %s", k)
	}
}

func TestCanRepresentMatchesCandidates(t *testing.T) {
	allWire := []document.Kind{
		document.KindString, document.KindNumber, document.KindBool,
		document.KindNull, document.KindBinary, document.KindList,
		document.KindMap, document.KindStringSet, document.KindNumberSet,
	}

	for k := Kind(1); int(k) < KindTotal; k++ {
		admitted := make(map[document.Kind]bool)
		for _, w := range WireCandidates(k) {
			admitted[w] = true
		}

		for _, w := range allWire {
			assert.Equal(t, admitted[w], CanRepresent(k, w), "kind %s wire %s", k, w)
		}
	}
}

func TestWireCandidates(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected []document.Kind
	}{
		{KindString, []document.Kind{document.KindString}},
		{KindBool, []document.Kind{document.KindBool, document.KindNumber, document.KindString}},
		{KindInt, []document.Kind{document.KindNumber, document.KindString}},
		{KindFloat64, []document.Kind{document.KindNumber, document.KindString}},
		{KindTime, []document.Kind{document.KindString, document.KindNumber}},
		{KindDuration, []document.Kind{document.KindString, document.KindNumber}},
		{KindGUID, []document.Kind{document.KindString}},
		{KindBytes, []document.Kind{document.KindBinary, document.KindString}},
		{KindEnum, []document.Kind{document.KindString, document.KindNumber}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, WireCandidates(tt.kind))
		})
	}
}

func TestWireCandidatesReturnsCopy(t *testing.T) {
	c := WireCandidates(KindBool)
	c[0] = document.KindBinary

	assert.Equal(t, document.KindBool, WireCandidates(KindBool)[0])
}

func TestSetElementKind(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected document.Kind
		ok       bool
	}{
		{KindString, document.KindStringSet, true},
		{KindGUID, document.KindStringSet, true},
		{KindInt, document.KindNumberSet, true},
		{KindFloat64, document.KindNumberSet, true},
		{KindBool, document.KindInvalid, false},
		{KindBytes, document.KindInvalid, false},
		{KindTime, document.KindInvalid, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, ok := SetElementKind(tt.kind)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}
