package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidLiteral(t *testing.T) {
	cases := []struct {
		text string
		kind Kind
		ok   bool
	}{
		{"bob", KindString, true},
		{"", KindString, false},
		{"1", KindInt, true},
		{"-42", KindInt, true},
		{"+7", KindInt, true},
		{"abc", KindInt, false},
		{"12abc", KindInt, false},
		{"1.5", KindInt, false},
		{"", KindInt, false},
		{"1.5", KindFloat, true},
		{"-0.25", KindFloat, true},
		{"3", KindFloat, true},
		{"1e3", KindFloat, true},
		{"1.5x", KindFloat, false},
		{"TRUE", KindBoolean, true},
		{"false", KindBoolean, true},
		{"True", KindBoolean, true},
		{"yes", KindBoolean, false},
		{"1", KindBoolean, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, IsValidLiteral(tc.text, tc.kind), "IsValidLiteral(%q, %s)", tc.text, tc.kind)
	}
}

func TestParseValue_RoundTripText(t *testing.T) {
	cases := []struct {
		text   string
		kind   Kind
		native any
		render string
	}{
		{"bob", KindString, "bob", "bob"},
		{"007", KindInt, int64(7), "7"},
		{"2.50", KindFloat, 2.5, "2.5"},
		{"TRUE", KindBoolean, true, "true"},
		{"False", KindBoolean, false, "false"},
	}
	for _, tc := range cases {
		v, err := ParseValue(tc.text, tc.kind)
		require.NoError(t, err, "ParseValue(%q)", tc.text)
		assert.Equal(t, tc.kind, v.Kind)
		assert.Equal(t, tc.native, v.Native())
		assert.Equal(t, tc.render, v.String())
	}
}

func TestParseValue_UnknownKind(t *testing.T) {
	_, err := ParseValue("1", Kind(0))
	require.ErrorIs(t, err, ErrInvalidKind)
}
