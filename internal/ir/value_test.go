package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRValueSealed(t *testing.T) {
	var _ IRValue = IRNull{}
	var _ IRValue = IRString("test")
	var _ IRValue = IRInt(42)
	var _ IRValue = IRBool(true)
	var _ IRValue = IRArray{IRString("a"), IRInt(1)}
	var _ IRValue = IRObject{"key": IRString("value")}
}

func TestIRObjectSortedKeys(t *testing.T) {
	obj := IRObject{
		"name":           IRString("Asia"),
		"continent_id":   IRInt(1),
		"continent_code": IRString("AS"),
	}

	assert.Equal(t, []string{"continent_code", "continent_id", "name"}, obj.SortedKeys())
}

func TestIRObjectSortedKeysRFC8785Order(t *testing.T) {
	obj := IRObject{
		"a":  IRInt(1),
		"A":  IRInt(2),
		"aa": IRInt(3),
		"aA": IRInt(4),
		"Aa": IRInt(5),
		"AA": IRInt(6),
	}

	// 'A' = 65, 'a' = 97
	assert.Equal(t, []string{"A", "AA", "Aa", "a", "aA", "aa"}, obj.SortedKeys())
}

func TestIRObjectSortedKeysSurrogatePairs(t *testing.T) {
	// U+1F600 encodes as a surrogate pair (0xD83D...) which sorts before
	// U+FF01 in UTF-16 even though its UTF-8 encoding sorts after.
	obj := IRObject{"\U0001F600": IRInt(1), "\uff01": IRInt(2)}

	assert.Equal(t, []string{"\U0001F600", "\uff01"}, obj.SortedKeys())
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name string
		in   IRValue
		want bool
	}{
		{"nil", nil, true},
		{"null", IRNull{}, true},
		{"empty string", IRString(""), true},
		{"string", IRString("AS"), false},
		{"zero", IRInt(0), true},
		{"int", IRInt(7), false},
		{"false", IRBool(false), true},
		{"true", IRBool(true), false},
		{"empty array", IRArray{}, true},
		{"array", IRArray{IRInt(1)}, false},
		{"empty object", IRObject{}, true},
		{"object", IRObject{"a": IRInt(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsZero(tt.in))
		})
	}
}

func TestFromGo(t *testing.T) {
	v, err := FromGo(map[string]any{
		"name":  "Asia",
		"id":    3,
		"ok":    true,
		"list":  []any{int64(1), "x"},
		"float": float64(12),
		"none":  nil,
	})
	require.NoError(t, err)

	assert.Equal(t, IRObject{
		"name":  IRString("Asia"),
		"id":    IRInt(3),
		"ok":    IRBool(true),
		"list":  IRArray{IRInt(1), IRString("x")},
		"float": IRInt(12),
		"none":  IRNull{},
	}, v)
}

func TestFromGo_RejectsFractions(t *testing.T) {
	_, err := FromGo(map[string]any{"lat": 1.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-integral")
}

func TestFromGo_JSONNumber(t *testing.T) {
	v, err := FromGo(json.Number("9007199254740993"))
	require.NoError(t, err)
	assert.Equal(t, IRInt(9007199254740993), v, "no float64 rounding")

	_, err = FromGo(json.Number("2.5"))
	require.Error(t, err)
}

func TestFromGo_UnsupportedType(t *testing.T) {
	_, err := FromGo(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestToParam(t *testing.T) {
	p, err := ToParam(IRString("AS"))
	require.NoError(t, err)
	assert.Equal(t, "AS", p)

	p, err = ToParam(IRInt(4))
	require.NoError(t, err)
	assert.Equal(t, int64(4), p)

	p, err = ToParam(IRNull{})
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = ToParam(IRArray{IRInt(1)})
	require.Error(t, err)
}
