package util

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeInt(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int
		ok       bool
	}{
		{name: "int", input: 42, expected: 42, ok: true},
		{name: "integral float", input: 7.0, expected: 7, ok: true},
		{name: "fractional float", input: 7.5, ok: false},
		{name: "json number", input: json.Number("1234"), expected: 1234, ok: true},
		{name: "json number float", input: json.Number("3.0"), expected: 3, ok: true},
		{name: "numeric string", input: " 12 ", expected: 12, ok: true},
		{name: "decimal string", input: "3.0", ok: false},
		{name: "empty string", input: "", ok: false},
		{name: "text", input: "abc", ok: false},
		{name: "bool", input: true, ok: false},
		{name: "nil", input: nil, ok: false},
		{name: "map", input: map[string]any{}, ok: false},
		{name: "json number beyond int64", input: json.Number("1e20"), ok: false},
		{name: "negative json number beyond int64", input: json.Number("-1e20"), ok: false},
		{name: "float beyond int64", input: 9.3e18, ok: false},
		{name: "negative", input: json.Number("-5"), expected: -5, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := SafeInt(tt.input)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, value)
			}
		})
	}
}

func TestSafeFloat(t *testing.T) {
	f, ok := SafeFloat(json.Number("-8.4123"))
	assert.True(t, ok)
	assert.InDelta(t, -8.4123, f, 1e-9)

	f, ok = SafeFloat("43.37")
	assert.True(t, ok)
	assert.InDelta(t, 43.37, f, 1e-9)

	_, ok = SafeFloat(false)
	assert.False(t, ok)

	_, ok = SafeFloat("north")
	assert.False(t, ok)

	for _, input := range []any{"NaN", "nan", "Inf", "-Infinity", math.Inf(1), math.NaN()} {
		_, ok = SafeFloat(input)
		assert.False(t, ok, "%v", input)
	}
}

func TestSafeID(t *testing.T) {
	id, ok := SafeID(json.Number("523"))
	assert.True(t, ok)
	assert.Equal(t, 523, id)

	_, ok = SafeID(json.Number("-1"))
	assert.False(t, ok)

	_, ok = SafeID(json.Number("1e20"))
	assert.False(t, ok)

	id, ok = SafeID(0)
	assert.True(t, ok)
	assert.Equal(t, 0, id)
}

func TestSafeInts(t *testing.T) {
	values := []any{json.Number("1"), "x", 2.0, nil, "3"}

	assert.Equal(t, []int{1, 2, 3}, SafeInts(values))
	assert.Equal(t, []int{}, SafeInts(nil))
}

func TestAsHelpers(t *testing.T) {
	assert.Nil(t, AsMap([]any{}))
	assert.NotNil(t, AsMap(map[string]any{"a": 1}))
	assert.Nil(t, AsList(map[string]any{}))
	assert.Len(t, AsList([]any{1, 2}), 2)

	assert.Equal(t, "", AsString(nil))
	assert.Equal(t, "12", AsString(json.Number("12")))
	assert.Equal(t, "1A", AsString("1A"))
}
