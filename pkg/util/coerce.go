package util

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Upstream payloads mix numbers, numeric strings and nulls for the same
// field. These helpers never fail on a type mismatch: anything that cannot be
// represented as the requested type is reported as absent.

// SafeInt coerces v to an int. Booleans, non-integral floats and
// non-numeric strings are absent.
func SafeInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return floatToInt(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
		if f, err := t.Float64(); err == nil {
			return floatToInt(f)
		}
	case string:
		raw := strings.TrimSpace(t)
		if raw == "" {
			return 0, false
		}
		if i, err := strconv.Atoi(raw); err == nil {
			return i, true
		}
	}

	return 0, false
}

// SafeFloat coerces v to a float64. NaN and infinities are absent.
func SafeFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return finite(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return finite(f)
		}
	case string:
		raw := strings.TrimSpace(t)
		if raw == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return finite(f)
		}
	}

	return 0, false
}

// SafeID coerces v to a record identifier. Negative values are absent.
func SafeID(v any) (int, bool) {
	id, ok := SafeInt(v)
	if !ok || id < 0 {
		return 0, false
	}

	return id, true
}

func SafeIntPtr(v any) *int {
	if i, ok := SafeInt(v); ok {
		return &i
	}

	return nil
}

func SafeFloatPtr(v any) *float64 {
	if f, ok := SafeFloat(v); ok {
		return &f
	}

	return nil
}

// SafeInts keeps only the coercible members of a list, in order
func SafeInts(values []any) []int {
	ints := []int{}
	for _, value := range values {
		if i, ok := SafeInt(value); ok {
			ints = append(ints, i)
		}
	}

	return ints
}

func AsMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}

	return nil
}

func AsList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}

	return nil
}

// AsString renders scalar values as text. Nulls, empty values and
// containers render as "".
func AsString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		if t {
			return "True"
		}
	}

	return ""
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// floatToInt rejects anything outside the int64 range, where the conversion
// is implementation defined
func floatToInt(f float64) (int, bool) {
	if _, ok := finite(f); !ok || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int(f), true
}
