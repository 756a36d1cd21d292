package util

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Safe scalar coercion for values crossing the broker boundary. Broker
// payloads mix string, numeric, and missing encodings for the same field,
// and the mapping layer must never fail on a malformed record.
//
// Each coercion comes in two forms: FloatOK/IntOK/BoolOK report whether the
// input actually parsed, so callers that care can tell a genuine zero from
// a defaulted one; Float/Int/Bool collapse to a default for callers that
// only want a total function.

// FloatOK converts v to a float64. The second return is false when v is
// nil, empty, or unparseable, in which case the value is 0.
func FloatOK(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		if x == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Float converts v to a float64, returning def when v does not parse.
func Float(v any, def float64) float64 {
	if f, ok := FloatOK(v); ok {
		return f
	}
	return def
}

// IntOK converts v to an int by parsing as a float first (broker payloads
// carry quantities like "10.0") and truncating. The second return is false
// when v does not parse.
func IntOK(v any) (int, bool) {
	f, ok := FloatOK(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Int converts v to an int, returning def when v does not parse.
func Int(v any, def int) int {
	if n, ok := IntOK(v); ok {
		return n
	}
	return def
}

// Str converts v to its string form, returning def when v is nil.
func Str(v any, def string) string {
	switch x := v.(type) {
	case nil:
		return def
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return def
	}
}

// BoolOK converts v to a bool, understanding the usual truthiness spellings
// ("true"/"1"/"yes"/"on" and their negatives). The second return is false
// when v is nil, empty, or not recognisable — like FloatOK, an empty string
// counts as absent, not as a parsed false.
func BoolOK(v any) (bool, bool) {
	switch x := v.(type) {
	case nil:
		return false, false
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "":
			return false, false
		case "true", "1", "yes", "on", "y", "t":
			return true, true
		case "false", "0", "no", "off", "n", "f":
			return false, true
		}
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f != 0, true
		}
		return false, false
	default:
		if f, ok := FloatOK(v); ok {
			return f != 0, true
		}
		return false, false
	}
}

// Bool converts v to a bool, returning def when v does not parse.
func Bool(v any, def bool) bool {
	if b, ok := BoolOK(v); ok {
		return b
	}
	return def
}

// PositiveFloat parses s and reports whether it yielded a strictly positive
// value. Used by the fallback field cascades, which must distinguish an
// absent field ("") from a reported zero ("0").
func PositiveFloat(s string) (float64, bool) {
	f, ok := FloatOK(s)
	if !ok || f <= 0 {
		return 0, false
	}
	return f, true
}

// PositiveInt parses s as a float, truncates, and reports whether the
// result is strictly positive.
func PositiveInt(s string) (int, bool) {
	n, ok := IntOK(s)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// FirstNonEmpty returns the first string in candidates that is non-empty,
// or "" when all are empty.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
