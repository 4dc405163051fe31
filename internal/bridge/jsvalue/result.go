package jsvalue

import "math"

// Float reads a number returned by a script context. Engines and wire
// codecs disagree on integer representation, so every numeric kind is
// accepted.
func Float(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return math.NaN(), false
}

// Bool reads a boolean returned by a script context.
func Bool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// String reads a string returned by a script context.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
