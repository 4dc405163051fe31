package jsvalue

import (
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Evalable is implemented by values that already know their script form.
// The returned text is emitted verbatim and must be safe.
type Evalable interface {
	JSEval() string
}

// Raw is script text emitted as-is.
type Raw string

// JSEval implements Evalable.
func (r Raw) JSEval() string { return string(r) }

// Undefined serializes to the script `undefined` value.
const Undefined = Raw("undefined")

// Field is one entry of an ordered Object.
type Field struct {
	Key   string
	Value any
}

// Object is a string-keyed mapping that serializes in insertion order.
type Object []Field

// Serialize converts v into script-literal text.
func Serialize(v any) (string, error) {
	var b strings.Builder
	if err := appendValue(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MustSerialize is like Serialize but panics on unsupported values.
// Intended for constants built from known types.
func MustSerialize(v any) string {
	s, err := Serialize(v)
	if err != nil {
		panic(err)
	}
	return s
}

// ToScriptArray serializes values comma-joined, optionally wrapped in brackets.
// Without brackets the result is an argument list.
func ToScriptArray(values []any, bracket bool) (string, error) {
	var b strings.Builder
	if bracket {
		b.WriteByte('[')
	}
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := appendValue(&b, v); err != nil {
			return "", err
		}
	}
	if bracket {
		b.WriteByte(']')
	}
	return b.String(), nil
}

// FormatNumber renders f the way a script engine reads it back.
func FormatNumber(f float64) string {
	return formatFloat(f, 64)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

func appendValue(b *strings.Builder, v any) error {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case Evalable:
		if isNilPointer(x) {
			b.WriteString("null")
			return nil
		}
		b.WriteString(x.JSEval())
	case string:
		b.WriteString(Quote(x))
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int8:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int16:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case uint:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint8:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint16:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(x, 10))
	case float32:
		b.WriteString(formatFloat(float64(x), 32))
	case float64:
		b.WriteString(formatFloat(x, 64))
	case []any:
		return appendSequence(b, len(x), func(i int) any { return x[i] })
	case map[string]any:
		return appendMapping(b, reflect.ValueOf(x))
	case Object:
		return appendObject(b, x)
	default:
		return appendReflect(b, v)
	}
	return nil
}

// appendReflect covers named scalars such as time.Duration and typed
// slices, arrays and maps such as []float64 or map[string]string.
func appendReflect(b *strings.Builder, v any) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		b.WriteString(Quote(rv.String()))
		return nil
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(rv.Bool()))
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Float32:
		b.WriteString(formatFloat(rv.Float(), 32))
		return nil
	case reflect.Float64:
		b.WriteString(formatFloat(rv.Float(), 64))
		return nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			b.WriteString("[]")
			return nil
		}
		return appendSequence(b, rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return &UnsupportedTypeError{Type: rv.Type().String()}
		}
		return appendMapping(b, rv)
	}
	return &UnsupportedTypeError{Type: rv.Type().String()}
}

func appendSequence(b *strings.Builder, n int, at func(int) any) error {
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := appendValue(b, at(i)); err != nil {
			return err
		}
	}
	b.WriteByte(']')
	return nil
}

func appendMapping(b *strings.Builder, rv reflect.Value) error {
	keys := make([]string, 0, rv.Len())
	values := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		values[k] = iter.Value().Interface()
	}
	sort.Strings(keys)

	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Quote(k))
		b.WriteByte(':')
		if err := appendValue(b, values[k]); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

func appendObject(b *strings.Builder, o Object) error {
	b.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Quote(f.Key))
		b.WriteByte(':')
		if err := appendValue(b, f.Value); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

// IsNil reports whether v is nil or a nil pointer such as a
// (*Handle)(nil) held in an interface.
func IsNil(v any) bool {
	return v == nil || isNilPointer(v)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
