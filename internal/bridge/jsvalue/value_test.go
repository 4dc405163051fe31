package jsvalue

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializePrimitives(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"negative int", -7, "-7"},
		{"uint8", uint8(255), "255"},
		{"int64", int64(1) << 40, "1099511627776"},
		{"float whole", 100.0, "100"},
		{"float fraction", 0.5, "0.5"},
		{"float32", float32(1.5), "1.5"},
		{"tiny float", 1e-7, "1e-07"},
		{"huge float", 1e21, "1e+21"},
		{"nan", math.NaN(), "NaN"},
		{"inf", math.Inf(1), "Infinity"},
		{"neg inf", math.Inf(-1), "-Infinity"},
		{"string", "hi", `"hi"`},
		{"undefined", Undefined, "undefined"},
		{"raw", Raw("cv.width"), "cv.width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializeComposites(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"empty sequence", []any{}, "[]"},
		{"nil typed slice", []float64(nil), "[]"},
		{"typed slice", []float64{1, 2.5}, "[1,2.5]"},
		{"array", [2]int{3, 4}, "[3,4]"},
		{"nested", []any{1, []any{"a", nil}}, `[1,["a",null]]`},
		{"map sorted", map[string]any{"b": 2, "a": "x"}, `{"a":"x","b":2}`},
		{"typed map", map[string]bool{"ok": true}, `{"ok":true}`},
		{"ordered object", Object{{"z", 1}, {"a", []int{}}}, `{"z":1,"a":[]}`},
		{"escaped key", map[string]any{`k"ey`: 1}, `{"k\"ey":1}`},
		{"handle inside", []any{Ref(KindPath2D, "p")}, "[p]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializeIsStructurallyRecursive(t *testing.T) {
	values := []any{"a\nb", 3.25, true, nil, map[string]any{"k": []any{1}}, Ref(KindObject, "o")}

	for _, a := range values {
		for _, b := range values {
			sa := MustSerialize(a)
			sb := MustSerialize(b)
			got := MustSerialize([]any{a, b})
			assert.Equal(t, "["+sa+","+sb+"]", got)
		}
	}
}

func TestSerializeNilHandle(t *testing.T) {
	var h *Handle
	got, err := Serialize(h)
	require.NoError(t, err)
	assert.Equal(t, "null", got)

	var e Evalable = h
	assert.True(t, IsNil(e))
	assert.True(t, IsNil(nil))
	assert.False(t, IsNil(Raw("x")))
}

type (
	alignName string
	pixels    float64
	flag      bool
	level     uint8
)

func TestSerializeNamedScalars(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"named string", alignName("center"), `"center"`},
		{"named string escaped", alignName(`a"b`), `"a\"b"`},
		{"named float", pixels(2.5), "2.5"},
		{"named float whole", pixels(3), "3"},
		{"named bool", flag(true), "true"},
		{"named uint", level(7), "7"},
		{"duration", time.Duration(3), "3"},
		{"named string slice", []alignName{"a", "b"}, `["a","b"]`},
		{"named string map values", map[string]alignName{"k": "v"}, `{"k":"v"}`},
		{"named key map", map[alignName]pixels{"w": 1.5}, `{"w":1.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializeUnsupported(t *testing.T) {
	type point struct{ X, Y int }

	tests := []struct {
		name     string
		value    any
		typeName string
	}{
		{"struct", point{1, 2}, "jsvalue.point"},
		{"int keyed map", map[int]string{1: "a"}, "map[int]string"},
		{"channel", make(chan int), "chan int"},
		{"nested func", []any{1, func() {}}, "func()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Serialize(tt.value)
			var ute *UnsupportedTypeError
			require.True(t, errors.As(err, &ute), "got %v", err)
			assert.Equal(t, tt.typeName, ute.Type)
		})
	}
}

func TestToScriptArray(t *testing.T) {
	args, err := ToScriptArray([]any{1, "x", nil}, false)
	require.NoError(t, err)
	assert.Equal(t, `1,"x",null`, args)

	arr, err := ToScriptArray([]any{1, "x"}, true)
	require.NoError(t, err)
	assert.Equal(t, `[1,"x"]`, arr)

	empty, err := ToScriptArray(nil, true)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	_, err = ToScriptArray([]any{struct{}{}}, false)
	assert.Error(t, err)
}

func TestQuoteRoundTripsThroughScriptEngine(t *testing.T) {
	vm := goja.New()

	inputs := []string{
		"",
		"plain",
		`back\slash`,
		`"double"`,
		"'single'",
		"`template`",
		"line\nbreak",
		"carriage\rreturn",
		"sep\u2028arators\u2029",
		`\n literal`,
		`\"\'`,
		"unicode ✓ 漢字",
		"</script><script>alert(1)</script>",
		strings.Repeat(`\"`, 64),
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			lit := Quote(in)

			v, err := vm.RunString(lit)
			require.NoError(t, err)
			assert.Equal(t, in, v.Export())

			// Single-quoted and template delimiters must survive too.
			inner := lit[1 : len(lit)-1]
			v, err = vm.RunString("'" + inner + "'")
			require.NoError(t, err)
			assert.Equal(t, in, v.Export())

			v, err = vm.RunString("`" + inner + "`")
			require.NoError(t, err)
			assert.Equal(t, in, v.Export())
		})
	}
}

func TestQuoteLeavesNoBareSpecials(t *testing.T) {
	in := "a\\b\"c'd`e\nf"
	inner := Escape(in)

	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '\\':
			require.Less(t, i+1, len(inner))
			i++
		case '"', '\'', '`', '\n':
			t.Fatalf("unescaped %q at %d in %q", inner[i], i, inner)
		}
	}
}

func TestSerializedValuesEvaluate(t *testing.T) {
	vm := goja.New()

	src, err := Serialize(map[string]any{
		"list": []any{1, 2.5, "three", false, nil},
		"nested": map[string]any{
			"s": "q\"uote",
		},
	})
	require.NoError(t, err)

	v, err := vm.RunString("(" + src + ")")
	require.NoError(t, err)

	obj := v.Export().(map[string]any)
	assert.Equal(t, "q\"uote", obj["nested"].(map[string]any)["s"])
	assert.Len(t, obj["list"], 5)
}

type recordingExecutor struct {
	scripts []string
	err     error
}

func (r *recordingExecutor) ExecuteScript(_ context.Context, script string) (any, error) {
	r.scripts = append(r.scripts, script)
	return nil, r.err
}

func TestHandleBindAndRelease(t *testing.T) {
	h := Bind(KindCanvasGradient)
	assert.True(t, h.Owned())
	assert.Equal(t, KindCanvasGradient, h.Kind())
	assert.Equal(t, h.Name(), MustSerialize(h))
	assert.Equal(t, "globalThis."+h.Name()+" = x;", h.Assign("x"))

	exec := &recordingExecutor{}
	require.NoError(t, h.Release(context.Background(), exec))
	require.NoError(t, h.Release(context.Background(), exec))

	assert.True(t, h.Released())
	assert.Equal(t, []string{"delete globalThis." + h.Name() + ";"}, exec.scripts)
}

func TestHandleReleaseFailureAllowsRetry(t *testing.T) {
	h := Bind(KindImage)
	exec := &recordingExecutor{err: errors.New("boom")}

	require.Error(t, h.Release(context.Background(), exec))
	assert.False(t, h.Released())

	exec.err = nil
	require.NoError(t, h.Release(context.Background(), exec))
	assert.True(t, h.Released())
	assert.Len(t, exec.scripts, 2)
}

func TestRefIsNotReleasable(t *testing.T) {
	h := Ref(KindElement, "cv")
	assert.ErrorIs(t, h.Release(context.Background(), &recordingExecutor{}), ErrNotReleasable)
	assert.Equal(t, "cv.style", h.Member(KindObject, "style").Name())
}

func TestResultReaders(t *testing.T) {
	f, ok := Float(int64(3))
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = Float("3")
	assert.False(t, ok)

	b, ok := Bool(true)
	assert.True(t, ok && b)

	s, ok := String("x")
	assert.True(t, ok)
	assert.Equal(t, "x", s)
}
