package sandbox

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebUIKit/internal/jscodes"
)

// 2x3 transparent PNG
const tinyPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAIAAAADCAYAAAC56t6BAAAAC0lEQVR4nGNgwAkAABsAAco8Sg0AAAAASUVORK5CYII="

func newRuntime(t *testing.T, opts ...Option) *Runtime {
	t.Helper()
	rt, err := New(DefaultConfig(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

func TestRuntimeExecution(t *testing.T) {
	rt := newRuntime(t)

	tests := []struct {
		name   string
		script string
		want   any
	}{
		{name: "simple return", script: "42", want: int64(42)},
		{name: "math operations", script: "Math.sqrt(2.25)", want: 1.5},
		{name: "string operations", script: "'hello'.toUpperCase()", want: "HELLO"},
		{name: "undefined is nil", script: "undefined", want: nil},
		{name: "window globals", script: "[window.innerWidth, window.innerHeight]", want: []any{int64(800), int64(600)}},
		{name: "r2eval is global eval", script: `r2eval("var leaked = 7;"); leaked`, want: int64(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rt.ExecuteScript(context.Background(), tt.script)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuntimeSecurity(t *testing.T) {
	rt := newRuntime(t)

	for _, name := range []string{"require", "process", "module", "exports"} {
		t.Run(name, func(t *testing.T) {
			got, err := rt.ExecuteScript(context.Background(), "typeof "+name)
			require.NoError(t, err)
			assert.Equal(t, "undefined", got)
		})
	}
}

func TestRuntimeScriptError(t *testing.T) {
	rt := newRuntime(t)

	_, err := rt.ExecuteScript(context.Background(), "nope.call()")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestRuntimeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 50 * time.Millisecond
	rt, err := New(cfg)
	require.NoError(t, err)
	defer rt.Close()

	_, err = rt.ExecuteScript(context.Background(), "while (true) {}")
	assert.ErrorIs(t, err, ErrTimeout)

	got, err := rt.ExecuteScript(context.Background(), "1 + 1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestRuntimeContextCancel(t *testing.T) {
	rt := newRuntime(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := rt.ExecuteScript(ctx, "while (true) {}")
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestRuntimeConsole(t *testing.T) {
	rt := newRuntime(t)

	_, err := rt.ExecuteScript(context.Background(), "console.log('hello', 1); console.warn('careful')")
	require.NoError(t, err)

	entries := rt.Console()
	require.Len(t, entries, 2)
	assert.Equal(t, "log", entries[0].Level)
	assert.Equal(t, "hello 1", entries[0].Message)
	assert.Equal(t, "warn", entries[1].Level)
}

func TestMainCanvasFollowsWindowSize(t *testing.T) {
	rt := newRuntime(t)
	ctx := context.Background()

	_, err := rt.ExecuteScript(ctx, jscodes.MainCanvas)
	require.NoError(t, err)

	size, err := rt.ExecuteScript(ctx, "[cv.width, cv.height, cv.className, document.body.children.length]")
	require.NoError(t, err)
	assert.Equal(t, []any{int64(800), int64(600), "main-canvas", int64(1)}, size)

	require.NoError(t, rt.Resize(ctx, 1024, 768))
	size, err = rt.ExecuteScript(ctx, "[cv.width, cv.height]")
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1024), int64(768)}, size)
}

func TestDrawCallsAreRecorded(t *testing.T) {
	rt := newRuntime(t)
	ctx := context.Background()

	_, err := rt.ExecuteScript(ctx, jscodes.MainCanvas)
	require.NoError(t, err)
	rt.ResetCalls()

	_, err = rt.ExecuteScript(ctx, `ctx.fillStyle = "red"; ctx.fillRect(1, 2, 3, 4);`)
	require.NoError(t, err)

	assert.Equal(t, []DrawCall{
		{Target: "set", Method: "fillStyle", Args: []any{"red"}},
		{Target: "ctx", Method: "fillRect", Args: []any{int64(1), int64(2), int64(3), int64(4)}},
	}, rt.Calls())
	assert.True(t, rt.Calls()[0].IsSet())
}

func TestRecordingLimit(t *testing.T) {
	ctx := context.Background()
	const draws = `for (let i = 0; i < 10; i++) ctx.fillRect(i, 0, 1, 1);`

	firstArgs := func(calls []DrawCall) []any {
		out := make([]any, len(calls))
		for i, c := range calls {
			out[i] = c.Args[0]
		}
		return out
	}

	tests := []struct {
		name  string
		limit int
		want  []any
	}{
		{name: "keeps newest", limit: 3, want: []any{int64(7), int64(8), int64(9)}},
		{name: "count only", limit: 0, want: []any{}},
		{name: "unlimited", limit: Unlimited, want: []any{
			int64(0), int64(1), int64(2), int64(3), int64(4),
			int64(5), int64(6), int64(7), int64(8), int64(9),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newRuntime(t, WithRecording(tt.limit))
			_, err := rt.ExecuteScript(ctx, jscodes.MainCanvas)
			require.NoError(t, err)
			rt.ResetCalls()

			_, err = rt.ExecuteScript(ctx, draws)
			require.NoError(t, err)

			assert.Equal(t, tt.want, firstArgs(rt.Calls()))
			assert.Equal(t, uint64(10), rt.CallCount())
		})
	}

	rt := newRuntime(t, WithRecording(4))
	_, err := rt.ExecuteScript(ctx, jscodes.MainCanvas)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		_, err = rt.ExecuteScript(ctx, draws)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(rt.Calls()), 4)
	}

	rt.ResetCalls()
	assert.Empty(t, rt.Calls())
	assert.Zero(t, rt.CallCount())
}

func TestSaveRestoreAttributes(t *testing.T) {
	rt := newRuntime(t)
	ctx := context.Background()

	_, err := rt.ExecuteScript(ctx, jscodes.MainCanvas)
	require.NoError(t, err)

	got, err := rt.ExecuteScript(ctx, `
		ctx.fillStyle = "red";
		ctx.save();
		ctx.fillStyle = "blue";
		ctx.translate(5, 5);
		ctx.restore();
		[ctx.fillStyle, ctx.getTransform().e]`)
	require.NoError(t, err)
	assert.Equal(t, []any{"red", int64(0)}, got)
}

func TestInvokeRoutesToHost(t *testing.T) {
	rt := newRuntime(t)
	var gotName string
	var gotArgs []any
	rt.SetInvoker(func(name string, args []any) (any, error) {
		gotName, gotArgs = name, args
		return "ok", nil
	})

	got, err := rt.ExecuteScript(context.Background(), `webuikit.invoke("loaded", 1, "two")`)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, "loaded", gotName)
	assert.Equal(t, []any{int64(1), "two"}, gotArgs)
}

func TestInvokeErrorThrowsInScript(t *testing.T) {
	rt := newRuntime(t)
	rt.SetInvoker(func(string, []any) (any, error) {
		return nil, errors.New("denied")
	})

	got, err := rt.ExecuteScript(context.Background(), `
		let caught = "";
		try { webuikit.invoke("x"); } catch (e) { caught = String(e); }
		caught`)
	require.NoError(t, err)
	assert.Contains(t, got, "denied")
}

func TestImageLoading(t *testing.T) {
	rt := newRuntime(t)

	got, err := rt.ExecuteScript(context.Background(), `
		const img = new Image();
		let loaded = false;
		img.onload = () => { loaded = true; };
		img.src = "`+tinyPNG+`";
		[loaded, img.complete, img.width, img.height]`)
	require.NoError(t, err)
	assert.Equal(t, []any{true, true, int64(2), int64(3)}, got)
}

func TestImageErrorFiresOnerror(t *testing.T) {
	rt := newRuntime(t)

	got, err := rt.ExecuteScript(context.Background(), `
		const bad = new Image();
		let failed = false;
		bad.onerror = () => { failed = true; };
		bad.src = "http://example.invalid/a.png";
		[failed, bad.complete]`)
	require.NoError(t, err)
	assert.Equal(t, []any{true, false}, got)
}

func TestBytesResolver(t *testing.T) {
	png, err := dataURLBytes(tinyPNG)
	require.NoError(t, err)

	resolve := BytesResolver(func(src string) ([]byte, bool) {
		if src == "http://127.0.0.1:8701/asset_x" {
			return png, true
		}
		return nil, false
	})

	w, h, err := resolve("http://127.0.0.1:8701/asset_x")
	require.NoError(t, err)
	assert.Equal(t, 2, w)
	assert.Equal(t, 3, h)

	_, _, err = resolve("http://127.0.0.1:8701/missing")
	assert.Error(t, err)

	w, _, err = resolve(tinyPNG)
	require.NoError(t, err)
	assert.Equal(t, 2, w)
}

func TestResetAndClose(t *testing.T) {
	rt, err := New(DefaultConfig())
	require.NoError(t, err)

	_, err = rt.ExecuteScript(context.Background(), "var kept = 1;")
	require.NoError(t, err)
	require.NoError(t, rt.Reset())

	got, err := rt.ExecuteScript(context.Background(), "typeof kept")
	require.NoError(t, err)
	assert.Equal(t, "undefined", got)

	require.NoError(t, rt.Close())
	_, err = rt.ExecuteScript(context.Background(), "1")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, rt.Reset(), ErrClosed)
}

func dataURLBytes(src string) ([]byte, error) {
	_, payload, _ := strings.Cut(src, ",")
	return base64.StdEncoding.DecodeString(payload)
}
