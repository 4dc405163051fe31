package canvas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/jsvalue"
	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebUIKit/internal/jscodes"
	"github.com/GriffinCanCode/WebUIKit/internal/window"
)

// Context2D is the host-side proxy for a CanvasRenderingContext2D
type Context2D struct {
	win    *window.Window
	ref    string
	canvas string
	logger *zap.Logger

	mu           sync.RWMutex
	interceptors []Interceptor
}

// Option configures a Context2D
type Option func(*Context2D)

// WithRefs targets a context other than the main canvas. ctxExpr and
// canvasExpr are script expressions, e.g. a handle name.
func WithRefs(ctxExpr, canvasExpr string) Option {
	return func(c *Context2D) {
		c.ref = ctxExpr
		c.canvas = canvasExpr
	}
}

// WithInterceptors registers interceptors at construction
func WithInterceptors(interceptors ...Interceptor) Option {
	return func(c *Context2D) {
		c.interceptors = append(c.interceptors, interceptors...)
	}
}

// New creates a proxy for the main canvas context ("ctx" on "cv")
func New(w *window.Window, opts ...Option) *Context2D {
	c := &Context2D{
		win:    w,
		ref:    "ctx",
		canvas: "cv",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.Component(w.Logger(), "canvas")
	return c
}

// Window returns the window the proxy sends through
func (c *Context2D) Window() *window.Window { return c.win }

// JSEval implements jsvalue.Evalable; it yields the context expression
func (c *Context2D) JSEval() string { return c.ref }

// Canvas returns a reference to the canvas element backing the context
func (c *Context2D) Canvas() *jsvalue.Handle {
	return jsvalue.Ref(jsvalue.KindElement, c.canvas)
}

// CreateMainCanvas creates the full-window canvas and the cv/ctx globals
func (c *Context2D) CreateMainCanvas(ctx context.Context) error {
	_, err := c.win.ExecuteScript(ctx, jscodes.MainCanvas)
	return err
}

// Size returns the canvas backing-store size
func (c *Context2D) Size(ctx context.Context) (width, height float64, err error) {
	v, err := c.win.Query(ctx, fmt.Sprintf("[%s.width, %s.height];", c.canvas, c.canvas))
	if err != nil {
		return 0, 0, err
	}
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return 0, 0, fmt.Errorf("canvas size: unexpected result %v", v)
	}
	width, wok := jsvalue.Float(pair[0])
	height, hok := jsvalue.Float(pair[1])
	if !wok || !hok {
		return 0, 0, fmt.Errorf("canvas size: unexpected result %v", v)
	}
	return width, height, nil
}

// Call invokes method on the context with args and returns the raw result
func (c *Context2D) Call(ctx context.Context, method string, args ...any) (any, error) {
	script, err := callScript(c.ref, method, args)
	if err != nil {
		return nil, err
	}
	return c.dispatch(ctx, Call{Kind: KindCall, Method: method, Args: args, Script: script})
}

// SetAttribute assigns value to the context attribute attr
func (c *Context2D) SetAttribute(ctx context.Context, attr string, value any) error {
	v, err := jsvalue.Serialize(value)
	if err != nil {
		return err
	}
	_, err = c.dispatch(ctx, Call{
		Kind:   KindSet,
		Method: attr,
		Args:   []any{value},
		Script: fmt.Sprintf("%s.%s = (%s);", c.ref, attr, v),
	})
	return err
}

// GetAttribute reads the context attribute attr. While batching it
// returns (nil, nil).
func (c *Context2D) GetAttribute(ctx context.Context, attr string) (any, error) {
	return c.dispatch(ctx, Call{
		Kind:   KindGet,
		Method: attr,
		Script: fmt.Sprintf("%s.%s;", c.ref, attr),
	})
}

// WithState brackets fn with save and restore. Restore runs on every exit
// path, including a panic in fn.
func (c *Context2D) WithState(ctx context.Context, fn func() error) (err error) {
	if err := c.Save(ctx); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, c.Restore(ctx))
	}()
	return fn()
}

// Release deletes the global behind h. Releasing twice is a no-op.
func (c *Context2D) Release(ctx context.Context, h *jsvalue.Handle) error {
	if h == nil || h.Released() {
		return nil
	}
	if err := h.Release(ctx, c.win); err != nil {
		return err
	}
	c.win.Metrics().HandleReleased()
	return nil
}

func (c *Context2D) dispatch(ctx context.Context, call Call) (any, error) {
	v, _, err := c.send(ctx, call)
	return v, err
}

// send runs the interceptor chain and executes the call unless cancelled
func (c *Context2D) send(ctx context.Context, call Call) (v any, sent bool, err error) {
	if c.intercept(ctx, &call) == Cancel {
		if ce := c.logger.Check(zap.DebugLevel, "Call cancelled"); ce != nil {
			ce.Write(zap.Stringer("kind", call.Kind), zap.String("method", call.Method))
		}
		return nil, false, nil
	}
	v, err = c.win.ExecuteScript(ctx, call.Script)
	return v, true, err
}

// query dispatches a call whose value the caller needs; it fails with
// window.ErrBatchActive instead of queueing.
func (c *Context2D) query(ctx context.Context, call Call) (any, error) {
	if c.win.Batching() {
		return nil, window.ErrBatchActive
	}
	return c.dispatch(ctx, call)
}

func (c *Context2D) call(ctx context.Context, method string, args ...any) error {
	_, err := c.Call(ctx, method, args...)
	return err
}

// bind calls method and stores its result under a fresh handle
func (c *Context2D) bind(ctx context.Context, kind jsvalue.Kind, method string, args ...any) (*jsvalue.Handle, error) {
	expr, err := exprScript(c.ref, method, args)
	if err != nil {
		return nil, err
	}
	return c.bindExpr(ctx, kind, method, args, expr)
}

func (c *Context2D) bindExpr(ctx context.Context, kind jsvalue.Kind, method string, args []any, expr string) (*jsvalue.Handle, error) {
	h := jsvalue.Bind(kind)
	_, sent, err := c.send(ctx, Call{Kind: KindCall, Method: method, Args: args, Script: h.Assign(expr)})
	if err != nil || !sent {
		return nil, err
	}
	c.win.Metrics().HandleBound()
	return h, nil
}

func (c *Context2D) queryFloat(ctx context.Context, method, script string, args []any) (float64, error) {
	v, err := c.query(ctx, Call{Kind: KindCall, Method: method, Args: args, Script: script})
	if err != nil || v == nil {
		return 0, err
	}
	f, ok := jsvalue.Float(v)
	if !ok {
		return 0, fmt.Errorf("%s: unexpected result %T", method, v)
	}
	return f, nil
}

func (c *Context2D) queryBool(ctx context.Context, method string, args ...any) (bool, error) {
	script, err := callScript(c.ref, method, args)
	if err != nil {
		return false, err
	}
	v, err := c.query(ctx, Call{Kind: KindCall, Method: method, Args: args, Script: script})
	if err != nil || v == nil {
		return false, err
	}
	b, ok := jsvalue.Bool(v)
	if !ok {
		return false, fmt.Errorf("%s: unexpected result %T", method, v)
	}
	return b, nil
}

func exprScript(target, method string, args []any) (string, error) {
	list, err := jsvalue.ToScriptArray(args, false)
	if err != nil {
		return "", fmt.Errorf("%s: %w", method, err)
	}
	var b strings.Builder
	b.Grow(len(target) + len(method) + len(list) + 4)
	b.WriteString(target)
	b.WriteByte('.')
	b.WriteString(method)
	b.WriteByte('(')
	b.WriteString(list)
	b.WriteByte(')')
	return b.String(), nil
}

func callScript(target, method string, args []any) (string, error) {
	expr, err := exprScript(target, method, args)
	if err != nil {
		return "", err
	}
	return expr + ";", nil
}
