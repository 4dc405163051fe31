package sandbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebUIKit/internal/jscodes"
)

// Runtime wraps a goja VM preloaded with the headless page
type Runtime struct {
	vm     *goja.Runtime
	config Config
	logger *zap.Logger
	images ImageResolver
	mu     sync.Mutex
	closed bool

	// Recorded output. calls is a ring of at most limit entries once full;
	// head is the oldest entry.
	console []LogEntry
	calls   []DrawCall
	head    int
	limit   int
	total   uint64
	outMu   sync.Mutex

	invokeMu sync.RWMutex
	invoker  func(name string, args []any) (any, error)
}

// Option configures a Runtime
type Option func(*Runtime)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) { r.logger = logging.OrNop(l) }
}

// Unlimited keeps every recorded draw call
const Unlimited = -1

// WithRecording bounds draw-call recording to the most recent limit calls.
// Zero only counts calls; Unlimited, the default, keeps all of them.
func WithRecording(limit int) Option {
	return func(r *Runtime) {
		if limit < 0 {
			limit = Unlimited
		}
		r.limit = limit
	}
}

// WithImageResolver sets how Image.src is resolved
func WithImageResolver(resolver ImageResolver) Option {
	return func(r *Runtime) {
		if resolver != nil {
			r.images = resolver
		}
	}
}

// New creates a runtime with the headless page loaded
func New(config Config, opts ...Option) (*Runtime, error) {
	r := &Runtime{
		config: config,
		logger: zap.NewNop(),
		images: DataURLResolver,
		limit:  Unlimited,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.Component(r.logger, "sandbox")

	if err := r.setup(); err != nil {
		return nil, err
	}
	return r, nil
}

// ExecuteScript runs script with the configured timeout and returns the
// exported value of its last expression
func (r *Runtime) ExecuteScript(ctx context.Context, script string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}

	val, err := r.run(ctx, script)
	if err != nil {
		return nil, err
	}
	return exportValue(val), nil
}

// run executes script under the interrupt watchdog. Caller holds r.mu.
func (r *Runtime) run(ctx context.Context, script string) (goja.Value, error) {
	timeout := r.config.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	done := make(chan struct{})
	stopped := make(chan struct{})
	vm := r.vm

	go func() {
		defer close(stopped)
		select {
		case <-timer.C:
			vm.Interrupt(ErrTimeout)
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := vm.RunString(script)

	close(done)
	<-stopped
	vm.ClearInterrupt()

	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			if cause, ok := interrupted.Value().(error); ok {
				return nil, cause
			}
		}
		return nil, err
	}
	return val, nil
}

// SetInvoker routes webuikit.invoke calls to fn
func (r *Runtime) SetInvoker(fn func(name string, args []any) (any, error)) {
	r.invokeMu.Lock()
	defer r.invokeMu.Unlock()
	r.invoker = fn
}

// Resize changes the window size and fires a resize event
func (r *Runtime) Resize(ctx context.Context, width, height int) error {
	_, err := r.ExecuteScript(ctx, fmt.Sprintf(
		"window.innerWidth = %d; window.innerHeight = %d; window.dispatchEvent({type: \"resize\"});",
		width, height,
	))
	return err
}

// Calls returns the retained draw calls since the last ResetCalls, oldest
// first
func (r *Runtime) Calls() []DrawCall {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	out := make([]DrawCall, 0, len(r.calls))
	out = append(out, r.calls[r.head:]...)
	return append(out, r.calls[:r.head]...)
}

// CallCount returns how many draw calls were made since the last
// ResetCalls, retained or not
func (r *Runtime) CallCount() uint64 {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	return r.total
}

// ResetCalls clears the recorded draw calls
func (r *Runtime) ResetCalls() {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	r.clearCalls()
}

func (r *Runtime) clearCalls() {
	r.calls = nil
	r.head = 0
	r.total = 0
}

// Console returns captured console output
func (r *Runtime) Console() []LogEntry {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	return append([]LogEntry{}, r.console...)
}

// Reset discards all script state and reloads the headless page
func (r *Runtime) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	r.outMu.Lock()
	r.console = nil
	r.clearCalls()
	r.outMu.Unlock()

	return r.setup()
}

// Close releases the VM. Further calls fail with ErrClosed.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.vm = nil
	return nil
}

// setup creates a fresh VM with host hooks and the headless page
func (r *Runtime) setup() error {
	vm := goja.New()
	vm.SetMaxCallStackSize(1024)

	// Remove dangerous globals
	for _, name := range []string{"require", "process", "module", "exports"} {
		if err := vm.Set(name, goja.Undefined()); err != nil {
			return err
		}
	}

	console := vm.NewObject()
	for _, level := range []string{"log", "warn", "error", "info", "debug"} {
		if err := console.Set(level, r.makeConsoleFunc(level)); err != nil {
			return err
		}
	}

	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
	hooks := map[string]any{
		"console":               console,
		"innerWidth":            r.config.Width,
		"innerHeight":           r.config.Height,
		"devicePixelRatio":      r.config.DevicePixelRatio,
		"setTimeout":            noop,
		"setInterval":           noop,
		"clearTimeout":          noop,
		"clearInterval":         noop,
		"requestAnimationFrame": noop,
		"__wuk_record":          r.record,
		"__wuk_invoke":          r.invoke,
		"__wuk_image_size":      r.imageSize,
	}
	for name, v := range hooks {
		if err := vm.Set(name, v); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}

	if _, err := vm.RunScript("headless.js", jscodes.Headless); err != nil {
		return fmt.Errorf("load headless page: %w", err)
	}

	r.vm = vm
	return nil
}

// makeConsoleFunc creates a console function
func (r *Runtime) makeConsoleFunc(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if !r.config.EnableConsole {
			return goja.Undefined()
		}

		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		msg := strings.Join(parts, " ")

		r.outMu.Lock()
		r.console = append(r.console, LogEntry{
			Level:   level,
			Message: msg,
			Time:    time.Now(),
		})
		r.outMu.Unlock()

		r.logger.Debug("console", zap.String("level", level), zap.String("message", msg))
		return goja.Undefined()
	}
}

func (r *Runtime) record(target, method string, args []any) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	r.total++
	call := DrawCall{Target: target, Method: method, Args: args}
	switch {
	case r.limit == 0:
	case r.limit == Unlimited || len(r.calls) < r.limit:
		r.calls = append(r.calls, call)
	default:
		r.calls[r.head] = call
		r.head = (r.head + 1) % r.limit
	}
}

func (r *Runtime) invoke(name string, args []any) (any, error) {
	r.invokeMu.RLock()
	fn := r.invoker
	r.invokeMu.RUnlock()

	if fn == nil {
		return nil, fmt.Errorf("no invoker for %q", name)
	}
	return fn(name, args)
}

func (r *Runtime) imageSize(src string) ([]int, error) {
	w, h, err := r.images(src)
	if err != nil {
		r.logger.Debug("Image failed to load", zap.String("src", src), zap.Error(err))
		return nil, err
	}
	return []int{w, h}, nil
}

// exportValue converts goja value to Go value
func exportValue(val goja.Value) any {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil
	}
	return val.Export()
}
