package window

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/jsvalue"
	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebUIKit/internal/shared/id"
	"github.com/GriffinCanCode/WebUIKit/internal/window/assets"
)

// Window is the host handle on one script context.
type Window struct {
	id       id.WindowID
	backend  Executor
	name     string
	logger   *zap.Logger
	metrics  *monitoring.Metrics
	registry *Registry
	assets   *assets.Server

	mu       sync.Mutex
	batching bool
	queue    []string
}

// Option configures a Window.
type Option func(*Window)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Window) { w.logger = logging.OrNop(l) }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(w *Window) { w.metrics = m }
}

// WithAssets attaches an asset server for binary payloads.
func WithAssets(s *assets.Server) Option {
	return func(w *Window) { w.assets = s }
}

// WithBackendName labels metrics and logs, e.g. "sandbox" or "remote".
func WithBackendName(name string) Option {
	return func(w *Window) { w.name = name }
}

// WithRegistry shares a callable registry between windows.
func WithRegistry(r *Registry) Option {
	return func(w *Window) { w.registry = r }
}

// New wraps backend. If backend implements Invoker, script-side
// webuikit.invoke calls are routed to the window's Registry.
func New(backend Executor, opts ...Option) *Window {
	w := &Window{
		id:       id.NewWindowID(),
		backend:  backend,
		name:     "default",
		logger:   zap.NewNop(),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.Component(w.logger, "window", zap.String("window", w.id.String()))

	if inv, ok := backend.(Invoker); ok {
		inv.SetInvoker(w.invoke)
	}
	return w
}

// ID returns the window ID.
func (w *Window) ID() id.WindowID { return w.id }

// Registry returns the callable registry.
func (w *Window) Registry() *Registry { return w.registry }

// Assets returns the attached asset server, or nil.
func (w *Window) Assets() *assets.Server { return w.assets }

// Metrics returns the metrics collector, or nil.
func (w *Window) Metrics() *monitoring.Metrics { return w.metrics }

// Logger returns the window logger.
func (w *Window) Logger() *zap.Logger { return w.logger }

// RegisterCallable exposes fn to script as webuikit.invoke(name, ...).
func (w *Window) RegisterCallable(name string, fn Callable) {
	w.registry.Register(name, fn)
}

// InvokeRegistered calls a registered callable from the host side.
func (w *Window) InvokeRegistered(name string, args ...any) (any, error) {
	return w.registry.Invoke(name, args...)
}

// ExecuteScript runs script and returns its value. While batching, the
// statement is queued and (nil, nil) is returned.
func (w *Window) ExecuteScript(ctx context.Context, script string) (any, error) {
	w.mu.Lock()
	if w.batching {
		w.queue = append(w.queue, script)
		w.mu.Unlock()
		w.metrics.RecordScript(w.name, monitoring.OutcomeQueued, 0)
		return nil, nil
	}
	w.mu.Unlock()

	return w.run(ctx, script)
}

// Query runs script and returns its value; unlike ExecuteScript it fails
// with ErrBatchActive instead of queueing.
func (w *Window) Query(ctx context.Context, script string) (any, error) {
	if w.Batching() {
		return nil, ErrBatchActive
	}
	return w.run(ctx, script)
}

// Batching reports whether statements are being queued.
func (w *Window) Batching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.batching
}

// SetBatching turns queueing on or off. Turning it off flushes the queue.
func (w *Window) SetBatching(ctx context.Context, on bool) error {
	w.mu.Lock()
	w.batching = on
	w.mu.Unlock()

	if on {
		return nil
	}
	return w.Flush(ctx)
}

// Batch queues every statement issued by fn and flushes them as one round
// trip when fn returns, on every exit path. Nested calls join the outer
// batch.
func (w *Window) Batch(ctx context.Context, fn func() error) (err error) {
	w.mu.Lock()
	nested := w.batching
	w.batching = true
	w.mu.Unlock()

	if nested {
		return fn()
	}

	defer func() {
		err = errors.Join(err, w.SetBatching(ctx, false))
	}()
	return fn()
}

// Flush sends queued statements as a single [...].forEach(r2eval) call.
func (w *Window) Flush(ctx context.Context) error {
	w.mu.Lock()
	queue := w.queue
	w.queue = nil
	w.mu.Unlock()

	if len(queue) == 0 {
		return nil
	}

	stmts := make([]any, len(queue))
	for i, s := range queue {
		stmts[i] = s
	}
	arr, err := jsvalue.ToScriptArray(stmts, true)
	if err != nil {
		return err
	}

	w.metrics.RecordBatch(len(queue))
	_, err = w.run(ctx, arr+".forEach(r2eval);")
	return err
}

// Pending returns the number of queued statements.
func (w *Window) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

// InnerSize returns the script context's viewport size.
func (w *Window) InnerSize(ctx context.Context) (width, height float64, err error) {
	v, err := w.Query(ctx, "[window.innerWidth, window.innerHeight];")
	if err != nil {
		return 0, 0, err
	}
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return 0, 0, &ScriptExecutionError{Script: "innerSize", Err: errUnexpected(v)}
	}
	width, wok := jsvalue.Float(pair[0])
	height, hok := jsvalue.Float(pair[1])
	if !wok || !hok {
		return 0, 0, &ScriptExecutionError{Script: "innerSize", Err: errUnexpected(v)}
	}
	return width, height, nil
}

// DevicePixelRatio returns window.devicePixelRatio.
func (w *Window) DevicePixelRatio(ctx context.Context) (float64, error) {
	v, err := w.Query(ctx, "window.devicePixelRatio;")
	if err != nil {
		return 0, err
	}
	f, ok := jsvalue.Float(v)
	if !ok {
		return 0, &ScriptExecutionError{Script: "devicePixelRatio", Err: errUnexpected(v)}
	}
	return f, nil
}

func (w *Window) run(ctx context.Context, script string) (any, error) {
	timer := monitoring.NewTimer(w.metrics, w.name)
	v, err := w.backend.ExecuteScript(ctx, script)
	if err != nil {
		outcome := monitoring.OutcomeError
		if ctx.Err() != nil {
			outcome = monitoring.OutcomeCancelled
		}
		d := timer.Stop(outcome)
		w.logger.Warn("Script execution failed",
			zap.Error(err),
			zap.Duration("duration", d),
		)
		return nil, &ScriptExecutionError{Script: script, Err: err}
	}

	d := timer.Stop(monitoring.OutcomeOK)
	if ce := w.logger.Check(zap.DebugLevel, "Script executed"); ce != nil {
		ce.Write(zap.String("script", script), zap.Duration("duration", d))
	}
	return v, nil
}

func (w *Window) invoke(name string, args []any) (any, error) {
	w.logger.Debug("Invoke from script", zap.String("name", name), zap.Int("args", len(args)))
	return w.registry.Invoke(name, args...)
}
