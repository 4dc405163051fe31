package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/canvas"
	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/monitoring"
)

// Policy decides what Now does once elapsed time passes the maximum
type Policy string

const (
	// PolicyWrap restarts the clock at zero
	PolicyWrap Policy = "wrap"
	// PolicyClamp pins elapsed time at the maximum
	PolicyClamp Policy = "clamp"
)

// ParsePolicy validates a policy name
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyWrap, PolicyClamp:
		return p, nil
	}
	return "", fmt.Errorf("render: unknown max policy %q", s)
}

// DrawFunc draws one item of a registered type
type DrawFunc func(ctx context.Context, c *canvas.Context2D, item Item) error

// Clock returns the current time
type Clock func() time.Time

// Manager owns the item collection, the frame clock and the draw routines
type Manager struct {
	canvas  *canvas.Context2D
	items   *Items
	logger  *zap.Logger
	metrics *monitoring.Metrics

	clock  Clock
	mu     sync.Mutex
	origin time.Time
	max    time.Duration
	policy Policy

	routinesMu sync.RWMutex
	routines   map[string]DrawFunc
}

// Option configures a Manager
type Option func(*Manager)

// WithClock replaces time.Now as the frame clock source
func WithClock(clock Clock) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithMax bounds elapsed time; a zero max disables the bound
func WithMax(max time.Duration, policy Policy) Option {
	return func(m *Manager) {
		m.max = max
		m.policy = policy
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithMetrics sets the metrics collector. Defaults to the window's.
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(m *Manager) { m.metrics = metrics }
}

// NewManager creates a manager drawing on c. The clock starts now.
func NewManager(c *canvas.Context2D, opts ...Option) *Manager {
	m := &Manager{
		canvas:   c,
		items:    &Items{},
		logger:   c.Window().Logger(),
		metrics:  c.Window().Metrics(),
		clock:    time.Now,
		policy:   PolicyWrap,
		routines: make(map[string]DrawFunc),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.Component(m.logger, "render")
	m.origin = m.clock()
	return m
}

// Items returns the item collection
func (m *Manager) Items() *Items { return m.items }

// Canvas returns the context items are drawn on
func (m *Manager) Canvas() *canvas.Context2D { return m.canvas }

// Register adds or replaces the draw routine for tag
func (m *Manager) Register(tag string, fn DrawFunc) {
	m.routinesMu.Lock()
	defer m.routinesMu.Unlock()
	m.routines[tag] = fn
}

// Unregister removes the draw routine for tag
func (m *Manager) Unregister(tag string) {
	m.routinesMu.Lock()
	defer m.routinesMu.Unlock()
	delete(m.routines, tag)
}

// ResetClock moves the clock origin to now
func (m *Manager) ResetClock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.origin = m.clock()
}

// Now returns elapsed frame time, applying the max policy when elapsed
// time exceeds the configured maximum.
func (m *Manager) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	elapsed := now.Sub(m.origin)
	if m.max <= 0 || elapsed <= m.max {
		return elapsed
	}
	if m.policy == PolicyClamp {
		return m.max
	}
	m.origin = now
	return 0
}

// Render runs one frame: every item is updated, then every item is drawn.
// A draw failure aborts the rest of the draw pass.
func (m *Manager) Render(ctx context.Context) error {
	start := time.Now()
	t := m.Now()
	items := m.items.Snapshot()

	for _, item := range items {
		item.Update(t)
	}

	for i, item := range items {
		if err := m.draw(ctx, item); err != nil {
			m.logger.Warn("Frame aborted",
				zap.Int("item", i),
				zap.String("type", item.ItemType()),
				zap.Error(err))
			return err
		}
	}

	m.metrics.RecordFrame(time.Since(start))
	return nil
}

func (m *Manager) draw(ctx context.Context, item Item) error {
	tag := item.ItemType()

	if r, ok := item.(*Rectangle); ok && tag == TypeRectangle {
		if err := drawRectangle(ctx, m.canvas, r); err != nil {
			return err
		}
		m.metrics.RecordItemDrawn(tag)
		return nil
	}

	m.routinesMu.RLock()
	fn, ok := m.routines[tag]
	m.routinesMu.RUnlock()
	if !ok {
		return &UnknownRenderItemTypeError{Type: tag}
	}

	if err := fn(ctx, m.canvas, item); err != nil {
		return fmt.Errorf("draw %s: %w", tag, err)
	}
	m.metrics.RecordItemDrawn(tag)
	return nil
}
