package render

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/canvas"
	"github.com/GriffinCanCode/WebUIKit/internal/bridge/color"
	"github.com/GriffinCanCode/WebUIKit/internal/testutil"
	"github.com/GriffinCanCode/WebUIKit/internal/window"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// taggedItem logs its update and draw into a shared journal
type taggedItem struct {
	name    string
	tag     string
	journal *[]string
}

func (i *taggedItem) Update(t time.Duration) {
	*i.journal = append(*i.journal, "update:"+i.name)
}

func (i *taggedItem) ItemType() string { return i.tag }

func newManager(t *testing.T, opts ...Option) (*Manager, *testutil.Recorder) {
	t.Helper()
	rec := testutil.NewRecorder()
	return NewManager(canvas.New(window.New(rec)), opts...), rec
}

func TestNowWithoutMax(t *testing.T) {
	clock := newFakeClock()
	m, _ := newManager(t, WithClock(clock.Now))

	assert.Equal(t, time.Duration(0), m.Now())
	clock.Advance(90 * time.Second)
	assert.Equal(t, 90*time.Second, m.Now())
}

func TestNowClamp(t *testing.T) {
	clock := newFakeClock()
	m, _ := newManager(t, WithClock(clock.Now), WithMax(5*time.Second, PolicyClamp))

	clock.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, m.Now())

	clock.Advance(4 * time.Second)
	assert.Equal(t, 5*time.Second, m.Now())

	clock.Advance(10 * time.Second)
	assert.Equal(t, 5*time.Second, m.Now())
}

func TestNowWrap(t *testing.T) {
	clock := newFakeClock()
	m, _ := newManager(t, WithClock(clock.Now), WithMax(5*time.Second, PolicyWrap))

	clock.Advance(6 * time.Second)
	assert.Equal(t, time.Duration(0), m.Now())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 2*time.Second, m.Now())

	m.ResetClock()
	assert.Equal(t, time.Duration(0), m.Now())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("clamp")
	require.NoError(t, err)
	assert.Equal(t, PolicyClamp, p)

	_, err = ParsePolicy("bounce")
	assert.Error(t, err)
}

func TestRenderRectangle(t *testing.T) {
	tests := []struct {
		name string
		rect *Rectangle
		want []string
	}{
		{
			name: "fill",
			rect: &Rectangle{X: 1, Y: 2, Width: 30, Height: 40, IsFill: true, FillColor: color.RGB(255, 0, 0)},
			want: []string{
				"ctx.save();",
				"ctx.fillStyle = ('rgba(255, 0, 0, 1)');",
				"ctx.fillRect(1,2,30,40);",
				"ctx.restore();",
			},
		},
		{
			name: "stroke",
			rect: &Rectangle{X: 0, Y: 0, Width: 5, Height: 5, StrokeColor: color.RGB(0, 0, 255), StrokeLineWidth: 2},
			want: []string{
				"ctx.save();",
				"ctx.strokeStyle = ('rgba(0, 0, 255, 1)');",
				"ctx.lineWidth = (2);",
				"ctx.strokeRect(0,0,5,5);",
				"ctx.restore();",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec := newManager(t)
			m.Items().Add(tt.rect)

			require.NoError(t, m.Render(context.Background()))
			assert.Equal(t, tt.want, rec.Scripts())
		})
	}
}

func TestRectangleDefaults(t *testing.T) {
	r := RectFromCorners(50, 40, 10, 10)

	assert.Equal(t, []float64{10, 10, 40, 30}, []float64{r.X, r.Y, r.Width, r.Height})
	assert.True(t, r.IsFill)
	assert.Equal(t, "rgba(0, 0, 0, 0)", r.FillColor.String())
	assert.Equal(t, TypeRectangle, r.ItemType())
}

func TestRenderUpdatesBeforeDrawing(t *testing.T) {
	clock := newFakeClock()
	m, _ := newManager(t, WithClock(clock.Now))

	var journal []string
	m.Register("marker", func(_ context.Context, _ *canvas.Context2D, item Item) error {
		journal = append(journal, "draw:"+item.(*taggedItem).name)
		return nil
	})

	var seen time.Duration
	rect := NewRect(0, 0, 1, 1)
	rect.OnUpdate = func(r *Rectangle, t time.Duration) {
		seen = t
		r.X += 10
	}

	m.Items().Add(
		&taggedItem{name: "a", tag: "marker", journal: &journal},
		rect,
		&taggedItem{name: "b", tag: "marker", journal: &journal},
	)

	clock.Advance(250 * time.Millisecond)
	require.NoError(t, m.Render(context.Background()))

	assert.Equal(t, []string{"update:a", "update:b", "draw:a", "draw:b"}, journal)
	assert.Equal(t, 250*time.Millisecond, seen)
	assert.Equal(t, 10.0, rect.X)
}

func TestRenderUnknownTypeAbortsDrawPass(t *testing.T) {
	m, rec := newManager(t)

	var journal []string
	first := NewRect(0, 0, 1, 1)
	m.Items().Add(
		first,
		&taggedItem{name: "ghost", tag: "sprite", journal: &journal},
		NewRect(5, 5, 1, 1),
	)

	err := m.Render(context.Background())

	var unknown *UnknownRenderItemTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "sprite", unknown.Type)
	assert.Equal(t, []string{"update:ghost"}, journal)
	assert.NotContains(t, rec.Scripts(), "ctx.fillRect(5,5,1,1);")
	assert.Contains(t, rec.Scripts(), "ctx.fillRect(0,0,1,1);")
}

func TestRegisterAndUnregister(t *testing.T) {
	m, _ := newManager(t)

	var journal []string
	item := &taggedItem{name: "x", tag: "sprite", journal: &journal}
	m.Items().Add(item)

	cause := errors.New("no texture")
	m.Register("sprite", func(context.Context, *canvas.Context2D, Item) error { return cause })
	assert.ErrorIs(t, m.Render(context.Background()), cause)

	m.Unregister("sprite")
	var unknown *UnknownRenderItemTypeError
	assert.ErrorAs(t, m.Render(context.Background()), &unknown)
}

func TestItemsCollection(t *testing.T) {
	var s Items
	a, b, c := NewRect(0, 0, 1, 1), NewRect(1, 1, 1, 1), NewRect(2, 2, 1, 1)

	s.Add(a, b, c)
	assert.Equal(t, 3, s.Len())

	assert.True(t, s.Remove(b))
	assert.False(t, s.Remove(b))
	assert.Equal(t, []Item{a, c}, s.Snapshot())

	var visited int
	s.Each(func(Item) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)

	s.Clear()
	assert.Zero(t, s.Len())
}
