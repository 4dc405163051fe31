package render

import (
	"context"
	"sync"
	"time"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/canvas"
	"github.com/GriffinCanCode/WebUIKit/internal/bridge/color"
)

// TypeRectangle is the tag of the built-in Rectangle item
const TypeRectangle = "builtin-rectangle"

// Item is a unit of retained drawing state. Items are compared by
// identity, so implementations should be pointer types.
type Item interface {
	// Update advances the item to elapsed frame time t
	Update(t time.Duration)
	// ItemType returns the tag used to pick a draw routine
	ItemType() string
}

// Rectangle is the built-in item: a filled or stroked axis-aligned box
type Rectangle struct {
	X, Y, Width, Height float64

	IsFill          bool
	FillColor       color.Color
	StrokeColor     color.Color
	StrokeLineWidth float64

	// OnUpdate, when set, runs on every update pass
	OnUpdate func(r *Rectangle, t time.Duration)
}

// NewRect creates a filled rectangle at (x, y) of size w by h
func NewRect(x, y, w, h float64) *Rectangle {
	return &Rectangle{X: x, Y: y, Width: w, Height: h, IsFill: true}
}

// RectFromCorners creates a filled rectangle spanning two opposite corners
func RectFromCorners(x1, y1, x2, y2 float64) *Rectangle {
	return NewRect(canvas.Pos2Size(x1, y1, x2, y2))
}

func (r *Rectangle) Update(t time.Duration) {
	if r.OnUpdate != nil {
		r.OnUpdate(r, t)
	}
}

func (r *Rectangle) ItemType() string { return TypeRectangle }

func drawRectangle(ctx context.Context, c *canvas.Context2D, r *Rectangle) error {
	return c.WithState(ctx, func() error {
		if r.IsFill {
			if err := c.SetFillStyle(ctx, r.FillColor); err != nil {
				return err
			}
			return c.FillRect(ctx, r.X, r.Y, r.Width, r.Height)
		}
		if err := c.SetStrokeStyle(ctx, r.StrokeColor); err != nil {
			return err
		}
		if err := c.SetLineWidth(ctx, r.StrokeLineWidth); err != nil {
			return err
		}
		return c.StrokeRect(ctx, r.X, r.Y, r.Width, r.Height)
	})
}

// Items is an ordered, concurrency-safe item collection
type Items struct {
	mu   sync.RWMutex
	list []Item
}

// Add appends items in order
func (s *Items) Add(items ...Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append(s.list, items...)
}

// Remove deletes the first occurrence of item and reports whether it was present
func (s *Items) Remove(item Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.list {
		if it == item {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every item
func (s *Items) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
}

func (s *Items) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Each calls fn for every item in order until fn returns false. fn sees a
// snapshot and may modify the collection.
func (s *Items) Each(fn func(Item) bool) {
	for _, it := range s.Snapshot() {
		if !fn(it) {
			return
		}
	}
}

// Snapshot returns a copy of the current order
func (s *Items) Snapshot() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.list))
	copy(out, s.list)
	return out
}
