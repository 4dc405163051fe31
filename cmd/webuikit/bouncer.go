package main

import (
	"math/rand/v2"
	"time"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/color"
	"github.com/GriffinCanCode/WebUIKit/internal/render"
)

// bouncer moves a quarter-size rectangle around the viewport, reflecting
// off the edges while its color channels drift up and down
type bouncer struct {
	Rect          *render.Rectangle
	Width, Height float64

	vx, vy     float64
	r, g, b    float64
	dr, dg, db float64
}

const colorSteps = 5

func newBouncer(w, h float64) *bouncer {
	b := &bouncer{
		Rect:   render.NewRect(0, 0, w/4, h/4),
		Width:  w,
		Height: h,
		vx:     w / 500,
		vy:     h / 650,
		r:      float64(rand.IntN(256)),
		g:      float64(rand.IntN(256)),
		b:      float64(rand.IntN(256)),
		dr:     1.0 / colorSteps,
		dg:     2.0 / colorSteps,
		db:     3.0 / colorSteps,
	}
	b.Rect.OnUpdate = func(*render.Rectangle, time.Duration) { b.step() }
	return b
}

// step advances one frame
func (b *bouncer) step() {
	b.r, b.dr = bounce(b.r+b.dr, b.dr, 255)
	b.g, b.dg = bounce(b.g+b.dg, b.dg, 255)
	b.b, b.db = bounce(b.b+b.db, b.db, 255)
	b.Rect.FillColor = color.RGBA(b.r, b.g, b.b, (b.r+b.g+b.b)/765)

	rect := b.Rect
	rect.X, b.vx = bounce(rect.X+b.vx, b.vx, b.Width-rect.Width)
	rect.Y, b.vy = bounce(rect.Y+b.vy, b.vy, b.Height-rect.Height)
}

// bounce keeps v inside (0, hi), snapping to the crossed edge and
// reversing the velocity when it leaves
func bounce(v, velocity, hi float64) (float64, float64) {
	if v > 0 && v < hi {
		return v, velocity
	}
	if v > 0 {
		return hi, -velocity
	}
	return 0, -velocity
}
