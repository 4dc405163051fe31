package canvas

import (
	"context"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/jsvalue"
)

// FillRule selects the winding rule for fill, clip and hit tests
type FillRule string

const (
	RuleDefault FillRule = ""
	NonZero     FillRule = "nonzero"
	EvenOdd     FillRule = "evenodd"
)

func withRule(args []any, rule FillRule) []any {
	if rule == RuleDefault {
		return args
	}
	return append(args, string(rule))
}

// State

func (c *Context2D) Save(ctx context.Context) error    { return c.call(ctx, "save") }
func (c *Context2D) Restore(ctx context.Context) error { return c.call(ctx, "restore") }
func (c *Context2D) Reset(ctx context.Context) error   { return c.call(ctx, "reset") }

// Rectangles

func (c *Context2D) ClearRect(ctx context.Context, x, y, w, h float64) error {
	return c.call(ctx, "clearRect", x, y, w, h)
}

func (c *Context2D) FillRect(ctx context.Context, x, y, w, h float64) error {
	return c.call(ctx, "fillRect", x, y, w, h)
}

func (c *Context2D) StrokeRect(ctx context.Context, x, y, w, h float64) error {
	return c.call(ctx, "strokeRect", x, y, w, h)
}

// Paths

func (c *Context2D) BeginPath(ctx context.Context) error { return c.call(ctx, "beginPath") }
func (c *Context2D) ClosePath(ctx context.Context) error { return c.call(ctx, "closePath") }

func (c *Context2D) MoveTo(ctx context.Context, x, y float64) error {
	return c.call(ctx, "moveTo", x, y)
}

func (c *Context2D) LineTo(ctx context.Context, x, y float64) error {
	return c.call(ctx, "lineTo", x, y)
}

func (c *Context2D) BezierCurveTo(ctx context.Context, cp1x, cp1y, cp2x, cp2y, x, y float64) error {
	return c.call(ctx, "bezierCurveTo", cp1x, cp1y, cp2x, cp2y, x, y)
}

func (c *Context2D) QuadraticCurveTo(ctx context.Context, cpx, cpy, x, y float64) error {
	return c.call(ctx, "quadraticCurveTo", cpx, cpy, x, y)
}

// Arc adds a circular arc. Angles are in radians.
func (c *Context2D) Arc(ctx context.Context, x, y, radius, start, end float64, counterclockwise bool) error {
	if counterclockwise {
		return c.call(ctx, "arc", x, y, radius, start, end, true)
	}
	return c.call(ctx, "arc", x, y, radius, start, end)
}

func (c *Context2D) ArcTo(ctx context.Context, x1, y1, x2, y2, radius float64) error {
	return c.call(ctx, "arcTo", x1, y1, x2, y2, radius)
}

func (c *Context2D) Ellipse(ctx context.Context, x, y, rx, ry, rotation, start, end float64, counterclockwise bool) error {
	if counterclockwise {
		return c.call(ctx, "ellipse", x, y, rx, ry, rotation, start, end, true)
	}
	return c.call(ctx, "ellipse", x, y, rx, ry, rotation, start, end)
}

func (c *Context2D) Rect(ctx context.Context, x, y, w, h float64) error {
	return c.call(ctx, "rect", x, y, w, h)
}

// RoundRect adds a rounded rectangle. radii is one radius or up to four
// corner radii.
func (c *Context2D) RoundRect(ctx context.Context, x, y, w, h float64, radii ...float64) error {
	if len(radii) == 1 {
		return c.call(ctx, "roundRect", x, y, w, h, radii[0])
	}
	return c.call(ctx, "roundRect", x, y, w, h, radii)
}

// Drawing paths

// Fill fills the current path
func (c *Context2D) Fill(ctx context.Context, rule FillRule) error {
	return c.call(ctx, "fill", withRule(nil, rule)...)
}

// FillPath fills a Path2D
func (c *Context2D) FillPath(ctx context.Context, path jsvalue.Evalable, rule FillRule) error {
	return c.call(ctx, "fill", withRule([]any{path}, rule)...)
}

// Stroke strokes the current path
func (c *Context2D) Stroke(ctx context.Context) error { return c.call(ctx, "stroke") }

// StrokePath strokes a Path2D
func (c *Context2D) StrokePath(ctx context.Context, path jsvalue.Evalable) error {
	return c.call(ctx, "stroke", path)
}

// Clip turns the current path into the clipping region
func (c *Context2D) Clip(ctx context.Context, rule FillRule) error {
	return c.call(ctx, "clip", withRule(nil, rule)...)
}

// ClipTo turns a Path2D into the clipping region
func (c *Context2D) ClipTo(ctx context.Context, path jsvalue.Evalable, rule FillRule) error {
	return c.call(ctx, "clip", withRule([]any{path}, rule)...)
}

// Hit testing. While batching these fail with window.ErrBatchActive.

func (c *Context2D) IsPointInPath(ctx context.Context, x, y float64, rule FillRule) (bool, error) {
	return c.queryBool(ctx, "isPointInPath", withRule([]any{x, y}, rule)...)
}

func (c *Context2D) IsPointInPathOf(ctx context.Context, path jsvalue.Evalable, x, y float64, rule FillRule) (bool, error) {
	return c.queryBool(ctx, "isPointInPath", withRule([]any{path, x, y}, rule)...)
}

func (c *Context2D) IsPointInStroke(ctx context.Context, x, y float64) (bool, error) {
	return c.queryBool(ctx, "isPointInStroke", x, y)
}

// Text

func (c *Context2D) FillText(ctx context.Context, text string, x, y float64) error {
	return c.call(ctx, "fillText", text, x, y)
}

// FillTextMax fills text scaled down to fit maxWidth
func (c *Context2D) FillTextMax(ctx context.Context, text string, x, y, maxWidth float64) error {
	return c.call(ctx, "fillText", text, x, y, maxWidth)
}

func (c *Context2D) StrokeText(ctx context.Context, text string, x, y float64) error {
	return c.call(ctx, "strokeText", text, x, y)
}

// StrokeTextMax strokes text scaled down to fit maxWidth
func (c *Context2D) StrokeTextMax(ctx context.Context, text string, x, y, maxWidth float64) error {
	return c.call(ctx, "strokeText", text, x, y, maxWidth)
}

// TextWidth measures text with the current font
func (c *Context2D) TextWidth(ctx context.Context, text string) (float64, error) {
	expr, err := exprScript(c.ref, "measureText", []any{text})
	if err != nil {
		return 0, err
	}
	return c.queryFloat(ctx, "measureText", expr+".width;", []any{text})
}

// Transforms

func (c *Context2D) Translate(ctx context.Context, x, y float64) error {
	return c.call(ctx, "translate", x, y)
}

// Rotate rotates by angle radians
func (c *Context2D) Rotate(ctx context.Context, angle float64) error {
	return c.call(ctx, "rotate", angle)
}

func (c *Context2D) Scale(ctx context.Context, x, y float64) error {
	return c.call(ctx, "scale", x, y)
}

func (c *Context2D) Transform(ctx context.Context, a, b, cc, d, e, f float64) error {
	return c.call(ctx, "transform", a, b, cc, d, e, f)
}

func (c *Context2D) SetTransform(ctx context.Context, a, b, cc, d, e, f float64) error {
	return c.call(ctx, "setTransform", a, b, cc, d, e, f)
}

// SetTransformMatrix applies a DOMMatrix handle from GetTransform
func (c *Context2D) SetTransformMatrix(ctx context.Context, m jsvalue.Evalable) error {
	return c.call(ctx, "setTransform", m)
}

func (c *Context2D) ResetTransform(ctx context.Context) error {
	return c.call(ctx, "resetTransform")
}

// Images

// DrawImage draws img at its natural size
func (c *Context2D) DrawImage(ctx context.Context, img jsvalue.Evalable, dx, dy float64) error {
	return c.call(ctx, "drawImage", img, dx, dy)
}

// DrawImageScaled draws img into the destination rectangle
func (c *Context2D) DrawImageScaled(ctx context.Context, img jsvalue.Evalable, dx, dy, dw, dh float64) error {
	return c.call(ctx, "drawImage", img, dx, dy, dw, dh)
}

// DrawImageSub draws the source rectangle of img into the destination rectangle
func (c *Context2D) DrawImageSub(ctx context.Context, img jsvalue.Evalable, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	return c.call(ctx, "drawImage", img, sx, sy, sw, sh, dx, dy, dw, dh)
}

// Pixels

func (c *Context2D) PutImageData(ctx context.Context, data jsvalue.Evalable, dx, dy float64) error {
	return c.call(ctx, "putImageData", data, dx, dy)
}

// PutImageDataDirty writes only the dirty rectangle of data
func (c *Context2D) PutImageDataDirty(ctx context.Context, data jsvalue.Evalable, dx, dy, x, y, w, h float64) error {
	return c.call(ctx, "putImageData", data, dx, dy, x, y, w, h)
}
