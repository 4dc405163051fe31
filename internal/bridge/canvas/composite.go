package canvas

import (
	"context"
	"math"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/jsvalue"
)

// Pos2Size converts two opposite corners into an origin and a
// non-negative size
func Pos2Size(x1, y1, x2, y2 float64) (x, y, w, h float64) {
	return math.Min(x1, x2), math.Min(y1, y2), math.Abs(x2 - x1), math.Abs(y2 - y1)
}

// TextStyle groups the attributes DrawText sets before drawing
type TextStyle struct {
	Font      string
	Color     any
	Align     TextAlign
	Baseline  TextBaseline
	Stroke    bool
	LineWidth float64
}

type point struct{ x, y float64 }

// DrawLine strokes a single segment with its own style and width
func (c *Context2D) DrawLine(ctx context.Context, x1, y1, x2, y2 float64, style any, width float64) error {
	return c.WithState(ctx, func() error {
		if err := c.SetStrokeStyle(ctx, style); err != nil {
			return err
		}
		if err := c.SetLineWidth(ctx, width); err != nil {
			return err
		}
		if err := c.BeginPath(ctx); err != nil {
			return err
		}
		if err := c.MoveTo(ctx, x1, y1); err != nil {
			return err
		}
		if err := c.LineTo(ctx, x2, y2); err != nil {
			return err
		}
		return c.Stroke(ctx)
	})
}

// DrawImageCentered draws img scaled to w by h, centred on (cx, cy)
func (c *Context2D) DrawImageCentered(ctx context.Context, img jsvalue.Evalable, cx, cy, w, h float64) error {
	return c.DrawImageScaled(ctx, img, cx-w/2, cy-h/2, w, h)
}

// DrawImageRotated draws img centred on (cx, cy) and rotated by angle radians
func (c *Context2D) DrawImageRotated(ctx context.Context, img jsvalue.Evalable, cx, cy, w, h, angle float64) error {
	return c.WithState(ctx, func() error {
		if err := c.Translate(ctx, cx, cy); err != nil {
			return err
		}
		if err := c.Rotate(ctx, angle); err != nil {
			return err
		}
		return c.DrawImageScaled(ctx, img, -w/2, -h/2, w, h)
	})
}

// DrawImageAlpha draws img with a temporary global alpha
func (c *Context2D) DrawImageAlpha(ctx context.Context, img jsvalue.Evalable, x, y, w, h, alpha float64) error {
	return c.WithState(ctx, func() error {
		if err := c.SetGlobalAlpha(ctx, alpha); err != nil {
			return err
		}
		return c.DrawImageScaled(ctx, img, x, y, w, h)
	})
}

// DrawText draws text with style applied only for this call
func (c *Context2D) DrawText(ctx context.Context, text string, x, y float64, style TextStyle) error {
	return c.WithState(ctx, func() error {
		return c.drawStyledText(ctx, text, x, y, style)
	})
}

// DrawTextRotated draws text rotated by angle radians around (x, y)
func (c *Context2D) DrawTextRotated(ctx context.Context, text string, x, y, angle float64, style TextStyle) error {
	return c.WithState(ctx, func() error {
		if err := c.Translate(ctx, x, y); err != nil {
			return err
		}
		if err := c.Rotate(ctx, angle); err != nil {
			return err
		}
		return c.drawStyledText(ctx, text, 0, 0, style)
	})
}

func (c *Context2D) drawStyledText(ctx context.Context, text string, x, y float64, style TextStyle) error {
	if style.Font != "" {
		if err := c.SetFont(ctx, style.Font); err != nil {
			return err
		}
	}
	if style.Align != "" {
		if err := c.SetTextAlign(ctx, style.Align); err != nil {
			return err
		}
	}
	if style.Baseline != "" {
		if err := c.SetTextBaseline(ctx, style.Baseline); err != nil {
			return err
		}
	}

	if style.Stroke {
		if style.Color != nil {
			if err := c.SetStrokeStyle(ctx, style.Color); err != nil {
				return err
			}
		}
		if style.LineWidth > 0 {
			if err := c.SetLineWidth(ctx, style.LineWidth); err != nil {
				return err
			}
		}
		return c.StrokeText(ctx, text, x, y)
	}

	if style.Color != nil {
		if err := c.SetFillStyle(ctx, style.Color); err != nil {
			return err
		}
	}
	return c.FillText(ctx, text, x, y)
}

// FillRectCorners fills the rectangle spanned by two opposite corners
func (c *Context2D) FillRectCorners(ctx context.Context, x1, y1, x2, y2 float64, style any) error {
	x, y, w, h := Pos2Size(x1, y1, x2, y2)
	return c.FillRectSize(ctx, x, y, w, h, style)
}

// StrokeRectCorners strokes the rectangle spanned by two opposite corners
func (c *Context2D) StrokeRectCorners(ctx context.Context, x1, y1, x2, y2 float64, style any, width float64) error {
	x, y, w, h := Pos2Size(x1, y1, x2, y2)
	return c.StrokeRectSize(ctx, x, y, w, h, style, width)
}

// FillRectSize fills a rectangle with its own fill style
func (c *Context2D) FillRectSize(ctx context.Context, x, y, w, h float64, style any) error {
	return c.WithState(ctx, func() error {
		if err := c.SetFillStyle(ctx, style); err != nil {
			return err
		}
		return c.FillRect(ctx, x, y, w, h)
	})
}

// StrokeRectSize strokes a rectangle with its own stroke style and width
func (c *Context2D) StrokeRectSize(ctx context.Context, x, y, w, h float64, style any, width float64) error {
	return c.WithState(ctx, func() error {
		if err := c.SetStrokeStyle(ctx, style); err != nil {
			return err
		}
		if err := c.SetLineWidth(ctx, width); err != nil {
			return err
		}
		return c.StrokeRect(ctx, x, y, w, h)
	})
}

// skewRect returns the corners of a rectangle whose vertical edges are
// cut diagonally. power is the horizontal offset between the top and
// bottom edge; a negative power slants the other way.
func skewRect(x, y, w, h, power float64) []point {
	p := math.Min(math.Abs(power), w)
	if power >= 0 {
		return []point{{x + p, y}, {x + w, y}, {x + w - p, y + h}, {x, y + h}}
	}
	return []point{{x, y}, {x + w - p, y}, {x + w, y + h}, {x + p, y + h}}
}

// FillSkewRect fills a diagonally cut rectangle
func (c *Context2D) FillSkewRect(ctx context.Context, x, y, w, h, power float64, style any) error {
	return c.fillPolygon(ctx, skewRect(x, y, w, h, power), style)
}

// StrokeSkewRect strokes a diagonally cut rectangle
func (c *Context2D) StrokeSkewRect(ctx context.Context, x, y, w, h, power float64, style any, width float64) error {
	return c.strokePolygon(ctx, skewRect(x, y, w, h, power), style, width)
}

// FillTriangle fills the triangle through three points
func (c *Context2D) FillTriangle(ctx context.Context, x1, y1, x2, y2, x3, y3 float64, style any) error {
	return c.fillPolygon(ctx, []point{{x1, y1}, {x2, y2}, {x3, y3}}, style)
}

// StrokeTriangle strokes the triangle through three points
func (c *Context2D) StrokeTriangle(ctx context.Context, x1, y1, x2, y2, x3, y3 float64, style any, width float64) error {
	return c.strokePolygon(ctx, []point{{x1, y1}, {x2, y2}, {x3, y3}}, style, width)
}

// ClipRect runs fn with drawing clipped to a rectangle
func (c *Context2D) ClipRect(ctx context.Context, x, y, w, h float64, fn func() error) error {
	return c.WithState(ctx, func() error {
		if err := c.BeginPath(ctx); err != nil {
			return err
		}
		if err := c.Rect(ctx, x, y, w, h); err != nil {
			return err
		}
		if err := c.Clip(ctx, RuleDefault); err != nil {
			return err
		}
		return fn()
	})
}

// ClipSkewRect runs fn with drawing clipped to a diagonally cut rectangle
func (c *Context2D) ClipSkewRect(ctx context.Context, x, y, w, h, power float64, fn func() error) error {
	return c.WithState(ctx, func() error {
		if err := c.tracePolygon(ctx, skewRect(x, y, w, h, power)); err != nil {
			return err
		}
		if err := c.Clip(ctx, RuleDefault); err != nil {
			return err
		}
		return fn()
	})
}

// ClipPath runs fn with drawing clipped to a Path2D
func (c *Context2D) ClipPath(ctx context.Context, path jsvalue.Evalable, rule FillRule, fn func() error) error {
	return c.WithState(ctx, func() error {
		if err := c.ClipTo(ctx, path, rule); err != nil {
			return err
		}
		return fn()
	})
}

func (c *Context2D) tracePolygon(ctx context.Context, pts []point) error {
	if err := c.BeginPath(ctx); err != nil {
		return err
	}
	for i, p := range pts {
		move := c.LineTo
		if i == 0 {
			move = c.MoveTo
		}
		if err := move(ctx, p.x, p.y); err != nil {
			return err
		}
	}
	return c.ClosePath(ctx)
}

func (c *Context2D) fillPolygon(ctx context.Context, pts []point, style any) error {
	return c.WithState(ctx, func() error {
		if err := c.SetFillStyle(ctx, style); err != nil {
			return err
		}
		if err := c.tracePolygon(ctx, pts); err != nil {
			return err
		}
		return c.Fill(ctx, RuleDefault)
	})
}

func (c *Context2D) strokePolygon(ctx context.Context, pts []point, style any, width float64) error {
	return c.WithState(ctx, func() error {
		if err := c.SetStrokeStyle(ctx, style); err != nil {
			return err
		}
		if err := c.SetLineWidth(ctx, width); err != nil {
			return err
		}
		if err := c.tracePolygon(ctx, pts); err != nil {
			return err
		}
		return c.Stroke(ctx)
	})
}
