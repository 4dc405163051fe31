package canvas

import (
	"context"
)

type LineCap string

const (
	CapButt   LineCap = "butt"
	CapRound  LineCap = "round"
	CapSquare LineCap = "square"
)

type LineJoin string

const (
	JoinMiter LineJoin = "miter"
	JoinRound LineJoin = "round"
	JoinBevel LineJoin = "bevel"
)

type TextAlign string

const (
	AlignStart  TextAlign = "start"
	AlignEnd    TextAlign = "end"
	AlignLeft   TextAlign = "left"
	AlignRight  TextAlign = "right"
	AlignCenter TextAlign = "center"
)

type TextBaseline string

const (
	BaselineTop         TextBaseline = "top"
	BaselineHanging     TextBaseline = "hanging"
	BaselineMiddle      TextBaseline = "middle"
	BaselineAlphabetic  TextBaseline = "alphabetic"
	BaselineIdeographic TextBaseline = "ideographic"
	BaselineBottom      TextBaseline = "bottom"
)

// CompositeOp is a globalCompositeOperation value
type CompositeOp string

const (
	SourceOver      CompositeOp = "source-over"
	SourceIn        CompositeOp = "source-in"
	SourceOut       CompositeOp = "source-out"
	SourceAtop      CompositeOp = "source-atop"
	DestinationOver CompositeOp = "destination-over"
	DestinationIn   CompositeOp = "destination-in"
	DestinationOut  CompositeOp = "destination-out"
	DestinationAtop CompositeOp = "destination-atop"
	Lighter         CompositeOp = "lighter"
	Copy            CompositeOp = "copy"
	XOR             CompositeOp = "xor"
	Multiply        CompositeOp = "multiply"
	Screen          CompositeOp = "screen"
	Overlay         CompositeOp = "overlay"
	Darken          CompositeOp = "darken"
	Lighten         CompositeOp = "lighten"
	ColorDodge      CompositeOp = "color-dodge"
	ColorBurn       CompositeOp = "color-burn"
	HardLight       CompositeOp = "hard-light"
	SoftLight       CompositeOp = "soft-light"
	Difference      CompositeOp = "difference"
	Exclusion       CompositeOp = "exclusion"
	Hue             CompositeOp = "hue"
	Saturation      CompositeOp = "saturation"
	ColorOp         CompositeOp = "color"
	Luminosity      CompositeOp = "luminosity"
)

// SetFillStyle sets fillStyle. style is a color.Color, a CSS string, or a
// gradient or pattern handle.
func (c *Context2D) SetFillStyle(ctx context.Context, style any) error {
	return c.SetAttribute(ctx, "fillStyle", style)
}

// SetStrokeStyle sets strokeStyle; see SetFillStyle
func (c *Context2D) SetStrokeStyle(ctx context.Context, style any) error {
	return c.SetAttribute(ctx, "strokeStyle", style)
}

func (c *Context2D) SetLineWidth(ctx context.Context, width float64) error {
	return c.SetAttribute(ctx, "lineWidth", width)
}

func (c *Context2D) SetLineCap(ctx context.Context, lineCap LineCap) error {
	return c.SetAttribute(ctx, "lineCap", string(lineCap))
}

func (c *Context2D) SetLineJoin(ctx context.Context, join LineJoin) error {
	return c.SetAttribute(ctx, "lineJoin", string(join))
}

func (c *Context2D) SetMiterLimit(ctx context.Context, limit float64) error {
	return c.SetAttribute(ctx, "miterLimit", limit)
}

// SetLineDash sets the dash pattern; an empty pattern draws solid lines
func (c *Context2D) SetLineDash(ctx context.Context, segments ...float64) error {
	if segments == nil {
		segments = []float64{}
	}
	return c.call(ctx, "setLineDash", segments)
}

func (c *Context2D) SetLineDashOffset(ctx context.Context, offset float64) error {
	return c.SetAttribute(ctx, "lineDashOffset", offset)
}

// SetFont sets the CSS font shorthand, e.g. "bold 16px sans-serif"
func (c *Context2D) SetFont(ctx context.Context, font string) error {
	return c.SetAttribute(ctx, "font", font)
}

func (c *Context2D) SetTextAlign(ctx context.Context, align TextAlign) error {
	return c.SetAttribute(ctx, "textAlign", string(align))
}

func (c *Context2D) SetTextBaseline(ctx context.Context, baseline TextBaseline) error {
	return c.SetAttribute(ctx, "textBaseline", string(baseline))
}

func (c *Context2D) SetGlobalAlpha(ctx context.Context, alpha float64) error {
	return c.SetAttribute(ctx, "globalAlpha", alpha)
}

func (c *Context2D) SetGlobalCompositeOperation(ctx context.Context, op CompositeOp) error {
	return c.SetAttribute(ctx, "globalCompositeOperation", string(op))
}

func (c *Context2D) SetImageSmoothing(ctx context.Context, enabled bool) error {
	return c.SetAttribute(ctx, "imageSmoothingEnabled", enabled)
}

// Shadow describes the context shadow attributes
type Shadow struct {
	Blur    float64
	Color   any
	OffsetX float64
	OffsetY float64
}

// SetShadow sets all four shadow attributes
func (c *Context2D) SetShadow(ctx context.Context, s Shadow) error {
	if err := c.SetAttribute(ctx, "shadowBlur", s.Blur); err != nil {
		return err
	}
	if err := c.SetAttribute(ctx, "shadowColor", s.Color); err != nil {
		return err
	}
	if err := c.SetAttribute(ctx, "shadowOffsetX", s.OffsetX); err != nil {
		return err
	}
	return c.SetAttribute(ctx, "shadowOffsetY", s.OffsetY)
}
