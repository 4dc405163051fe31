package canvas

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/jsvalue"
	"github.com/GriffinCanCode/WebUIKit/internal/shared/id"
	"github.com/GriffinCanCode/WebUIKit/internal/window"
)

// Repetition is a createPattern repetition mode
type Repetition string

const (
	Repeat   Repetition = "repeat"
	RepeatX  Repetition = "repeat-x"
	RepeatY  Repetition = "repeat-y"
	NoRepeat Repetition = "no-repeat"
)

// Gradient is a CanvasGradient handle
type Gradient struct {
	*jsvalue.Handle
	c *Context2D
}

// AddColorStop adds a stop at offset in [0, 1]
func (g *Gradient) AddColorStop(ctx context.Context, offset float64, color any) error {
	script, err := callScript(g.Name(), "addColorStop", []any{offset, color})
	if err != nil {
		return err
	}
	_, err = g.c.dispatch(ctx, Call{Kind: KindCall, Method: "addColorStop", Args: []any{offset, color}, Script: script})
	return err
}

// CreateLinearGradient creates a gradient along the line (x0,y0)-(x1,y1)
func (c *Context2D) CreateLinearGradient(ctx context.Context, x0, y0, x1, y1 float64) (*Gradient, error) {
	h, err := c.bind(ctx, jsvalue.KindCanvasGradient, "createLinearGradient", x0, y0, x1, y1)
	if err != nil || h == nil {
		return nil, err
	}
	return &Gradient{Handle: h, c: c}, nil
}

// CreateRadialGradient creates a gradient between two circles
func (c *Context2D) CreateRadialGradient(ctx context.Context, x0, y0, r0, x1, y1, r1 float64) (*Gradient, error) {
	h, err := c.bind(ctx, jsvalue.KindCanvasGradient, "createRadialGradient", x0, y0, r0, x1, y1, r1)
	if err != nil || h == nil {
		return nil, err
	}
	return &Gradient{Handle: h, c: c}, nil
}

// CreateConicGradient creates a gradient around (x, y) starting at startAngle radians
func (c *Context2D) CreateConicGradient(ctx context.Context, startAngle, x, y float64) (*Gradient, error) {
	h, err := c.bind(ctx, jsvalue.KindCanvasGradient, "createConicGradient", startAngle, x, y)
	if err != nil || h == nil {
		return nil, err
	}
	return &Gradient{Handle: h, c: c}, nil
}

// CreatePattern creates a pattern from an image or canvas handle
func (c *Context2D) CreatePattern(ctx context.Context, image jsvalue.Evalable, rep Repetition) (*jsvalue.Handle, error) {
	return c.bind(ctx, jsvalue.KindCanvasPattern, "createPattern", image, string(rep))
}

// GetImageData copies a rectangle of pixels into an ImageData handle
func (c *Context2D) GetImageData(ctx context.Context, x, y, w, h float64) (*jsvalue.Handle, error) {
	return c.bind(ctx, jsvalue.KindImageData, "getImageData", x, y, w, h)
}

// CreateImageData allocates a transparent ImageData of w by h pixels
func (c *Context2D) CreateImageData(ctx context.Context, w, h float64) (*jsvalue.Handle, error) {
	return c.bind(ctx, jsvalue.KindImageData, "createImageData", w, h)
}

// MeasureText binds the TextMetrics of text under the current font
func (c *Context2D) MeasureText(ctx context.Context, text string) (*jsvalue.Handle, error) {
	return c.bind(ctx, jsvalue.KindTextMetrics, "measureText", text)
}

// GetTransform binds the current transform as a DOMMatrix
func (c *Context2D) GetTransform(ctx context.Context) (*jsvalue.Handle, error) {
	return c.bind(ctx, jsvalue.KindDOMMatrix, "getTransform")
}

// Path is a Path2D handle with its own path-building methods
type Path struct {
	*jsvalue.Handle
	c *Context2D
}

// NewPath2D creates a Path2D, optionally from SVG path data
func (c *Context2D) NewPath2D(ctx context.Context, svg string) (*Path, error) {
	var args []any
	if svg != "" {
		args = []any{svg}
	}
	list, err := jsvalue.ToScriptArray(args, false)
	if err != nil {
		return nil, err
	}
	h, err := c.bindExpr(ctx, jsvalue.KindPath2D, "Path2D", args, "new Path2D("+list+")")
	if err != nil || h == nil {
		return nil, err
	}
	return &Path{Handle: h, c: c}, nil
}

func (p *Path) call(ctx context.Context, method string, args ...any) error {
	script, err := callScript(p.Name(), method, args)
	if err != nil {
		return err
	}
	_, err = p.c.dispatch(ctx, Call{Kind: KindCall, Method: method, Args: args, Script: script})
	return err
}

func (p *Path) MoveTo(ctx context.Context, x, y float64) error { return p.call(ctx, "moveTo", x, y) }
func (p *Path) LineTo(ctx context.Context, x, y float64) error { return p.call(ctx, "lineTo", x, y) }
func (p *Path) ClosePath(ctx context.Context) error            { return p.call(ctx, "closePath") }

func (p *Path) Rect(ctx context.Context, x, y, w, h float64) error {
	return p.call(ctx, "rect", x, y, w, h)
}

func (p *Path) Arc(ctx context.Context, x, y, radius, start, end float64) error {
	return p.call(ctx, "arc", x, y, radius, start, end)
}

func (p *Path) QuadraticCurveTo(ctx context.Context, cpx, cpy, x, y float64) error {
	return p.call(ctx, "quadraticCurveTo", cpx, cpy, x, y)
}

func (p *Path) BezierCurveTo(ctx context.Context, cp1x, cp1y, cp2x, cp2y, x, y float64) error {
	return p.call(ctx, "bezierCurveTo", cp1x, cp1y, cp2x, cp2y, x, y)
}

// AddPath appends another path
func (p *Path) AddPath(ctx context.Context, other jsvalue.Evalable) error {
	return p.call(ctx, "addPath", other)
}

// LoadImage creates an Image, points it at url and waits for it to load.
// It needs a real round trip, so it fails with window.ErrBatchActive
// while batching.
func (c *Context2D) LoadImage(ctx context.Context, url string) (*jsvalue.Handle, error) {
	if c.win.Batching() {
		return nil, window.ErrBatchActive
	}

	h := jsvalue.Bind(jsvalue.KindImage)
	cb := id.NewCallbackName().String()
	loaded := window.NewPromise[struct{}]()

	c.win.RegisterCallable(cb, func(args ...any) (any, error) {
		if len(args) > 0 && args[0] != nil {
			loaded.Reject(fmt.Errorf("load image %s: %v", url, args[0]))
		} else {
			loaded.Resolve(struct{}{})
		}
		return nil, nil
	})
	defer c.win.Registry().Unregister(cb)

	name, cbLit, urlLit := h.Name(), jsvalue.Quote(cb), jsvalue.Quote(url)
	script := h.Assign("new Image()") +
		fmt.Sprintf(` %s.crossOrigin = "anonymous";`, name) +
		fmt.Sprintf(` %s.onload = () => webuikit.invoke(%s, null);`, name, cbLit) +
		fmt.Sprintf(` %s.onerror = () => webuikit.invoke(%s, "error");`, name, cbLit) +
		fmt.Sprintf(` %s.src = %s;`, name, urlLit)

	_, sent, err := c.send(ctx, Call{Kind: KindCall, Method: "Image", Args: []any{url}, Script: script})
	if err != nil || !sent {
		return nil, err
	}
	c.win.Metrics().HandleBound()

	if _, err := loaded.Wait(ctx); err != nil {
		if rerr := c.Release(ctx, h); rerr != nil {
			c.logger.Debug("Failed to release image", zap.Error(rerr))
		}
		return nil, err
	}
	return h, nil
}

// LoadImageBytes serves data through the window's asset server and loads
// it as an Image
func (c *Context2D) LoadImageBytes(ctx context.Context, data []byte) (*jsvalue.Handle, error) {
	srv := c.win.Assets()
	if srv == nil {
		return nil, window.ErrNoAssets
	}

	path := srv.Add(data)
	url, err := srv.URL(path)
	if err != nil {
		srv.Remove(path)
		return nil, err
	}

	h, err := c.LoadImage(ctx, url)
	if err != nil {
		srv.Remove(path)
		return nil, err
	}
	return h, nil
}
