// Package scene loads initial render items from YAML files.
package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/color"
	"github.com/GriffinCanCode/WebUIKit/internal/render"
)

// Scene is the file layout
type Scene struct {
	Rectangles []Rect `yaml:"rectangles"`
}

// Rect describes one rectangle either by origin and size or by two
// corners. Without a stroke color it is filled.
type Rect struct {
	X      *float64 `yaml:"x"`
	Y      *float64 `yaml:"y"`
	Width  *float64 `yaml:"width"`
	Height *float64 `yaml:"height"`

	X1 *float64 `yaml:"x1"`
	Y1 *float64 `yaml:"y1"`
	X2 *float64 `yaml:"x2"`
	Y2 *float64 `yaml:"y2"`

	Fill      string  `yaml:"fill"`
	Stroke    string  `yaml:"stroke"`
	LineWidth float64 `yaml:"lineWidth"`
}

// Load reads and parses the scene at path
func Load(path string) ([]*render.Rectangle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	rects, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rects, nil
}

// Parse decodes a scene document into rectangles in file order
func Parse(data []byte) ([]*render.Rectangle, error) {
	var s Scene
	if err := yaml.UnmarshalWithOptions(data, &s, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	out := make([]*render.Rectangle, 0, len(s.Rectangles))
	for i, def := range s.Rectangles {
		r, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("rectangle %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (s Rect) build() (*render.Rectangle, error) {
	var r *render.Rectangle
	switch {
	case allSet(s.X, s.Y, s.Width, s.Height):
		if anySet(s.X1, s.Y1, s.X2, s.Y2) {
			return nil, errors.New("mixes size and corner fields")
		}
		r = render.NewRect(*s.X, *s.Y, *s.Width, *s.Height)
	case allSet(s.X1, s.Y1, s.X2, s.Y2):
		if anySet(s.X, s.Y, s.Width, s.Height) {
			return nil, errors.New("mixes size and corner fields")
		}
		r = render.RectFromCorners(*s.X1, *s.Y1, *s.X2, *s.Y2)
	default:
		return nil, errors.New("needs x, y, width, height or x1, y1, x2, y2")
	}

	if s.Stroke != "" {
		c, err := color.Parse(s.Stroke)
		if err != nil {
			return nil, err
		}
		r.IsFill = false
		r.StrokeColor = c
		r.StrokeLineWidth = s.LineWidth
		if r.StrokeLineWidth == 0 {
			r.StrokeLineWidth = 1
		}
		return r, nil
	}

	if s.Fill != "" {
		c, err := color.Parse(s.Fill)
		if err != nil {
			return nil, err
		}
		r.FillColor = c
	}
	return r, nil
}

func allSet(vs ...*float64) bool {
	for _, v := range vs {
		if v == nil {
			return false
		}
	}
	return true
}

func anySet(vs ...*float64) bool {
	for _, v := range vs {
		if v != nil {
			return true
		}
	}
	return false
}
