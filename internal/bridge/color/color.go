// Package color parses CSS-style color text into one canonical RGBA value.
//
// Channels r, g and b are kept in [0, 255] and alpha in [0, 1]. Unit and
// FromUnit convert to and from the normalized [0, 1] profile.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/jsvalue"
)

// Color is an RGBA value. It is a plain value type: copy freely, mutate only
// the copy you own.
type Color struct {
	R, G, B float64
	A       float64
}

var (
	Transparent = Color{}
	Black       = Color{A: 1}
	White       = Color{R: 255, G: 255, B: 255, A: 1}
)

// InvalidColorError reports color text that matches none of the grammars.
type InvalidColorError struct {
	Input  string
	Reason string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("color: invalid color %q: %s", e.Input, e.Reason)
}

// RGB creates an opaque color from channels in [0, 255].
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from channels in [0, 255] and alpha in [0, 1].
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromUnit creates a color from normalized channels in [0, 1].
func FromUnit(r, g, b, a float64) Color {
	return Color{R: r * 255, G: g * 255, B: b * 255, A: a}
}

// MustParse is like Parse but panics on invalid input.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Unit returns the channels normalized to [0, 1].
func (c Color) Unit() (r, g, b, a float64) {
	return c.R / 255, c.G / 255, c.B / 255, c.A
}

// Clamp pins channels into their valid ranges.
func (c Color) Clamp() Color {
	return Color{
		R: clamp(c.R, 0, 255),
		G: clamp(c.G, 0, 255),
		B: clamp(c.B, 0, 255),
		A: clamp(c.A, 0, 1),
	}
}

// Rounded returns the color with r, g and b rounded to integers.
func (c Color) Rounded() Color {
	return Color{R: math.Round(c.R), G: math.Round(c.G), B: math.Round(c.B), A: c.A}
}

// WithAlpha returns a copy with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// String returns the CSS text rgba(r, g, b, a).
func (c Color) String() string {
	return "rgba(" + jsvalue.FormatNumber(c.R) + ", " +
		jsvalue.FormatNumber(c.G) + ", " +
		jsvalue.FormatNumber(c.B) + ", " +
		jsvalue.FormatNumber(c.A) + ")"
}

// JSEval serializes the color as a single-quoted script string literal.
func (c Color) JSEval() string {
	return "'" + jsvalue.Escape(c.String()) + "'"
}

// Hex returns #rrggbbaa with channels clamped and rounded.
func (c Color) Hex() string {
	k := c.Clamp().Rounded()
	return fmt.Sprintf("#%02x%02x%02x%02x",
		uint8(k.R), uint8(k.G), uint8(k.B), uint8(math.Round(k.A*255)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Parse reads #rgb, #rgba, #rrggbb, #rrggbbaa, 0x-prefixed hex, rgb(),
// rgba(), hsl() and hsla().
func Parse(s string) (Color, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(text, "rgb") || strings.HasPrefix(text, "hsl") {
		return parseFunc(s, text)
	}
	return parseHex(s, text)
}

func parseHex(input, text string) (Color, error) {
	switch {
	case strings.HasPrefix(text, "#"):
		text = text[1:]
	case strings.HasPrefix(text, "0x"):
		text = text[2:]
	}

	if len(text) == 3 || len(text) == 4 {
		var b strings.Builder
		for _, r := range text {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		text = b.String()
	}
	if len(text) != 6 && len(text) != 8 {
		return Color{}, &InvalidColorError{Input: input, Reason: "expected 3, 4, 6 or 8 hex digits"}
	}

	var ch [4]float64
	for i := 0; i < len(text)/2; i++ {
		v, err := strconv.ParseUint(text[2*i:2*i+2], 16, 8)
		if err != nil {
			return Color{}, &InvalidColorError{Input: input, Reason: "bad hex digit"}
		}
		ch[i] = float64(v)
	}

	a := 1.0
	if len(text) == 8 {
		a = ch[3] / 255
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: a}, nil
}
