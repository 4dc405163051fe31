package color

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

type funcForm struct {
	name  string
	args  int
	isHSL bool
}

// Longer names first so "rgba(" is not read as "rgb(".
var funcForms = []funcForm{
	{name: "rgba", args: 4},
	{name: "rgb", args: 3},
	{name: "hsla", args: 4, isHSL: true},
	{name: "hsl", args: 3, isHSL: true},
}

func parseFunc(input, text string) (Color, error) {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	for _, form := range funcForms {
		prefix := form.name + "("
		if !strings.HasPrefix(text, prefix) {
			continue
		}
		if !strings.HasSuffix(text, ")") {
			return Color{}, &InvalidColorError{Input: input, Reason: "missing closing parenthesis"}
		}

		args := strings.Split(text[len(prefix):len(text)-1], ",")
		if len(args) != form.args {
			return Color{}, &InvalidColorError{
				Input:  input,
				Reason: form.name + " takes " + strconv.Itoa(form.args) + " arguments",
			}
		}

		if form.isHSL {
			return parseHSL(input, args)
		}
		return parseRGB(input, args)
	}

	return Color{}, &InvalidColorError{Input: input, Reason: "unknown color function"}
}

func parseRGB(input string, args []string) (Color, error) {
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, pct, err := number(args[i])
		if err != nil {
			return Color{}, &InvalidColorError{Input: input, Reason: "bad channel " + args[i]}
		}
		if pct {
			v = v / 100 * 255
		}
		// Channels truncate toward zero.
		ch[i] = math.Trunc(v)
	}

	a := 1.0
	if len(args) == 4 {
		var err error
		if a, err = alpha(args[3]); err != nil {
			return Color{}, &InvalidColorError{Input: input, Reason: "bad alpha " + args[3]}
		}
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: a}, nil
}

func parseHSL(input string, args []string) (Color, error) {
	h, _, err := number(strings.TrimSuffix(args[0], "deg"))
	if err != nil {
		return Color{}, &InvalidColorError{Input: input, Reason: "bad hue " + args[0]}
	}
	s, err := fraction(args[1])
	if err != nil || s < 0 || s > 1 {
		return Color{}, &InvalidColorError{Input: input, Reason: "saturation outside [0, 1]: " + args[1]}
	}
	l, err := fraction(args[2])
	if err != nil || l < 0 || l > 1 {
		return Color{}, &InvalidColorError{Input: input, Reason: "lightness outside [0, 1]: " + args[2]}
	}

	a := 1.0
	if len(args) == 4 {
		if a, err = alpha(args[3]); err != nil {
			return Color{}, &InvalidColorError{Input: input, Reason: "bad alpha " + args[3]}
		}
	}

	r, g, b, ok := HSLToRGB(h, s, l)
	if !ok {
		return Color{}, &InvalidColorError{Input: input, Reason: "hue outside [0, 360)"}
	}
	return Color{R: r, G: g, B: b, A: a}, nil
}

// HSLToRGB converts hue in degrees and saturation/lightness in [0, 1] to
// channels in [0, 255]. ok is false when the hue is outside [0, 360).
func HSLToRGB(h, s, l float64) (r, g, b float64, ok bool) {
	if math.IsNaN(h) || h < 0 || h >= 360 {
		return 0, 0, 0, false
	}

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return (r + m) * 255, (g + m) * 255, (b + m) * 255, true
}

var errNotFinite = errors.New("not a finite number")

// number parses a finite float with an optional trailing percent sign.
func number(s string) (v float64, pct bool, err error) {
	if strings.HasSuffix(s, "%") {
		s, pct = s[:len(s)-1], true
	}
	if v, err = strconv.ParseFloat(s, 64); err != nil {
		return 0, pct, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, pct, errNotFinite
	}
	return v, pct, nil
}

// fraction reads "50%" as 0.5 and bare numbers as already normalized.
func fraction(s string) (float64, error) {
	v, pct, err := number(s)
	if err != nil {
		return 0, err
	}
	if pct {
		v /= 100
	}
	return v, nil
}

func alpha(s string) (float64, error) {
	return fraction(s)
}
