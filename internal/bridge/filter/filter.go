// Package filter models CSS filter functions and ordered filter lists.
package filter

import (
	"fmt"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/color"
	"github.com/GriffinCanCode/WebUIKit/internal/bridge/jsvalue"
)

// Kind is one of the fixed CSS filter function names.
type Kind string

const (
	KindBlur       Kind = "blur"
	KindBrightness Kind = "brightness"
	KindContrast   Kind = "contrast"
	KindDropShadow Kind = "drop-shadow"
	KindGrayscale  Kind = "grayscale"
	KindHueRotate  Kind = "hue-rotate"
	KindInvert     Kind = "invert"
	KindOpacity    Kind = "opacity"
	KindSaturate   Kind = "saturate"
	KindSepia      Kind = "sepia"
	KindURL        Kind = "url"
)

// Kinds lists every supported filter kind.
var Kinds = []Kind{
	KindBlur, KindBrightness, KindContrast, KindDropShadow, KindGrayscale,
	KindHueRotate, KindInvert, KindOpacity, KindSaturate, KindSepia, KindURL,
}

// Function is a single parametrized filter such as blur(2px). Value is
// either a float64 or a string.
type Function struct {
	Kind  Kind
	Value any
	Unit  string
}

// Blur creates blur(<px>px).
func Blur(px float64) Function { return Function{Kind: KindBlur, Value: px, Unit: "px"} }

// Brightness creates brightness(<v>); 1 is unchanged.
func Brightness(v float64) Function { return Function{Kind: KindBrightness, Value: v} }

// Contrast creates contrast(<v>); 1 is unchanged.
func Contrast(v float64) Function { return Function{Kind: KindContrast, Value: v} }

// Grayscale creates grayscale(<v>) with v in [0, 1].
func Grayscale(v float64) Function { return Function{Kind: KindGrayscale, Value: v} }

// HueRotate creates hue-rotate(<deg>deg).
func HueRotate(deg float64) Function { return Function{Kind: KindHueRotate, Value: deg, Unit: "deg"} }

// Invert creates invert(<v>) with v in [0, 1].
func Invert(v float64) Function { return Function{Kind: KindInvert, Value: v} }

// Opacity creates opacity(<v>) with v in [0, 1].
func Opacity(v float64) Function { return Function{Kind: KindOpacity, Value: v} }

// Saturate creates saturate(<v>); 1 is unchanged.
func Saturate(v float64) Function { return Function{Kind: KindSaturate, Value: v} }

// Sepia creates sepia(<v>) with v in [0, 1].
func Sepia(v float64) Function { return Function{Kind: KindSepia, Value: v} }

// DropShadow creates drop-shadow(<x>px <y>px <blur>px <color>).
func DropShadow(x, y, blur float64, c color.Color) Function {
	return Function{
		Kind: KindDropShadow,
		Value: fmt.Sprintf("%spx %spx %spx %s",
			jsvalue.FormatNumber(x), jsvalue.FormatNumber(y), jsvalue.FormatNumber(blur), c.String()),
	}
}

// URL creates url(<ref>) pointing at an SVG filter, e.g. "#noise".
func URL(ref string) Function {
	return Function{Kind: KindURL, Value: ref}
}

// String renders the CSS text, e.g. "blur(2px)".
func (f Function) String() string {
	var v string
	switch x := f.Value.(type) {
	case float64:
		v = jsvalue.FormatNumber(x)
	case string:
		v = x
		if f.Kind == KindURL {
			v = `"` + jsvalue.Escape(x) + `"`
		}
	case nil:
	default:
		v = fmt.Sprint(x)
	}
	return string(f.Kind) + "(" + v + f.Unit + ")"
}

// JSEval serializes the function as a script string literal.
func (f Function) JSEval() string {
	return jsvalue.Quote(f.String())
}

// Combiner merges an incoming value into an existing filter of the same kind.
type Combiner func(existing, incoming Function) Function

// Accumulate is the default Combiner: numbers add, anything else is joined
// with a space.
func Accumulate(existing, incoming Function) Function {
	a, aok := existing.Value.(float64)
	b, bok := incoming.Value.(float64)
	if aok && bok {
		existing.Value = a + b
		return existing
	}
	existing.Value = fmt.Sprint(valueText(existing), " ", valueText(incoming))
	existing.Unit = ""
	return existing
}

func valueText(f Function) string {
	if n, ok := f.Value.(float64); ok {
		return jsvalue.FormatNumber(n) + f.Unit
	}
	return fmt.Sprint(f.Value)
}
