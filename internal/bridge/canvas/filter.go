package canvas

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/filter"
	"github.com/GriffinCanCode/WebUIKit/internal/bridge/jsvalue"
)

// SetFilter assigns set to the CSS filter of element. A nil element,
// including a nil handle, targets the canvas backing this context.
func (c *Context2D) SetFilter(ctx context.Context, element jsvalue.Evalable, set *filter.Set) error {
	css := `""`
	if set != nil {
		css = set.JSEval()
	}
	return c.setStyleFilter(ctx, element, css)
}

// RemoveFilter clears the CSS filter of element
func (c *Context2D) RemoveFilter(ctx context.Context, element jsvalue.Evalable) error {
	return c.setStyleFilter(ctx, element, `""`)
}

// SetContextFilter sets the context's own filter attribute, which applies
// to subsequent draws only
func (c *Context2D) SetContextFilter(ctx context.Context, set *filter.Set) error {
	if set == nil || set.Len() == 0 {
		return c.SetAttribute(ctx, "filter", "none")
	}
	return c.SetAttribute(ctx, "filter", set)
}

func (c *Context2D) setStyleFilter(ctx context.Context, element jsvalue.Evalable, css string) error {
	if jsvalue.IsNil(element) {
		element = c.Canvas()
	}
	_, err := c.dispatch(ctx, Call{
		Kind:   KindSet,
		Method: "style.filter",
		Args:   []any{css},
		Script: fmt.Sprintf("%s.style.filter = %s;", element.JSEval(), css),
	})
	return err
}
