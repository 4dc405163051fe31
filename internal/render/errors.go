package render

import "fmt"

// UnknownRenderItemTypeError is returned when no draw routine matches an
// item's tag
type UnknownRenderItemTypeError struct {
	Type string
}

func (e *UnknownRenderItemTypeError) Error() string {
	return fmt.Sprintf("render: unknown render item type %q", e.Type)
}
