package jsvalue

import (
	"errors"
	"fmt"
)

// ErrNotReleasable is returned when releasing a handle that only references an
// existing expression.
var ErrNotReleasable = errors.New("jsvalue: handle does not own its binding")

// UnsupportedTypeError reports a host value outside the serializable set.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("jsvalue: unsupported type %s", e.Type)
}
