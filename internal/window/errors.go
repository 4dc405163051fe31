package window

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrNotRegistered = errors.New("window: callable not registered")
	ErrBatchActive   = errors.New("window: result unavailable while batching")
	ErrNoAssets      = errors.New("window: no asset server attached")
)

// ScriptExecutionError reports a failure raised while running script text.
// The cause is preserved for errors.Is / errors.As.
type ScriptExecutionError struct {
	Script string
	Err    error
}

const maxScriptInError = 120

func (e *ScriptExecutionError) Error() string {
	script := e.Script
	if len(script) > maxScriptInError {
		cut := maxScriptInError
		for cut > 0 && !utf8.RuneStart(script[cut]) {
			cut--
		}
		script = script[:cut] + "..."
	}
	return fmt.Sprintf("window: script execution failed: %v (script: %s)", e.Err, script)
}

func (e *ScriptExecutionError) Unwrap() error {
	return e.Err
}

type unexpectedResultError struct {
	value any
}

func (e *unexpectedResultError) Error() string {
	return fmt.Sprintf("unexpected result %T(%v)", e.value, e.value)
}

func errUnexpected(v any) error {
	return &unexpectedResultError{value: v}
}
