package window

import "context"

// Executor runs script text synchronously in a script context and returns
// the value of the last expression.
type Executor interface {
	ExecuteScript(ctx context.Context, script string) (any, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, script string) (any, error)

// ExecuteScript implements Executor.
func (f ExecutorFunc) ExecuteScript(ctx context.Context, script string) (any, error) {
	return f(ctx, script)
}

// Invoker is implemented by backends that route script-side
// webuikit.invoke(name, ...args) calls back to the host.
type Invoker interface {
	SetInvoker(fn func(name string, args []any) (any, error))
}
