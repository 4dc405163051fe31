package canvas

import "context"

// CallKind distinguishes method calls from attribute access
type CallKind int

const (
	KindCall CallKind = iota
	KindSet
	KindGet
)

func (k CallKind) String() string {
	switch k {
	case KindCall:
		return "call"
	case KindSet:
		return "set"
	case KindGet:
		return "get"
	default:
		return "unknown"
	}
}

// Call is one outgoing operation. Interceptors may replace Script.
type Call struct {
	Kind   CallKind
	Method string // Method or attribute name
	Args   []any  // Unserialized arguments; one value for KindSet
	Script string
}

// Outcome is an interceptor's decision
type Outcome int

const (
	Continue Outcome = iota
	Cancel
)

// Interceptor observes and may rewrite or cancel a call
type Interceptor interface {
	Intercept(ctx context.Context, call *Call) Outcome
}

// InterceptorFunc adapts a function to Interceptor
type InterceptorFunc func(ctx context.Context, call *Call) Outcome

// Intercept implements Interceptor
func (f InterceptorFunc) Intercept(ctx context.Context, call *Call) Outcome {
	return f(ctx, call)
}

// Use appends interceptors. They run in registration order.
func (c *Context2D) Use(interceptors ...Interceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interceptors = append(c.interceptors, interceptors...)
}

func (c *Context2D) intercept(ctx context.Context, call *Call) Outcome {
	c.mu.RLock()
	chain := c.interceptors
	c.mu.RUnlock()

	for _, ic := range chain {
		if ic.Intercept(ctx, call) == Cancel {
			return Cancel
		}
	}
	return Continue
}
