package jsvalue

import (
	"context"
	"sync/atomic"

	"github.com/GriffinCanCode/WebUIKit/internal/shared/id"
)

// Executor runs script text in the context that owns a handle's binding.
type Executor interface {
	ExecuteScript(ctx context.Context, script string) (any, error)
}

// Kind tags what a handle points at on the script side.
type Kind string

const (
	KindObject                   Kind = "Object"
	KindElement                  Kind = "Element"
	KindImage                    Kind = "Image"
	KindImageBitmap              Kind = "ImageBitmap"
	KindImageData                Kind = "ImageData"
	KindPath2D                   Kind = "Path2D"
	KindCanvasGradient           Kind = "CanvasGradient"
	KindCanvasPattern            Kind = "CanvasPattern"
	KindTextMetrics              Kind = "TextMetrics"
	KindDOMMatrix                Kind = "DOMMatrix"
	KindOffscreenCanvas          Kind = "OffscreenCanvas"
	KindCanvasRenderingContext2D Kind = "CanvasRenderingContext2D"
)

// Handle is a non-owning reference to a value that lives only in the script
// context. The script side may drop the value at any time without the host
// noticing.
type Handle struct {
	kind     Kind
	name     string
	owned    bool
	released atomic.Bool
}

// Bind allocates a fresh global name for a value about to be created.
// The returned handle owns the binding and may be released.
func Bind(kind Kind) *Handle {
	return &Handle{
		kind:  kind,
		name:  id.NewHandleName().String(),
		owned: true,
	}
}

// Ref wraps an existing script expression such as "ctx" or "cv".
func Ref(kind Kind, expr string) *Handle {
	return &Handle{kind: kind, name: expr}
}

// JSEval implements Evalable.
func (h *Handle) JSEval() string { return h.name }

// Name returns the global name or expression the handle stands for.
func (h *Handle) Name() string { return h.name }

// Kind returns the script-side type tag.
func (h *Handle) Kind() Kind { return h.kind }

// Owned reports whether the handle created its binding.
func (h *Handle) Owned() bool { return h.owned }

// Released reports whether Release has been issued.
func (h *Handle) Released() bool { return h.released.Load() }

// Assign returns the statement that stores expr under the handle's name.
func (h *Handle) Assign(expr string) string {
	return "globalThis." + h.name + " = " + expr + ";"
}

// Member returns a handle for a property of this value.
func (h *Handle) Member(kind Kind, prop string) *Handle {
	return Ref(kind, h.name+"."+prop)
}

// Release deletes the binding from the script context. Repeated calls are
// no-ops. Reclamation is up to the script engine.
func (h *Handle) Release(ctx context.Context, exec Executor) error {
	if !h.owned {
		return ErrNotReleasable
	}
	if !h.released.CompareAndSwap(false, true) {
		return nil
	}
	if _, err := exec.ExecuteScript(ctx, "delete globalThis."+h.name+";"); err != nil {
		h.released.Store(false)
		return err
	}
	return nil
}
