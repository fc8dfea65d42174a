package binding

import (
	"context"

	"github.com/vk/navgridgo/internal/scope"
	"github.com/vk/navgridgo/internal/visual"
)

// Invoker is the one override point a concrete action implements. The
// binding owns target resolution, context mirroring and the busy state
// machine; the invoker owns only the work itself.
type Invoker interface {
	// Kind names the action type as it is registered for markup.
	Kind() string
	// Invoke performs the action. It runs on a detached goroutine with the
	// binding already busy. A non-nil return is a reportable failure, not a
	// control-flow signal; it ends up in the failure log and nowhere else.
	Invoke(ctx context.Context, inv *Invocation) error
}

// Invocation is one execution's view of the binding.
type Invocation struct {
	// Param is the raw value the host passed to Execute.
	Param any
	// Element is the action's target element.
	Element visual.Element
	// Page is the resolved containing page.
	Page *visual.Page
	// Scope resolves per-page services.
	Scope *scope.Scope

	attrs []any
}

// Annotate adds structured attributes to a potential failure report, in
// slog key-value form. Invokers call it before any fallible step so the
// report carries the action's full diagnostic context.
func (inv *Invocation) Annotate(args ...any) {
	inv.attrs = append(inv.attrs, args...)
}
