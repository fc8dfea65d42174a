package binding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/navgridgo/internal/command"
	"github.com/vk/navgridgo/internal/dispatch"
	"github.com/vk/navgridgo/internal/scope"
	"github.com/vk/navgridgo/internal/visual"
)

// Markup author mistakes, reported when the declaration is evaluated. They
// abort the layout load; nothing recovers from them at run time.
var (
	ErrNoTarget          = errors.New("provide-value context has no target object")
	ErrUnsupportedTarget = errors.New("action target must be an element or a behavior")
	ErrAlreadyAttached   = errors.New("binding is already attached")
)

// ProvideValueContext is what the markup engine hands a binding when an
// action declaration is evaluated.
type ProvideValueContext interface {
	// TargetObject returns the object the declaration is applied to: a
	// visual.Element or a visual.Behavior.
	TargetObject() any
}

// Config assembles a Binding.
type Config struct {
	// Invoker performs the action's work. Exactly one per binding.
	Invoker Invoker
	// Strategy selects which binding context the binding mirrors.
	Strategy Strategy
	// Scopes resolves per-page services.
	Scopes *scope.Provider
	// Dispatcher marshals detached completions back onto the dispatch
	// goroutine.
	Dispatcher dispatch.Dispatcher
	// BaseContext, if set, supplies the root context for detached
	// invocations. Defaults to context.Background.
	BaseContext func() context.Context
}

// Binding ties one markup action declaration to one visual element for the
// element's lifetime. It implements command.Command for hosts; everything
// else about it is driven by attachment and binding-context events.
//
// The element and page references do not keep anything alive on their own;
// the binding is owned by its element and dies with it. There is no
// explicit teardown call. Re-parenting an element to another page is not
// handled: the binding keeps the page it first resolved.
type Binding struct {
	cfg Config
	cmd *command.Async

	element visual.Element
	page    *visual.Page

	bindingContext any
	unbind         func()

	logOnce sync.Once
	log     *slog.Logger
}

var _ command.Command = (*Binding)(nil)

// New builds an unattached binding. A nil Invoker, Scopes or Dispatcher is
// a programmer error.
func New(cfg Config) *Binding {
	if cfg.Invoker == nil || cfg.Scopes == nil || cfg.Dispatcher == nil {
		panic("binding: Config requires Invoker, Scopes and Dispatcher")
	}
	b := &Binding{cfg: cfg}
	b.cmd = command.NewAsync(command.AsyncConfig{
		Dispatcher: cfg.Dispatcher,
		Ready:      func() bool { return b.page != nil },
		Invoke:     b.invoke,
	})
	return b
}

// Attach resolves the binding's target element from pvc, then its page:
// immediately when the element already sits under a page, otherwise via a
// one-shot attachment callback. Either way the binding is usable when
// Attach returns; it just stays non-executable until a page is known.
//
// Attach runs once per binding. Errors are configuration errors.
func (b *Binding) Attach(pvc ProvideValueContext) error {
	if b.element != nil {
		return ErrAlreadyAttached
	}
	if pvc == nil {
		return ErrNoTarget
	}
	el, err := resolveElement(pvc.TargetObject())
	if err != nil {
		return err
	}
	b.element = el

	if page, ok := visual.ContainingPage(el); ok {
		b.page = page
	} else {
		el.OnAttached(b.onAttached)
	}
	b.resync()
	return nil
}

// onAttached completes deferred page resolution. It fires at most once, on
// the dispatch goroutine, when the element joins a page subtree.
func (b *Binding) onAttached() {
	page, ok := visual.ContainingPage(b.element)
	if !ok {
		return
	}
	b.page = page
	b.resync()
	b.cmd.Refresh()
}

// resync points the binding's own context at the current source per the
// strategy. A nil source (page strategy before resolution) leaves the
// previous mirror in place; a source switch moves the subscription over.
func (b *Binding) resync() {
	var src visual.Element
	switch b.cfg.Strategy {
	case StrategyPage:
		if b.page != nil {
			src = b.page
		}
	default:
		src = b.element
	}
	if src == nil {
		return
	}
	if b.unbind != nil {
		b.unbind()
	}
	b.bindingContext = src.BindingContext()
	b.unbind = src.BindingContextChanged(func() {
		b.bindingContext = src.BindingContext()
	})
}

// BindingContext returns the value currently mirrored from the strategy
// source. Propagation is one-way; the binding never writes back.
func (b *Binding) BindingContext() any { return b.bindingContext }

// Element returns the resolved target element, nil before Attach.
func (b *Binding) Element() visual.Element { return b.element }

// Invoker returns the bound action implementation. Hosts use it to inspect
// what a binding will do, e.g. for startup target validation.
func (b *Binding) Invoker() Invoker { return b.cfg.Invoker }

// Page returns the resolved containing page, nil while unresolved.
func (b *Binding) Page() *visual.Page { return b.page }

// CanExecute reports whether the page is known and no execution is in
// flight.
func (b *Binding) CanExecute(param any) bool { return b.cmd.CanExecute(param) }

// Execute starts one fire-and-forget execution, or does nothing while the
// binding is not executable.
func (b *Binding) Execute(param any) { b.cmd.Execute(param) }

// CanExecuteChanged subscribes fn to enablement changes.
func (b *Binding) CanExecuteChanged(fn func()) (cancel func()) {
	return b.cmd.CanExecuteChanged(fn)
}

// Busy reports whether an execution is in flight.
func (b *Binding) Busy() bool { return b.cmd.Busy() }

// invoke is the detached half of an execution, the single suspension point.
// Failures never propagate: returned errors and escaped panics both end in
// the failure log, carrying the invocation's annotations.
//
// Reading element and page here is safe without locks: both are committed
// on the dispatch goroutine before the execution that spawned this
// goroutine could start, and neither changes afterwards.
func (b *Binding) invoke(param any) {
	ctx := context.Background()
	if b.cfg.BaseContext != nil {
		ctx = b.cfg.BaseContext()
	}
	inv := &Invocation{
		Param:   param,
		Element: b.element,
		Page:    b.page,
		Scope:   b.cfg.Scopes.For(b.page),
	}
	defer func() {
		if r := recover(); r != nil {
			b.report(ctx, inv, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := b.cfg.Invoker.Invoke(ctx, inv); err != nil {
		b.report(ctx, inv, err)
	}
}

// report writes the single error record a failed execution produces.
func (b *Binding) report(ctx context.Context, inv *Invocation, err error) {
	args := make([]any, 0, len(inv.attrs)+6)
	args = append(args, "action", b.cfg.Invoker.Kind(), "element", b.element.ID())
	args = append(args, inv.attrs...)
	args = append(args, "error", err)
	b.logger().ErrorContext(ctx, "Action invocation failed", args...)
}

// logger resolves the binding's logger from the page scope on first use.
func (b *Binding) logger() *slog.Logger {
	b.logOnce.Do(func() {
		b.log = b.cfg.Scopes.For(b.page).Logger(b.cfg.Invoker.Kind())
	})
	return b.log
}

// resolveElement maps a provide-value target object to the element the
// action is bound to. Behaviors resolve through their associated element;
// anything else is an unsupported host.
func resolveElement(obj any) (visual.Element, error) {
	switch t := obj.(type) {
	case nil:
		return nil, ErrNoTarget
	case visual.Element:
		return t, nil
	case visual.Behavior:
		if el := t.AssociatedElement(); el != nil {
			return el, nil
		}
		return nil, fmt.Errorf("%w: behavior %q has no associated element", ErrUnsupportedTarget, t.Name())
	default:
		return nil, fmt.Errorf("%w: got %T", ErrUnsupportedTarget, obj)
	}
}
