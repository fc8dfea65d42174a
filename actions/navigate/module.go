// Package navigate provides the action that asks the navigation service
// for a page transition.
package navigate

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/navgridgo/internal/binding"
	"github.com/vk/navgridgo/internal/markup"
	"github.com/vk/navgridgo/internal/navigation"
	"github.com/vk/navgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config defines the markup attributes of a navigate action.
type Config struct {
	// Target is the page identifier handed to the navigator.
	Target string `hcl:"target"`
	// Animated toggles the transition animation. Unset means animated.
	Animated *bool `hcl:"animated,optional"`
	// Modal forces or forbids modal presentation when set. Unset lets the
	// navigator decide.
	Modal *bool `hcl:"modal,optional"`
	// Params carries extra named values into the parameter bag.
	Params cty.Value `hcl:"params,optional"`
}

// Action performs one markup-declared navigation.
type Action struct {
	target   string
	animated *bool
	modal    *bool
	params   map[string]any
}

// Kind implements binding.Invoker.
func (a *Action) Kind() string { return "navigate" }

// Target returns the page identifier this action navigates to. Startup
// validation cross-checks it against the declared pages.
func (a *Action) Target() string { return a.target }

// Bag assembles the parameter bag for one invocation.
func (a *Action) Bag(param any) navigation.Parameters {
	return navigation.Assemble(a.animated, a.modal, a.params, param)
}

// Invoke implements binding.Invoker. A refused or failed navigation comes
// back as an error carrying the target and the full bag for the report.
func (a *Action) Invoke(ctx context.Context, inv *binding.Invocation) error {
	bag := a.Bag(inv.Param)
	inv.Annotate("target", a.target, "params", bag)

	nav := inv.Scope.Navigator()
	if nav == nil {
		return fmt.Errorf("no navigator available in scope")
	}
	if res := nav.Navigate(ctx, a.target, bag); res.Err != nil {
		return fmt.Errorf("navigate to %q: %w", a.target, res.Err)
	}
	return nil
}

// Register registers the action factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAction("navigate", &registry.Entry{
		NewConfig: func() any { return new(Config) },
		Build:     build,
	})
}

func build(raw any) (binding.Invoker, error) {
	cfg, ok := raw.(*Config)
	if !ok {
		return nil, fmt.Errorf("unexpected config type %T", raw)
	}
	if cfg.Target == "" {
		return nil, fmt.Errorf("navigate requires a non-empty target")
	}
	params, err := markup.NativeMap(cfg.Params)
	if err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	return &Action{
		target:   cfg.Target,
		animated: cfg.Animated,
		modal:    cfg.Modal,
		params:   params,
	}, nil
}
