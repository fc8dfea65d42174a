// Package goback provides the action that leaves the current page through
// the navigation service.
package goback

import (
	"context"
	"fmt"

	"github.com/vk/navgridgo/internal/binding"
	"github.com/vk/navgridgo/internal/navigation"
	"github.com/vk/navgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config defines the markup attributes of a go_back action.
type Config struct {
	// Animated toggles the transition animation. Unset means animated.
	Animated *bool `hcl:"animated,optional"`
	// Modal marks the dismissal as leaving a modal when set.
	Modal *bool `hcl:"modal,optional"`
}

// Action pops whatever the navigator considers current.
type Action struct {
	animated *bool
	modal    *bool
}

// Kind implements binding.Invoker.
func (a *Action) Kind() string { return "go_back" }

// Invoke implements binding.Invoker.
func (a *Action) Invoke(ctx context.Context, inv *binding.Invocation) error {
	bag := navigation.Assemble(a.animated, a.modal, nil, inv.Param)
	inv.Annotate("params", bag)

	nav := inv.Scope.Navigator()
	if nav == nil {
		return fmt.Errorf("no navigator available in scope")
	}
	if res := nav.Back(ctx, bag); res.Err != nil {
		return fmt.Errorf("go back: %w", res.Err)
	}
	return nil
}

// Register registers the action factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAction("go_back", &registry.Entry{
		NewConfig: func() any { return new(Config) },
		Build:     build,
	})
}

func build(raw any) (binding.Invoker, error) {
	cfg, ok := raw.(*Config)
	if !ok {
		return nil, fmt.Errorf("unexpected config type %T", raw)
	}
	return &Action{animated: cfg.Animated, modal: cfg.Modal}, nil
}
