package app

import (
	"context"
	"fmt"

	"github.com/vk/navgridgo/internal/ctxlog"
	"github.com/vk/navgridgo/internal/tui"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if cfg.InspectorPort > 0 {
		a.startInspector(cfg.InspectorPort)
		defer a.closeInspector(ctx)
	}
	if a.remote != nil {
		defer a.remote.Close()
	}

	switch {
	case cfg.ValidateOnly:
		a.logger.Info("Layout valid.",
			"pages", len(a.layout.Pages()),
			"bindings", len(a.layout.Bindings()),
			"templates", len(a.layout.Templates()),
		)
		return nil
	case cfg.Trigger != "":
		return a.trigger(ctx, cfg.Trigger)
	default:
		return tui.Run(ctx, tui.Options{
			Layout:     a.layout,
			Dispatcher: a.dispatcher,
			Stack:      a.stack,
			Logger:     a.logger,
		})
	}
}

// trigger runs the actions bound to one element once, headless, and returns
// when every started execution has completed. Failures are logged by the
// binding layer, not returned: a trigger run exits zero unless the element
// is unknown or the run is cancelled.
func (a *App) trigger(ctx context.Context, elementID string) error {
	bindings := a.layout.BindingsFor(elementID)
	if len(bindings) == 0 {
		msg := fmt.Sprintf("no actions bound to element %q", elementID)
		if near := nearest(elementID, a.boundElementIDs()); near != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", near)
		}
		return fmt.Errorf("%s", msg)
	}
	a.logger.Info("Triggering element.", "element", elementID, "bindings", len(bindings))

	// All notifications fire on the dispatch goroutine, so check sees a
	// consistent busy set.
	finished := make(chan struct{}, 1)
	check := func() {
		for _, b := range bindings {
			if b.Busy() {
				return
			}
		}
		select {
		case finished <- struct{}{}:
		default:
		}
	}

	cancels := make([]func(), 0, len(bindings))
	for _, b := range bindings {
		cancels = append(cancels, b.CanExecuteChanged(check))
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	a.dispatcher.Call(func() {
		for _, b := range bindings {
			b.Execute(nil)
		}
		// Covers bindings that refused to start: nothing will notify.
		check()
	})

	go func() {
		<-finished
		a.logger.Debug("All triggered executions completed.")
		a.dispatcher.Close()
	}()

	return a.dispatcher.Run(ctx)
}

func (a *App) boundElementIDs() []string {
	seen := map[string]bool{}
	var ids []string
	for _, b := range a.layout.Bindings() {
		if id := b.Element().ID(); !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
