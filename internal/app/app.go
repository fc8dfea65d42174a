package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/vk/navgridgo/internal/ctxlog"
	"github.com/vk/navgridgo/internal/dispatch"
	"github.com/vk/navgridgo/internal/markup"
	"github.com/vk/navgridgo/internal/navigation"
	"github.com/vk/navgridgo/internal/registry"
	"github.com/vk/navgridgo/internal/remotenav"
	"github.com/vk/navgridgo/internal/scope"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger

	registry   *registry.Registry
	layout     *markup.Layout
	dispatcher *dispatch.Loop
	scopes     *scope.Provider

	// stack is nil when a remote shell owns the pages.
	stack  *navigation.Stack
	nav    navigation.Navigator
	remote *remotenav.Remote

	inspector *inspectorServer
}

// New is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Configuration errors are programmer or layout errors, so New panics on
// them; entrypoints recover and translate the panic into an exit message.
func New(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Create and populate the registry with action handlers.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All action modules registered.", "count", len(modules))

	// Validate the integrity of the registry.
	if err := reg.Validate(ctx); err != nil {
		// This is a programmer error (mismatch between config structs and
		// their markup contract), so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	file, err := markup.NewLoader().LoadDir(ctx, cfg.LayoutPath)
	if err != nil {
		// A failure to load the layout is a fatal startup error.
		panic(fmt.Errorf("failed to load layout: %w", err))
	}

	a := &App{
		outW:       outW,
		logger:     logger,
		registry:   reg,
		dispatcher: dispatch.NewLoop(),
	}

	if cfg.RemoteURL != "" {
		remote, err := remotenav.Dial(ctx, remotenav.Config{
			URL:       cfg.RemoteURL,
			Namespace: cfg.RemoteNamespace,
		}, logger)
		if err != nil {
			panic(fmt.Errorf("failed to reach remote shell: %w", err))
		}
		a.remote = remote
		a.nav = remote
	} else {
		a.stack = navigation.NewStack()
		a.nav = a.stack
	}

	a.scopes = scope.NewProvider(logger, a.nav)
	layout, err := markup.Build(ctx, file, markup.Deps{
		Registry:   reg,
		Scopes:     a.scopes,
		Dispatcher: a.dispatcher,
		BaseContext: func() context.Context {
			return ctxlog.WithLogger(context.Background(), logger)
		},
	})
	if err != nil {
		panic(fmt.Errorf("failed to build layout: %w", err))
	}
	a.layout = layout

	if a.stack != nil {
		for _, p := range layout.Pages() {
			if err := a.stack.AddPage(p); err != nil {
				panic(err)
			}
		}
		if err := a.stack.SetRoot(layout.RootID()); err != nil {
			panic(err)
		}
		if err := a.validateTargets(); err != nil {
			panic(err)
		}
		logger.Debug("Navigation stack populated.", "pages", len(layout.Pages()), "root", layout.RootID())
	}

	return a
}

// validateTargets checks every statically-targeted action against the
// declared pages. Only meaningful with the in-process stack; a remote shell
// may own pages this layout never declares.
func (a *App) validateTargets() error {
	var errs []string
	for _, b := range a.layout.Bindings() {
		targeted, ok := b.Invoker().(interface{ Target() string })
		if !ok {
			continue
		}
		target := targeted.Target()
		if _, ok := a.layout.Page(target); ok {
			continue
		}
		msg := fmt.Sprintf("action %q on element %q targets unknown page %q",
			b.Invoker().Kind(), b.Element().ID(), target)
		if near := nearest(target, a.pageIDs()); near != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", near)
		}
		errs = append(errs, msg)
	}
	if len(errs) > 0 {
		return fmt.Errorf("layout validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func (a *App) pageIDs() []string {
	ids := make([]string, 0, len(a.layout.Pages()))
	for _, p := range a.layout.Pages() {
		ids = append(ids, p.ID())
	}
	sort.Strings(ids)
	return ids
}

// nearest returns the candidate within a small edit distance of name, or "".
func nearest(name string, candidates []string) string {
	const cutoff = 3
	best := ""
	bestDist := cutoff + 1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Layout returns the built layout. This is primarily for testing.
func (a *App) Layout() *markup.Layout { return a.layout }

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry { return a.registry }

// Navigator returns the active navigation service.
func (a *App) Navigator() navigation.Navigator { return a.nav }

// Stack returns the in-process stack navigator, nil in remote mode.
func (a *App) Stack() *navigation.Stack { return a.stack }

// Dispatcher returns the serial dispatch loop bindings are marshalled onto.
func (a *App) Dispatcher() *dispatch.Loop { return a.dispatcher }
