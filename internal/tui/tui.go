// Package tui hosts a layout in the terminal. It renders the current page's
// element tree, moves focus between actionable elements and runs their bound
// actions, with all binding access marshalled onto the dispatch loop.
package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vk/navgridgo/internal/dispatch"
	"github.com/vk/navgridgo/internal/markup"
	"github.com/vk/navgridgo/internal/navigation"
	"github.com/vk/navgridgo/internal/visual"
)

// Options wires the host to a built layout.
type Options struct {
	Layout     *markup.Layout
	Dispatcher *dispatch.Loop
	// Stack is the in-process navigator; nil in remote mode, where the
	// shell owns the page stack and we render the declared root.
	Stack  *navigation.Stack
	Logger *slog.Logger
}

// Run blocks until the user quits or ctx is cancelled. The dispatch loop
// runs for the whole session; binding notifications refresh the view by
// pushing fresh snapshots into the program.
func Run(ctx context.Context, opts Options) error {
	if opts.Layout == nil || opts.Dispatcher == nil {
		return errors.New("tui: Layout and Dispatcher are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	loopDone := make(chan error, 1)
	go func() { loopDone <- opts.Dispatcher.Run(loopCtx) }()

	var p *tea.Program
	push := func() {
		p.Send(stateMsg{state: snapshot(opts)})
	}

	m := newModel(
		func(elementID string) {
			opts.Dispatcher.Call(func() {
				for _, b := range opts.Layout.BindingsFor(elementID) {
					b.Execute(nil)
				}
				push()
			})
		},
		func() {
			if opts.Stack == nil {
				return
			}
			opts.Dispatcher.Call(func() {
				res := opts.Stack.Back(context.Background(), navigation.Parameters{navigation.KeyAnimated: true})
				if res.Err != nil {
					logger.Debug("Back refused.", "error", res.Err)
				}
				push()
			})
		},
	)
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Every enablement change repaints. Notifications fire on the dispatch
	// goroutine, where snapshots are safe to take.
	cancels := make([]func(), 0, len(opts.Layout.Bindings()))
	for _, b := range opts.Layout.Bindings() {
		cancels = append(cancels, b.CanExecuteChanged(push))
	}
	defer func() {
		for _, c := range cancels {
			c()
		}
	}()

	opts.Dispatcher.Call(push)

	logger.Debug("TUI host starting.")
	_, err := p.Run()
	logger.Debug("TUI host exited.", "error", err)

	cancel()
	if loopErr := <-loopDone; loopErr != nil && !errors.Is(loopErr, context.Canceled) {
		logger.Debug("Dispatch loop exited.", "error", loopErr)
	}
	return err
}

// snapshot captures everything the view needs. Must run on the dispatch
// goroutine: it reads binding enablement and busy flags.
func snapshot(opts Options) uiState {
	state := uiState{Remote: opts.Stack == nil}

	var page *visual.Page
	if opts.Stack != nil {
		page = opts.Stack.Current()
		state.Depth = opts.Stack.Depth()
		state.ModalDepth = opts.Stack.ModalDepth()
	}
	if page == nil {
		if root, ok := opts.Layout.Page(opts.Layout.RootID()); ok {
			page = root
		}
	}
	if page == nil {
		return state
	}

	state.PageID = page.ID()
	state.PageTitle = page.Title()
	for _, child := range page.Children() {
		flatten(opts.Layout, child, 0, &state.Items)
	}
	return state
}

func flatten(layout *markup.Layout, el visual.Element, indent int, items *[]itemState) {
	it := itemState{
		ID:     el.ID(),
		Kind:   el.Kind(),
		Indent: indent,
	}
	if labeled, ok := el.(interface{ Label() string }); ok {
		it.Label = labeled.Label()
	}
	for _, b := range layout.BindingsFor(el.ID()) {
		it.Actions++
		if b.CanExecute(nil) {
			it.Enabled = true
		}
		if b.Busy() {
			it.Busy = true
		}
	}
	*items = append(*items, it)

	if parent, ok := el.(interface{ Children() []visual.Element }); ok {
		for _, child := range parent.Children() {
			flatten(layout, child, indent+1, items)
		}
	}
}
