package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/navgridgo/internal/navigation"
)

// inspectorServer exposes the live layout and navigation state over HTTP,
// for debugging layouts against a running instance.
type inspectorServer struct {
	srv *http.Server
}

// inspectorState is the JSON document served at /state.
type inspectorState struct {
	Navigator  string             `json:"navigator"`
	Root       string             `json:"root"`
	Current    string             `json:"current,omitempty"`
	StackDepth int                `json:"stack_depth"`
	ModalDepth int                `json:"modal_depth"`
	History    []navigation.Entry `json:"history,omitempty"`
	Pages      []pageState        `json:"pages"`
	Templates  []string           `json:"templates,omitempty"`
	Bindings   []bindingState     `json:"bindings"`
}

type pageState struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type bindingState struct {
	Action  string `json:"action"`
	Element string `json:"element"`
	Page    string `json:"page,omitempty"`
	Enabled bool   `json:"enabled"`
	Busy    bool   `json:"busy"`
}

// healthHandler answers liveness probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// stateHandler serves a snapshot of the layout and navigation state.
func (a *App) stateHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Inspector state requested.", "remote_addr", r.RemoteAddr)

	state, ok := a.inspectorState()
	if !ok {
		http.Error(w, "dispatch loop not running", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		a.logger.Error("Failed to encode inspector state", "error", err)
	}
}

// inspectorState snapshots binding state on the dispatch goroutine, where
// busy and enablement flags are written.
func (a *App) inspectorState() (inspectorState, bool) {
	done := make(chan inspectorState, 1)
	a.dispatcher.Call(func() { done <- a.snapshot() })
	select {
	case state := <-done:
		return state, true
	case <-time.After(time.Second):
		return inspectorState{}, false
	}
}

func (a *App) snapshot() inspectorState {
	state := inspectorState{
		Navigator: "stack",
		Root:      a.layout.RootID(),
		Templates: a.layout.Templates(),
	}
	if a.stack == nil {
		state.Navigator = "remote"
	} else {
		if current := a.stack.Current(); current != nil {
			state.Current = current.ID()
		}
		state.StackDepth = a.stack.Depth()
		state.ModalDepth = a.stack.ModalDepth()
		state.History = a.stack.History()
	}
	for _, p := range a.layout.Pages() {
		state.Pages = append(state.Pages, pageState{ID: p.ID(), Title: p.Title()})
	}
	for _, b := range a.layout.Bindings() {
		bs := bindingState{
			Action:  b.Invoker().Kind(),
			Element: b.Element().ID(),
			Enabled: b.CanExecute(nil),
			Busy:    b.Busy(),
		}
		if b.Page() != nil {
			bs.Page = b.Page().ID()
		}
		state.Bindings = append(state.Bindings, bs)
	}
	return state
}

// startInspector initializes and runs the inspector HTTP server.
func (a *App) startInspector(port int) {
	a.logger.Debug("Configuring inspector server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/state", a.stateHandler)

	addr := fmt.Sprintf(":%d", port)
	a.inspector = &inspectorServer{srv: &http.Server{
		Addr:    addr,
		Handler: mux,
	}}

	go func() {
		a.logger.Info("🔍 Inspector server starting", "address", fmt.Sprintf("http://localhost%s/state", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown; only
		// other errors are real failures.
		if err := a.inspector.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Inspector server failed unexpectedly", "error", err)
		}
	}()
}

func (a *App) closeInspector(ctx context.Context) {
	if a.inspector == nil {
		a.logger.Debug("Inspector server was not running.")
		return
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	a.logger.Info("🔍 Shutting down inspector server...")
	if err := a.inspector.srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Inspector server shutdown failed", "error", err)
		return
	}
	a.logger.Debug("Inspector server shut down gracefully.")
}
