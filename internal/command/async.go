package command

import (
	"github.com/vk/navgridgo/internal/dispatch"
)

// AsyncConfig wires an Async command to its owner.
type AsyncConfig struct {
	// Dispatcher marshals the completion of a detached execution back onto
	// the dispatch goroutine.
	Dispatcher dispatch.Dispatcher
	// Ready reports whether the command's prerequisites hold (for a
	// navigation binding: the page is known).
	Ready func() bool
	// Invoke performs the actual work on a detached goroutine. It must do
	// its own failure reporting and return normally; nothing it produces
	// reaches Execute's caller.
	Invoke func(param any)
	// Recovered, if set, observes a panic that escaped Invoke. Busy is
	// cleared regardless.
	Recovered func(v any)
}

// Async is the enable/execute state machine shared by all bound actions.
//
// It has three effective states: not ready, ready, and busy. Enablement is
// the pure function Ready() && !busy and is never cached separately. Every
// transition that changes that pair notifies observers, strictly after the
// transition is committed. A second Execute while busy is a no-op even if a
// stale host calls it, so one in-flight execution is the hard maximum.
type Async struct {
	cfg      AsyncConfig
	notifier Notifier
	busy     bool
}

// NewAsync builds the state machine. Dispatcher, Ready and Invoke are
// mandatory; a missing one is a programmer error.
func NewAsync(cfg AsyncConfig) *Async {
	if cfg.Dispatcher == nil || cfg.Ready == nil || cfg.Invoke == nil {
		panic("command: Async requires Dispatcher, Ready and Invoke")
	}
	return &Async{cfg: cfg}
}

// CanExecute reports whether Execute would start work right now. The
// parameter is part of the host-facing contract but does not influence
// enablement.
func (a *Async) CanExecute(param any) bool {
	return a.cfg.Ready() && !a.busy
}

// Execute starts one detached execution. While not executable it returns
// without side effects: no state transition, no notification, no invocation.
// The deferred completion always clears busy, whether Invoke returned,
// reported a failure, or panicked.
func (a *Async) Execute(param any) {
	if !a.CanExecute(param) {
		return
	}
	a.busy = true
	a.notifier.Notify()

	go func() {
		defer func() {
			if r := recover(); r != nil && a.cfg.Recovered != nil {
				a.cfg.Recovered(r)
			}
			a.cfg.Dispatcher.Call(a.finish)
		}()
		a.cfg.Invoke(param)
	}()
}

// finish runs on the dispatch goroutine once the detached execution is over.
func (a *Async) finish() {
	a.busy = false
	a.notifier.Notify()
}

// CanExecuteChanged subscribes fn to enablement-relevant transitions.
func (a *Async) CanExecuteChanged(fn func()) (cancel func()) {
	return a.notifier.Subscribe(fn)
}

// Refresh re-announces enablement. The owning binding calls it when the
// page identity changes, which flips Ready without going through Execute.
func (a *Async) Refresh() {
	a.notifier.Notify()
}

// Busy reports whether an execution is in flight.
func (a *Async) Busy() bool { return a.busy }
