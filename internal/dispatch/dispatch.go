// Package dispatch serializes UI work onto a single goroutine.
//
// Every mutation of the visual tree and of command state happens on one
// logical dispatch goroutine; the only suspension point is the asynchronous
// navigation call, which runs detached and marshals its completion back in
// through a Dispatcher. With that discipline a plain busy flag is sufficient
// mutual exclusion and no further locking is needed in the binding layer.
package dispatch

// Dispatcher marshals fn onto the UI dispatch goroutine. Implementations
// must run dispatched functions one at a time, in submission order.
type Dispatcher interface {
	Call(fn func())
}

// Func adapts an ordinary function to the Dispatcher interface.
type Func func(fn func())

// Call implements Dispatcher.
func (f Func) Call(fn func()) { f(fn) }
