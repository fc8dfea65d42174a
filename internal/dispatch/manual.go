package dispatch

import "time"

// Manual is a dispatcher pumped explicitly by the caller. Tests use it to
// step through the dispatch order one transition at a time.
type Manual struct {
	calls chan func()
}

// NewManual creates a Manual dispatcher with room for a test's worth of
// pending calls.
func NewManual() *Manual {
	return &Manual{calls: make(chan func(), 64)}
}

// Call implements Dispatcher by queueing fn until the next pump.
func (m *Manual) Call(fn func()) {
	m.calls <- fn
}

// Pump runs every call that is already queued and reports how many ran. It
// does not wait for in-flight goroutines to submit more work.
func (m *Manual) Pump() int {
	n := 0
	for {
		select {
		case fn := <-m.calls:
			fn()
			n++
		default:
			return n
		}
	}
}

// Next waits up to timeout for one queued call, runs it, and reports whether
// anything ran. It is how tests rendezvous with detached completions.
func (m *Manual) Next(timeout time.Duration) bool {
	select {
	case fn := <-m.calls:
		fn()
		return true
	case <-time.After(timeout):
		return false
	}
}
