package dispatch

import (
	"context"
	"sync"
)

// Loop is a channel-fed serial dispatcher for headless runs. Work submitted
// via Call is executed by the goroutine inside Run, in order.
type Loop struct {
	calls chan func()

	closeOnce sync.Once
	closed    chan struct{}
}

// NewLoop creates a Loop ready to accept work. Run must be called for
// submitted work to execute.
func NewLoop() *Loop {
	return &Loop{
		calls:  make(chan func(), 256),
		closed: make(chan struct{}),
	}
}

// Call implements Dispatcher. It blocks if the loop's backlog is full and
// drops the call if the loop has been closed.
func (l *Loop) Call(fn func()) {
	select {
	case <-l.closed:
	case l.calls <- fn:
	}
}

// Run executes dispatched work until the context is cancelled or the loop is
// closed. It returns the context error on cancellation, nil on Close.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.closed:
			return nil
		case fn := <-l.calls:
			fn()
		}
	}
}

// Close stops the loop. Pending work that has not yet run is discarded.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.closed) })
}
