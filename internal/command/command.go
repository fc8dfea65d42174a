// Package command implements the command contract the binding layer exposes
// to UI hosts: an enablement query, a fire-and-forget execute entry point,
// and change notifications observers subscribe to.
package command

// Command is what a host control binds to. CanExecute is a pure query;
// Execute is fire-and-forget and must silently refuse while not executable;
// CanExecuteChanged subscriptions fire after every enablement-relevant state
// transition has been committed.
type Command interface {
	CanExecute(param any) bool
	Execute(param any)
	CanExecuteChanged(fn func()) (cancel func())
}

// Notifier is a registration list of enablement observers. The command does
// not own its observers; they come and go via the cancel functions. All
// calls happen on the dispatch goroutine, so there is no locking.
type Notifier struct {
	seq  int
	subs []observer
}

type observer struct {
	id int
	fn func()
}

// Subscribe registers fn and returns its removal function. Cancelling twice
// is harmless.
func (n *Notifier) Subscribe(fn func()) (cancel func()) {
	n.seq++
	id := n.seq
	n.subs = append(n.subs, observer{id: id, fn: fn})
	return func() {
		for i, o := range n.subs {
			if o.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify runs every registered observer in subscription order. Observers are
// snapshotted first so a subscriber cancelling during notification cannot
// skip or double-run anyone.
func (n *Notifier) Notify() {
	subs := make([]observer, len(n.subs))
	copy(subs, n.subs)
	for _, o := range subs {
		o.fn()
	}
}

// Len reports the number of registered observers.
func (n *Notifier) Len() int { return len(n.subs) }
