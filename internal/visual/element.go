package visual

// Element is a node in the retained visual tree.
//
// The interface carries unexported tree-wiring methods, so all elements are
// built from Control (directly or by embedding). That keeps attachment
// bookkeeping in one place.
type Element interface {
	// ID uniquely identifies the element within its layout.
	ID() string
	// Kind names the element type declared in markup ("button", "list", ...).
	Kind() string
	// Parent returns the containing element, or nil for pages and detached roots.
	Parent() Element

	// BindingContext is the data object this element's bindings read from.
	BindingContext() any
	// SetBindingContext replaces the element's binding context and notifies
	// subscribers after the new value is committed.
	SetBindingContext(v any)
	// BindingContextChanged registers fn to run whenever the binding context
	// is replaced. The returned cancel removes the subscription and is safe
	// to call more than once.
	BindingContextChanged(fn func()) (cancel func())

	// OnAttached registers a one-shot callback fired without arguments when
	// the element becomes part of a page's subtree. Registering on an
	// already-attached element fires fn immediately. Each registration fires
	// at most once and is discarded after firing.
	OnAttached(fn func())

	adopt(parent Element)
	children() []Element
	fireAttached()
}

// Control is the standard Element implementation.
type Control struct {
	// self is the outermost value this Control is embedded in, so that
	// parent links and page lookups see the embedding type (e.g. *Page).
	self Element

	id   string
	kind string

	label  string
	parent Element
	kids   []Element

	behaviors []Behavior

	bindingContext any
	contextSubs    []contextSub
	contextSubSeq  int

	attachCallbacks []func()
}

type contextSub struct {
	id int
	fn func()
}

// NewControl creates a detached element of the given kind.
func NewControl(kind, id string) *Control {
	c := &Control{id: id, kind: kind}
	c.self = c
	return c
}

func (c *Control) ID() string      { return c.id }
func (c *Control) Kind() string    { return c.kind }
func (c *Control) Parent() Element { return c.parent }

// Label is the element's display text in the host.
func (c *Control) Label() string { return c.label }

// SetLabel replaces the element's display text.
func (c *Control) SetLabel(label string) { c.label = label }

// Add inserts child into the tree under this element. If this element is
// already part of a page, the whole added subtree becomes attached and its
// pending attachment callbacks fire, parents before children.
func (c *Control) Add(child Element) {
	child.adopt(c.self)
	c.kids = append(c.kids, child)
	if _, ok := ContainingPage(c.self); ok {
		attachSubtree(child)
	}
}

// Children returns the element's direct children in insertion order.
func (c *Control) Children() []Element { return c.kids }

func (c *Control) adopt(parent Element) { c.parent = parent }
func (c *Control) children() []Element  { return c.kids }

func (c *Control) BindingContext() any { return c.bindingContext }

func (c *Control) SetBindingContext(v any) {
	c.bindingContext = v
	// Snapshot so a subscriber that cancels during notification is harmless.
	subs := make([]contextSub, len(c.contextSubs))
	copy(subs, c.contextSubs)
	for _, s := range subs {
		s.fn()
	}
}

func (c *Control) BindingContextChanged(fn func()) (cancel func()) {
	c.contextSubSeq++
	id := c.contextSubSeq
	c.contextSubs = append(c.contextSubs, contextSub{id: id, fn: fn})
	return func() {
		for i, s := range c.contextSubs {
			if s.id == id {
				c.contextSubs = append(c.contextSubs[:i], c.contextSubs[i+1:]...)
				return
			}
		}
	}
}

func (c *Control) OnAttached(fn func()) {
	if _, ok := ContainingPage(c.self); ok {
		fn()
		return
	}
	c.attachCallbacks = append(c.attachCallbacks, fn)
}

// fireAttached drains this element's one-shot callbacks. The list is cleared
// before the first callback runs so re-registration during a callback keeps
// exactly-once semantics.
func (c *Control) fireAttached() {
	cbs := c.attachCallbacks
	c.attachCallbacks = nil
	for _, fn := range cbs {
		fn()
	}
}

// attachSubtree fires attachment callbacks for el and everything below it.
func attachSubtree(el Element) {
	el.fireAttached()
	for _, child := range el.children() {
		attachSubtree(child)
	}
}

// ContainingPage reports the page el currently belongs to by walking the
// parent chain. Detached subtrees report false.
func ContainingPage(el Element) (*Page, bool) {
	for e := el; e != nil; e = e.Parent() {
		if p, ok := e.(*Page); ok {
			return p, true
		}
	}
	return nil, false
}
