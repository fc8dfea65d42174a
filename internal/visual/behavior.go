package visual

// Behavior extends an element without joining the visual tree. Actions
// declared on a behavior resolve through its associated element.
type Behavior interface {
	Name() string
	AssociatedElement() Element
}

// NamedBehavior is the markup-declared Behavior implementation.
type NamedBehavior struct {
	name    string
	element Element
}

// AttachBehavior creates a behavior bound to el and records it on the
// element.
func AttachBehavior(name string, el Element) *NamedBehavior {
	b := &NamedBehavior{name: name, element: el}
	if c, ok := el.(interface{ addBehavior(Behavior) }); ok {
		c.addBehavior(b)
	}
	return b
}

func (b *NamedBehavior) Name() string               { return b.name }
func (b *NamedBehavior) AssociatedElement() Element { return b.element }

// Behaviors returns the behaviors attached to this element.
func (c *Control) Behaviors() []Behavior { return c.behaviors }

func (c *Control) addBehavior(b Behavior) { c.behaviors = append(c.behaviors, b) }
