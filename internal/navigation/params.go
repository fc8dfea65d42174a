package navigation

// Reserved parameter keys the built-in actions populate. Everything else in
// a bag is caller data and passes through untouched.
const (
	// KeyAnimated asks the navigator to animate the transition.
	KeyAnimated = "animated"
	// KeyModal asks for modal presentation. Absent means the navigator
	// decides; present false forces non-modal.
	KeyModal = "useModalNavigation"
	// KeyParameter carries a scalar execute parameter that is not itself
	// a bag.
	KeyParameter = "parameter"
)

// Parameters is the bag handed to a Navigator: the action's configuration
// merged with whatever the host passed to Execute.
type Parameters map[string]any

// Bool reads key as a bool. ok is false when the key is absent or holds a
// different type.
func (p Parameters) Bool(key string) (v, ok bool) {
	v, ok = p[key].(bool)
	return v, ok
}

// String reads key as a string.
func (p Parameters) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// Animated reports the animation request, defaulting to true when absent.
func (p Parameters) Animated() bool {
	if v, ok := p.Bool(KeyAnimated); ok {
		return v
	}
	return true
}

// Modal reports the modal request. nil means "let the navigator decide".
func (p Parameters) Modal() *bool {
	if v, ok := p.Bool(KeyModal); ok {
		return &v
	}
	return nil
}

// Clone copies the bag one level deep.
func (p Parameters) Clone() Parameters {
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge copies every entry of other into the bag, overwriting collisions,
// and returns the bag for chaining. A nil receiver allocates.
func (p Parameters) Merge(other Parameters) Parameters {
	if p == nil {
		p = make(Parameters, len(other))
	}
	for k, v := range other {
		p[k] = v
	}
	return p
}

// Assemble builds the bag for one invocation: the action's animated and
// modal knobs, its static params, then the caller's parameter on top.
// Object parameters merge key by key; anything else rides under
// KeyParameter.
func Assemble(animated, modal *bool, static map[string]any, param any) Parameters {
	bag := Parameters{KeyAnimated: animated == nil || *animated}
	if modal != nil {
		bag[KeyModal] = *modal
	}
	bag = bag.Merge(Parameters(static))
	switch v := param.(type) {
	case nil:
	case Parameters:
		bag = bag.Merge(v)
	case map[string]any:
		bag = bag.Merge(Parameters(v))
	default:
		bag[KeyParameter] = v
	}
	return bag
}
