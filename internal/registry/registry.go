package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/vk/navgridgo/internal/binding"
)

// Module is the interface action packages implement to self-register.
type Module interface {
	Register(r *Registry)
}

// Entry holds the compiled Go parts of one action kind.
type Entry struct {
	// NewConfig returns a pointer to a zero config struct for the markup
	// decoder to fill.
	NewConfig func() any
	// Build turns a decoded config into the invoker for one declaration
	// site. It runs once per action block at layout load time.
	Build func(cfg any) (binding.Invoker, error)
}

// Registry maps markup action kinds to their entries for a single
// application instance.
type Registry struct {
	actions map[string]*Entry
}

// New creates an empty Registry instance.
func New() *Registry {
	return &Registry{actions: make(map[string]*Entry)}
}

// RegisterAction registers the entry for an action kind. Registering the
// same kind twice is a wiring bug and panics at startup.
func (r *Registry) RegisterAction(kind string, e *Entry) {
	if _, exists := r.actions[kind]; exists {
		panic(fmt.Sprintf("action kind '%s' already registered", kind))
	}
	slog.Debug("Registering action handler.", "kind", kind)
	r.actions[kind] = e
}

// Action resolves an action kind declared in markup. Unknown kinds get a
// nearest-match suggestion when one looks like a typo.
func (r *Registry) Action(kind string) (*Entry, error) {
	if e, ok := r.actions[kind]; ok {
		return e, nil
	}
	if near := r.nearest(kind); near != "" {
		return nil, fmt.Errorf("unknown action kind %q (did you mean %q?)", kind, near)
	}
	return nil, fmt.Errorf("unknown action kind %q (registered: %v)", kind, r.Kinds())
}

// Kinds lists the registered action kinds, sorted.
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.actions))
	for k := range r.actions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) nearest(kind string) string {
	const cutoff = 3
	best := ""
	bestDist := cutoff + 1
	for k := range r.actions {
		if d := levenshtein.ComputeDistance(kind, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
