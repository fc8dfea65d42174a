package markup

import (
	"context"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/vk/navgridgo/internal/binding"
	"github.com/vk/navgridgo/internal/ctxlog"
	"github.com/vk/navgridgo/internal/visual"
)

// Instantiate builds a fresh detached copy of the named template. Element
// ids get a unique instance suffix so repeated instantiation cannot
// collide. The returned subtree carries live bindings that resolve their
// page once the host adds it into an attached tree; until then they stay
// disabled.
func (l *Layout) Instantiate(ctx context.Context, name string) (*visual.Control, []*binding.Binding, error) {
	t, ok := l.templates[name]
	if !ok {
		if near := l.nearestTemplate(name); near != "" {
			return nil, nil, fmt.Errorf("unknown template %q (did you mean %q?)", name, near)
		}
		return nil, nil, fmt.Errorf("unknown template %q", name)
	}

	instance := uuid.NewString()
	rename := func(id string) string { return id + "-" + instance }

	before := len(l.bindings)
	el, err := l.buildElement(ctx, t.Elements[0], nil, rename)
	if err != nil {
		return nil, nil, fmt.Errorf("template %q: %w", name, err)
	}
	created := l.bindings[before:]

	ctxlog.FromContext(ctx).Debug("Instantiated template.",
		"template", name,
		"instance", instance,
		"bindings", len(created),
	)
	return el, created, nil
}

// Templates lists the declared template names, sorted.
func (l *Layout) Templates() []string {
	out := make([]string, 0, len(l.templates))
	for name := range l.templates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (l *Layout) nearestTemplate(name string) string {
	const cutoff = 3
	best := ""
	bestDist := cutoff + 1
	for t := range l.templates {
		if d := levenshtein.ComputeDistance(name, t); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}
