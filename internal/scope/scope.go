// Package scope hands out per-page service scopes. A scope resolves the
// services an action binding needs at run time: a named logger and the
// navigator. Pages get their own scope so log records carry the page id;
// everything not under a page shares the ambient root scope.
package scope

import (
	"log/slog"
	"sync"

	"github.com/vk/navgridgo/internal/navigation"
	"github.com/vk/navgridgo/internal/visual"
)

// Scope resolves services for one page, or for the process when page is nil.
type Scope struct {
	page *visual.Page
	nav  navigation.Navigator
	base *slog.Logger
}

// Logger returns a logger named after the caller. Page scopes stamp the
// page id on every record.
func (s *Scope) Logger(name string) *slog.Logger {
	l := s.base.With("source", name)
	if s.page != nil {
		l = l.With("page", s.page.ID())
	}
	return l
}

// Navigator returns the navigator this scope resolves to.
func (s *Scope) Navigator() navigation.Navigator { return s.nav }

// Page returns the owning page, nil for the root scope.
func (s *Scope) Page() *visual.Page { return s.page }

// Provider creates and caches scopes keyed by page identity.
//
// Safe for concurrent use. Bindings resolve their logger lazily, which can
// happen on a detached action goroutine.
type Provider struct {
	mu     sync.Mutex
	base   *slog.Logger
	nav    navigation.Navigator
	root   *Scope
	scopes map[*visual.Page]*Scope
}

// NewProvider wires a provider over the process logger and the navigator
// every scope will resolve.
func NewProvider(base *slog.Logger, nav navigation.Navigator) *Provider {
	if base == nil {
		base = slog.Default()
	}
	return &Provider{
		base:   base,
		nav:    nav,
		root:   &Scope{nav: nav, base: base},
		scopes: make(map[*visual.Page]*Scope),
	}
}

// For returns the scope owned by page, creating it on first use. A nil
// page resolves the ambient root scope.
func (p *Provider) For(page *visual.Page) *Scope {
	if page == nil {
		return p.root
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.scopes[page]; ok {
		return s
	}
	s := &Scope{page: page, nav: p.nav, base: p.base}
	p.scopes[page] = s
	return s
}

// Root returns the ambient scope used outside any page.
func (p *Provider) Root() *Scope { return p.root }
