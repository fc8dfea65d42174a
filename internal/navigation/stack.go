package navigation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/vk/navgridgo/internal/visual"
)

// Sentinel failures the stack navigator reports through Result.Err.
var (
	ErrUnknownTarget = errors.New("unknown navigation target")
	ErrStackBottom   = errors.New("navigation stack is at its root")
	ErrDuplicatePage = errors.New("duplicate page id")
)

// suggestionCutoff bounds how far a misspelled target may be from a known
// page id before we stop offering it as a correction.
const suggestionCutoff = 3

// Stack is the in-repo Navigator: a registry of pages, a navigation stack,
// and a modal stack on top of it. The animated flag is recorded as
// transition metadata; a terminal host has nothing to animate.
//
// All methods are safe for concurrent use. Bindings navigate from detached
// goroutines while hosts read Current from the dispatch goroutine.
type Stack struct {
	mu      sync.RWMutex
	pages   map[string]*visual.Page
	stack   []*visual.Page
	modals  []*visual.Page
	history []Entry
}

// Entry records one completed transition for hosts and the inspector.
type Entry struct {
	Op       string    `json:"op"`
	Target   string    `json:"target,omitempty"`
	Modal    bool      `json:"modal"`
	Animated bool      `json:"animated"`
	At       time.Time `json:"at"`
}

// NewStack creates an empty navigator. Pages must be registered before they
// can be navigated to, and a root must be set before Back can unwind.
func NewStack() *Stack {
	return &Stack{pages: make(map[string]*visual.Page)}
}

// AddPage registers a page under its id.
func (s *Stack) AddPage(p *visual.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pages[p.ID()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicatePage, p.ID())
	}
	s.pages[p.ID()] = p
	return nil
}

// SetRoot resets the stack to the named page.
func (s *Stack) SetRoot(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[id]
	if !ok {
		return s.unknownTarget(id)
	}
	s.stack = []*visual.Page{p}
	s.modals = nil
	return nil
}

// Navigate implements Navigator. Unknown targets fail with a nearest-match
// suggestion when one is close enough to look like a typo.
func (s *Stack) Navigate(ctx context.Context, target string, params Parameters) Result {
	if err := ctx.Err(); err != nil {
		return Failed(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pages[target]
	if !ok {
		return Failed(s.unknownTarget(target))
	}

	modal := false
	if m := params.Modal(); m != nil {
		modal = *m
	}
	if modal {
		s.modals = append(s.modals, p)
	} else {
		s.stack = append(s.stack, p)
	}
	s.history = append(s.history, Entry{
		Op:       "navigate",
		Target:   target,
		Modal:    modal,
		Animated: params.Animated(),
		At:       time.Now(),
	})
	return Result{}
}

// Back implements Navigator. Modals unwind before the page stack; the root
// page cannot be left.
func (s *Stack) Back(ctx context.Context, params Parameters) Result {
	if err := ctx.Err(); err != nil {
		return Failed(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	modal := false
	switch {
	case len(s.modals) > 0:
		s.modals = s.modals[:len(s.modals)-1]
		modal = true
	case len(s.stack) > 1:
		s.stack = s.stack[:len(s.stack)-1]
	default:
		return Failed(ErrStackBottom)
	}
	s.history = append(s.history, Entry{
		Op:       "back",
		Modal:    modal,
		Animated: params.Animated(),
		At:       time.Now(),
	})
	return Result{}
}

// Current returns the topmost visible page: the top modal if any, else the
// top of the stack, else nil.
func (s *Stack) Current() *visual.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n := len(s.modals); n > 0 {
		return s.modals[n-1]
	}
	if n := len(s.stack); n > 0 {
		return s.stack[n-1]
	}
	return nil
}

// Page looks up a registered page by id.
func (s *Stack) Page(id string) (*visual.Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[id]
	return p, ok
}

// Depth reports the page-stack depth (modals excluded).
func (s *Stack) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stack)
}

// ModalDepth reports how many modals are presented.
func (s *Stack) ModalDepth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.modals)
}

// History copies the transition journal, oldest first.
func (s *Stack) History() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}

// unknownTarget builds the failure for a target no page is registered
// under. Callers must hold at least the read lock.
func (s *Stack) unknownTarget(target string) error {
	best := ""
	bestDist := suggestionCutoff + 1
	for id := range s.pages {
		if d := levenshtein.ComputeDistance(target, id); d < bestDist {
			best, bestDist = id, d
		}
	}
	if best != "" {
		return fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownTarget, target, best)
	}
	return fmt.Errorf("%w: %q", ErrUnknownTarget, target)
}
