package markup

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/navgridgo/internal/binding"
	"github.com/vk/navgridgo/internal/ctxlog"
	"github.com/vk/navgridgo/internal/dispatch"
	"github.com/vk/navgridgo/internal/registry"
	"github.com/vk/navgridgo/internal/schema"
	"github.com/vk/navgridgo/internal/scope"
	"github.com/vk/navgridgo/internal/visual"
)

// Deps carries the collaborators layout building needs.
type Deps struct {
	Registry   *registry.Registry
	Scopes     *scope.Provider
	Dispatcher dispatch.Dispatcher
	// BaseContext is forwarded to every binding for detached invocations.
	BaseContext func() context.Context
}

// Layout is a built visual tree plus its live bindings and the templates
// it can still instantiate.
type Layout struct {
	deps Deps

	pages     []*visual.Page
	pageByID  map[string]*visual.Page
	rootID    string
	bindings  []*binding.Binding
	templates map[string]*schema.Template
}

// provideTarget is the provide-value context handed to bindings.
type provideTarget struct{ obj any }

func (p provideTarget) TargetObject() any { return p.obj }

// Build turns a decoded layout into pages, elements, behaviors and bound
// actions. Any configuration error aborts the build.
func Build(ctx context.Context, file *schema.File, deps Deps) (*Layout, error) {
	if deps.Registry == nil || deps.Scopes == nil || deps.Dispatcher == nil {
		panic("markup: Deps requires Registry, Scopes and Dispatcher")
	}
	if len(file.Pages) == 0 {
		return nil, fmt.Errorf("layout declares no pages")
	}

	l := &Layout{
		deps:      deps,
		pageByID:  make(map[string]*visual.Page),
		templates: make(map[string]*schema.Template),
	}

	for _, t := range file.Templates {
		if _, dup := l.templates[t.Name]; dup {
			return nil, fmt.Errorf("duplicate template %q", t.Name)
		}
		if len(t.Elements) != 1 {
			return nil, fmt.Errorf("template %q must have exactly one root element, has %d", t.Name, len(t.Elements))
		}
		if err := checkElementIDs(t.Elements[0], map[string]bool{}); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.Name, err)
		}
		l.templates[t.Name] = t
	}

	ids := make(map[string]bool)
	for _, pb := range file.Pages {
		if _, dup := l.pageByID[pb.ID]; dup {
			return nil, fmt.Errorf("duplicate page id %q", pb.ID)
		}
		page := visual.NewPage(pb.ID, pageTitle(pb))
		if err := seedContext(page, pb.Context); err != nil {
			return nil, fmt.Errorf("page %q: %w", pb.ID, err)
		}
		l.pages = append(l.pages, page)
		l.pageByID[pb.ID] = page

		// Subtrees are built detached; Add attaches them and fires the
		// deferred resolutions of every action bound below.
		for _, eb := range pb.Elements {
			el, err := l.buildElement(ctx, eb, ids, nil)
			if err != nil {
				return nil, fmt.Errorf("page %q: %w", pb.ID, err)
			}
			page.Add(el)
		}

		// Page-level actions bind to the page itself and resolve
		// synchronously.
		for _, ab := range pb.Actions {
			if _, err := l.buildAction(ctx, ab, page); err != nil {
				return nil, fmt.Errorf("page %q: %w", pb.ID, err)
			}
		}
	}

	root, err := rootPage(file)
	if err != nil {
		return nil, err
	}
	l.rootID = root

	ctxlog.FromContext(ctx).Info("Layout built.",
		"pages", len(l.pages),
		"bindings", len(l.bindings),
		"templates", len(l.templates),
		"root", l.rootID,
	)
	return l, nil
}

// buildElement materializes one element block and everything beneath it,
// still detached from any page. rename mangles declared ids for template
// instances; nil keeps them as declared.
func (l *Layout) buildElement(ctx context.Context, eb *schema.Element, ids map[string]bool, rename func(string) string) (*visual.Control, error) {
	id := eb.ID
	if rename != nil {
		id = rename(id)
	}
	if ids != nil {
		if ids[id] {
			return nil, fmt.Errorf("duplicate element id %q", id)
		}
		ids[id] = true
	}

	el := visual.NewControl(eb.Kind, id)
	if eb.Label != "" {
		el.SetLabel(eb.Label)
	}
	if err := seedContext(el, eb.Context); err != nil {
		return nil, fmt.Errorf("element %q: %w", id, err)
	}

	for _, bb := range eb.Behaviors {
		bhv := visual.AttachBehavior(bb.Name, el)
		for _, ab := range bb.Actions {
			if _, err := l.buildAction(ctx, ab, bhv); err != nil {
				return nil, fmt.Errorf("element %q behavior %q: %w", id, bb.Name, err)
			}
		}
	}
	for _, ab := range eb.Actions {
		if _, err := l.buildAction(ctx, ab, el); err != nil {
			return nil, fmt.Errorf("element %q: %w", id, err)
		}
	}
	for _, child := range eb.Elements {
		kid, err := l.buildElement(ctx, child, ids, rename)
		if err != nil {
			return nil, err
		}
		el.Add(kid)
	}
	return el, nil
}

// buildAction evaluates one action block against its registered kind and
// binds it to target (an element, a behavior, or a page).
func (l *Layout) buildAction(ctx context.Context, ab *schema.Action, target any) (*binding.Binding, error) {
	entry, err := l.deps.Registry.Action(ab.Kind)
	if err != nil {
		return nil, err
	}
	strat, err := binding.ParseStrategy(ab.BindContext)
	if err != nil {
		return nil, fmt.Errorf("action %q: %w", ab.Kind, err)
	}

	cfg := entry.NewConfig()
	if diags := gohcl.DecodeBody(ab.Remain, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("action %q: %w", ab.Kind, diags)
	}
	invoker, err := entry.Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("action %q: %w", ab.Kind, err)
	}

	bnd := binding.New(binding.Config{
		Invoker:     invoker,
		Strategy:    strat,
		Scopes:      l.deps.Scopes,
		Dispatcher:  l.deps.Dispatcher,
		BaseContext: l.deps.BaseContext,
	})
	if err := bnd.Attach(provideTarget{obj: target}); err != nil {
		return nil, fmt.Errorf("action %q: %w", ab.Kind, err)
	}
	l.bindings = append(l.bindings, bnd)
	ctxlog.FromContext(ctx).Debug("Bound action.",
		"kind", ab.Kind,
		"element", bnd.Element().ID(),
		"strategy", strat.String(),
	)
	return bnd, nil
}

// seedContext sets an element's binding context from a static markup value.
func seedContext(el visual.Element, v cty.Value) error {
	native, err := NativeValue(v)
	if err != nil {
		return fmt.Errorf("context: %w", err)
	}
	if native == nil {
		return nil
	}
	el.SetBindingContext(native)
	return nil
}

func pageTitle(pb *schema.Page) string {
	if pb.Title != "" {
		return pb.Title
	}
	return pb.ID
}

// rootPage picks the initial page: the single page marked root, or the
// first declared one.
func rootPage(file *schema.File) (string, error) {
	root := ""
	for _, pb := range file.Pages {
		if !pb.Root {
			continue
		}
		if root != "" {
			return "", fmt.Errorf("pages %q and %q both declare root = true", root, pb.ID)
		}
		root = pb.ID
	}
	if root == "" {
		root = file.Pages[0].ID
	}
	return root, nil
}

// checkElementIDs validates id uniqueness inside a subtree without
// building it.
func checkElementIDs(eb *schema.Element, seen map[string]bool) error {
	if seen[eb.ID] {
		return fmt.Errorf("duplicate element id %q", eb.ID)
	}
	seen[eb.ID] = true
	for _, child := range eb.Elements {
		if err := checkElementIDs(child, seen); err != nil {
			return err
		}
	}
	return nil
}

// Pages returns the built pages in declaration order.
func (l *Layout) Pages() []*visual.Page { return l.pages }

// Page looks up a built page by id.
func (l *Layout) Page(id string) (*visual.Page, bool) {
	p, ok := l.pageByID[id]
	return p, ok
}

// RootID returns the id of the initial page.
func (l *Layout) RootID() string { return l.rootID }

// Bindings returns every live binding, markup-declared and instantiated.
func (l *Layout) Bindings() []*binding.Binding { return l.bindings }

// BindingsFor returns the bindings whose target is the given element.
func (l *Layout) BindingsFor(elementID string) []*binding.Binding {
	var out []*binding.Binding
	for _, b := range l.bindings {
		if b.Element() != nil && b.Element().ID() == elementID {
			out = append(out, b)
		}
	}
	return out
}
