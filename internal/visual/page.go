package visual

// Page is the root of an attached subtree. Elements are "attached" exactly
// when walking their parent chain reaches a Page.
type Page struct {
	Control

	title string
}

// NewPage creates an empty page. Pages are always attached to themselves, so
// adding children to a page attaches them immediately.
func NewPage(id, title string) *Page {
	p := &Page{title: title}
	p.Control.id = id
	p.Control.kind = "page"
	p.Control.self = p
	return p
}

// Title is the page's display title.
func (p *Page) Title() string { return p.title }

// SetTitle replaces the page's display title.
func (p *Page) SetTitle(title string) { p.title = title }
