// Package schema defines the HCL block structures of layout files. The
// loader decodes files into these structs verbatim; interpretation happens
// in the markup package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// File represents the top-level structure of one layout file.
type File struct {
	Pages     []*Page     `hcl:"page,block"`
	Templates []*Template `hcl:"template,block"`
}

// Page represents a `page` block: one navigable screen and its content.
type Page struct {
	ID    string `hcl:"id,label"`
	Title string `hcl:"title,optional"`
	// Root marks the initial page. At most one page may set it; with no
	// root the first declared page wins.
	Root bool `hcl:"root,optional"`
	// Context seeds the page's binding context with a static value.
	Context  cty.Value  `hcl:"context,optional"`
	Elements []*Element `hcl:"element,block"`
	Actions  []*Action  `hcl:"action,block"`
}

// Element represents an `element` block. The first label is the element
// kind ("button", "list", ...), the second its layout-unique id. Elements
// nest arbitrarily.
type Element struct {
	Kind      string      `hcl:"kind,label"`
	ID        string      `hcl:"id,label"`
	Label     string      `hcl:"label,optional"`
	Context   cty.Value   `hcl:"context,optional"`
	Elements  []*Element  `hcl:"element,block"`
	Behaviors []*Behavior `hcl:"behavior,block"`
	Actions   []*Action   `hcl:"action,block"`
}

// Behavior represents a `behavior` block attached to an element. Actions
// declared on a behavior bind through the behavior's associated element.
type Behavior struct {
	Name    string    `hcl:"name,label"`
	Actions []*Action `hcl:"action,block"`
}

// Action represents an `action` block. The label selects the registered
// action kind; the rest of the body belongs to that kind's config struct
// and is decoded against it when the layout is built.
type Action struct {
	Kind string `hcl:"kind,label"`
	// BindContext selects the binding-context source: "element" or "page".
	BindContext string   `hcl:"bind_context,optional"`
	Remain      hcl.Body `hcl:",remain"`
}

// Template represents a `template` block: a reusable subtree instantiated
// at run time. A template has exactly one root element.
type Template struct {
	Name     string     `hcl:"name,label"`
	Elements []*Element `hcl:"element,block"`
}
