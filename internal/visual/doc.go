// Package visual provides the retained element tree the binding layer
// resolves against: elements with parent links, pages as tree roots,
// one-shot attachment callbacks, binding contexts with change
// subscriptions, and behaviors attached to elements.
//
// The tree is deliberately small. It is not a general property system; it
// exists so that actions declared in markup can find their element and
// page, mirror a binding context, and react when a detached subtree is
// inserted into a live page.
//
// Nothing in this package is safe for concurrent use. All tree access
// happens on the single dispatch goroutine (see the dispatch package).
package visual
