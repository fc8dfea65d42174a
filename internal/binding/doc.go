// Package binding is the engine behind markup-declared actions. One Binding
// is created per declaration site. At provide-value time it resolves the
// element the declaration is applied to (directly, or through a behavior's
// associated element), then its containing page: synchronously when the
// element is already in a page tree, otherwise through a one-shot attachment
// callback, since markup engines build subtrees before inserting them.
//
// Until the page is known the command stays disabled. Once it is known the
// binding mirrors the element's or page's binding context per its Strategy,
// and the command becomes executable. Execution is fire-and-forget: the work
// runs on one detached goroutine, failures are logged through the page
// scope's logger, and the busy flag clears on the dispatch goroutine no
// matter how the work ended.
package binding
