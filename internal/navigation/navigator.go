// Package navigation defines the navigation service contract the binding
// layer drives, the parameter bag actions assemble for it, and the in-repo
// page-stack implementation.
package navigation

import "context"

// Navigator performs page transitions. Implementations must be safe for
// concurrent use: the binding layer invokes them from detached execution
// goroutines while hosts read navigation state from the dispatch goroutine.
type Navigator interface {
	// Navigate transitions to the page named by target. A failure is
	// reported through the Result, not returned as an error or panic.
	Navigate(ctx context.Context, target string, params Parameters) Result
	// Back leaves the current page, unwinding the modal stack first.
	Back(ctx context.Context, params Parameters) Result
}

// Result reports a completed navigation. A non-nil Err means the service
// ran and refused or failed; callers treat it as a reportable condition,
// never a reason to unwind.
type Result struct {
	Err error
}

// Failed wraps err in a Result. A nil err yields a success Result.
func Failed(err error) Result { return Result{Err: err} }
