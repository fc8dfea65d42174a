package testutil

import (
	"context"
	"sync"

	"github.com/vk/navgridgo/internal/navigation"
)

// NavCall is one captured Navigate request.
type NavCall struct {
	Target string
	Params navigation.Parameters
}

// RecordingNavigator is a navigation.Navigator double. It captures every
// transition request and answers with a scripted Result, so tests can drive
// the full binding pipeline without a real page stack.
type RecordingNavigator struct {
	// Result is returned from every Navigate and Back call.
	Result navigation.Result

	mu    sync.Mutex
	calls []NavCall
	backs []navigation.Parameters
}

func (r *RecordingNavigator) Navigate(_ context.Context, target string, params navigation.Parameters) navigation.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, NavCall{Target: target, Params: params.Clone()})
	return r.Result
}

func (r *RecordingNavigator) Back(_ context.Context, params navigation.Parameters) navigation.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backs = append(r.backs, params.Clone())
	return r.Result
}

// Calls returns a copy of the captured Navigate requests.
func (r *RecordingNavigator) Calls() []NavCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]NavCall(nil), r.calls...)
}

// Backs returns a copy of the captured Back request bags.
func (r *RecordingNavigator) Backs() []navigation.Parameters {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]navigation.Parameters(nil), r.backs...)
}
