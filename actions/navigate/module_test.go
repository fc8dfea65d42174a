package navigate

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/navgridgo/internal/binding"
	"github.com/vk/navgridgo/internal/navigation"
	"github.com/vk/navgridgo/internal/registry"
	"github.com/vk/navgridgo/internal/scope"
)

// recordingNav captures the last transition request.
type recordingNav struct {
	mu     sync.Mutex
	target string
	params navigation.Parameters
	result navigation.Result
}

func (r *recordingNav) Navigate(_ context.Context, target string, params navigation.Parameters) navigation.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = target
	r.params = params
	return r.result
}

func (r *recordingNav) Back(context.Context, navigation.Parameters) navigation.Result {
	return r.result
}

func boolPtr(v bool) *bool { return &v }

func TestBuild(t *testing.T) {
	t.Run("complete config builds an action", func(t *testing.T) {
		inv, err := build(&Config{
			Target:   "details",
			Animated: boolPtr(false),
			Modal:    boolPtr(true),
			Params:   cty.ObjectVal(map[string]cty.Value{"id": cty.NumberIntVal(42)}),
		})
		require.NoError(t, err)
		a := inv.(*Action)
		assert.Equal(t, "details", a.Target())
		assert.Equal(t, "navigate", a.Kind())
		assert.Equal(t, map[string]any{"id": float64(42)}, a.params)
	})

	t.Run("empty target is rejected", func(t *testing.T) {
		_, err := build(&Config{})
		require.Error(t, err)
		assert.ErrorContains(t, err, "non-empty target")
	})

	t.Run("non-object params are rejected", func(t *testing.T) {
		_, err := build(&Config{Target: "details", Params: cty.StringVal("nope")})
		require.Error(t, err)
		assert.ErrorContains(t, err, "expected an object")
	})

	t.Run("foreign config types are rejected", func(t *testing.T) {
		_, err := build(struct{}{})
		require.Error(t, err)
	})
}

func TestBag(t *testing.T) {
	t.Run("defaults to animated only", func(t *testing.T) {
		a := &Action{target: "details"}
		assert.Equal(t, navigation.Parameters{navigation.KeyAnimated: true}, a.Bag(nil))
	})

	t.Run("knobs, statics and caller data merge", func(t *testing.T) {
		a := &Action{
			target:   "details",
			animated: boolPtr(false),
			modal:    boolPtr(true),
			params:   map[string]any{"id": float64(1)},
		}
		bag := a.Bag(map[string]any{"id": float64(7)})
		assert.Equal(t, false, bag[navigation.KeyAnimated])
		assert.Equal(t, true, bag[navigation.KeyModal])
		assert.Equal(t, float64(7), bag["id"], "caller data wins over statics")
	})
}

func TestInvoke(t *testing.T) {
	newInvocation := func(nav navigation.Navigator, param any) *binding.Invocation {
		return &binding.Invocation{
			Param: param,
			Scope: scope.NewProvider(slog.Default(), nav).Root(),
		}
	}

	t.Run("drives the navigator with the bag", func(t *testing.T) {
		nav := &recordingNav{}
		a := &Action{target: "details"}

		err := a.Invoke(context.Background(), newInvocation(nav, map[string]any{"id": 42}))
		require.NoError(t, err)
		assert.Equal(t, "details", nav.target)
		assert.Equal(t, true, nav.params[navigation.KeyAnimated])
		assert.Equal(t, 42, nav.params["id"])
		_, hasModal := nav.params[navigation.KeyModal]
		assert.False(t, hasModal, "modal stays unset unless configured")
	})

	t.Run("navigator failures surface with the target", func(t *testing.T) {
		nav := &recordingNav{result: navigation.Failed(errors.New("refused"))}
		a := &Action{target: "details"}

		err := a.Invoke(context.Background(), newInvocation(nav, nil))
		require.Error(t, err)
		assert.ErrorContains(t, err, `navigate to "details"`)
		assert.ErrorContains(t, err, "refused")
	})

	t.Run("a scope without a navigator fails cleanly", func(t *testing.T) {
		a := &Action{target: "details"}
		err := a.Invoke(context.Background(), newInvocation(nil, nil))
		require.Error(t, err)
		assert.ErrorContains(t, err, "no navigator")
	})
}

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	entry, err := r.Action("navigate")
	require.NoError(t, err)
	assert.IsType(t, &Config{}, entry.NewConfig())
	assert.NoError(t, r.Validate(context.Background()))
}
