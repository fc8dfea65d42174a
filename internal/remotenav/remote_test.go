package remotenav

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/navgridgo/internal/navigation"
)

func TestConfigNormalize(t *testing.T) {
	t.Run("fills protocol defaults", func(t *testing.T) {
		cfg := Config{URL: "ws://localhost:4000/nav"}.normalize()
		assert.Equal(t, DefaultEmitEvent, cfg.EmitEvent)
		assert.Equal(t, DefaultResultEvent, cfg.ResultEvent)
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
	})

	t.Run("keeps explicit settings", func(t *testing.T) {
		cfg := Config{
			EmitEvent:   "nav:req",
			ResultEvent: "nav:res",
			Timeout:     time.Second,
		}.normalize()
		assert.Equal(t, "nav:req", cfg.EmitEvent)
		assert.Equal(t, "nav:res", cfg.ResultEvent)
		assert.Equal(t, time.Second, cfg.Timeout)
	})
}

func TestPayload(t *testing.T) {
	t.Run("navigate carries op, target and params", func(t *testing.T) {
		params := navigation.Parameters{"animated": true, "id": float64(42)}
		p := Payload("navigate", "details", params)

		assert.Equal(t, "navigate", p["op"])
		assert.Equal(t, "details", p["target"])
		assert.Equal(t, map[string]any{"animated": true, "id": float64(42)}, p["params"])
	})

	t.Run("params are copied, not aliased", func(t *testing.T) {
		params := navigation.Parameters{"animated": true}
		p := Payload("navigate", "details", params)
		params["animated"] = false

		assert.Equal(t, map[string]any{"animated": true}, p["params"])
	})

	t.Run("back omits the target", func(t *testing.T) {
		p := Payload("back", "", navigation.Parameters{})
		assert.Equal(t, "back", p["op"])
		_, hasTarget := p["target"]
		assert.False(t, hasTarget)
	})
}

func TestRefusalError(t *testing.T) {
	t.Run("no payload means success", func(t *testing.T) {
		assert.NoError(t, RefusalError(nil))
	})

	t.Run("object without error means success", func(t *testing.T) {
		assert.NoError(t, RefusalError(map[string]any{"page": "details"}))
		assert.NoError(t, RefusalError(map[string]any{"error": ""}))
	})

	t.Run("non-object payloads are tolerated", func(t *testing.T) {
		assert.NoError(t, RefusalError("ok"))
	})

	t.Run("error attribute becomes a refusal", func(t *testing.T) {
		err := RefusalError(map[string]any{"error": "unknown page"})
		require.Error(t, err)
		assert.EqualError(t, err, "remote shell: unknown page")
	})
}

func TestDeliver(t *testing.T) {
	t.Run("hands the answer to the waiting request", func(t *testing.T) {
		r := &Remote{}
		ch := make(chan opResult, 1)
		r.pendingMu.Lock()
		r.pending = ch
		r.pendingMu.Unlock()

		want := opResult{err: errors.New("boom")}
		r.deliver(want)

		select {
		case got := <-ch:
			assert.Equal(t, want, got)
		default:
			t.Fatal("answer was not delivered")
		}
	})

	t.Run("drops stray answers", func(t *testing.T) {
		r := &Remote{}
		r.deliver(opResult{payload: "late"})
	})

	t.Run("clearPending detaches the rendezvous", func(t *testing.T) {
		r := &Remote{}
		ch := make(chan opResult, 1)
		r.pendingMu.Lock()
		r.pending = ch
		r.pendingMu.Unlock()

		r.clearPending()
		r.deliver(opResult{payload: "late"})
		assert.Empty(t, ch)
	})
}
