package visual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainingPage(t *testing.T) {
	t.Run("detached elements have no page", func(t *testing.T) {
		btn := NewControl("button", "go")
		_, ok := ContainingPage(btn)
		assert.False(t, ok)
	})

	t.Run("nested children resolve through the chain", func(t *testing.T) {
		page := NewPage("home", "Home")
		row := NewControl("row", "row-1")
		btn := NewControl("button", "go")
		row.Add(btn)
		page.Add(row)

		got, ok := ContainingPage(btn)
		require.True(t, ok)
		assert.Same(t, page, got)
	})

	t.Run("a page contains itself", func(t *testing.T) {
		page := NewPage("home", "Home")
		got, ok := ContainingPage(page)
		require.True(t, ok)
		assert.Same(t, page, got)
	})
}

func TestOnAttached(t *testing.T) {
	t.Run("fires immediately when already attached", func(t *testing.T) {
		page := NewPage("home", "Home")
		btn := NewControl("button", "go")
		page.Add(btn)

		fired := 0
		btn.OnAttached(func() { fired++ })
		assert.Equal(t, 1, fired)
	})

	t.Run("defers until the subtree joins a page", func(t *testing.T) {
		row := NewControl("row", "row-1")
		btn := NewControl("button", "go")
		row.Add(btn)

		fired := 0
		btn.OnAttached(func() { fired++ })
		require.Zero(t, fired)

		page := NewPage("home", "Home")
		page.Add(row)
		assert.Equal(t, 1, fired)
	})

	t.Run("fires parents before children", func(t *testing.T) {
		row := NewControl("row", "row-1")
		btn := NewControl("button", "go")
		row.Add(btn)

		var order []string
		row.OnAttached(func() { order = append(order, "row") })
		btn.OnAttached(func() { order = append(order, "button") })

		NewPage("home", "Home").Add(row)
		assert.Equal(t, []string{"row", "button"}, order)
	})

	t.Run("each registration fires at most once", func(t *testing.T) {
		btn := NewControl("button", "go")
		fired := 0
		btn.OnAttached(func() { fired++ })

		page := NewPage("home", "Home")
		page.Add(btn)
		require.Equal(t, 1, fired)

		// Attaching more content nearby must not replay the callback.
		page.Add(NewControl("label", "hint"))
		assert.Equal(t, 1, fired)
	})

	t.Run("late additions to an attached parent fire at add time", func(t *testing.T) {
		page := NewPage("home", "Home")
		row := NewControl("row", "row-1")
		page.Add(row)

		btn := NewControl("button", "go")
		fired := 0
		btn.OnAttached(func() { fired++ })
		require.Zero(t, fired)

		row.Add(btn)
		assert.Equal(t, 1, fired)
	})
}

func TestBindingContext(t *testing.T) {
	t.Run("set and notify", func(t *testing.T) {
		btn := NewControl("button", "go")
		require.Nil(t, btn.BindingContext())

		seen := []any{}
		btn.BindingContextChanged(func() { seen = append(seen, btn.BindingContext()) })

		btn.SetBindingContext("model-a")
		btn.SetBindingContext("model-b")
		assert.Equal(t, []any{"model-a", "model-b"}, seen)
	})

	t.Run("cancel removes the subscription", func(t *testing.T) {
		btn := NewControl("button", "go")
		fired := 0
		cancel := btn.BindingContextChanged(func() { fired++ })

		btn.SetBindingContext(1)
		cancel()
		cancel() // second cancel is harmless
		btn.SetBindingContext(2)

		assert.Equal(t, 1, fired)
	})

	t.Run("cancelling during notification is safe", func(t *testing.T) {
		btn := NewControl("button", "go")
		var cancel func()
		first := 0
		second := 0
		cancel = btn.BindingContextChanged(func() {
			first++
			cancel()
		})
		btn.BindingContextChanged(func() { second++ })

		btn.SetBindingContext("x")
		btn.SetBindingContext("y")

		assert.Equal(t, 1, first)
		assert.Equal(t, 2, second, "remaining subscriber still runs")
	})
}

func TestBehaviors(t *testing.T) {
	btn := NewControl("button", "go")
	bhv := AttachBehavior("tap", btn)

	assert.Equal(t, "tap", bhv.Name())
	assert.Same(t, Element(btn), bhv.AssociatedElement())
	require.Len(t, btn.Behaviors(), 1)
	assert.Same(t, Behavior(bhv), btn.Behaviors()[0])
}

func TestControlBasics(t *testing.T) {
	btn := NewControl("button", "go")
	assert.Equal(t, "go", btn.ID())
	assert.Equal(t, "button", btn.Kind())
	assert.Nil(t, btn.Parent())

	btn.SetLabel("Go!")
	assert.Equal(t, "Go!", btn.Label())

	page := NewPage("home", "Home")
	page.SetTitle("Start")
	assert.Equal(t, "Start", page.Title())
	assert.Equal(t, "page", page.Kind())

	page.Add(btn)
	assert.Same(t, Element(page), btn.Parent())
	require.Len(t, page.Children(), 1)
}
