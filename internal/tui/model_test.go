package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(model)
	require.True(t, ok)
	return mm, cmd
}

func detailsState() uiState {
	return uiState{
		PageID:    "home",
		PageTitle: "Home",
		Depth:     1,
		Items: []itemState{
			{ID: "toolbar", Kind: "row"},
			{ID: "go", Kind: "button", Label: "Open details", Indent: 1, Actions: 1, Enabled: true},
			{ID: "share", Kind: "button", Label: "Share", Indent: 1, Actions: 1, Enabled: true},
		},
	}
}

func TestFocusTraversal(t *testing.T) {
	m := newModel(nil, nil)
	m, _ = apply(t, m, stateMsg{state: detailsState()})

	// Focus lands on the first actionable item, skipping the bare row.
	assert.Equal(t, 1, m.focus)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.focus)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.focus, "focus wraps past the end")

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, m.focus)
}

func TestFocusWithNothingActionable(t *testing.T) {
	m := newModel(func(string) { t.Fatal("nothing should trigger") }, nil)
	m, _ = apply(t, m, stateMsg{state: uiState{Items: []itemState{{ID: "label", Kind: "text"}}}})

	assert.Equal(t, -1, m.focus)
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, -1, m.focus)
	apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestEnterTriggersFocusedElement(t *testing.T) {
	var triggered []string
	m := newModel(func(id string) { triggered = append(triggered, id) }, nil)
	m, _ = apply(t, m, stateMsg{state: detailsState()})

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"go"}, triggered)

	t.Run("disabled elements do not trigger", func(t *testing.T) {
		state := detailsState()
		state.Items[1].Enabled = false
		m, _ = apply(t, m, stateMsg{state: state})
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, []string{"go"}, triggered)
	})

	t.Run("busy elements do not trigger", func(t *testing.T) {
		state := detailsState()
		state.Items[1].Busy = true
		m, _ = apply(t, m, stateMsg{state: state})
		m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, []string{"go"}, triggered)
	})
}

func TestEscGoesBack(t *testing.T) {
	backs := 0
	m := newModel(nil, func() { backs++ })
	m, _ = apply(t, m, stateMsg{state: detailsState()})

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, backs)

	// A model without a back hook ignores the key.
	m2 := newModel(nil, nil)
	apply(t, m2, tea.KeyMsg{Type: tea.KeyEsc})
}

func TestQuit(t *testing.T) {
	m := newModel(nil, nil)
	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestSpinnerFollowsBusyState(t *testing.T) {
	m := newModel(nil, nil)

	busy := detailsState()
	busy.Items[1].Busy = true
	m, cmd := apply(t, m, stateMsg{state: busy})
	assert.True(t, m.spinning)
	require.NotNil(t, cmd, "entering the busy state starts the tick loop")

	m, cmd = apply(t, m, spinner.TickMsg{})
	assert.NotNil(t, cmd, "ticks keep coming while busy")

	m, _ = apply(t, m, stateMsg{state: detailsState()})
	assert.False(t, m.spinning)
	_, cmd = apply(t, m, spinner.TickMsg{})
	assert.Nil(t, cmd, "ticks stop once idle")
}

func TestView(t *testing.T) {
	m := newModel(nil, nil)
	m, _ = apply(t, m, stateMsg{state: detailsState()})

	plain := ansi.Strip(m.View())
	assert.Contains(t, plain, "Home")
	assert.Contains(t, plain, "page=home depth=1")
	assert.Contains(t, plain, "[row] toolbar")
	assert.Contains(t, plain, "[button] Open details")
	assert.Contains(t, plain, "> ", "focused item carries the cursor")
	assert.Contains(t, plain, "enter run actions")

	t.Run("remote badge", func(t *testing.T) {
		state := detailsState()
		state.Remote = true
		m, _ := apply(t, m, stateMsg{state: state})
		assert.Contains(t, ansi.Strip(m.View()), "remote shell")
	})

	t.Run("empty page", func(t *testing.T) {
		m, _ := apply(t, m, stateMsg{state: uiState{PageID: "blank", PageTitle: "Blank"}})
		assert.Contains(t, ansi.Strip(m.View()), "(no elements)")
	})

	t.Run("quitting clears the screen", func(t *testing.T) {
		m, _ := apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		assert.Equal(t, "", m.View())
	})
}

func TestViewMarksUnlabeledItemsByID(t *testing.T) {
	m := newModel(nil, nil)
	m, _ = apply(t, m, stateMsg{state: uiState{
		PageID: "home",
		Items:  []itemState{{ID: "go", Kind: "button", Actions: 1, Enabled: true}},
	}})
	assert.Contains(t, ansi.Strip(m.View()), "[button] go")
}
