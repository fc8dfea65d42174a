package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// uiState is a render snapshot of the current page. Snapshots are taken on
// the dispatch goroutine and handed to the model as messages, so the model
// never touches live bindings.
type uiState struct {
	PageID     string
	PageTitle  string
	Depth      int
	ModalDepth int
	Remote     bool
	Items      []itemState
}

// itemState is one element of the current page, flattened in tree order.
type itemState struct {
	ID      string
	Kind    string
	Label   string
	Indent  int
	Actions int
	Enabled bool
	Busy    bool
}

func (s uiState) anyBusy() bool {
	for _, it := range s.Items {
		if it.Busy {
			return true
		}
	}
	return false
}

// stateMsg replaces the model's snapshot.
type stateMsg struct {
	state uiState
}

type model struct {
	state    uiState
	focus    int
	spin     spinner.Model
	spinning bool
	width    int
	height   int
	quitting bool

	// trigger and back marshal the interaction onto the dispatch loop.
	trigger func(elementID string)
	back    func()
}

func newModel(trigger func(string), back func()) model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = spinnerStyle
	return model{
		focus:   -1,
		spin:    sp,
		trigger: trigger,
		back:    back,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		wasSpinning := m.spinning
		m.state = msg.state
		m.focus = clampFocus(m.state.Items, m.focus)
		m.spinning = m.state.anyBusy()
		if m.spinning && !wasSpinning {
			return m, m.spin.Tick
		}
		return m, nil

	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Down):
			m.focus = nextActionable(m.state.Items, m.focus, +1)
			return m, nil

		case key.Matches(msg, keys.Up):
			m.focus = nextActionable(m.state.Items, m.focus, -1)
			return m, nil

		case key.Matches(msg, keys.Select):
			if it, ok := m.focused(); ok && it.Enabled && !it.Busy && m.trigger != nil {
				m.trigger(it.ID)
			}
			return m, nil

		case key.Matches(msg, keys.Back):
			if m.back != nil {
				m.back()
			}
			return m, nil
		}
	}

	return m, nil
}

func (m model) focused() (itemState, bool) {
	if m.focus < 0 || m.focus >= len(m.state.Items) {
		return itemState{}, false
	}
	return m.state.Items[m.focus], true
}

// clampFocus keeps focus on an actionable item across snapshot swaps,
// falling back to the first actionable one.
func clampFocus(items []itemState, focus int) int {
	if focus >= 0 && focus < len(items) && items[focus].Actions > 0 {
		return focus
	}
	for i, it := range items {
		if it.Actions > 0 {
			return i
		}
	}
	return -1
}

// nextActionable moves focus in dir, skipping items without actions and
// wrapping at the ends.
func nextActionable(items []itemState, from, dir int) int {
	if len(items) == 0 {
		return -1
	}
	i := from
	for range items {
		i += dir
		if i < 0 {
			i = len(items) - 1
		}
		if i >= len(items) {
			i = 0
		}
		if items[i].Actions > 0 {
			return i
		}
	}
	return from
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := m.state.PageTitle
	if title == "" {
		title = m.state.PageID
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString(" ")
	crumb := fmt.Sprintf("page=%s depth=%d", m.state.PageID, m.state.Depth)
	if m.state.ModalDepth > 0 {
		crumb += fmt.Sprintf(" modal=%d", m.state.ModalDepth)
	}
	if m.state.Remote {
		crumb = "remote shell"
	}
	b.WriteString(breadcrumbStyle.Render(crumb))
	b.WriteString("\n\n")

	if len(m.state.Items) == 0 {
		b.WriteString(disabledStyle.Render("  (no elements)"))
		b.WriteString("\n")
	}
	for i, it := range m.state.Items {
		prefix := "  "
		if i == m.focus {
			prefix = cursorStyle.Render("> ")
		}
		label := it.Label
		if label == "" {
			label = it.ID
		}
		line := fmt.Sprintf("%s[%s] %s", strings.Repeat("  ", it.Indent), it.Kind, label)
		switch {
		case it.Busy:
			line = focusedStyle.Render(line) + " " + m.spin.View()
		case it.Actions > 0 && !it.Enabled:
			line = disabledStyle.Render(line)
		case i == m.focus:
			line = focusedStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpLine())
	b.WriteString("\n")
	return b.String()
}

func helpLine() string {
	hints := []key.Binding{keys.Up, keys.Down, keys.Select, keys.Back, keys.Quit}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, helpKeyStyle.Render(h.Help().Key)+helpDescStyle.Render(" "+h.Help().Desc))
	}
	return "  " + strings.Join(parts, helpDescStyle.Render(" · "))
}
