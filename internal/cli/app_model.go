package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
)

// appModel is the root bubbletea Model for the TUI. The bottom of the view
// stack is always one of the numbered home views; forms are pushed on top.
type appModel struct {
	state     *SharedState
	viewStack []View
	cmdBar    commandBar
	output    outputPane
	help      help.Model
	quitting  bool

	// Database change signals; nil when the database is not a file.
	changes <-chan struct{}
}

func newAppModel(app *App) appModel {
	state := newSharedState(app)
	return appModel{
		state:     state,
		viewStack: []View{homeView(state, homeTabs[0].key)},
		cmdBar:    newCommandBar(state),
		output:    newOutputPane(),
		help:      newHelpModel(),
	}
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// forward passes msg to the active view.
func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	v := m.activeView()
	if v == nil {
		return m, nil
	}
	updated, cmd := v.Update(msg)
	m.setActiveView(updated.(View))
	return m, cmd
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	cmds = append(cmds, waitForDBChange(m.changes))
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.cmdBar.SetWidth(msg.Width)
		m.help.Width = msg.Width
		if m.output.active {
			m.output.resize(msg.Width, m.state.ContentHeight())
		}
		return m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.output.active {
			return m, m.output.update(msg)
		}
		return m.forward(msg)

	case pushViewMsg:
		m.cmdBar.Blur()
		m.output.clear()
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case replaceViewMsg:
		m.cmdBar.Blur()
		m.output.clear()
		if len(m.viewStack) == 0 {
			m.viewStack = []View{msg.view}
		} else {
			m.setActiveView(msg.view)
		}
		return m, msg.view.Init()

	case refreshViewMsg, dbChangedMsg:
		// Every view in the stack reloads, not only the visible one.
		var cmds []tea.Cmd
		if _, external := msg.(dbChangedMsg); external {
			cmds = append(cmds, waitForDBChange(m.changes))
		}
		for i, v := range m.viewStack {
			updated, cmd := v.Update(refreshViewMsg{})
			m.viewStack[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case cmdOutputMsg:
		if msg.output != "" {
			m.output.show(msg.output, m.state.Width, m.state.ContentHeight())
		}
		if msg.refresh {
			return m, refreshViews
		}
		return m, nil

	case wizardCompleteMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		m.output.clear()
		return m, tea.Batch(msg.nextCmd, refreshViews)

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	// Async loads belong to the view even while the command bar has focus;
	// the bar only acts on its own cursor blinks.
	if !m.cmdBar.Focused() {
		return m.forward(msg)
	}
	barCmd := m.cmdBar.UpdateNonKey(msg)
	model, viewCmd := m.forward(msg)
	return model, tea.Batch(barCmd, viewCmd)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.cmdBar.Focused() {
		if msg.Type == tea.KeyEnter {
			m.output.clear()
		}
		return m, m.cmdBar.Update(msg)
	}

	if m.output.active {
		if isOutputScrollKey(msg) {
			return m, m.output.update(msg)
		}
		m.output.clear()
	}

	// Forms and drags in progress own every key, esc and q included.
	if viewCapturesInput(m.activeView()) {
		return m.forward(msg)
	}

	switch {
	case key.Matches(msg, globalKeys.Command):
		m.cmdBar.Focus()
		return m, nil

	case key.Matches(msg, globalKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, globalKeys.Add):
		return m, addItemWizard(m.state)

	case key.Matches(msg, globalKeys.Views):
		t, _ := tabForKey(msg.String())
		if len(m.viewStack) == 1 && m.activeView().ID() == t.id {
			return m, nil
		}
		v := t.build(m.state)
		m.viewStack = []View{v}
		return m, v.Init()

	case key.Matches(msg, globalKeys.Back):
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}

	return m.forward(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if m.output.text != "" {
		sections = append(sections, m.output.view(m.state.Height > 0))
	} else if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar(), m.cmdBar.View())

	result := strings.Join(sections, "\n")

	// Pad to the terminal height so the alt-screen line diff never leaves
	// stale rows behind.
	if lines := strings.Count(result, "\n") + 1; lines < m.state.Height {
		result += strings.Repeat("\n", m.state.Height-lines)
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

// renderHeader draws the numbered view tabs, the title of any view pushed
// above the home view and a drag indicator.
func (m *appModel) renderHeader() string {
	var home ViewID = -1
	if len(m.viewStack) > 0 {
		home = m.viewStack[0].ID()
	}

	parts := []string{formatter.StylePurple.Render("roadmap")}
	for _, t := range homeTabs {
		label := t.key + " " + t.title
		if t.id == home {
			parts = append(parts, formatter.StyleBold.Render("["+label+"]"))
		} else {
			parts = append(parts, formatter.Dim(" "+label+" "))
		}
	}
	header := strings.Join(parts, " ")

	for _, v := range m.viewStack[min(1, len(m.viewStack)):] {
		if t := v.Title(); t != "" {
			header += " " + formatter.Dim("› "+t)
		}
	}
	if m.state.Gantt.Dragging {
		header += "  " + formatter.StyleYellow.Render("[dragging]")
	}

	return header + "\n" + m.rule()
}

func (m *appModel) renderStatusBar() string {
	var bar string
	switch {
	case m.output.scrollable():
		bar = m.output.hints()
	case m.output.active:
	case m.cmdBar.Focused():
		if v := m.activeView(); v != nil {
			bar = m.help.ShortHelpView(v.ShortHelp())
		}
	default:
		var bindings []key.Binding
		if v := m.activeView(); v != nil {
			bindings = append(bindings, v.ShortHelp()...)
		}
		bindings = append(bindings, globalKeys.bindings(len(m.viewStack) > 1)...)
		bar = m.help.ShortHelpView(bindings)
	}
	return m.rule() + "\n" + bar
}

func (m *appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

// viewCapturesInput reports whether v should receive every key, bypassing
// the global bindings.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	if v.ID() == ViewForm {
		return true
	}
	if c, ok := v.(inputCapturer); ok {
		return c.CapturesInput()
	}
	return false
}
