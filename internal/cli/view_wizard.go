package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
)

// formView hosts a huh.Form on the view stack. When the form is submitted
// onSubmit runs and its command follows the pop; esc or an aborted form
// closes it with "Cancelled.".
type formView struct {
	state    *SharedState
	form     *huh.Form
	title    string
	onSubmit func() tea.Cmd
}

func (v *formView) Init() tea.Cmd {
	if v.state.Width > 0 {
		v.form = v.form.WithWidth(min(v.state.Width, formMaxWidth))
	}
	return v.form.Init()
}

const formMaxWidth = 72

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, closeForm(formatter.Dim("Cancelled."))
		}
	case tea.WindowSizeMsg:
		v.form = v.form.WithWidth(min(msg.Width, formMaxWidth))
	case refreshViewMsg:
		// The form holds its own values; a reload must not reset them.
		return v, nil
	}

	m, cmd := v.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		var next tea.Cmd
		if v.onSubmit != nil {
			next = v.onSubmit()
		}
		return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: next} }
	case huh.StateAborted:
		return v, closeForm(formatter.Dim("Cancelled."))
	}
	return v, cmd
}

func (v *formView) View() string {
	return formatter.StyleBold.Render(v.title) + "\n\n" + v.form.View()
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.title }

func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// startWizardCmd pushes form under title. A nil form skips straight to
// onSubmit.
func startWizardCmd(state *SharedState, title string, form *huh.Form, onSubmit func() tea.Cmd) tea.Cmd {
	if form == nil {
		if onSubmit == nil {
			return nil
		}
		return onSubmit()
	}
	return pushView(&formView{state: state, form: form, title: title, onSubmit: onSubmit})
}
