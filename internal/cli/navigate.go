package cli

import tea "github.com/charmbracelet/bubbletea"

// Messages the appModel handles on behalf of views and the command bar.
type (
	pushViewMsg    struct{ view View }
	replaceViewMsg struct{ view View }
	popViewMsg     struct{}

	// refreshViewMsg makes every view on the stack reload from the store.
	refreshViewMsg struct{}

	// cmdOutputMsg replaces the content area with text until the next key.
	// With refresh set every view reloads once the text is shown.
	cmdOutputMsg struct {
		output  string
		refresh bool
	}

	// wizardCompleteMsg pops the form on top of the stack, then runs nextCmd.
	wizardCompleteMsg struct{ nextCmd tea.Cmd }

	quitMsg struct{}
)

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// refreshViews is a tea.Cmd that reloads every view.
func refreshViews() tea.Msg { return refreshViewMsg{} }

// outputCmd shows s in the content area. Empty output is dropped.
func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

// closeForm pops the form and shows s.
func closeForm(s string) tea.Cmd {
	return func() tea.Msg { return wizardCompleteMsg{nextCmd: outputCmd(s)} }
}
