package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
)

// outputPane shows command output in place of the active view until a
// non-scroll key dismisses it.
type outputPane struct {
	vp     viewport.Model
	text   string
	active bool
}

func newOutputPane() outputPane {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return outputPane{vp: vp}
}

func (p *outputPane) show(text string, width, height int) {
	p.text = text
	p.active = true
	p.vp.SetContent(text)
	p.resize(width, height)
	p.vp.GotoTop()
}

func (p *outputPane) resize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
}

func (p *outputPane) clear() {
	p.text = ""
	p.active = false
}

func (p *outputPane) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

// scrollable reports whether the output is taller than the pane.
func (p *outputPane) scrollable() bool {
	return p.active && p.vp.TotalLineCount() > p.vp.Height
}

func (p *outputPane) view(hasHeight bool) string {
	if p.active && hasHeight {
		return p.vp.View()
	}
	return p.text
}

// position is the scroll position for the status bar.
func (p *outputPane) position() string {
	switch {
	case p.vp.AtTop():
		return "[TOP]"
	case p.vp.AtBottom():
		return "[END]"
	}
	return fmt.Sprintf("[%d%%]", int(p.vp.ScrollPercent()*100))
}

func (p *outputPane) hints() string {
	return formatter.Dim(p.position() + "  ↑↓ pgup/pgdn: scroll  esc: dismiss")
}

// isOutputScrollKey reports whether msg scrolls the output rather than
// dismissing it. Letter keys are left free for global shortcuts.
func isOutputScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}
