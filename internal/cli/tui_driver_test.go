package cli

import (
	"testing"

	"github.com/alexanderramin/roadmap/internal/teatest"
)

const (
	testTermWidth  = 140
	testTermHeight = 40
)

// TestDriver runs the full TUI against a test App and exposes the parts of
// appModel that assertions need.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver sizes the terminal and drains Init, so the calendar has
// already loaded from the test database when it returns.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(testTermWidth, testTermHeight))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

// Command runs input through the command bar. The bar is left blurred so
// later key presses reach the active view.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

func (d *TestDriver) model() appModel { return d.Model.(appModel) }

func (d *TestDriver) ActiveView() View {
	m := d.model()
	return m.activeView()
}

// ActiveViewID is -1 when the stack is empty.
func (d *TestDriver) ActiveViewID() ViewID {
	if v := d.ActiveView(); v != nil {
		return v.ID()
	}
	return -1
}

func (d *TestDriver) ViewStackLen() int   { return len(d.model().viewStack) }
func (d *TestDriver) State() *SharedState { return d.model().state }
func (d *TestDriver) LastOutput() string  { return d.model().output.text }
func (d *TestDriver) IsQuitting() bool    { return d.model().quitting || d.Quitting }
func (d *TestDriver) CmdBarFocused() bool {
	m := d.model()
	return m.cmdBar.Focused()
}
