package cli

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
)

// globalKeyMap holds the bindings that work in every view unless the
// view captures input.
type globalKeyMap struct {
	Quit    key.Binding
	Command key.Binding
	Add     key.Binding
	Back    key.Binding
	Views   key.Binding
}

var globalKeys = globalKeyMap{
	Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Command: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Views:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "views")),
}

// bindings returns the hints shown after the active view's own. Back is
// listed only when there is something to go back to.
func (k globalKeyMap) bindings(canGoBack bool) []key.Binding {
	b := []key.Binding{k.Views, k.Add, k.Command}
	if canGoBack {
		b = append([]key.Binding{k.Back}, b...)
	}
	return b
}

// homeTab is one of the numbered top-level views.
type homeTab struct {
	key   string
	title string
	id    ViewID
	build func(*SharedState) View
}

var homeTabs = []homeTab{
	{"1", "Calendar", ViewCalendar, func(s *SharedState) View { return newCalendarView(s) }},
	{"2", "Gantt", ViewGantt, func(s *SharedState) View { return newGanttView(s) }},
	{"3", "Board", ViewBoard, func(s *SharedState) View { return newBoardView(s, layoutKanban) }},
	{"4", "List", ViewList, func(s *SharedState) View { return newBoardView(s, layoutList) }},
	{"5", "Table", ViewTable, func(s *SharedState) View { return newTableView(s) }},
}

func tabForKey(k string) (homeTab, bool) {
	for _, t := range homeTabs {
		if t.key == k {
			return t, true
		}
	}
	return homeTab{}, false
}

// homeView builds the view bound to number key k.
func homeView(s *SharedState, k string) View {
	t, ok := tabForKey(k)
	if !ok {
		t = homeTabs[0]
	}
	return t.build(s)
}

func newHelpModel() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = formatter.StyleDim
	h.Styles.ShortDesc = formatter.StyleDim
	h.Styles.ShortSeparator = formatter.StyleDim
	h.Styles.Ellipsis = formatter.StyleDim
	return h
}
