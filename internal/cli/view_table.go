package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/table"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// tableLoadedMsg carries the sorted items.
type tableLoadedMsg struct {
	items []domain.Item
	err   error
}

// tableView shows every item as a sortable table.
type tableView struct {
	state   *SharedState
	items   []domain.Item
	cursor  int
	loading bool
	err     error
}

func newTableView(state *SharedState) *tableView {
	return &tableView{state: state, loading: true}
}

func (v *tableView) ID() ViewID    { return ViewTable }
func (v *tableView) Title() string { return "Table" }

func (v *tableView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n", "s", "d", "t"), key.WithHelp("n/s/d/t", "sort")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

// sortKeys maps keys to the column they sort by. Pressing the key of the
// current sort column flips the direction.
var sortKeys = map[string]string{
	"n": table.ColumnName,
	"s": table.ColumnStart,
	"d": table.ColumnEnd,
	"t": table.ColumnStatus,
}

func (v *tableView) Init() tea.Cmd {
	return v.loadItems()
}

func (v *tableView) loadItems() tea.Cmd {
	app := v.state.App
	column, desc := v.state.Table.Column, v.state.Table.Desc
	return func() tea.Msg {
		items, err := app.Views.Table(context.Background(), column, desc)
		return tableLoadedMsg{items: items, err: err}
	}
}

func (v *tableView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tableLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.items = msg.items
			v.syncCursor()
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadItems()

	case tea.KeyMsg:
		if col, ok := sortKeys[msg.String()]; ok {
			v.state.Table.Toggle(col)
			return v, v.loadItems()
		}
		switch msg.String() {
		case "up", "k":
			v.moveCursor(-1)
		case "down", "j":
			v.moveCursor(1)
		case "e":
			if it, ok := v.selected(); ok {
				return v, editItemWizard(v.state, it.ID)
			}
		case "x":
			if it, ok := v.selected(); ok {
				return v, deleteItemWizard(v.state, it)
			}
		}
	}
	return v, nil
}

func (v *tableView) View() string {
	if v.err != nil {
		return shellError(v.err)
	}
	if v.loading && v.items == nil {
		return formatter.Dim("Loading...")
	}
	out := formatter.FormatItemTable(v.items, v.state.Table.Column, v.state.Table.Desc, v.state.Now())
	if len(v.items) == 0 {
		return out
	}

	// Rows start after the header and its rule.
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for i := range lines {
		prefix := "  "
		if i-2 == v.cursor {
			prefix = formatter.StyleGreen.Render("▸ ")
		}
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n") + "\n"
}

func (v *tableView) selected() (domain.Item, bool) {
	if v.cursor >= len(v.items) {
		return domain.Item{}, false
	}
	return v.items[v.cursor], true
}

func (v *tableView) moveCursor(delta int) {
	if len(v.items) == 0 {
		return
	}
	v.cursor = min(max(v.cursor+delta, 0), len(v.items)-1)
	v.state.SelectedItemID = v.items[v.cursor].ID
}

// syncCursor keeps the selected item under the cursor after a resort.
func (v *tableView) syncCursor() {
	for i, it := range v.items {
		if it.ID == v.state.SelectedItemID {
			v.cursor = i
			return
		}
	}
	v.cursor = 0
	if len(v.items) > 0 {
		v.state.SelectedItemID = v.items[0].ID
	}
}
