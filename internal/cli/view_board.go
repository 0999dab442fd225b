package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/roadmap/internal/board"
	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/dnd"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const boardColumnWidth = 24

// boardLoadedMsg carries the items grouped by status.
type boardLoadedMsg struct {
	board board.Board
	err   error
}

// boardView shows items grouped by status, either as side-by-side Kanban
// columns or as stacked list groups. Lifting an item with space and
// dropping it on another group moves it to that status.
type boardView struct {
	state   *SharedState
	layout  string
	board   board.Board
	col     int
	row     int
	target  int
	session *dnd.Session
	loading bool
	err     error
}

func newBoardView(state *SharedState, layout string) *boardView {
	v := &boardView{state: state, layout: layout, loading: true}
	v.session = dnd.NewSession(dnd.StatusDrop{
		Mover:  state.App.Items,
		Lookup: v.lookup,
		Moved:  func(it domain.Item) { state.SelectedItemID = it.ID },
	})
	return v
}

func (v *boardView) ID() ViewID {
	if v.layout == layoutList {
		return ViewList
	}
	return ViewBoard
}

func (v *boardView) Title() string {
	if v.layout == layoutList {
		return "List"
	}
	return "Board"
}

func (v *boardView) CapturesInput() bool {
	_, lifted := v.session.Active()
	return lifted
}

func (v *boardView) ShortHelp() []key.Binding {
	move := key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "status"))
	if v.layout == layoutList {
		move = key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "status"))
	}
	if v.CapturesInput() {
		return []key.Binding{
			move,
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "lift")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *boardView) Init() tea.Cmd {
	return v.loadBoard()
}

func (v *boardView) loadBoard() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		b, err := app.Views.Board(context.Background())
		return boardLoadedMsg{board: b, err: err}
	}
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.board = msg.board
			v.syncCursor()
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadBoard()

	case tea.KeyMsg:
		if v.CapturesInput() {
			return v.updateLifted(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *boardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		v.moveColumn(-1)
	case "right", "l":
		v.moveColumn(1)
	case "up", "k":
		v.moveRow(-1)
	case "down", "j":
		v.moveRow(1)
	case " ", "space":
		if it, ok := v.selected(); ok && v.session.Start(it.ID) {
			v.target = v.col
		}
	case "e":
		if it, ok := v.selected(); ok {
			return v, editItemWizard(v.state, it.ID)
		}
	case "x":
		if it, ok := v.selected(); ok {
			return v, deleteItemWizard(v.state, it)
		}
	}
	return v, nil
}

func (v *boardView) updateLifted(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prev, next := "left", "right"
	if v.layout == layoutList {
		prev, next = "up", "down"
	}
	switch msg.String() {
	case prev:
		v.retarget(-1)
	case next:
		v.retarget(1)
	case "esc":
		v.session.Cancel()
	case "enter":
		if err := v.session.End(context.Background()); err != nil {
			return v, outputCmd(shellError(err))
		}
		return v, refreshViews
	}
	return v, nil
}

// retarget moves the drop target by delta columns, skipping the
// Unassigned column, which is not a status.
func (v *boardView) retarget(delta int) {
	n := len(v.board.Columns)
	for t := v.target + delta; t >= 0 && t < n; t += delta {
		if v.board.Columns[t].Status.ID != board.UnassignedID {
			v.target = t
			v.session.Move(float64(delta), 0, v.board.Columns[t].Status.ID)
			return
		}
	}
}

func (v *boardView) View() string {
	if v.err != nil {
		return shellError(v.err)
	}
	if v.loading && len(v.board.Columns) == 0 {
		return formatter.Dim("Loading...")
	}

	b := v.board
	opts := formatter.BoardOptions{
		ColumnWidth: v.columnWidth(),
		Selected:    v.state.SelectedItemID,
		Now:         v.state.Now(),
	}
	status := ""
	if id, lifted := v.session.Active(); lifted {
		opts.Lifted = true
		opts.Target = v.board.Columns[v.target].Status.ID
		b = b.Move(id, opts.Target)
		if it, ok := v.lookup(id); ok {
			status = formatter.StyleYellow.Render(fmt.Sprintf("Moving %s → %s", it.Name, v.board.Columns[v.target].Status.Name))
		}
	}

	var out string
	if v.layout == layoutList {
		out = formatter.FormatList(b, opts)
	} else {
		out = formatter.FormatKanban(b, opts)
	}
	if status != "" {
		out += "\n" + status
	}
	return out
}

func (v *boardView) lookup(id string) (domain.Item, bool) {
	return v.board.Item(id)
}

func (v *boardView) selected() (domain.Item, bool) {
	if v.col >= len(v.board.Columns) {
		return domain.Item{}, false
	}
	items := v.board.Columns[v.col].Items
	if v.row >= len(items) {
		return domain.Item{}, false
	}
	return items[v.row], true
}

func (v *boardView) moveColumn(delta int) {
	n := len(v.board.Columns)
	if n == 0 {
		return
	}
	v.col = min(max(v.col+delta, 0), n-1)
	v.row = min(v.row, max(len(v.board.Columns[v.col].Items)-1, 0))
	v.selectCurrent()
}

// moveRow walks the items top to bottom. In the list layout it crosses
// into the neighbouring group at either end.
func (v *boardView) moveRow(delta int) {
	if len(v.board.Columns) == 0 {
		return
	}
	row := v.row + delta
	items := v.board.Columns[v.col].Items
	switch {
	case row >= 0 && row < len(items):
		v.row = row
	case v.layout != layoutList:
	case delta < 0:
		for c := v.col - 1; c >= 0; c-- {
			if n := len(v.board.Columns[c].Items); n > 0 {
				v.col, v.row = c, n-1
				break
			}
		}
	default:
		for c := v.col + 1; c < len(v.board.Columns); c++ {
			if len(v.board.Columns[c].Items) > 0 {
				v.col, v.row = c, 0
				break
			}
		}
	}
	v.selectCurrent()
}

func (v *boardView) selectCurrent() {
	if it, ok := v.selected(); ok {
		v.state.SelectedItemID = it.ID
	}
}

// syncCursor puts the cursor on the shared selection after a reload.
func (v *boardView) syncCursor() {
	if col, row, ok := v.board.Find(v.state.SelectedItemID); ok {
		v.col, v.row = col, row
		return
	}
	v.col, v.row = 0, 0
	for c, column := range v.board.Columns {
		if len(column.Items) > 0 {
			v.col = c
			break
		}
	}
	v.selectCurrent()
}

func (v *boardView) columnWidth() int {
	n := len(v.board.Columns)
	if v.state.Width <= 0 || n == 0 {
		return boardColumnWidth
	}
	// Two border cells per column plus one space between columns.
	return max((v.state.Width-3*n+1)/n, 12)
}
