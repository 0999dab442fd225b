package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/dnd"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/alexanderramin/roadmap/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	ganttNameWidth   = 24
	ganttColumnChars = 10
	ganttGutter      = ganttNameWidth + 14 + 2
)

// timelineLoadedMsg carries a laid-out timeline.
type timelineLoadedMsg struct {
	view *service.TimelineView
	err  error
}

// ganttView shows items as bars on a timeline. A bar is picked up with
// space, moved with the arrow keys and dropped with enter; the drop
// reschedules the item keeping its duration.
type ganttView struct {
	state   *SharedState
	view    *service.TimelineView
	from    time.Time
	cursor  int
	session *dnd.Session
	loading bool
	err     error
}

func newGanttView(state *SharedState) *ganttView {
	v := &ganttView{
		state:   state,
		from:    state.Now(),
		loading: true,
	}
	v.session = dnd.NewSession(dnd.TimelineDrop{
		Mover:    state.App.Items,
		Lookup:   v.lookup,
		Timeline: v.timeline,
		Moved:    func(it domain.Item) { state.SelectedItemID = it.ID },
	}, dnd.WithDragging(state.Gantt.SetDragging))
	return v
}

func (v *ganttView) ID() ViewID    { return ViewGantt }
func (v *ganttView) Title() string { return "Gantt" }

func (v *ganttView) CapturesInput() bool {
	_, dragging := v.session.Active()
	return dragging
}

func (v *ganttView) ShortHelp() []key.Binding {
	if v.CapturesInput() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "day")),
			key.NewBinding(key.WithKeys("H", "L"), key.WithHelp("H/L", "column")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "drag")),
		key.NewBinding(key.WithKeys("h", "l"), key.WithHelp("h/l", "pan")),
		key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "zoom")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", v.state.Gantt.Range.String())),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "marker")),
	}
}

func (v *ganttView) Init() tea.Cmd {
	return v.loadTimeline()
}

func (v *ganttView) loadTimeline() tea.Cmd {
	app := v.state.App
	req := timelineRequest(app, v.state.Gantt, v.from, v.columns())
	return func() tea.Msg {
		view, err := app.Views.Timeline(context.Background(), req)
		return timelineLoadedMsg{view: view, err: err}
	}
}

func (v *ganttView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timelineLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.view = msg.view
			v.syncCursor()
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadTimeline()

	case tea.WindowSizeMsg:
		return v, v.loadTimeline()

	case tea.KeyMsg:
		if v.CapturesInput() {
			return v.updateDragging(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *ganttView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	gs := v.state.Gantt
	switch msg.String() {
	case "up", "k":
		v.moveCursor(-1)
		return v, nil
	case "down", "j":
		v.moveCursor(1)
		return v, nil
	case "left", "h":
		v.from = stepPeriod(gs.Range, v.from, -1)
	case "right", "l":
		v.from = stepPeriod(gs.Range, v.from, 1)
	case "t":
		v.from = v.state.Now()
	case "+", "=":
		gs.ZoomIn()
	case "-":
		gs.ZoomOut()
	case "r":
		gs.SetRange(nextRange(gs.Range))
	case " ", "space":
		if it, ok := v.selected(); ok {
			v.session.Start(it.ID)
		}
		return v, nil
	case "e":
		if it, ok := v.selected(); ok {
			return v, editItemWizard(v.state, it.ID)
		}
		return v, nil
	case "m":
		return v, addMarkerWizard(v.state)
	default:
		return v, nil
	}
	return v, v.loadTimeline()
}

func (v *ganttView) updateDragging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	day := v.dayWidth()
	switch msg.String() {
	case "left", "h":
		v.session.Move(-day, 0, "")
	case "right", "l":
		v.session.Move(day, 0, "")
	case "H":
		v.session.Move(-v.timeline().Width(), 0, "")
	case "L":
		v.session.Move(v.timeline().Width(), 0, "")
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

func (v *ganttView) View() string {
	if v.err != nil {
		return shellError(v.err)
	}
	if v.view == nil {
		return formatter.Dim("Loading...")
	}
	opts := formatter.DefaultGanttOptions(v.state.Now())
	opts.NameWidth = ganttNameWidth
	opts.ColumnChars = v.columnChars()
	opts.Selected = v.state.SelectedItemID

	view := v.view
	status := ""
	if id, dragging := v.session.Active(); dragging {
		view, status = v.preview(id)
	}
	out := formatter.FormatGantt(view, opts)
	if status != "" {
		out += "\n" + status
	}
	return out
}

// preview returns the timeline with the dragged bar at its drop position
// and a line describing the new dates.
func (v *ganttView) preview(id string) (*service.TimelineView, string) {
	it, ok := v.lookup(id)
	if !ok {
		return v.view, ""
	}
	dx, _ := v.session.Delta()
	start, end := dnd.ShiftDates(v.view.Timeline, it, dx)
	moved := it
	moved.StartAt, moved.EndAt = start, end

	cp := *v.view
	cp.Rows = make([]service.TimelineRow, len(v.view.Rows))
	copy(cp.Rows, v.view.Rows)
	for i := range cp.Rows {
		if cp.Rows[i].Item.ID == id {
			cp.Rows[i] = service.TimelineRow{Item: moved, Position: cp.Timeline.Position(moved, v.state.Now())}
		}
	}
	status := formatter.StyleYellow.Render(fmt.Sprintf("Moving %s → %s", it.Name, formatter.DateRange(moved)))
	return &cp, status
}

func (v *ganttView) lookup(id string) (domain.Item, bool) {
	if v.view == nil {
		return domain.Item{}, false
	}
	for _, r := range v.view.Rows {
		if r.Item.ID == id {
			return r.Item, true
		}
	}
	return domain.Item{}, false
}

func (v *ganttView) timeline() timeline.Timeline {
	if v.view == nil {
		return timeline.New(v.state.Gantt.Range, v.from)
	}
	return v.view.Timeline
}

func (v *ganttView) selected() (domain.Item, bool) {
	if v.view == nil || v.cursor >= len(v.view.Rows) {
		return domain.Item{}, false
	}
	return v.view.Rows[v.cursor].Item, true
}

func (v *ganttView) moveCursor(delta int) {
	if v.view == nil || len(v.view.Rows) == 0 {
		return
	}
	v.cursor = min(max(v.cursor+delta, 0), len(v.view.Rows)-1)
	v.state.SelectedItemID = v.view.Rows[v.cursor].Item.ID
}

// syncCursor puts the cursor on the shared selection after a reload.
func (v *ganttView) syncCursor() {
	for i, r := range v.view.Rows {
		if r.Item.ID == v.state.SelectedItemID {
			v.cursor = i
			return
		}
	}
	v.cursor = 0
	if len(v.view.Rows) > 0 {
		v.state.SelectedItemID = v.view.Rows[0].Item.ID
	}
}

// columnChars scales the characters per column with the zoom.
func (v *ganttView) columnChars() int {
	return max(ganttColumnChars*v.state.Gantt.Zoom/100, 3)
}

// columns returns how many periods fit next to the name gutter.
func (v *ganttView) columns() int {
	if v.state.Width <= 0 {
		return service.DefaultTimelineColumns
	}
	return max((v.state.Width-ganttGutter)/v.columnChars(), 1)
}

// dayWidth is the drag step of one arrow key press: about one day.
func (v *ganttView) dayWidth() float64 {
	tl := v.timeline()
	switch tl.Unit {
	case domain.RangeDaily:
		return tl.Width()
	case domain.RangeWeekly:
		return tl.Width() / 7
	default:
		return tl.Width() / 30
	}
}

// stepPeriod moves t by n columns of unit.
func stepPeriod(unit domain.RangeUnit, t time.Time, n int) time.Time {
	switch unit {
	case domain.RangeDaily:
		return t.AddDate(0, 0, n)
	case domain.RangeWeekly:
		return t.AddDate(0, 0, 7*n)
	default:
		return t.AddDate(0, n, 0)
	}
}

// nextRange cycles monthly, weekly, daily.
func nextRange(u domain.RangeUnit) domain.RangeUnit {
	switch u {
	case domain.RangeMonthly:
		return domain.RangeWeekly
	case domain.RangeWeekly:
		return domain.RangeDaily
	default:
		return domain.RangeMonthly
	}
}
