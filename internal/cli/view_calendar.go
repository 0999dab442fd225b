package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/roadmap/internal/calendar"
	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// monthLoadedMsg carries the grid for one month.
type monthLoadedMsg struct {
	year  int
	month time.Month
	grid  []calendar.DayCell
	err   error
}

// calendarView shows one month of items by end date.
type calendarView struct {
	state   *SharedState
	grid    []calendar.DayCell
	loading bool
	err     error
}

func newCalendarView(state *SharedState) *calendarView {
	return &calendarView{state: state, loading: true}
}

func (v *calendarView) ID() ViewID    { return ViewCalendar }
func (v *calendarView) Title() string { return "Calendar" }

func (v *calendarView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("p", "n"), key.WithHelp("p/n", "month")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	}
}

func (v *calendarView) Init() tea.Cmd {
	return v.loadMonth()
}

func (v *calendarView) loadMonth() tea.Cmd {
	app := v.state.App
	year, month := v.state.Calendar.Year, v.state.Calendar.Month
	idx := v.state.Calendar.MonthIndex()
	return func() tea.Msg {
		grid, err := app.Views.MonthGrid(context.Background(), year, idx)
		return monthLoadedMsg{year: year, month: month, grid: grid, err: err}
	}
}

func (v *calendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case monthLoadedMsg:
		// Drop grids for a month the user already paged away from.
		if msg.year != v.state.Calendar.Year || msg.month != v.state.Calendar.Month {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		v.grid = msg.grid
		return v, nil

	case refreshViewMsg:
		return v, v.loadMonth()

	case tea.KeyMsg:
		cal := v.state.Calendar
		switch msg.String() {
		case "n", "right", "l":
			cal.Next()
		case "p", "left", "h":
			cal.Prev()
		case "t":
			now := v.state.Now()
			cal.SetYear(now.Year())
			cal.SetMonth(now.Month())
		default:
			return v, nil
		}
		v.loading = true
		return v, v.loadMonth()
	}
	return v, nil
}

func (v *calendarView) View() string {
	if v.err != nil {
		return shellError(v.err)
	}
	if v.loading && v.grid == nil {
		return formatter.Dim("Loading...")
	}
	return formatter.FormatMonth(v.state.Calendar.Label(), v.grid, v.cellWidth())
}

// cellWidth spreads the seven columns over the terminal width.
func (v *calendarView) cellWidth() int {
	if v.state.Width <= 0 {
		return defaultCalendarCellWidth
	}
	return max((v.state.Width-6)/7, formatter.MinCellWidth)
}
