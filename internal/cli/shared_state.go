package cli

import (
	"time"

	"github.com/alexanderramin/roadmap/internal/table"
	"github.com/alexanderramin/roadmap/internal/viewstate"
)

// SharedState holds context shared across all views via pointer. The
// per-widget states live here so switching views keeps the month, the
// zoom and the sort order.
type SharedState struct {
	App *App

	Calendar *viewstate.CalendarState
	Gantt    *viewstate.GanttState
	Table    *viewstate.TableState

	// Selected item, kept across views.
	SelectedItemID string

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App) *SharedState {
	return &SharedState{
		App:      app,
		Calendar: viewstate.NewCalendarState(app.now()),
		Gantt:    newGanttState(app),
		Table:    &viewstate.TableState{Column: table.ColumnStart},
	}
}

// Now returns the app clock.
func (s *SharedState) Now() time.Time {
	return s.App.now()
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
