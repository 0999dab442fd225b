// Package viewstate holds the small pieces of UI state each widget owns:
// the month shown by the calendar, the Gantt range and zoom, and the
// table sort. Renderers read them and call the setters; every setter
// notifies OnChange so the host can re-render.
package viewstate

import (
	"fmt"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// CalendarState is the month currently shown by the calendar.
type CalendarState struct {
	Year  int
	Month time.Month

	OnChange func()
}

// NewCalendarState starts on the month containing now.
func NewCalendarState(now time.Time) *CalendarState {
	return &CalendarState{Year: now.Year(), Month: now.Month()}
}

// MonthIndex returns the zero-based month used by the grid builder.
func (s *CalendarState) MonthIndex() int { return int(s.Month) - 1 }

func (s *CalendarState) SetMonth(m time.Month) {
	if m < time.January || m > time.December {
		return
	}
	s.Month = m
	notify(s.OnChange)
}

func (s *CalendarState) SetYear(y int) {
	s.Year = y
	notify(s.OnChange)
}

// Next advances one month, rolling into the next year after December.
func (s *CalendarState) Next() {
	if s.Month == time.December {
		s.Month = time.January
		s.Year++
	} else {
		s.Month++
	}
	notify(s.OnChange)
}

// Prev goes back one month, rolling into the previous year before January.
func (s *CalendarState) Prev() {
	if s.Month == time.January {
		s.Month = time.December
		s.Year--
	} else {
		s.Month--
	}
	notify(s.OnChange)
}

// Label renders the month as "February, 2024".
func (s *CalendarState) Label() string {
	return fmt.Sprintf("%s, %d", s.Month, s.Year)
}

const (
	MinZoom  = 25
	MaxZoom  = 400
	ZoomStep = 25
)

// GanttState is the timeline's range unit, zoom percentage and whether a
// bar is being dragged.
type GanttState struct {
	Range    domain.RangeUnit
	Zoom     int
	Dragging bool

	OnChange func()
}

// NewGanttState returns a monthly timeline at 100% zoom.
func NewGanttState() *GanttState {
	return &GanttState{Range: domain.RangeMonthly, Zoom: 100}
}

func (s *GanttState) SetRange(u domain.RangeUnit) {
	s.Range = u
	notify(s.OnChange)
}

// SetZoom clamps z into [MinZoom, MaxZoom].
func (s *GanttState) SetZoom(z int) {
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	s.Zoom = z
	notify(s.OnChange)
}

func (s *GanttState) ZoomIn()  { s.SetZoom(s.Zoom + ZoomStep) }
func (s *GanttState) ZoomOut() { s.SetZoom(s.Zoom - ZoomStep) }

func (s *GanttState) SetDragging(d bool) {
	if s.Dragging == d {
		return
	}
	s.Dragging = d
	notify(s.OnChange)
}

// TableState is the table's sort column and direction.
type TableState struct {
	Column string
	Desc   bool

	OnChange func()
}

// Toggle sorts by column, flipping the direction when it is already the
// sort column and starting ascending otherwise.
func (s *TableState) Toggle(column string) {
	if s.Column == column {
		s.Desc = !s.Desc
	} else {
		s.Column = column
		s.Desc = false
	}
	notify(s.OnChange)
}

func notify(fn func()) {
	if fn != nil {
		fn()
	}
}
