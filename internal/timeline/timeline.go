package timeline

import (
	"math"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
)

const (
	// DefaultColumnWidth is the width of one column at 100% zoom.
	DefaultColumnWidth = 150
	// DefaultZoom is the zoom percentage used when none is set.
	DefaultZoom = 100
)

// Offset returns the horizontal position of date on a timeline whose
// first column starts at anchor: whole units between anchor and date
// times columnWidth, plus the fraction of date's own period scaled to
// the column width.
func Offset(date time.Time, unit domain.RangeUnit, columnWidth float64, anchor time.Time) float64 {
	f := funcsFor(unit)
	whole := f.diff(date, f.startOf(anchor))
	return float64(whole)*columnWidth + f.inner(date)*columnWidth
}

// Span returns the number of whole units from start to end, never less
// than one so that every item gets a visible bar.
func Span(start, end time.Time, unit domain.RangeUnit) int {
	n := funcsFor(unit).diff(end, start)
	if n < 1 {
		return 1
	}
	return n
}

// Position is where an item's bar is drawn.
type Position struct {
	Offset float64
	Width  float64
}

// End returns the right edge of the bar.
func (p Position) End() float64 { return p.Offset + p.Width }

// Timeline holds the parameters shared by every row of a Gantt chart.
type Timeline struct {
	Unit        domain.RangeUnit
	Anchor      time.Time
	ColumnWidth float64
	Zoom        int
}

// New returns a timeline anchored at January 1 of from's year.
func New(unit domain.RangeUnit, from time.Time) Timeline {
	return Timeline{
		Unit:        unit,
		Anchor:      AnchorFor(from),
		ColumnWidth: DefaultColumnWidth,
		Zoom:        DefaultZoom,
	}
}

// AnchorFor returns January 1 of t's year.
func AnchorFor(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// Width returns the effective column width after zoom.
func (tl Timeline) Width() float64 {
	zoom := tl.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	cw := tl.ColumnWidth
	if cw <= 0 {
		cw = DefaultColumnWidth
	}
	return cw * float64(zoom) / 100
}

func (tl Timeline) Offset(date time.Time) float64 {
	return Offset(date, tl.Unit, tl.Width(), tl.Anchor)
}

func (tl Timeline) Span(start, end time.Time) int {
	return Span(start, end, tl.Unit)
}

// Position places an item's bar. Ongoing items run until now. A bar is
// never narrower than one column.
func (tl Timeline) Position(item domain.Item, now time.Time) Position {
	start := tl.Offset(item.StartAt)
	end := tl.Offset(item.EndOr(now))
	width := end - start
	if minWidth := tl.Width(); width < minWidth {
		width = minWidth
	}
	return Position{Offset: start, Width: width}
}

// MarkerOffset returns where a marker's line is drawn.
func (tl Timeline) MarkerOffset(m domain.Marker) float64 {
	return tl.Offset(m.Date)
}

// DateAt converts an offset back to a date. Daily timelines resolve to
// the nearest hour, weekly and monthly ones to the day whose inner offset
// is closest. It is the inverse of Offset up to that rounding.
func (tl Timeline) DateAt(px float64) time.Time {
	f := funcsFor(tl.Unit)
	x := math.Round(px/tl.Width()*1e9) / 1e9
	anchor := f.startOf(tl.Anchor)

	if tl.Unit == domain.RangeDaily {
		whole := math.Floor(x)
		period := f.add(anchor, int(whole))
		return period.Add(time.Duration((x - whole) * 24 * float64(time.Hour))).Round(time.Hour)
	}

	// Day-grained inner offsets run over (0, 1], so the last day of a
	// period sits exactly on the next column boundary.
	whole := math.Ceil(x) - 1
	frac := x - whole
	period := f.add(anchor, int(whole))
	days := 7
	if tl.Unit != domain.RangeWeekly {
		days = dayNumber(f.endOf(period)) - dayNumber(period) + 1
	}
	day := clamp(int(math.Round(frac*float64(days))), 1, days)
	return period.AddDate(0, 0, day-1)
}

// Shift moves t by the date distance covered by dx pixels, keeping the
// clock time of t.
func (tl Timeline) Shift(t time.Time, dx float64) time.Time {
	if dx == 0 {
		return t
	}
	from := tl.DateAt(tl.Offset(t))
	to := tl.DateAt(tl.Offset(t) + dx)
	if tl.Unit == domain.RangeDaily {
		return t.Add(to.Sub(from))
	}
	return t.AddDate(0, 0, dayNumber(to)-dayNumber(from))
}

// Column is one header cell of the timeline.
type Column struct {
	Start time.Time
	Label string
}

// Columns returns n consecutive columns beginning with the period that
// contains from.
func (tl Timeline) Columns(from time.Time, n int) []Column {
	f := funcsFor(tl.Unit)
	start := f.startOf(from)
	cols := make([]Column, 0, n)
	for i := 0; i < n; i++ {
		t := f.add(start, i)
		cols = append(cols, Column{Start: t, Label: f.label(t)})
	}
	return cols
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
