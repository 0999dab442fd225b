package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var anchor2024 = day(2024, time.January, 1)

func TestOffset_Monthly(t *testing.T) {
	got := Offset(day(2024, time.March, 15), domain.RangeMonthly, 150, anchor2024)
	assert.InDelta(t, 2*150+15.0/31*150, got, 1e-9)
}

func TestOffset_MonthlyUsesDaysInThatMonth(t *testing.T) {
	got := Offset(day(2024, time.February, 29), domain.RangeMonthly, 100, anchor2024)
	assert.InDelta(t, 200, got, 1e-9, "last day of February fills the column")
}

func TestOffset_Weekly(t *testing.T) {
	// 2023-12-31 is the Sunday starting the anchor's week.
	// 2024-01-10 is a Wednesday in the second week.
	got := Offset(day(2024, time.January, 10), domain.RangeWeekly, 70, anchor2024)
	assert.InDelta(t, 70+4.0/7*70, got, 1e-9)
}

func TestOffset_Daily(t *testing.T) {
	date := time.Date(2024, time.January, 3, 6, 0, 0, 0, time.UTC)
	got := Offset(date, domain.RangeDaily, 40, anchor2024)
	assert.InDelta(t, 2*40+10, got, 1e-9)
}

func TestOffset_BeforeAnchorIsNegative(t *testing.T) {
	got := Offset(day(2023, time.November, 15), domain.RangeMonthly, 150, anchor2024)
	assert.Less(t, got, 0.0)
}

func TestOffset_UnknownUnitFallsBackToMonthly(t *testing.T) {
	d := day(2024, time.May, 10)
	assert.Equal(t,
		Offset(d, domain.RangeMonthly, 150, anchor2024),
		Offset(d, domain.RangeUnit("quarterly"), 150, anchor2024))
}

func TestSpan_NeverBelowOne(t *testing.T) {
	start := day(2024, time.June, 10)
	for _, u := range domain.RangeUnits {
		assert.Equal(t, 1, Span(start, start, u), "%s equal", u)
		assert.Equal(t, 1, Span(start, start.AddDate(0, 0, -40), u), "%s inverted", u)
	}
}

func TestSpan_WholeUnits(t *testing.T) {
	start := day(2024, time.January, 15)
	end := day(2024, time.April, 2)
	assert.Equal(t, 3, Span(start, end, domain.RangeMonthly))
	assert.Equal(t, 78, Span(start, end, domain.RangeDaily))
	assert.Equal(t, 11, Span(start, end, domain.RangeWeekly))
}

func TestTimeline_WidthScalesWithZoom(t *testing.T) {
	tl := Timeline{Unit: domain.RangeMonthly, Anchor: anchor2024, ColumnWidth: 150, Zoom: 200}
	assert.Equal(t, 300.0, tl.Width())
	tl.Zoom = 0
	assert.Equal(t, 150.0, tl.Width())
}

func TestNew_AnchorsToJanuaryFirst(t *testing.T) {
	tl := New(domain.RangeWeekly, day(2025, time.August, 20))
	assert.Equal(t, day(2025, time.January, 1), tl.Anchor)
	assert.Equal(t, float64(DefaultColumnWidth), tl.Width())
}

func TestTimeline_Position(t *testing.T) {
	tl := Timeline{Unit: domain.RangeMonthly, Anchor: anchor2024, ColumnWidth: 100, Zoom: 100}
	end := day(2024, time.April, 30)
	item := domain.Item{StartAt: day(2024, time.February, 29), EndAt: &end}

	pos := tl.Position(item, day(2024, time.June, 1))
	assert.InDelta(t, 200, pos.Offset, 1e-9)
	assert.InDelta(t, 200, pos.Width, 1e-9)
	assert.InDelta(t, 400, pos.End(), 1e-9)
}

func TestTimeline_PositionMinimumWidth(t *testing.T) {
	tl := Timeline{Unit: domain.RangeMonthly, Anchor: anchor2024, ColumnWidth: 100, Zoom: 100}
	start := day(2024, time.March, 10)
	item := domain.Item{StartAt: start, EndAt: &start}
	assert.InDelta(t, 100, tl.Position(item, start).Width, 1e-9)
}

func TestTimeline_PositionOngoingRunsToNow(t *testing.T) {
	tl := Timeline{Unit: domain.RangeDaily, Anchor: anchor2024, ColumnWidth: 10, Zoom: 100}
	item := domain.Item{StartAt: day(2024, time.January, 1)}
	pos := tl.Position(item, day(2024, time.January, 11))
	assert.InDelta(t, 100, pos.Width, 1e-9)
}

func TestTimeline_DateAtRoundTrips(t *testing.T) {
	cases := map[domain.RangeUnit][]time.Time{
		domain.RangeMonthly: {day(2024, 1, 1), day(2024, 2, 29), day(2024, 12, 31), day(2025, 3, 17)},
		domain.RangeWeekly:  {day(2024, 1, 6), day(2024, 1, 7), day(2024, 5, 22), day(2023, 12, 31)},
		domain.RangeDaily:   {day(2024, 1, 1), time.Date(2024, 7, 4, 13, 0, 0, 0, time.UTC)},
	}
	for unit, dates := range cases {
		tl := Timeline{Unit: unit, Anchor: anchor2024, ColumnWidth: 120, Zoom: 75}
		for _, d := range dates {
			got := tl.DateAt(tl.Offset(d))
			assert.True(t, got.Equal(d), "%s: %s round-tripped to %s", unit, d, got)
		}
	}
}

func TestTimeline_ShiftKeepsClock(t *testing.T) {
	tl := Timeline{Unit: domain.RangeDaily, Anchor: anchor2024, ColumnWidth: 20, Zoom: 100}
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, start.AddDate(0, 0, 3), tl.Shift(start, 60))
	assert.Equal(t, start.AddDate(0, 0, -2), tl.Shift(start, -40))
	assert.Equal(t, start, tl.Shift(start, 0))
}

func TestTimeline_ShiftMonthly(t *testing.T) {
	tl := Timeline{Unit: domain.RangeMonthly, Anchor: anchor2024, ColumnWidth: 100, Zoom: 100}
	start := day(2024, 3, 15)
	got := tl.Shift(start, 100)
	require.Equal(t, time.April, got.Month())
}

func TestTimeline_Columns(t *testing.T) {
	tl := New(domain.RangeMonthly, anchor2024)
	cols := tl.Columns(day(2024, 11, 20), 3)
	require.Len(t, cols, 3)
	assert.Equal(t, []string{"Nov 2024", "Dec 2024", "Jan 2025"},
		[]string{cols[0].Label, cols[1].Label, cols[2].Label})

	weekly := New(domain.RangeWeekly, anchor2024).Columns(day(2024, 1, 3), 2)
	assert.Equal(t, day(2023, 12, 31), weekly[0].Start)
	assert.Equal(t, day(2024, 1, 7), weekly[1].Start)
}

func TestTimeline_MarkerOffset(t *testing.T) {
	tl := Timeline{Unit: domain.RangeMonthly, Anchor: anchor2024, ColumnWidth: 310, Zoom: 100}
	m := domain.Marker{Label: "Beta", Date: day(2024, 1, 10)}
	assert.InDelta(t, 100, tl.MarkerOffset(m), 1e-9)
}

func TestStartEndOf(t *testing.T) {
	d := time.Date(2024, 5, 22, 13, 45, 0, 0, time.UTC) // Wednesday
	assert.Equal(t, day(2024, 5, 19), StartOf(domain.RangeWeekly, d))
	assert.Equal(t, day(2024, 5, 1), StartOf(domain.RangeMonthly, d))
	assert.Equal(t, day(2024, 6, 1).Add(-time.Nanosecond), EndOf(domain.RangeMonthly, d))
	assert.Equal(t, day(2024, 5, 23).Add(-time.Nanosecond), EndOf(domain.RangeDaily, d))
}
