package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endingOn(id string, y int, m time.Month, d int) domain.Item {
	end := time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
	return domain.Item{
		ID:      id,
		Name:    id,
		StartAt: end.AddDate(0, 0, -3),
		EndAt:   &end,
	}
}

func inBounds(cells []DayCell) []DayCell {
	var out []DayCell
	for _, c := range cells {
		if c.InBounds {
			out = append(out, c)
		}
	}
	return out
}

func TestBuildMonthGrid_WholeWeeks(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for m := 0; m < 12; m++ {
			cells := BuildMonthGrid(year, m, nil)
			assert.Zero(t, len(cells)%7, "%d-%02d has %d cells", year, m+1, len(cells))
			assert.Len(t, inBounds(cells), DaysIn(year, time.Month(m+1)))
			assert.Equal(t, time.Sunday, cells[0].Date.Weekday())
		}
	}
}

func TestBuildMonthGrid_LeapFebruary(t *testing.T) {
	assert.Len(t, inBounds(BuildMonthGrid(2024, 1, nil)), 29)
	assert.Len(t, inBounds(BuildMonthGrid(2023, 1, nil)), 28)
}

func TestBuildMonthGrid_InBoundsDaysAreSequential(t *testing.T) {
	cells := inBounds(BuildMonthGrid(2024, 1, nil))
	var got []int
	for _, c := range cells {
		got = append(got, c.Day)
	}
	want := make([]int, 29)
	for i := range want {
		want[i] = i + 1
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("days mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMonthGrid_ItemLandsOnEndDay(t *testing.T) {
	x := endingOn("x", 2024, time.February, 29)
	cells := BuildMonthGrid(2024, 1, []domain.Item{x})

	var hits []DayCell
	for _, c := range cells {
		if c.Total() > 0 {
			hits = append(hits, c)
		}
	}
	require.Len(t, hits, 1)
	assert.True(t, hits[0].InBounds)
	assert.Equal(t, 29, hits[0].Day)
	assert.Equal(t, "x", hits[0].Items[0].ID)
	assert.Zero(t, hits[0].Overflow)
}

func TestBuildMonthGrid_OverflowCap(t *testing.T) {
	var items []domain.Item
	for i := 0; i < 5; i++ {
		items = append(items, endingOn(fmt.Sprintf("i%d", i), 2024, time.March, 12))
	}
	cells := BuildMonthGrid(2024, 2, items)
	day := inBounds(cells)[11]
	require.Equal(t, 12, day.Day)
	assert.Len(t, day.Items, 3)
	assert.Equal(t, 2, day.Overflow)
	assert.Equal(t, 5, day.Total())
	assert.Equal(t, []string{"i0", "i1", "i2"}, ids(day.Items), "input order kept")
}

func TestBuildMonthGrid_MaxVisibleOption(t *testing.T) {
	var items []domain.Item
	for i := 0; i < 5; i++ {
		items = append(items, endingOn(fmt.Sprintf("i%d", i), 2024, time.March, 12))
	}

	day := inBounds(BuildMonthGrid(2024, 2, items, WithMaxVisible(1)))[11]
	assert.Len(t, day.Items, 1)
	assert.Equal(t, 4, day.Overflow)

	day = inBounds(BuildMonthGrid(2024, 2, items, WithMaxVisible(0)))[11]
	assert.Len(t, day.Items, 5)
	assert.Zero(t, day.Overflow)
}

func TestBuildMonthGrid_YearRollover(t *testing.T) {
	jan := BuildMonthGrid(2024, 0, nil)
	// 2024-01-01 is a Monday, so one padding cell from December 2023.
	require.False(t, jan[0].InBounds)
	assert.Equal(t, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), jan[0].Date)
	assert.Equal(t, 31, jan[0].Day)

	dec := BuildMonthGrid(2024, 11, nil)
	last := dec[len(dec)-1]
	require.False(t, last.InBounds)
	assert.Equal(t, 2025, last.Date.Year())
	assert.Equal(t, time.January, last.Date.Month())
	// 2024-12-31 is a Tuesday: Jan 1..4 fill the week.
	assert.Equal(t, 4, last.Day)
}

func TestBuildMonthGrid_NoTrailingWhenMonthEndsSaturday(t *testing.T) {
	// August 2024 ends on a Saturday.
	cells := BuildMonthGrid(2024, 7, nil)
	assert.True(t, cells[len(cells)-1].InBounds)
}

func TestBuildMonthGrid_NormalisesMonthIndex(t *testing.T) {
	a := BuildMonthGrid(2024, 12, nil)
	b := BuildMonthGrid(2025, 0, nil)
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("month 12 should equal next January (-want +got):\n%s", diff)
	}
}

func TestBuildMonthGrid_SkipsUnplacedAndOtherMonths(t *testing.T) {
	ongoing := domain.Item{ID: "ongoing", StartAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	zero := time.Time{}
	zeroEnd := domain.Item{ID: "zero", EndAt: &zero}
	// Padding cells never carry items even when the date matches.
	prevMonth := endingOn("jan", 2024, time.January, 29)

	cells := BuildMonthGrid(2024, 1, []domain.Item{ongoing, zeroEnd, prevMonth})
	for _, c := range cells {
		assert.Zero(t, c.Total(), "cell %s", c.Date.Format(time.DateOnly))
	}
}

func TestBuildMonthGrid_UsesItemLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	end := time.Date(2024, 3, 1, 2, 0, 0, 0, tokyo) // Feb 29 in UTC
	it := domain.Item{ID: "tz", EndAt: &end}

	feb := inBounds(BuildMonthGrid(2024, 1, []domain.Item{it}))
	assert.Zero(t, feb[28].Total())
	mar := inBounds(BuildMonthGrid(2024, 2, []domain.Item{it}))
	assert.Equal(t, 1, mar[0].Total())
}

func TestWeeks(t *testing.T) {
	cells := BuildMonthGrid(2024, 1, nil)
	weeks := Weeks(cells)
	require.Len(t, weeks, len(cells)/7)
	for _, w := range weeks {
		assert.Len(t, w, 7)
		assert.Equal(t, time.Sunday, w[0].Date.Weekday())
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2024, time.January))
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2100, time.February))
	assert.Equal(t, 30, DaysIn(2024, time.April))
}

func ids(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
