// Package calendar lays out a month as a grid of day cells, bucketing
// items by the calendar date they end on.
package calendar

import (
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// DefaultMaxVisible is how many items a day cell shows before the rest
// collapse into an overflow count.
const DefaultMaxVisible = 3

// Weekdays are the grid column headers, Sunday first.
var Weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayCell is one square of the month grid.
type DayCell struct {
	Date     time.Time
	Day      int
	InBounds bool
	Items    []domain.Item
	Overflow int
}

// Total returns the number of items ending on the cell's date,
// including the hidden ones.
func (c DayCell) Total() int {
	return len(c.Items) + c.Overflow
}

type options struct {
	maxVisible int
}

// Option configures BuildMonthGrid.
type Option func(*options)

// WithMaxVisible caps the items shown per cell. n < 1 disables the cap.
func WithMaxVisible(n int) Option {
	return func(o *options) { o.maxVisible = n }
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildMonthGrid returns the cells for one month, padded with the tail of
// the previous month and the head of the next so that the grid is made of
// whole Sunday-first weeks. monthIndex is zero-based; out-of-range values
// roll into adjacent years.
//
// Items are placed on the cell matching the calendar date of their end
// date. Items without an end date are not shown.
func BuildMonthGrid(year, monthIndex int, items []domain.Item, opts ...Option) []DayCell {
	o := options{maxVisible: DefaultMaxVisible}
	for _, opt := range opts {
		opt(&o)
	}

	first := time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.UTC)
	year, month := first.Year(), first.Month()
	daysInMonth := DaysIn(year, month)
	firstWeekday := int(first.Weekday())

	cells := make([]DayCell, 0, 42)

	// Leading padding: the last firstWeekday days of the previous month.
	prev := first.AddDate(0, -1, 0)
	prevDays := DaysIn(prev.Year(), prev.Month())
	for i := 0; i < firstWeekday; i++ {
		day := prevDays - firstWeekday + 1 + i
		cells = append(cells, DayCell{
			Date: time.Date(prev.Year(), prev.Month(), day, 0, 0, 0, 0, time.UTC),
			Day:  day,
		})
	}

	byDay := bucketByDay(year, month, items)
	for day := 1; day <= daysInMonth; day++ {
		cell := DayCell{
			Date:     time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
			Day:      day,
			InBounds: true,
		}
		matched := byDay[day]
		if o.maxVisible >= 1 && len(matched) > o.maxVisible {
			cell.Items = matched[:o.maxVisible:o.maxVisible]
			cell.Overflow = len(matched) - o.maxVisible
		} else {
			cell.Items = matched
		}
		cells = append(cells, cell)
	}

	// Trailing padding from the head of the next month.
	remaining := 7 - ((firstWeekday + daysInMonth) % 7)
	if remaining < 7 {
		next := first.AddDate(0, 1, 0)
		for day := 1; day <= remaining; day++ {
			cells = append(cells, DayCell{
				Date: time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, time.UTC),
				Day:  day,
			})
		}
	}
	return cells
}

func bucketByDay(year int, month time.Month, items []domain.Item) map[int][]domain.Item {
	byDay := make(map[int][]domain.Item)
	for _, it := range items {
		if !it.HasPlacement() {
			continue
		}
		y, m, d := it.EndAt.Date()
		if y != year || m != month {
			continue
		}
		byDay[d] = append(byDay[d], it)
	}
	return byDay
}

// Weeks splits a grid into rows of seven cells.
func Weeks(cells []DayCell) [][]DayCell {
	weeks := make([][]DayCell, 0, (len(cells)+6)/7)
	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		if end > len(cells) {
			end = len(cells)
		}
		weeks = append(weeks, cells[i:end])
	}
	return weeks
}
