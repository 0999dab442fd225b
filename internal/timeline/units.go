// Package timeline converts dates into horizontal offsets on a Gantt
// timeline made of fixed-width columns, one column per day, week or month.
package timeline

import (
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// unitFuncs is the date arithmetic for one range unit.
type unitFuncs struct {
	startOf func(time.Time) time.Time
	endOf   func(time.Time) time.Time
	// diff returns the number of whole units from b to a.
	diff func(a, b time.Time) int
	// inner returns how far into its period t is, in [0, 1].
	inner func(t time.Time) float64
	// add shifts t by n whole units.
	add func(t time.Time, n int) time.Time
	// label names the column starting at t.
	label func(t time.Time) string
}

var units = map[domain.RangeUnit]unitFuncs{
	domain.RangeDaily: {
		startOf: startOfDay,
		endOf:   func(t time.Time) time.Time { return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond) },
		diff:    func(a, b time.Time) int { return dayNumber(a) - dayNumber(b) },
		inner: func(t time.Time) float64 {
			return t.Sub(startOfDay(t)).Hours() / 24
		},
		add:   func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) },
		label: func(t time.Time) string { return t.Format("Jan 2") },
	},
	domain.RangeWeekly: {
		startOf: startOfWeek,
		endOf:   func(t time.Time) time.Time { return startOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond) },
		diff: func(a, b time.Time) int {
			return (dayNumber(startOfWeek(a)) - dayNumber(startOfWeek(b))) / 7
		},
		inner: func(t time.Time) float64 {
			return float64(int(t.Weekday())+1) / 7
		},
		add:   func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) },
		label: func(t time.Time) string { return "W" + t.Format("Jan 2") },
	},
	domain.RangeMonthly: {
		startOf: startOfMonth,
		endOf:   func(t time.Time) time.Time { return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond) },
		diff: func(a, b time.Time) int {
			return (a.Year()-b.Year())*12 + int(a.Month()) - int(b.Month())
		},
		inner: func(t time.Time) float64 {
			days := dayNumber(startOfMonth(t).AddDate(0, 1, 0)) - dayNumber(startOfMonth(t))
			return float64(t.Day()) / float64(days)
		},
		add:   func(t time.Time, n int) time.Time { return startOfMonth(t).AddDate(0, n, 0) },
		label: func(t time.Time) string { return t.Format("Jan 2006") },
	},
}

func funcsFor(u domain.RangeUnit) unitFuncs {
	if f, ok := units[u]; ok {
		return f
	}
	return units[domain.RangeMonthly]
}

// StartOf returns the beginning of the period containing t.
func StartOf(u domain.RangeUnit, t time.Time) time.Time { return funcsFor(u).startOf(t) }

// EndOf returns the last instant of the period containing t.
func EndOf(u domain.RangeUnit, t time.Time) time.Time { return funcsFor(u).endOf(t) }

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Sunday that starts t's week.
func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// dayNumber counts civil days since the Unix epoch for t's calendar date,
// ignoring clock time and DST shifts.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
