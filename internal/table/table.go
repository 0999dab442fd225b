// Package table sorts items for the table view.
package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// Sortable columns.
const (
	ColumnName   = "name"
	ColumnStart  = "start"
	ColumnEnd    = "end"
	ColumnStatus = "status"
)

// Columns lists the sortable columns in display order.
var Columns = []string{ColumnName, ColumnStart, ColumnEnd, ColumnStatus}

// ParseColumn validates a column name.
func ParseColumn(s string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(s))
	if c == "" {
		return ColumnName, nil
	}
	for _, known := range Columns {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown column %q (expected one of %s)", s, strings.Join(Columns, ", "))
}

// Sort returns a sorted copy of items. The sort is stable. Names compare
// case-insensitively and statuses by position. Ongoing items sort after
// every dated item on the end column in both directions.
func Sort(items []domain.Item, column string, desc bool) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)

	less := lessFor(column)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if column == ColumnEnd && a.IsOngoing() != b.IsOngoing() {
			return !a.IsOngoing()
		}
		if desc {
			return less(b, a)
		}
		return less(a, b)
	})
	return out
}

func lessFor(column string) func(a, b domain.Item) bool {
	switch column {
	case ColumnStart:
		return func(a, b domain.Item) bool { return a.StartAt.Before(b.StartAt) }
	case ColumnEnd:
		return func(a, b domain.Item) bool {
			if a.IsOngoing() || b.IsOngoing() {
				return false
			}
			return a.EndAt.Before(*b.EndAt)
		}
	case ColumnStatus:
		return func(a, b domain.Item) bool {
			if a.Status.Position != b.Status.Position {
				return a.Status.Position < b.Status.Position
			}
			return a.Status.Name < b.Status.Name
		}
	default:
		return func(a, b domain.Item) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
}
