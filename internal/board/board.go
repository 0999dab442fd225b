// Package board groups items into status columns for the Kanban and list
// views.
package board

import (
	"sort"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// UnassignedID is the column holding items whose status is not known.
const UnassignedID = ""

// Column is one status lane.
type Column struct {
	Status domain.Status
	Items  []domain.Item
}

// Board is an ordered list of columns.
type Board struct {
	Columns []Column
}

// Build lays items out under their statuses. Columns follow status
// Position, then name; items keep their input order. Items whose status
// is not in statuses go to a trailing "Unassigned" column, which is only
// present when it has items.
func Build(statuses []domain.Status, items []domain.Item) Board {
	ordered := make([]domain.Status, len(statuses))
	copy(ordered, statuses)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position != ordered[j].Position {
			return ordered[i].Position < ordered[j].Position
		}
		return ordered[i].Name < ordered[j].Name
	})

	b := Board{Columns: make([]Column, len(ordered))}
	index := make(map[string]int, len(ordered))
	for i, s := range ordered {
		b.Columns[i] = Column{Status: s}
		index[s.ID] = i
	}

	var unassigned []domain.Item
	for _, it := range items {
		if i, ok := index[it.Status.ID]; ok {
			b.Columns[i].Items = append(b.Columns[i].Items, it)
			continue
		}
		unassigned = append(unassigned, it)
	}
	if len(unassigned) > 0 {
		b.Columns = append(b.Columns, Column{
			Status: domain.Status{ID: UnassignedID, Name: "Unassigned", Color: "#928374"},
			Items:  unassigned,
		})
	}
	return b
}

// Find returns the column and row of an item.
func (b Board) Find(itemID string) (col, row int, ok bool) {
	for c, column := range b.Columns {
		for r, it := range column.Items {
			if it.ID == itemID {
				return c, r, true
			}
		}
	}
	return -1, -1, false
}

// Item returns the item with the given id.
func (b Board) Item(itemID string) (domain.Item, bool) {
	c, r, ok := b.Find(itemID)
	if !ok {
		return domain.Item{}, false
	}
	return b.Columns[c].Items[r], true
}

// ColumnIndex returns the position of the column for statusID.
func (b Board) ColumnIndex(statusID string) int {
	for i, c := range b.Columns {
		if c.Status.ID == statusID {
			return i
		}
	}
	return -1
}

// Move returns a copy of the board with the item appended to the column
// for statusID. The item's status is updated to match. Moving to an
// unknown column or moving an unknown item returns the board unchanged.
func (b Board) Move(itemID, statusID string) Board {
	from, row, ok := b.Find(itemID)
	to := b.ColumnIndex(statusID)
	if !ok || to < 0 || from == to {
		return b
	}

	out := Board{Columns: make([]Column, len(b.Columns))}
	for i, c := range b.Columns {
		out.Columns[i] = Column{Status: c.Status, Items: append([]domain.Item(nil), c.Items...)}
	}
	it := out.Columns[from].Items[row]
	out.Columns[from].Items = append(out.Columns[from].Items[:row], out.Columns[from].Items[row+1:]...)
	it.Status = out.Columns[to].Status
	out.Columns[to].Items = append(out.Columns[to].Items, it)
	return out
}

// Len returns the total number of items on the board.
func (b Board) Len() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Items)
	}
	return n
}
