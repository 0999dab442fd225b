package dnd

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/timeline"
)

// ItemMover moves an item to another status.
type ItemMover interface {
	MoveToStatus(ctx context.Context, itemID, statusID string) (*domain.Item, error)
}

// ItemRescheduler changes an item's dates.
type ItemRescheduler interface {
	Reschedule(ctx context.Context, itemID string, start time.Time, end *time.Time) (*domain.Item, error)
}

// ItemLookup finds an item currently on screen.
type ItemLookup func(id string) (domain.Item, bool)

// StatusDrop handles drops on board columns and list groups: the item
// moves to the status it is dropped on.
type StatusDrop struct {
	Mover  ItemMover
	Lookup ItemLookup
	// Moved, if set, receives the updated item.
	Moved func(domain.Item)
}

func (StatusDrop) OnDragStart(StartEvent) {}
func (StatusDrop) OnDragMove(MoveEvent)   {}

func (d StatusDrop) OnDragEnd(ctx context.Context, ev EndEvent) error {
	if ev.OverID == "" {
		return nil
	}
	if d.Lookup != nil {
		if it, ok := d.Lookup(ev.ActiveID); ok && it.Status.ID == ev.OverID {
			return nil
		}
	}
	updated, err := d.Mover.MoveToStatus(ctx, ev.ActiveID, ev.OverID)
	if err != nil {
		return fmt.Errorf("moving item %s to %s: %w", ev.ActiveID, ev.OverID, err)
	}
	if d.Moved != nil && updated != nil {
		d.Moved(*updated)
	}
	return nil
}

// TimelineDrop handles horizontal drags of Gantt bars. The drag distance
// is converted to a date shift; start and end move together so the
// item's duration is unchanged.
type TimelineDrop struct {
	Mover    ItemRescheduler
	Lookup   ItemLookup
	Timeline func() timeline.Timeline
	Moved    func(domain.Item)
}

func (TimelineDrop) OnDragStart(StartEvent) {}
func (TimelineDrop) OnDragMove(MoveEvent)   {}

func (d TimelineDrop) OnDragEnd(ctx context.Context, ev EndEvent) error {
	if ev.DeltaX == 0 {
		return nil
	}
	item, ok := d.Lookup(ev.ActiveID)
	if !ok {
		return fmt.Errorf("item %s: %w", ev.ActiveID, domain.ErrNotFound)
	}
	start, end := ShiftDates(d.Timeline(), item, ev.DeltaX)
	if start.Equal(item.StartAt) {
		return nil
	}
	updated, err := d.Mover.Reschedule(ctx, item.ID, start, end)
	if err != nil {
		return fmt.Errorf("rescheduling item %s: %w", item.ID, err)
	}
	if d.Moved != nil && updated != nil {
		d.Moved(*updated)
	}
	return nil
}

// ShiftDates returns the item's dates moved by dx on tl, keeping the
// duration. Ongoing items stay ongoing.
func ShiftDates(tl timeline.Timeline, item domain.Item, dx float64) (time.Time, *time.Time) {
	start := tl.Shift(item.StartAt, dx)
	if item.EndAt == nil {
		return start, nil
	}
	end := item.EndAt.Add(start.Sub(item.StartAt))
	return start, &end
}
