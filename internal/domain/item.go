package domain

import (
	"fmt"
	"strings"
	"time"
)

// Item is a schedulable unit of work shown on the calendar, timeline,
// board, list and table views.
type Item struct {
	ID      string
	Name    string
	StartAt time.Time
	EndAt   *time.Time // nil while the item is ongoing
	Status  Status
	Group   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields required to persist an item.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("item name is required")
	}
	if i.StartAt.IsZero() {
		return fmt.Errorf("item start date is required")
	}
	if strings.TrimSpace(i.Status.ID) == "" {
		return fmt.Errorf("item status is required")
	}
	if i.EndAt != nil && i.EndAt.Before(i.StartAt) {
		return fmt.Errorf("item %q: %w", i.Name, ErrInvalidRange)
	}
	return nil
}

// IsOngoing reports whether the item has no end date.
func (i *Item) IsOngoing() bool {
	return i.EndAt == nil
}

// HasPlacement reports whether the item has a usable end date for
// calendar bucketing.
func (i *Item) HasPlacement() bool {
	return i.EndAt != nil && !i.EndAt.IsZero()
}

// EndOr returns the end date, or now for ongoing items.
func (i *Item) EndOr(now time.Time) time.Time {
	if i.EndAt == nil {
		return now
	}
	return *i.EndAt
}

// Duration returns how long the item runs. An item that starts and ends
// on the same calendar day counts as one full day. Ongoing items run
// until now.
func (i *Item) Duration(now time.Time) time.Duration {
	end := i.EndOr(now)
	if i.EndAt != nil && SameDay(i.StartAt, end) {
		end = end.AddDate(0, 0, 1)
	}
	d := end.Sub(i.StartAt)
	if d < 0 {
		return 0
	}
	return d
}

// Reschedule moves the item to a new start and end. The end may be nil
// to mark the item ongoing.
func (i *Item) Reschedule(start time.Time, end *time.Time, now time.Time) error {
	if end != nil && end.Before(start) {
		return fmt.Errorf("rescheduling %q: %w", i.Name, ErrInvalidRange)
	}
	i.StartAt = start
	i.EndAt = end
	i.UpdatedAt = now
	return nil
}

// MoveTo sets the item's status.
func (i *Item) MoveTo(s Status, now time.Time) {
	i.Status = s
	i.UpdatedAt = now
}

// SameDay compares calendar dates, each in its own location.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
