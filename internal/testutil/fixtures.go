package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/google/uuid"
)

var testStatusCounter atomic.Int64

// Date returns midnight UTC on the given day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Status options
type StatusOption func(*domain.Status)

func WithColor(c string) StatusOption {
	return func(s *domain.Status) { s.Color = c }
}

func WithPosition(p int) StatusOption {
	return func(s *domain.Status) { s.Position = p }
}

func NewTestStatus(name string, opts ...StatusOption) *domain.Status {
	n := testStatusCounter.Add(1)
	s := &domain.Status{
		ID:       fmt.Sprintf("status-%d", n),
		Name:     name,
		Color:    "#6B7280",
		Position: int(n),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Item options
type ItemOption func(*domain.Item)

func WithDates(start time.Time, end *time.Time) ItemOption {
	return func(it *domain.Item) {
		it.StartAt = start
		it.EndAt = end
	}
}

// EndingOn sets the end date and starts the item a week earlier.
func EndingOn(end time.Time) ItemOption {
	return func(it *domain.Item) {
		it.StartAt = end.AddDate(0, 0, -7)
		it.EndAt = &end
	}
}

func Ongoing() ItemOption {
	return func(it *domain.Item) { it.EndAt = nil }
}

func WithGroup(g string) ItemOption {
	return func(it *domain.Item) { it.Group = g }
}

func WithItemID(id string) ItemOption {
	return func(it *domain.Item) { it.ID = id }
}

func NewTestItem(status domain.Status, name string, opts ...ItemOption) *domain.Item {
	now := time.Now().UTC().Truncate(time.Second)
	end := now.AddDate(0, 0, 14)
	it := &domain.Item{
		ID:        uuid.New().String(),
		Name:      name,
		StartAt:   now,
		EndAt:     &end,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

func NewTestMarker(label string, date time.Time) *domain.Marker {
	return &domain.Marker{
		ID:        uuid.New().String(),
		Date:      date,
		Label:     label,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// StatusCreator is satisfied by the status repository and service.
type StatusCreator interface {
	Create(ctx context.Context, s *domain.Status) error
}

// SeedStatuses stores one status per name and returns them in order.
func SeedStatuses(t *testing.T, repo StatusCreator, names ...string) []domain.Status {
	t.Helper()
	out := make([]domain.Status, 0, len(names))
	for i, name := range names {
		s := NewTestStatus(name, WithPosition(i))
		if err := repo.Create(context.Background(), s); err != nil {
			t.Fatalf("seeding status %q: %v", name, err)
		}
		out = append(out, *s)
	}
	return out
}
