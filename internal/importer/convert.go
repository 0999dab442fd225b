package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/google/uuid"
)

// Converted holds the domain values built from an import file.
type Converted struct {
	Statuses []*domain.Status
	Items    []*domain.Item
	Markers  []*domain.Marker
}

// Convert builds domain values from a validated ImportSchema. Items and
// markers without an id get a fresh one. Status positions are left at
// zero for the caller to assign.
func Convert(schema *ImportSchema, known ...domain.Status) (*Converted, error) {
	now := time.Now().UTC()
	idx := newStatusIndex(known)
	out := &Converted{}

	for _, s := range schema.Statuses {
		st := &domain.Status{ID: s.ID, Name: s.Name, Color: s.Color}
		idx.add(*st)
		out.Statuses = append(out.Statuses, st)
	}

	for i, in := range schema.Items {
		status, ok := idx.resolve(in.Status)
		if !ok {
			return nil, fmt.Errorf("items[%d].status %q: %w", i, in.Status, domain.ErrUnknownStatus)
		}
		start, err := domain.ParseDate(in.StartAt)
		if err != nil {
			return nil, fmt.Errorf("items[%d].start_at: %w", i, err)
		}
		var end *time.Time
		if in.EndAt != nil {
			t, err := domain.ParseDate(*in.EndAt)
			if err != nil {
				return nil, fmt.Errorf("items[%d].end_at: %w", i, err)
			}
			end = &t
		}
		out.Items = append(out.Items, &domain.Item{
			ID:        idOrNew(in.ID),
			Name:      in.Name,
			StartAt:   start,
			EndAt:     end,
			Status:    status,
			Group:     in.Group,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	for i, in := range schema.Markers {
		date, err := domain.ParseDate(in.Date)
		if err != nil {
			return nil, fmt.Errorf("markers[%d].date: %w", i, err)
		}
		out.Markers = append(out.Markers, &domain.Marker{
			ID:              idOrNew(in.ID),
			Date:            date,
			Label:           in.Label,
			BackgroundColor: in.BackgroundColor,
			TextColor:       in.TextColor,
			CreatedAt:       now,
		})
	}

	return out, nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
