// Package export writes stored roadmap data as an iCalendar feed or as a
// JSON file the import command accepts.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/natefinch/atomic"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/importer"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatICS  Format = "ics"
)

// ParseFormat accepts "json" or "ics", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatICS:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (expected json or ics)", s)
}

// Data is everything an export contains.
type Data struct {
	Statuses []domain.Status
	Items    []domain.Item
	Markers  []domain.Marker
}

// Write renders data in format to w.
func Write(w io.Writer, format Format, data Data, now time.Time) error {
	switch format {
	case FormatICS:
		return writeICS(w, data, now)
	case FormatJSON:
		return writeJSON(w, data)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// WriteFile renders data and replaces path in one step, so a reader never
// sees a partially written file.
func WriteFile(path string, format Format, data Data, now time.Time) error {
	var buf bytes.Buffer
	if err := Write(&buf, format, data, now); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ToSchema converts stored data to the import file structure.
func ToSchema(data Data) *importer.ImportSchema {
	schema := &importer.ImportSchema{Items: []importer.ItemImport{}}
	for _, s := range data.Statuses {
		schema.Statuses = append(schema.Statuses, importer.StatusImport{ID: s.ID, Name: s.Name, Color: s.Color})
	}
	for _, it := range data.Items {
		in := importer.ItemImport{
			ID:      it.ID,
			Name:    it.Name,
			StartAt: it.StartAt.Format(time.RFC3339),
			Status:  it.Status.ID,
			Group:   it.Group,
		}
		if it.EndAt != nil {
			end := it.EndAt.Format(time.RFC3339)
			in.EndAt = &end
		}
		schema.Items = append(schema.Items, in)
	}
	for _, m := range data.Markers {
		schema.Markers = append(schema.Markers, importer.MarkerImport{
			ID:              m.ID,
			Date:            m.Date.Format(time.RFC3339),
			Label:           m.Label,
			BackgroundColor: m.BackgroundColor,
			TextColor:       m.TextColor,
		})
	}
	return schema
}

func writeJSON(w io.Writer, data Data) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToSchema(data)); err != nil {
		return fmt.Errorf("encoding json export: %w", err)
	}
	return nil
}

// writeICS emits one all-day VEVENT per item and per marker. DTEND is
// exclusive in iCalendar, so the item's last day is pushed one day out.
// Ongoing items carry only a start date.
func writeICS(w io.Writer, data Data, now time.Time) error {
	cal := ics.NewCalendarFor("roadmap")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName("Roadmap")

	for _, it := range data.Items {
		ev := cal.AddEvent(it.ID + "@roadmap")
		ev.SetDtStampTime(now)
		ev.SetSummary(it.Name)
		ev.SetAllDayStartAt(it.StartAt)
		if it.EndAt != nil {
			ev.SetAllDayEndAt(it.EndAt.AddDate(0, 0, 1))
		}
		if it.Status.Name != "" {
			ev.AddCategory(it.Status.Name)
		}
		if it.Group != "" {
			ev.SetDescription("Group: " + it.Group)
		}
		if !it.UpdatedAt.IsZero() {
			ev.SetModifiedAt(it.UpdatedAt)
		}
	}

	for _, m := range data.Markers {
		ev := cal.AddEvent("marker-" + m.ID + "@roadmap")
		ev.SetDtStampTime(now)
		ev.SetSummary(m.Label)
		ev.SetAllDayStartAt(m.Date)
		ev.SetAllDayEndAt(m.Date.AddDate(0, 0, 1))
		ev.AddCategory("Marker")
		if m.BackgroundColor != "" {
			ev.SetColor(m.BackgroundColor)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("encoding ics export: %w", err)
	}
	return nil
}
