package domain

import (
	"fmt"
	"strings"
	"time"
)

// TodayMarkerID identifies the transient marker drawn at the current date.
const TodayMarkerID = "today"

// Marker is a labelled vertical line on the timeline.
type Marker struct {
	ID              string
	Date            time.Time
	Label           string
	BackgroundColor string
	TextColor       string
	CreatedAt       time.Time
}

func (m *Marker) Validate() error {
	if strings.TrimSpace(m.Label) == "" {
		return fmt.Errorf("marker label is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("marker date is required")
	}
	for _, c := range []string{m.BackgroundColor, m.TextColor} {
		if c != "" && !hexColorPattern.MatchString(c) {
			return fmt.Errorf("marker color %q must be a hex color like #10B981", c)
		}
	}
	return nil
}

// TodayMarker returns the built-in marker for now.
func TodayMarker(now time.Time) Marker {
	return Marker{
		ID:              TodayMarkerID,
		Date:            now,
		Label:           "Today",
		BackgroundColor: "#10B981",
		TextColor:       "#FFFFFF",
	}
}
