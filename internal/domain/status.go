package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsHexColor reports whether s is a #rrggbb color.
func IsHexColor(s string) bool { return hexColorPattern.MatchString(s) }

// Status is a workflow state an item can be in. Statuses double as the
// columns of the board and the groups of the list view.
type Status struct {
	ID       string
	Name     string
	Color    string
	Position int
}

// Validate checks the status has an id, a name and a #rrggbb color.
func (s *Status) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("status id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("status name is required")
	}
	if !hexColorPattern.MatchString(s.Color) {
		return fmt.Errorf("status color %q must be a hex color like #6B7280", s.Color)
	}
	return nil
}
