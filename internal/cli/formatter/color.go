package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// HexStyle returns a foreground style for a #rrggbb color, falling back
// to the dim color when hex is empty.
func HexStyle(hex string) lipgloss.Style {
	if hex == "" {
		return StyleDim
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// StatusDot returns a "●" in the status color.
func StatusDot(s domain.Status) string {
	return HexStyle(s.Color).Render("●")
}

// StatusLabel returns the status name prefixed with its colored dot.
func StatusLabel(s domain.Status) string {
	if s.Name == "" {
		return Dim("--")
	}
	return StatusDot(s) + " " + s.Name
}

// MarkerBadge renders a marker label with its own colors.
func MarkerBadge(m domain.Marker) string {
	style := lipgloss.NewStyle()
	if m.BackgroundColor != "" {
		style = style.Background(lipgloss.Color(m.BackgroundColor))
	}
	if m.TextColor != "" {
		style = style.Foreground(lipgloss.Color(m.TextColor))
	}
	return style.Render(" " + m.Label + " ")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
