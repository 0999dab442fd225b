package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// cells measures text in terminal cells. Ambiguous-width runes count as
// one cell regardless of locale so layouts are stable across terminals.
var cells = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Truncate shortens s to at most width cells, ending with "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return cells.Truncate(s, width, "…")
}

// Fit truncates or pads s to exactly width cells.
func Fit(s string, width int) string {
	return cells.FillRight(Truncate(s, width), width)
}

// ShortDate formats t as "Jan 2".
func ShortDate(t time.Time) string {
	return t.Format("Jan 2")
}

// DateRange formats an item's dates as "Jan 2 → Feb 3", or "Jan 2 → …"
// for ongoing items.
func DateRange(it domain.Item) string {
	if it.EndAt == nil {
		return ShortDate(it.StartAt) + " → …"
	}
	return ShortDate(it.StartAt) + " → " + ShortDate(*it.EndAt)
}

// EndLabel returns the end date or "ongoing".
func EndLabel(it domain.Item) string {
	if it.EndAt == nil {
		return "ongoing"
	}
	return domain.FormatDate(*it.EndAt)
}

// DurationText describes how long an item runs, for example "3 weeks",
// or "2 days so far" for ongoing items.
func DurationText(it domain.Item, now time.Time) string {
	d := it.Duration(now)
	text := strings.TrimSpace(humanize.RelTime(it.StartAt, it.StartAt.Add(d), "", ""))
	if it.IsOngoing() {
		return text + " so far"
	}
	return text
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// joinCells joins fixed-width cells with a space and drops trailing blanks.
func joinCells(parts []string) string {
	return strings.TrimRight(strings.Join(parts, " "), " ")
}
