package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/roadmap/internal/calendar"
)

// MinCellWidth is the narrowest calendar cell FormatMonth will draw.
const MinCellWidth = 4

// FormatMonth renders a month grid as seven fixed-width columns. Each
// week shows a row of day numbers followed by the item names due on each
// day and a "+N more" line when a day has overflow. Padding days from
// the adjacent months are dimmed.
func FormatMonth(title string, grid []calendar.DayCell, width int) string {
	width = max(width, MinCellWidth)

	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n\n")

	heads := make([]string, len(calendar.Weekdays))
	for i, d := range calendar.Weekdays {
		heads[i] = StyleDim.Render(Fit(d, width))
	}
	b.WriteString(joinCells(heads))
	b.WriteString("\n")

	for _, week := range calendar.Weeks(grid) {
		b.WriteString("\n")
		nums := make([]string, len(week))
		for i, c := range week {
			label := Fit(strconv.Itoa(c.Day), width)
			if c.InBounds {
				nums[i] = StyleBold.Render(label)
			} else {
				nums[i] = StyleDim.Render(label)
			}
		}
		b.WriteString(joinCells(nums))
		b.WriteString("\n")

		for r := 0; r < weekDepth(week); r++ {
			line := make([]string, len(week))
			for i, c := range week {
				line[i] = cellLine(c, r, width)
			}
			b.WriteString(joinCells(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func weekDepth(week []calendar.DayCell) int {
	depth := 0
	for _, c := range week {
		n := len(c.Items)
		if c.Overflow > 0 {
			n++
		}
		depth = max(depth, n)
	}
	return depth
}

// cellLine returns line r of a day cell's item list.
func cellLine(c calendar.DayCell, r, width int) string {
	switch {
	case r < len(c.Items):
		it := c.Items[r]
		return HexStyle(it.Status.Color).Render(Fit(it.Name, width))
	case r == len(c.Items) && c.Overflow > 0:
		return StyleDim.Render(Fit(fmt.Sprintf("+%d more", c.Overflow), width))
	}
	return strings.Repeat(" ", width)
}
