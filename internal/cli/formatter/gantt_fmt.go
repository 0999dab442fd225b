package formatter

import (
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/service"
)

// GanttOptions controls how a timeline is drawn in text.
type GanttOptions struct {
	ColumnChars int    // characters per timeline column
	NameWidth   int    // width of the item name column
	Selected    string // item id drawn with a cursor
	Now         time.Time
}

const (
	durationWidth = 14
	barRune       = '█'
	markerRune    = '┆'
)

// DefaultGanttOptions returns the layout used by the gantt command.
func DefaultGanttOptions(now time.Time) GanttOptions {
	return GanttOptions{ColumnChars: 10, NameWidth: 24, Now: now}
}

// FormatGantt renders a laid-out timeline: a header of period labels, one
// row per item with its duration and bar, and a legend of the markers in
// view. Bars that fall outside the window are shown as an arrow at the
// nearest edge.
func FormatGantt(view *service.TimelineView, opts GanttOptions) string {
	if opts.ColumnChars <= 0 {
		opts.ColumnChars = 10
	}
	if opts.NameWidth <= 0 {
		opts.NameWidth = 24
	}
	total := len(view.Columns) * opts.ColumnChars
	g := ganttScale{origin: view.Origin, width: view.Timeline.Width(), chars: opts.ColumnChars}

	var b strings.Builder
	labels := make([]string, len(view.Columns))
	for i, c := range view.Columns {
		labels[i] = Fit(c.Label, opts.ColumnChars)
	}
	gutter := strings.Repeat(" ", opts.NameWidth+durationWidth+2)
	b.WriteString(strings.TrimRight(gutter+StyleHeader.Render(strings.Join(labels, "")), " "))
	b.WriteString("\n")

	base := []rune(strings.Repeat(" ", total))
	for _, m := range view.Markers {
		if col := g.char(m.Offset); col >= 0 && col < total {
			base[col] = markerRune
		}
	}
	b.WriteString(strings.TrimRight(gutter+StyleDim.Render(string(base)), " "))
	b.WriteString("\n")

	if len(view.Rows) == 0 {
		b.WriteString(Dim("No items to show.") + "\n")
	}
	for _, row := range view.Rows {
		cursor := "  "
		nameStyle := StyleFg
		if row.Item.ID == opts.Selected && opts.Selected != "" {
			cursor = StyleGreen.Render("▸ ")
			nameStyle = StyleBold
		}
		name := cursor + nameStyle.Render(Fit(row.Item.Name, opts.NameWidth-2))
		dur := StyleDim.Render(Fit(DurationText(row.Item, opts.Now), durationWidth))

		line := make([]rune, total)
		copy(line, base)
		start, end := g.char(row.Position.Offset), g.char(row.Position.End())
		if end <= start {
			end = start + 1
		}
		style := HexStyle(row.Item.Status.Color)
		var bar string
		switch {
		case total == 0:
			bar = ""
		case end <= 0:
			line[0] = '◂'
			bar = style.Render(string(line[:1])) + string(line[1:])
		case start >= total:
			line[total-1] = '▸'
			bar = string(line[:total-1]) + style.Render(string(line[total-1:]))
		default:
			start, end = max(start, 0), min(end, total)
			for i := start; i < end; i++ {
				line[i] = barRune
			}
			bar = string(line[:start]) + style.Render(string(line[start:end])) + string(line[end:])
		}
		b.WriteString(strings.TrimRight(name+" "+dur+" "+bar, " "))
		b.WriteString("\n")
	}

	var legend []string
	for _, m := range view.Markers {
		if col := g.char(m.Offset); col >= 0 && col < total {
			legend = append(legend, string(markerRune)+" "+MarkerBadge(m.Marker)+" "+Dim(ShortDate(m.Marker.Date)))
		}
	}
	if len(legend) > 0 {
		b.WriteString("\n" + strings.Join(legend, "  ") + "\n")
	}
	return b.String()
}

// ganttScale maps timeline pixels to character cells.
type ganttScale struct {
	origin float64
	width  float64
	chars  int
}

func (g ganttScale) char(px float64) int {
	return int(math.Floor((px - g.origin) / g.width * float64(g.chars)))
}
