package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/board"
	"github.com/charmbracelet/lipgloss"
)

// BoardOptions carries the interactive state drawn on a board.
type BoardOptions struct {
	ColumnWidth int
	Selected    string // item under the cursor
	Lifted      bool   // the selected item is being dragged
	Target      string // status id the lifted item would drop on
	Now         time.Time
}

const listNameWidth = 28

// FormatKanban renders the board as side-by-side status columns.
func FormatKanban(b board.Board, opts BoardOptions) string {
	if len(b.Columns) == 0 {
		return Dim("No statuses yet. Add one with: roadmap status add NAME") + "\n"
	}
	w := max(opts.ColumnWidth, 12)
	blocks := make([]string, 0, len(b.Columns)*2)
	for i, col := range b.Columns {
		if i > 0 {
			blocks = append(blocks, " ")
		}
		blocks = append(blocks, kanbanColumn(col, w, opts))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...) + "\n"
}

func kanbanColumn(col board.Column, w int, opts BoardOptions) string {
	var lines []string
	title := fmt.Sprintf("%s (%d)", col.Status.Name, len(col.Items))
	lines = append(lines, StatusDot(col.Status)+" "+StyleBold.Render(Fit(title, w-2)))
	if len(col.Items) == 0 {
		lines = append(lines, Dim(Fit("(empty)", w)))
	}
	for _, it := range col.Items {
		lines = append(lines, itemCursor(it.ID, opts)+Fit(it.Name, w-2))
		lines = append(lines, "  "+Dim(Fit(DateRange(it), w-2)))
	}

	border := ColorDim
	if opts.Lifted && opts.Target == col.Status.ID {
		border = ColorHeader
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(w).
		Render(strings.Join(lines, "\n"))
}

// FormatList renders the board as status groups stacked vertically.
func FormatList(b board.Board, opts BoardOptions) string {
	if len(b.Columns) == 0 {
		return Dim("No statuses yet. Add one with: roadmap status add NAME") + "\n"
	}
	var sb strings.Builder
	for i, col := range b.Columns {
		if i > 0 {
			sb.WriteString("\n")
		}
		heading := StatusDot(col.Status) + " " + StyleBold.Render(col.Status.Name) + Dim(fmt.Sprintf(" (%d)", len(col.Items)))
		if opts.Lifted && opts.Target == col.Status.ID {
			heading += " " + StyleYellow.Render("◂ drop here")
		}
		sb.WriteString(heading + "\n")
		if len(col.Items) == 0 {
			sb.WriteString("    " + Dim("(empty)") + "\n")
		}
		for _, it := range col.Items {
			line := "  " + itemCursor(it.ID, opts) + Fit(it.Name, listNameWidth) + "  " +
				Dim(Fit(DateRange(it), 18)) + "  " + Dim(DurationText(it, opts.Now))
			sb.WriteString(strings.TrimRight(line, " ") + "\n")
		}
	}
	return sb.String()
}

func itemCursor(id string, opts BoardOptions) string {
	if id == "" || id != opts.Selected {
		return "  "
	}
	if opts.Lifted {
		return StyleYellow.Render("✥ ")
	}
	return StyleGreen.Render("▸ ")
}
