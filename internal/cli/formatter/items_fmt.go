package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/table"
)

var itemHeaders = []struct {
	title  string
	column string
}{
	{"NAME", table.ColumnName},
	{"START", table.ColumnStart},
	{"END", table.ColumnEnd},
	{"STATUS", table.ColumnStatus},
	{"GROUP", ""},
	{"DURATION", ""},
}

// FormatItemTable renders items as a table. The sorted column's header
// carries an arrow.
func FormatItemTable(items []domain.Item, sortColumn string, desc bool, now time.Time) string {
	if len(items) == 0 {
		return Dim("No items.") + "\n"
	}
	headers := make([]string, len(itemHeaders))
	for i, h := range itemHeaders {
		headers[i] = h.title
		if h.column != "" && h.column == sortColumn {
			if desc {
				headers[i] += " ▼"
			} else {
				headers[i] += " ▲"
			}
		}
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		group := it.Group
		if group == "" {
			group = "--"
		}
		rows = append(rows, []string{
			Truncate(it.Name, listNameWidth),
			domain.FormatDate(it.StartAt),
			EndLabel(it),
			StatusLabel(it.Status),
			group,
			DurationText(it, now),
		})
	}
	return RenderTable(headers, rows)
}

// FormatItemDetail renders one item in a box.
func FormatItemDetail(it domain.Item, now time.Time) string {
	lines := []string{
		Bold(it.Name),
		"",
		Dim("ID       ") + it.ID,
		Dim("Status   ") + StatusLabel(it.Status),
		Dim("Dates    ") + DateRange(it),
		Dim("Ends     ") + EndLabel(it),
		Dim("Duration ") + DurationText(it, now),
	}
	if it.Group != "" {
		lines = append(lines, Dim("Group    ")+it.Group)
	}
	return RenderBox("item", strings.Join(lines, "\n"))
}

// FormatStatusList renders statuses in board order with their item counts.
func FormatStatusList(statuses []domain.Status, counts map[string]int) string {
	if len(statuses) == 0 {
		return Dim("No statuses.") + "\n"
	}
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, []string{StatusLabel(s), s.ID, s.Color, strconv.Itoa(counts[s.ID])})
	}
	return RenderTable([]string{"STATUS", "ID", "COLOR", "ITEMS"}, rows)
}

// FormatMarkerList renders markers by date.
func FormatMarkerList(markers []domain.Marker) string {
	if len(markers) == 0 {
		return Dim("No markers.") + "\n"
	}
	rows := make([][]string, 0, len(markers))
	for _, m := range markers {
		rows = append(rows, []string{domain.FormatDate(m.Date), MarkerBadge(m), TruncID(m.ID)})
	}
	return RenderTable([]string{"DATE", "LABEL", "ID"}, rows)
}
