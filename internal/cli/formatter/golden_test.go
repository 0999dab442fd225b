package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/roadmap/internal/board"
	"github.com/alexanderramin/roadmap/internal/calendar"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// ansiPattern matches ANSI escape sequences for stripping before golden comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes from a string so golden files
// are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// goldenTest compares got against a golden file in testdata/<name>.golden.
// Set GOLDEN_UPDATE=1 to regenerate golden files.
func goldenTest(t *testing.T, name, got string) {
	t.Helper()

	goldenDir := filepath.Join("testdata")
	goldenPath := filepath.Join(goldenDir, name+".golden")

	stripped := stripANSI(got)

	if os.Getenv("GOLDEN_UPDATE") == "1" {
		require.NoError(t, os.MkdirAll(goldenDir, 0755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(stripped), 0644))
		t.Logf("updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		t.Fatalf("golden file %s does not exist; run with GOLDEN_UPDATE=1 to create it", goldenPath)
	}
	require.NoError(t, err)

	assert.Equal(t, string(expected), stripped,
		"output does not match golden file %s; run with GOLDEN_UPDATE=1 to update", goldenPath)
}

var (
	planned = domain.Status{ID: "s-planned", Name: "Planned", Color: "#6B7280", Position: 0}
	done    = domain.Status{ID: "s-done", Name: "Done", Color: "#10B981", Position: 1}
	blocked = domain.Status{ID: "s-blocked", Name: "Blocked", Color: "#EF4444", Position: 2}
)

func utc(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endingOn(id, name string, end time.Time) domain.Item {
	return domain.Item{ID: id, Name: name, StartAt: end.AddDate(0, 0, -3), EndAt: &end, Status: planned}
}

// sampleItems is a small roadmap shared by the table and list goldens.
func sampleItems() []domain.Item {
	designEnd := utc(2024, time.January, 31)
	buildEnd := utc(2024, time.February, 29)
	return []domain.Item{
		{ID: "i-design", Name: "Design", StartAt: utc(2024, time.January, 8), EndAt: &designEnd, Status: planned, Group: "Core"},
		{ID: "i-build", Name: "Build the launch pipeline end to end", StartAt: utc(2024, time.February, 1), EndAt: &buildEnd, Status: done},
		{ID: "i-support", Name: "Support", StartAt: utc(2024, time.March, 1), Status: planned},
	}
}

var sampleNow = utc(2024, time.March, 4)

func TestFormatMonth_Golden_Feb2024(t *testing.T) {
	var items []domain.Item
	for i := 1; i <= 5; i++ {
		items = append(items, endingOn(fmt.Sprintf("t%d", i), fmt.Sprintf("Task %d", i), utc(2024, time.February, 5)))
	}
	items = append(items,
		endingOn("review", "Design review", utc(2024, time.February, 14)),
		endingOn("launch", "Launch", utc(2024, time.February, 29)),
	)

	grid := calendar.BuildMonthGrid(2024, 1, items)
	goldenTest(t, "month_feb_2024", FormatMonth("February, 2024", grid, 10))
}

func TestFormatItemTable_Golden(t *testing.T) {
	items := table.Sort(sampleItems(), table.ColumnStart, false)
	goldenTest(t, "item_table", FormatItemTable(items, table.ColumnStart, false, sampleNow))
}

func TestFormatList_Golden(t *testing.T) {
	b := board.Build([]domain.Status{done, blocked, planned}, sampleItems())
	got := FormatList(b, BoardOptions{Selected: "i-support", Now: sampleNow})
	goldenTest(t, "board_list", got)
}

func TestFormatList_LiftedItemMarksTarget(t *testing.T) {
	b := board.Build([]domain.Status{planned, done}, sampleItems())
	got := stripANSI(FormatList(b, BoardOptions{Selected: "i-design", Lifted: true, Target: done.ID, Now: sampleNow}))

	assert.Contains(t, got, "● Done (1) ◂ drop here")
	assert.Contains(t, got, "✥ Design")
	assert.NotContains(t, got, "● Planned (2) ◂")
}

func TestFormatKanban_ShowsEveryColumn(t *testing.T) {
	b := board.Build([]domain.Status{planned, done, blocked}, sampleItems())
	got := stripANSI(FormatKanban(b, BoardOptions{ColumnWidth: 20, Now: sampleNow}))

	for _, want := range []string{"Planned (2)", "Done (1)", "Blocked (0)", "(empty)", "Design", "Jan 8 → Jan 31"} {
		assert.Contains(t, got, want)
	}
}

func TestFormatBoard_NoStatuses(t *testing.T) {
	assert.Contains(t, stripANSI(FormatKanban(board.Board{}, BoardOptions{})), "roadmap status add")
	assert.Contains(t, stripANSI(FormatList(board.Board{}, BoardOptions{})), "roadmap status add")
}

func TestFormatItemTable_Empty(t *testing.T) {
	assert.Equal(t, "No items.\n", stripANSI(FormatItemTable(nil, "", false, sampleNow)))
}

func TestFormatItemTable_DescendingArrow(t *testing.T) {
	got := stripANSI(FormatItemTable(sampleItems(), table.ColumnName, true, sampleNow))
	assert.Contains(t, got, "NAME ▼")
	assert.NotContains(t, got, "START ▲")
}

func TestFormatStatusList(t *testing.T) {
	got := stripANSI(FormatStatusList([]domain.Status{planned, done}, map[string]int{planned.ID: 2}))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"●", "Planned", "s-planned", "#6B7280", "2"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"●", "Done", "s-done", "#10B981", "0"}, strings.Fields(lines[3]))
}

func TestFormatMarkerList(t *testing.T) {
	markers := []domain.Marker{{ID: "0123456789ab", Date: utc(2024, time.March, 1), Label: "Beta"}}
	got := stripANSI(FormatMarkerList(markers))
	assert.Contains(t, got, "2024-03-01")
	assert.Contains(t, got, " Beta ")
	assert.Contains(t, got, "01234567")
	assert.NotContains(t, got, "0123456789ab")

	assert.Equal(t, "No markers.\n", stripANSI(FormatMarkerList(nil)))
}

func TestFormatItemDetail(t *testing.T) {
	got := stripANSI(FormatItemDetail(sampleItems()[0], sampleNow))
	for _, want := range []string{"ITEM", "Design", "i-design", "● Planned", "Jan 8 → Jan 31", "2024-01-31", "3 weeks", "Core"} {
		assert.Contains(t, got, want)
	}
}

func TestFormatItemDetail_Ongoing(t *testing.T) {
	got := stripANSI(FormatItemDetail(sampleItems()[2], sampleNow))
	assert.Contains(t, got, "ongoing")
	assert.Contains(t, got, "so far")
}
