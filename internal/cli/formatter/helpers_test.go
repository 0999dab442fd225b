package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Launch", Truncate("Launch", 10))
	assert.Equal(t, "Design re…", Truncate("Design review", 10))
	assert.Equal(t, "", Truncate("Launch", 0))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "Mon   ", Fit("Mon", 6))
	assert.Equal(t, "Laun…", Fit("Launch", 5))
	assert.Equal(t, "→ …  ", Fit("→ …", 5), "ambiguous runes count as one cell")
}

func TestDurationText(t *testing.T) {
	now := utc(2024, time.March, 4)
	end := utc(2024, time.January, 31)
	same := utc(2024, time.January, 8)

	tests := []struct {
		name string
		item domain.Item
		want string
	}{
		{"weeks", domain.Item{StartAt: utc(2024, time.January, 8), EndAt: &end}, "3 weeks"},
		{"same day counts as one day", domain.Item{StartAt: same, EndAt: &same}, "1 day"},
		{"ongoing", domain.Item{StartAt: utc(2024, time.March, 1)}, "3 days so far"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DurationText(tt.item, now))
		})
	}
}

func TestDateRangeAndEndLabel(t *testing.T) {
	items := sampleItems()
	assert.Equal(t, "Jan 8 → Jan 31", DateRange(items[0]))
	assert.Equal(t, "Mar 1 → …", DateRange(items[2]))
	assert.Equal(t, "2024-01-31", EndLabel(items[0]))
	assert.Equal(t, "ongoing", EndLabel(items[2]))
}

func TestRenderTable_LastColumnNotPadded(t *testing.T) {
	got := stripANSI(RenderTable([]string{"A", "LONG"}, [][]string{{"xyz", "1"}}))
	assert.Equal(t, "A    LONG\n───  ────\nxyz  1\n", got)
}
