package board

import (
	"testing"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	planned    = domain.Status{ID: "planned", Name: "Planned", Color: "#6B7280", Position: 0}
	inProgress = domain.Status{ID: "in-progress", Name: "In Progress", Color: "#F59E0B", Position: 1}
	done       = domain.Status{ID: "done", Name: "Done", Color: "#10B981", Position: 2}
)

func item(id string, s domain.Status) domain.Item {
	return domain.Item{ID: id, Name: id, Status: s}
}

func columnNames(b Board) []string {
	var out []string
	for _, c := range b.Columns {
		out = append(out, c.Status.Name)
	}
	return out
}

func TestBuild_OrdersColumnsByPosition(t *testing.T) {
	b := Build([]domain.Status{done, planned, inProgress}, nil)
	assert.Equal(t, []string{"Planned", "In Progress", "Done"}, columnNames(b))
	assert.Zero(t, b.Len())
}

func TestBuild_TiesBreakOnName(t *testing.T) {
	a := domain.Status{ID: "a", Name: "Alpha"}
	z := domain.Status{ID: "z", Name: "Zulu"}
	b := Build([]domain.Status{z, a}, nil)
	assert.Equal(t, []string{"Alpha", "Zulu"}, columnNames(b))
}

func TestBuild_GroupsItemsInInputOrder(t *testing.T) {
	items := []domain.Item{item("1", done), item("2", planned), item("3", done)}
	b := Build([]domain.Status{planned, done}, items)

	require.Len(t, b.Columns, 2)
	assert.Len(t, b.Columns[0].Items, 1)
	assert.Equal(t, "1", b.Columns[1].Items[0].ID)
	assert.Equal(t, "3", b.Columns[1].Items[1].ID)
}

func TestBuild_UnassignedColumn(t *testing.T) {
	orphan := item("x", domain.Status{ID: "archived", Name: "Archived"})
	b := Build([]domain.Status{planned}, []domain.Item{orphan})
	require.Len(t, b.Columns, 2)
	assert.Equal(t, "Unassigned", b.Columns[1].Status.Name)
	assert.Equal(t, UnassignedID, b.Columns[1].Status.ID)
}

func TestMove(t *testing.T) {
	items := []domain.Item{item("1", planned), item("2", planned)}
	b := Build([]domain.Status{planned, done}, items)

	moved := b.Move("1", "done")
	require.Len(t, moved.Columns[0].Items, 1)
	assert.Equal(t, "2", moved.Columns[0].Items[0].ID)
	require.Len(t, moved.Columns[1].Items, 1)
	assert.Equal(t, "done", moved.Columns[1].Items[0].Status.ID)

	// Original board untouched.
	assert.Len(t, b.Columns[0].Items, 2)
	assert.Empty(t, b.Columns[1].Items)
}

func TestMove_NoOps(t *testing.T) {
	b := Build([]domain.Status{planned, done}, []domain.Item{item("1", planned)})
	assert.Equal(t, b, b.Move("1", "planned"))
	assert.Equal(t, b, b.Move("1", "missing"))
	assert.Equal(t, b, b.Move("ghost", "done"))
}

func TestFind(t *testing.T) {
	b := Build([]domain.Status{planned, done}, []domain.Item{item("1", planned), item("2", done)})
	col, row, ok := b.Find("2")
	require.True(t, ok)
	assert.Equal(t, 1, col)
	assert.Equal(t, 0, row)

	_, _, ok = b.Find("nope")
	assert.False(t, ok)

	it, ok := b.Item("1")
	require.True(t, ok)
	assert.Equal(t, "planned", it.Status.ID)
}
