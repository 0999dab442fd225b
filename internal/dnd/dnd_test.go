package dnd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	starts []StartEvent
	moves  []MoveEvent
	ends   []EndEvent
	err    error
}

func (h *recordingHandler) OnDragStart(ev StartEvent) { h.starts = append(h.starts, ev) }
func (h *recordingHandler) OnDragMove(ev MoveEvent)   { h.moves = append(h.moves, ev) }
func (h *recordingHandler) OnDragEnd(_ context.Context, ev EndEvent) error {
	h.ends = append(h.ends, ev)
	return h.err
}

func TestSession_Lifecycle(t *testing.T) {
	h := &recordingHandler{}
	var dragging []bool
	s := NewSession(h, WithDragging(func(d bool) { dragging = append(dragging, d) }))

	require.True(t, s.Start("a"))
	assert.False(t, s.Start("b"), "one drag at a time")
	s.Move(10, 0, "todo")
	s.Move(5, 2, "done")

	dx, dy := s.Delta()
	assert.Equal(t, 15.0, dx)
	assert.Equal(t, 2.0, dy)
	assert.Equal(t, "done", s.Over())

	require.NoError(t, s.End(context.Background()))
	require.Len(t, h.ends, 1)
	assert.Equal(t, EndEvent{ActiveID: "a", OverID: "done", DeltaX: 15, DeltaY: 2}, h.ends[0])
	assert.Equal(t, []bool{true, false}, dragging)

	_, active := s.Active()
	assert.False(t, active)
	assert.Len(t, h.moves, 2)
	assert.Equal(t, 15.0, h.moves[1].DeltaX)
}

func TestSession_Cancel(t *testing.T) {
	h := &recordingHandler{}
	s := NewSession(h)
	s.Start("a")
	s.Move(3, 0, "x")
	s.Cancel()

	require.NoError(t, s.End(context.Background()))
	assert.Empty(t, h.ends)
}

func TestSession_ReadOnly(t *testing.T) {
	h := &recordingHandler{}
	s := NewSession(h, WithEditable(false))
	assert.False(t, s.Start("a"))
	s.Move(1, 1, "x")
	assert.Empty(t, h.starts)
	assert.Empty(t, h.moves)
	assert.False(t, s.Editable())
}

func TestSession_EndReturnsHandlerError(t *testing.T) {
	h := &recordingHandler{err: errors.New("boom")}
	s := NewSession(h)
	s.Start("a")
	assert.EqualError(t, s.End(context.Background()), "boom")
	_, active := s.Active()
	assert.False(t, active)
}

type fakeMover struct {
	moved       map[string]string
	rescheduled map[string][2]*time.Time
	err         error
}

func newFakeMover() *fakeMover {
	return &fakeMover{moved: map[string]string{}, rescheduled: map[string][2]*time.Time{}}
}

func (f *fakeMover) MoveToStatus(_ context.Context, itemID, statusID string) (*domain.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.moved[itemID] = statusID
	return &domain.Item{ID: itemID, Status: domain.Status{ID: statusID}}, nil
}

func (f *fakeMover) Reschedule(_ context.Context, itemID string, start time.Time, end *time.Time) (*domain.Item, error) {
	f.rescheduled[itemID] = [2]*time.Time{&start, end}
	return &domain.Item{ID: itemID, StartAt: start, EndAt: end}, nil
}

func lookupOf(items ...domain.Item) ItemLookup {
	return func(id string) (domain.Item, bool) {
		for _, it := range items {
			if it.ID == id {
				return it, true
			}
		}
		return domain.Item{}, false
	}
}

func TestStatusDrop_MovesToTarget(t *testing.T) {
	m := newFakeMover()
	var got domain.Item
	d := StatusDrop{
		Mover:  m,
		Lookup: lookupOf(domain.Item{ID: "a", Status: domain.Status{ID: "todo"}}),
		Moved:  func(it domain.Item) { got = it },
	}
	s := NewSession(d)
	s.Start("a")
	s.Move(0, 40, "done")
	require.NoError(t, s.End(context.Background()))

	assert.Equal(t, "done", m.moved["a"])
	assert.Equal(t, "done", got.Status.ID)
}

func TestStatusDrop_NoOps(t *testing.T) {
	m := newFakeMover()
	d := StatusDrop{Mover: m, Lookup: lookupOf(domain.Item{ID: "a", Status: domain.Status{ID: "todo"}})}

	require.NoError(t, d.OnDragEnd(context.Background(), EndEvent{ActiveID: "a"}))
	require.NoError(t, d.OnDragEnd(context.Background(), EndEvent{ActiveID: "a", OverID: "todo"}))
	assert.Empty(t, m.moved)
}

func TestStatusDrop_WrapsError(t *testing.T) {
	m := newFakeMover()
	m.err = domain.ErrUnknownStatus
	d := StatusDrop{Mover: m}
	err := d.OnDragEnd(context.Background(), EndEvent{ActiveID: "a", OverID: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestTimelineDrop_KeepsDuration(t *testing.T) {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	item := domain.Item{ID: "a", StartAt: start, EndAt: &end}
	tl := timeline.Timeline{
		Unit: domain.RangeDaily, Anchor: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ColumnWidth: 10, Zoom: 100,
	}

	m := newFakeMover()
	d := TimelineDrop{Mover: m, Lookup: lookupOf(item), Timeline: func() timeline.Timeline { return tl }}
	require.NoError(t, d.OnDragEnd(context.Background(), EndEvent{ActiveID: "a", DeltaX: 30}))

	got := m.rescheduled["a"]
	require.NotNil(t, got[0])
	require.NotNil(t, got[1])
	assert.Equal(t, start.AddDate(0, 0, 3), *got[0])
	assert.Equal(t, end.AddDate(0, 0, 3), *got[1])
}

func TestTimelineDrop_IgnoresZeroDelta(t *testing.T) {
	m := newFakeMover()
	d := TimelineDrop{Mover: m}
	require.NoError(t, d.OnDragEnd(context.Background(), EndEvent{ActiveID: "a"}))
	assert.Empty(t, m.rescheduled)
}

func TestTimelineDrop_UnknownItem(t *testing.T) {
	d := TimelineDrop{Mover: newFakeMover(), Lookup: lookupOf()}
	err := d.OnDragEnd(context.Background(), EndEvent{ActiveID: "ghost", DeltaX: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShiftDates_OngoingStaysOngoing(t *testing.T) {
	tl := timeline.Timeline{
		Unit: domain.RangeWeekly, Anchor: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ColumnWidth: 70, Zoom: 100,
	}
	item := domain.Item{StartAt: time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC)}
	start, end := ShiftDates(tl, item, 70)
	assert.Nil(t, end)
	assert.Equal(t, item.StartAt.AddDate(0, 0, 7), start)
}
