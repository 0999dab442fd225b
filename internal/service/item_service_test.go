package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/roadmap/internal/dnd"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/alexanderramin/roadmap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ dnd.ItemMover       = ItemService(nil)
	_ dnd.ItemRescheduler = ItemService(nil)
)

func setupItemService(t *testing.T, observers ...UseCaseObserver) (ItemService, []domain.Status, testRepos) {
	t.Helper()
	r := setupRepos(t)
	statuses := testutil.SeedStatuses(t, r.statuses, "Planned", "In Progress", "Done")
	return NewItemService(r.items, r.statuses, r.uow, observers...), statuses, r
}

func TestItemService_Create(t *testing.T) {
	svc, statuses, _ := setupItemService(t)
	ctx := context.Background()

	end := testutil.Date(2024, time.March, 31)
	it := &domain.Item{
		Name:    " Launch ",
		StartAt: testutil.Date(2024, time.March, 1),
		EndAt:   &end,
		Status:  domain.Status{ID: statuses[1].ID},
	}
	require.NoError(t, svc.Create(ctx, it))

	assert.NotEmpty(t, it.ID)
	assert.Equal(t, "Launch", it.Name)
	assert.False(t, it.CreatedAt.IsZero())
	assert.Equal(t, statuses[1], it.Status, "status filled from storage")

	fetched, err := svc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", fetched.Status.Name)
}

func TestItemService_CreateRejectsInvertedRange(t *testing.T) {
	svc, statuses, _ := setupItemService(t)

	end := testutil.Date(2024, time.February, 1)
	it := &domain.Item{Name: "Backwards", StartAt: testutil.Date(2024, time.March, 1), EndAt: &end, Status: statuses[0]}

	err := svc.Create(context.Background(), it)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestItemService_CreateRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := setupItemService(t)

	it := &domain.Item{Name: "Orphan", StartAt: testutil.Date(2024, time.March, 1), Status: domain.Status{ID: "missing"}}

	err := svc.Create(context.Background(), it)
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestItemService_ListFiltersByStatus(t *testing.T) {
	svc, statuses, _ := setupItemService(t)
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, testutil.NewTestItem(statuses[0], "A")))
	require.NoError(t, svc.Create(ctx, testutil.NewTestItem(statuses[2], "B")))

	done, err := svc.List(ctx, repository.ItemFilter{StatusID: statuses[2].ID})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "B", done[0].Name)
}

func TestItemService_Update(t *testing.T) {
	svc, statuses, _ := setupItemService(t)
	ctx := context.Background()
	it := testutil.NewTestItem(statuses[0], "Draft")
	require.NoError(t, svc.Create(ctx, it))

	it.Name = "Final"
	it.Group = "Docs"
	require.NoError(t, svc.Update(ctx, it))

	fetched, err := svc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", fetched.Name)
	assert.Equal(t, "Docs", fetched.Group)
}

func TestItemService_MoveToStatus(t *testing.T) {
	rec := &recordingObserver{}
	svc, statuses, _ := setupItemService(t, rec)
	ctx := context.Background()
	it := testutil.NewTestItem(statuses[0], "Launch")
	require.NoError(t, svc.Create(ctx, it))

	moved, err := svc.MoveToStatus(ctx, it.ID, statuses[2].ID)
	require.NoError(t, err)
	assert.Equal(t, statuses[2], moved.Status)

	fetched, err := svc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Done", fetched.Status.Name)

	ev := rec.last()
	assert.Equal(t, "move-item", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, statuses[2].ID, ev.Fields["status_id"])
}

func TestItemService_MoveToUnknownStatus(t *testing.T) {
	rec := &recordingObserver{}
	svc, statuses, _ := setupItemService(t, rec)
	ctx := context.Background()
	it := testutil.NewTestItem(statuses[0], "Launch")
	require.NoError(t, svc.Create(ctx, it))

	_, err := svc.MoveToStatus(ctx, it.ID, "nowhere")
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
	assert.False(t, rec.last().Success)

	fetched, err := svc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, statuses[0].ID, fetched.Status.ID, "status unchanged")
}

func TestItemService_MoveMissingItem(t *testing.T) {
	svc, statuses, _ := setupItemService(t)

	_, err := svc.MoveToStatus(context.Background(), "ghost", statuses[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemService_Reschedule(t *testing.T) {
	svc, statuses, _ := setupItemService(t)
	ctx := context.Background()
	it := testutil.NewTestItem(statuses[0], "Launch", testutil.EndingOn(testutil.Date(2024, time.March, 10)))
	require.NoError(t, svc.Create(ctx, it))

	start := testutil.Date(2024, time.April, 1)
	end := testutil.Date(2024, time.April, 8)
	moved, err := svc.Reschedule(ctx, it.ID, start, &end)
	require.NoError(t, err)
	assert.True(t, start.Equal(moved.StartAt))

	fetched, err := svc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.True(t, end.Equal(*fetched.EndAt))
}

func TestItemService_RescheduleRejectsInvertedRange(t *testing.T) {
	svc, statuses, _ := setupItemService(t)
	ctx := context.Background()
	it := testutil.NewTestItem(statuses[0], "Launch")
	require.NoError(t, svc.Create(ctx, it))

	end := testutil.Date(2024, time.January, 1)
	_, err := svc.Reschedule(ctx, it.ID, testutil.Date(2024, time.February, 1), &end)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestItemService_RescheduleToOngoing(t *testing.T) {
	svc, statuses, _ := setupItemService(t)
	ctx := context.Background()
	it := testutil.NewTestItem(statuses[0], "Research")
	require.NoError(t, svc.Create(ctx, it))

	moved, err := svc.Reschedule(ctx, it.ID, it.StartAt, nil)
	require.NoError(t, err)
	assert.True(t, moved.IsOngoing())
}

func TestItemService_RescheduleRollsBackOnWriteFailure(t *testing.T) {
	r := setupRepos(t)
	statuses := testutil.SeedStatuses(t, r.statuses, "Planned")
	it := testutil.NewTestItem(statuses[0], "Launch", testutil.EndingOn(testutil.Date(2024, time.March, 10)))
	require.NoError(t, r.items.Create(context.Background(), it))

	failUoW := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 1, Err: errors.New("injected update failure")}
	svc := NewItemService(r.items, r.statuses, failUoW)

	end := testutil.Date(2024, time.May, 1)
	_, err := svc.Reschedule(context.Background(), it.ID, testutil.Date(2024, time.April, 1), &end)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected update failure")

	fetched, err := r.items.GetByID(context.Background(), it.ID)
	require.NoError(t, err)
	assert.True(t, it.EndAt.Equal(*fetched.EndAt), "dates unchanged")
}

func TestItemService_Delete(t *testing.T) {
	svc, statuses, _ := setupItemService(t)
	ctx := context.Background()
	it := testutil.NewTestItem(statuses[0], "Temp")
	require.NoError(t, svc.Create(ctx, it))

	require.NoError(t, svc.Delete(ctx, it.ID))
	_, err := svc.GetByID(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemService_DrivesStatusDrop(t *testing.T) {
	svc, statuses, _ := setupItemService(t)
	ctx := context.Background()
	it := testutil.NewTestItem(statuses[0], "Launch")
	require.NoError(t, svc.Create(ctx, it))

	var got domain.Item
	drop := dnd.StatusDrop{
		Mover: svc,
		Lookup: func(id string) (domain.Item, bool) {
			return *it, id == it.ID
		},
		Moved: func(m domain.Item) { got = m },
	}
	session := dnd.NewSession(drop)
	require.True(t, session.Start(it.ID))
	session.Move(0, 40, statuses[1].ID)
	require.NoError(t, session.End(ctx))

	assert.Equal(t, statuses[1].ID, got.Status.ID)
}
