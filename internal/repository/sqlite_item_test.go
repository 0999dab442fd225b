package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupItemRepo(t *testing.T) (*SQLiteItemRepo, []domain.Status) {
	t.Helper()
	database := testutil.NewTestDB(t)
	statuses := testutil.SeedStatuses(t, NewSQLiteStatusRepo(database), "Planned", "Done")
	return NewSQLiteItemRepo(database), statuses
}

func TestItemRepo_CreateAndGetByID(t *testing.T) {
	repo, statuses := setupItemRepo(t)
	ctx := context.Background()

	end := testutil.Date(2024, time.February, 29)
	it := testutil.NewTestItem(statuses[0], "Launch", testutil.EndingOn(end), testutil.WithGroup("Core"))
	require.NoError(t, repo.Create(ctx, it))

	fetched, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", fetched.Name)
	assert.Equal(t, "Core", fetched.Group)
	assert.Equal(t, statuses[0], fetched.Status, "status is joined")
	require.NotNil(t, fetched.EndAt)
	assert.True(t, end.Equal(*fetched.EndAt))
	assert.True(t, it.StartAt.Equal(fetched.StartAt))
}

func TestItemRepo_KeepsOffset(t *testing.T) {
	repo, statuses := setupItemRepo(t)
	ctx := context.Background()

	tokyo := time.FixedZone("JST", 9*60*60)
	end := time.Date(2024, 3, 1, 2, 0, 0, 0, tokyo)
	it := testutil.NewTestItem(statuses[0], "Tokyo launch", testutil.EndingOn(end))
	require.NoError(t, repo.Create(ctx, it))

	fetched, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	y, m, d := fetched.EndAt.Date()
	assert.Equal(t, []int{2024, 3, 1}, []int{y, int(m), d}, "calendar date survives the round trip")
}

func TestItemRepo_Ongoing(t *testing.T) {
	repo, statuses := setupItemRepo(t)
	ctx := context.Background()

	it := testutil.NewTestItem(statuses[0], "Research", testutil.Ongoing())
	require.NoError(t, repo.Create(ctx, it))

	fetched, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.EndAt)
}

func TestItemRepo_ListFilters(t *testing.T) {
	repo, statuses := setupItemRepo(t)
	ctx := context.Background()

	a := testutil.NewTestItem(statuses[0], "A", testutil.WithDates(testutil.Date(2024, 1, 1), nil))
	b := testutil.NewTestItem(statuses[1], "B", testutil.WithDates(testutil.Date(2024, 2, 1), nil), testutil.WithGroup("Ops"))
	c := testutil.NewTestItem(statuses[1], "C", testutil.WithDates(testutil.Date(2023, 12, 1), nil))
	for _, it := range []*domain.Item{a, b, c} {
		require.NoError(t, repo.Create(ctx, it))
	}

	all, err := repo.List(ctx, ItemFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "C", all[0].Name, "ordered by start date")

	done, err := repo.List(ctx, ItemFilter{StatusID: statuses[1].ID})
	require.NoError(t, err)
	assert.Len(t, done, 2)

	ops, err := repo.List(ctx, ItemFilter{StatusID: statuses[1].ID, Group: "Ops"})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "B", ops[0].Name)

	n, err := repo.CountByStatus(ctx, statuses[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestItemRepo_UpdateAndDelete(t *testing.T) {
	repo, statuses := setupItemRepo(t)
	ctx := context.Background()

	it := testutil.NewTestItem(statuses[0], "Beta")
	require.NoError(t, repo.Create(ctx, it))

	it.Status = statuses[1]
	it.Name = "Beta 2"
	require.NoError(t, repo.Update(ctx, it))

	fetched, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beta 2", fetched.Name)
	assert.Equal(t, statuses[1].ID, fetched.Status.ID)

	require.NoError(t, repo.Delete(ctx, it.ID))
	_, err = repo.GetByID(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, it.ID), domain.ErrNotFound)
}

func TestItemRepo_UnknownStatusRejected(t *testing.T) {
	repo, _ := setupItemRepo(t)
	it := testutil.NewTestItem(domain.Status{ID: "ghost"}, "Orphan")
	assert.Error(t, repo.Create(context.Background(), it))
}

func TestItemRepo_StatusDeleteRestricted(t *testing.T) {
	database := testutil.NewTestDB(t)
	statusRepo := NewSQLiteStatusRepo(database)
	statuses := testutil.SeedStatuses(t, statusRepo, "Planned")
	require.NoError(t, NewSQLiteItemRepo(database).Create(context.Background(),
		testutil.NewTestItem(statuses[0], "Pinned")))

	assert.Error(t, statusRepo.Delete(context.Background(), statuses[0].ID))
}

func TestItemRepo_ListOrdersByInstantAcrossOffsets(t *testing.T) {
	repo, statuses := setupItemRepo(t)
	ctx := context.Background()

	tokyo := time.FixedZone("JST", 9*60*60)
	// "2024-03-01T01:00:00Z" sorts before "2024-03-01T08:00:00+09:00" as
	// text, but the Tokyo start is two hours earlier.
	utcStart := testutil.NewTestItem(statuses[0], "Alpha", testutil.WithDates(time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC), nil))
	tokyoStart := testutil.NewTestItem(statuses[0], "Bravo", testutil.WithDates(time.Date(2024, 3, 1, 8, 0, 0, 0, tokyo), nil))
	require.NoError(t, repo.Create(ctx, utcStart))
	require.NoError(t, repo.Create(ctx, tokyoStart))

	list, err := repo.List(ctx, ItemFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bravo", list[0].Name)
	assert.Equal(t, "Alpha", list[1].Name)
}
