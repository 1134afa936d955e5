package tasksgormstore

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasmag/tasmag/core/repositories"
	"github.com/tasmag/tasmag/core/repositories/tasksrepo"
	"github.com/tasmag/tasmag/infrastructure/sqlitedb"
	"github.com/tasmag/tasmag/sdk/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	db, err := sqlitedb.NewTestDB(sqlitedb.WithLogger(log.Logger))
	require.NoError(t, err)
	t.Cleanup(func() { sqlitedb.Close(db) })

	store := NewStore(log, db)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func newTask(name string) tasksrepo.Task {
	return tasksrepo.New(tasksrepo.NewTask{Name: name}, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC))
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, newTask("task1"))
	require.NoError(t, err)
	second, err := store.Create(ctx, newTask("task2"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "task1", all[0].Name)
	assert.Equal(t, "task2", all[1].Name)
}

func TestRoundTripFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	due := time.Date(2024, 4, 2, 17, 45, 0, 0, time.UTC)
	status := tasksrepo.StatusFailed
	in := tasksrepo.New(tasksrepo.NewTask{Name: "n", Description: "d", DueDate: &due, Status: &status}, time.Now())

	created, err := store.Create(ctx, in)
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "n", got.Name)
	assert.Equal(t, "d", got.Description)
	assert.Equal(t, tasksrepo.StatusFailed, got.Status)
	assert.True(t, got.CreatedAt.Equal(in.CreatedAt), "createdAt %v != %v", got.CreatedAt, in.CreatedAt)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))
}

func TestUpdateReplacesFieldsAndKeepsCreatedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, newTask("before"))
	require.NoError(t, err)

	changed := created
	changed.Name = "after"
	changed.Status = tasksrepo.StatusCancelled
	changed.CreatedAt = time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = store.Update(ctx, changed)
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Name)
	assert.Equal(t, tasksrepo.StatusCancelled, got.Status)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
}

func TestMissingRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, 7)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = store.Update(ctx, tasksrepo.Task{ID: 7, Name: "ghost", Status: tasksrepo.StatusPending})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, 7), repositories.ErrNotFound)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteAndExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, newTask("task1"))
	require.NoError(t, err)

	exists, err := store.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, created.ID))

	exists, err = store.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSearchByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Write Report", "report review", "Groceries", "100% done", "100 percent"} {
		_, err := store.Create(ctx, newTask(name))
		require.NoError(t, err)
	}

	matches, err := store.SearchByName(ctx, "REPORT")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Write Report", matches[0].Name)
	assert.Equal(t, "report review", matches[1].Name)

	matches, err = store.SearchByName(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "100% done", matches[0].Name)

	matches, err = store.SearchByName(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
