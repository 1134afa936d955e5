package taskspgxstore

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasmag/tasmag/core/repositories"
	"github.com/tasmag/tasmag/core/repositories/tasksrepo"
	"github.com/tasmag/tasmag/infrastructure/postgresdb"
	"github.com/tasmag/tasmag/sdk/logger"
)

// newTestStore connects to TASMAG_TEST_PG_URL, applies the migrations and
// empties the tasks table. The test is skipped when the variable is unset.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("TASMAG_TEST_PG_URL")
	if url == "" {
		t.Skip("TASMAG_TEST_PG_URL not set")
	}

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	pool, err := postgresdb.NewTestDB(url, postgresdb.WithLogger(log.Logger))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	ctx := context.Background()
	require.NoError(t, postgresdb.Migrate(ctx, pool, log.Logger))
	_, err = pool.Exec(ctx, "TRUNCATE tasks RESTART IDENTITY")
	require.NoError(t, err)

	return NewStore(log, pool)
}

func TestStoreLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	due := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	created, err := store.Create(ctx, tasksrepo.New(tasksrepo.NewTask{Name: "Write Report", DueDate: &due}, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write Report", got.Name)
	assert.Equal(t, tasksrepo.StatusPending, got.Status)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))

	got.Status = tasksrepo.StatusCompleted
	got.DueDate = nil
	_, err = store.Update(ctx, got)
	require.NoError(t, err)

	got, err = store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, tasksrepo.StatusCompleted, got.Status)
	assert.Nil(t, got.DueDate)

	matches, err := store.SearchByName(ctx, "report")
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	require.NoError(t, store.Delete(ctx, created.ID))
	exists, err := store.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, created.ID), repositories.ErrNotFound)

	_, err = store.Update(ctx, got)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestSearchEscapesWildcards(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"100% done", "100 percent"} {
		_, err := store.Create(ctx, tasksrepo.New(tasksrepo.NewTask{Name: name}, time.Now()))
		require.NoError(t, err)
	}

	matches, err := store.SearchByName(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "100% done", matches[0].Name)
}
