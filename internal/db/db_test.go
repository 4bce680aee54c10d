package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smlm-data/gsdrecon/internal/events"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDB_RunsMigrations(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
}

func TestInsertAndGetRun(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	run := &Run{
		Source:         "fixtures/cells.tif",
		Width:          512,
		Height:         512,
		Bandwidth:      5.0,
		MinDensity:     0,
		MaxDensity:     0.0123,
		DurationMillis: 840,
	}
	require.NoError(t, db.InsertRun(run))
	assert.NotEmpty(t, run.RunID, "InsertRun should assign a run ID")
	assert.NotZero(t, run.CreatedUnixNanos)

	got, err := db.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestGetRun_NotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	_, err := db.GetRun("no-such-run")
	assert.True(t, errors.Is(err, ErrRunNotFound), "got %v", err)
}

func TestListRuns_NewestFirst(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	for i, ns := range []int64{100, 300, 200} {
		require.NoError(t, db.InsertRun(&Run{
			CreatedUnixNanos: ns,
			Source:           "s",
			Width:            8 + i,
			Height:           8,
			Bandwidth:        1,
		}))
	}

	runs, err := db.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(300), runs[0].CreatedUnixNanos)
	assert.Equal(t, int64(200), runs[1].CreatedUnixNanos)
}

func TestImportAndLoadEvents(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	evs := []events.Event{
		{X: 1, Y: 2, Count: 3},
		{X: 4, Y: 5, Count: 1},
	}
	require.NoError(t, db.ImportEvents("slide-a", evs))

	got, err := db.LoadEvents("slide-a")
	require.NoError(t, err)
	assert.ElementsMatch(t, evs, got)

	// Re-import replaces the dataset rather than appending.
	require.NoError(t, db.ImportEvents("slide-a", evs[:1]))
	got, err = db.LoadEvents("slide-a")
	require.NoError(t, err)
	require.Len(t, got, 1)

	datasets, err := db.ListDatasets()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"slide-a": 1}, datasets)
}

func TestLoadEvents_EmptyDataset(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	got, err := db.LoadEvents("missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}
