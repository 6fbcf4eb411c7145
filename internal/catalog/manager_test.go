package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/repcache/internal/db"
	"github.com/asteroid-belt/repcache/internal/models"
	"github.com/asteroid-belt/repcache/internal/remote"
)

// fakeCatalog pages over a fixed record set and can be made to fail on
// a specific page number.
type fakeCatalog struct {
	records  []remote.ExerciseRecord
	failPage int
	calls    int
}

func (c *fakeCatalog) FetchPage(_ context.Context, limit, offset int) ([]remote.ExerciseRecord, error) {
	c.calls++
	if c.failPage > 0 && c.calls == c.failPage {
		return nil, errors.New("connection reset")
	}
	if offset >= len(c.records) {
		return nil, nil
	}
	end := offset + limit
	if end > len(c.records) {
		end = len(c.records)
	}
	return c.records[offset:end], nil
}

func makeRecords(n int) []remote.ExerciseRecord {
	records := make([]remote.ExerciseRecord, n)
	bodyParts := []string{"Legs", "Chest", "Back"}
	for i := range records {
		records[i] = remote.ExerciseRecord{
			ID:        fmt.Sprintf("ex%03d", i),
			Name:      fmt.Sprintf("Exercise %d", i),
			BodyPart:  bodyParts[i%len(bodyParts)],
			Equipment: "Barbell",
			Target:    "Quads",
		}
	}
	return records
}

func testManager(t *testing.T, client remote.CatalogClient, pageSize int) (*Manager, *db.DB) {
	t.Helper()

	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return New(database, client, pageSize), database
}

func TestFetchAllExercisesAndCache(t *testing.T) {
	// 175 records at page size 50: three full pages, one partial, one empty.
	client := &fakeCatalog{records: makeRecords(175)}
	manager, database := testManager(t, client, 50)

	require.NoError(t, manager.FetchAllExercisesAndCache(context.Background(), false))

	count, err := database.CountExercises()
	require.NoError(t, err)
	assert.Equal(t, int64(175), count)

	complete, err := manager.DownloadComplete()
	require.NoError(t, err)
	assert.True(t, complete)

	bodyParts, equipment, targets, err := database.GetFacets()
	require.NoError(t, err)
	assert.Equal(t, []string{"Back", "Chest", "Legs"}, bodyParts)
	assert.Equal(t, []string{"Barbell"}, equipment)
	assert.Equal(t, []string{"Quads"}, targets)

	total, err := database.GetAppState(models.StateTotalExercises)
	require.NoError(t, err)
	assert.Equal(t, "175", total)
}

func TestFetchAllExercisesAndCache_FailureCommitsNothing(t *testing.T) {
	client := &fakeCatalog{records: makeRecords(175), failPage: 3}
	manager, database := testManager(t, client, 50)

	err := manager.FetchAllExercisesAndCache(context.Background(), false)
	require.Error(t, err)

	var dlErr *DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, 3, dlErr.Page)
	assert.Equal(t, 100, dlErr.Offset)

	// All-or-nothing: the two successful pages were discarded.
	count, countErr := database.CountExercises()
	require.NoError(t, countErr)
	assert.Equal(t, int64(0), count)

	complete, flagErr := manager.DownloadComplete()
	require.NoError(t, flagErr)
	assert.False(t, complete)
}

func TestFetchAllExercisesAndCache_ShortCircuits(t *testing.T) {
	client := &fakeCatalog{records: makeRecords(10)}
	manager, _ := testManager(t, client, 50)

	require.NoError(t, manager.FetchAllExercisesAndCache(context.Background(), false))
	callsAfterFirst := client.calls

	// Flag is set and cache populated: second call never hits the client.
	require.NoError(t, manager.FetchAllExercisesAndCache(context.Background(), false))
	assert.Equal(t, callsAfterFirst, client.calls)
}

func TestFetchAllExercisesAndCache_ForceRefresh(t *testing.T) {
	client := &fakeCatalog{records: makeRecords(10)}
	manager, database := testManager(t, client, 50)

	require.NoError(t, manager.FetchAllExercisesAndCache(context.Background(), false))

	client.records = makeRecords(12)
	require.NoError(t, manager.FetchAllExercisesAndCache(context.Background(), true))

	count, err := database.CountExercises()
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}

func TestFetchAllExercisesAndCache_DeduplicatesRecords(t *testing.T) {
	records := makeRecords(5)
	records = append(records, records[0]) // remote sends ex000 twice
	client := &fakeCatalog{records: records}
	manager, database := testManager(t, client, 50)

	require.NoError(t, manager.FetchAllExercisesAndCache(context.Background(), false))

	count, err := database.CountExercises()
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestNeedsDownload(t *testing.T) {
	client := &fakeCatalog{records: makeRecords(10)}
	manager, _ := testManager(t, client, 50)

	needed, err := manager.NeedsDownload()
	require.NoError(t, err)
	assert.True(t, needed, "fresh database needs a download")

	require.NoError(t, manager.FetchAllExercisesAndCache(context.Background(), false))
	needed, err = manager.NeedsDownload()
	require.NoError(t, err)
	assert.False(t, needed)
}

func TestNeedsDownload_FlagSetButCacheEmpty(t *testing.T) {
	manager, database := testManager(t, &fakeCatalog{}, 50)

	// Flag says downloaded but no rows exist: treated as needing a
	// re-download, not silent success.
	require.NoError(t, database.SetBoolState(models.StateInitialExerciseDownloadComplete, true))

	needed, err := manager.NeedsDownload()
	require.NoError(t, err)
	assert.True(t, needed)
}

func TestLoadCachedExerciseData_EmptyCache(t *testing.T) {
	manager, _ := testManager(t, &fakeCatalog{}, 50)

	data, err := manager.LoadCachedExerciseData()
	require.NoError(t, err)
	assert.Empty(t, data.Exercises)
	assert.Empty(t, data.BodyParts)
	assert.Empty(t, data.Equipment)
	assert.Empty(t, data.Targets)
}

func TestToggleExerciseSaveLocally(t *testing.T) {
	client := &fakeCatalog{records: makeRecords(3)}
	manager, database := testManager(t, client, 50)
	require.NoError(t, manager.FetchAllExercisesAndCache(context.Background(), false))

	saved, err := manager.ToggleExerciseSaveLocally("ex001")
	require.NoError(t, err)
	assert.True(t, saved)

	rows, err := database.GetSavedExercises()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ex001", rows[0].ID)

	saved, err = manager.ToggleExerciseSaveLocally("ex001")
	require.NoError(t, err)
	assert.False(t, saved)

	_, err = manager.ToggleExerciseSaveLocally("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in local cache")
}

func TestObserveSavedExercises(t *testing.T) {
	client := &fakeCatalog{records: makeRecords(3)}
	manager, _ := testManager(t, client, 50)
	require.NoError(t, manager.FetchAllExercisesAndCache(context.Background(), false))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := manager.ObserveSavedExercises(ctx)
	require.NoError(t, err)

	select {
	case list := <-updates:
		assert.Empty(t, list)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for initial emission")
	}

	_, err = manager.ToggleExerciseSaveLocally("ex002")
	require.NoError(t, err)

	select {
	case list := <-updates:
		require.Len(t, list, 1)
		assert.Equal(t, "ex002", list[0].ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for bookmark emission")
	}
}

func TestStreamExerciseData(t *testing.T) {
	client := &fakeCatalog{records: makeRecords(5)}
	manager, _ := testManager(t, client, 50)

	var states []models.Resource[*ExerciseData]
	for res := range manager.StreamExerciseData(context.Background(), false) {
		states = append(states, res)
	}

	require.Len(t, states, 2)
	assert.True(t, states[0].IsLoading())
	require.True(t, states[1].IsSuccess())
	assert.Len(t, states[1].Data.Exercises, 5)
}

func TestStreamExerciseData_Failure(t *testing.T) {
	client := &fakeCatalog{records: makeRecords(5), failPage: 1}
	manager, _ := testManager(t, client, 50)

	var states []models.Resource[*ExerciseData]
	for res := range manager.StreamExerciseData(context.Background(), false) {
		states = append(states, res)
	}

	require.Len(t, states, 2)
	assert.True(t, states[0].IsLoading())
	require.True(t, states[1].IsError())

	var dlErr *DownloadError
	assert.ErrorAs(t, states[1].Err, &dlErr)
}

func TestDeriveFacets(t *testing.T) {
	exercises := []models.CachedExercise{
		{BodyPart: "Legs", EquipmentName: "Barbell", Target: "Quads"},
		{BodyPart: "Legs", EquipmentName: "Dumbbell", Target: "Quads"},
		{BodyPart: "Arms", EquipmentName: "", Target: "Biceps"},
	}

	bodyParts, equipment, targets := deriveFacets(exercises)
	assert.Equal(t, []string{"Arms", "Legs"}, bodyParts)
	assert.Equal(t, []string{"Barbell", "Dumbbell"}, equipment, "empty facet values are skipped")
	assert.Equal(t, []string{"Biceps", "Quads"}, targets)
}
