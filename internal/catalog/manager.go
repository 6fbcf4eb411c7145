// Package catalog owns the one-time bulk ingestion of the remote
// exercise catalog and serves filtered views over the cached copy.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/asteroid-belt/repcache/internal/db"
	"github.com/asteroid-belt/repcache/internal/log"
	"github.com/asteroid-belt/repcache/internal/models"
	"github.com/asteroid-belt/repcache/internal/remote"
	"github.com/asteroid-belt/repcache/internal/watch"
)

// DefaultPageSize is the fixed page size for catalog downloads.
const DefaultPageSize = 50

// DownloadError reports an aborted bulk download. Pages fetched before
// the failure are discarded; no partial catalog is ever committed.
type DownloadError struct {
	Page   int
	Offset int
	Err    error
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	return fmt.Sprintf("download exercise catalog: page %d (offset %d): %v", e.Page, e.Offset, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// ExerciseData is the cached catalog plus its derived facet sets.
type ExerciseData struct {
	Exercises []models.CachedExercise
	BodyParts []string
	Equipment []string
	Targets   []string
}

// Manager downloads, caches, and serves the exercise catalog.
type Manager struct {
	db       *db.DB
	client   remote.CatalogClient
	pageSize int
	savedHub *watch.Hub[[]models.CachedExercise]
}

// New creates a manager. pageSize <= 0 selects DefaultPageSize.
func New(database *db.DB, client remote.CatalogClient, pageSize int) *Manager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Manager{
		db:       database,
		client:   client,
		pageSize: pageSize,
		savedHub: watch.NewHub[[]models.CachedExercise](),
	}
}

// savedTopic is the single topic for saved-exercise observation.
const savedTopic = "saved"

// FetchAllExercisesAndCache downloads the full catalog in pages and
// persists it, along with derived facet tables, in one transaction.
// When the download-completion flag is already set and forceRefresh is
// false, it short-circuits as a no-op. Any page-fetch failure aborts
// without committing anything; the completion flag is only set after a
// full success.
func (m *Manager) FetchAllExercisesAndCache(ctx context.Context, forceRefresh bool) error {
	if !forceRefresh {
		needed, err := m.NeedsDownload()
		if err != nil {
			return err
		}
		if !needed {
			return nil
		}
	}

	var all []models.CachedExercise
	seen := make(map[string]bool)
	for page, offset := 1, 0; ; page, offset = page+1, offset+m.pageSize {
		records, err := m.client.FetchPage(ctx, m.pageSize, offset)
		if err != nil {
			return &DownloadError{Page: page, Offset: offset, Err: err}
		}
		if len(records) == 0 {
			break
		}
		for _, record := range records {
			if seen[record.ID] {
				continue
			}
			seen[record.ID] = true
			all = append(all, record.ToCachedExercise())
		}
	}

	bodyParts, equipment, targets := deriveFacets(all)

	if err := m.db.ReplaceCatalog(all, bodyParts, equipment, targets); err != nil {
		return fmt.Errorf("persist exercise catalog: %w", err)
	}

	if err := m.db.SetBoolState(models.StateInitialExerciseDownloadComplete, true); err != nil {
		return fmt.Errorf("set download completion flag: %w", err)
	}
	if err := m.db.SetAppState(models.StateTotalExercises, fmt.Sprintf("%d", len(all))); err != nil {
		log.Errorf("record exercise total: %v", err)
	}
	if err := m.db.SetAppState(models.StateLastCatalogSync, time.Now().UTC().Format(time.RFC3339)); err != nil {
		log.Errorf("record catalog sync time: %v", err)
	}

	return nil
}

// StreamExerciseData drives a catalog load while streaming its tri-state
// progress: a loading value immediately, then exactly one terminal value,
// success with the cached data or the download error. The channel is
// closed after the terminal value.
func (m *Manager) StreamExerciseData(ctx context.Context, forceRefresh bool) <-chan models.Resource[*ExerciseData] {
	out := make(chan models.Resource[*ExerciseData], 2)
	out <- models.Loading[*ExerciseData]()

	go func() {
		defer close(out)

		if err := m.FetchAllExercisesAndCache(ctx, forceRefresh); err != nil {
			out <- models.Failure[*ExerciseData](err)
			return
		}
		data, err := m.LoadCachedExerciseData()
		if err != nil {
			out <- models.Failure[*ExerciseData](err)
			return
		}
		out <- models.Success(data)
	}()

	return out
}

// LoadCachedExerciseData returns the cached catalog and facet sets.
// Pure local read; returns empty collections (not an error) when the
// cache has never been populated.
func (m *Manager) LoadCachedExerciseData() (*ExerciseData, error) {
	exercises, err := m.db.GetAllExercises()
	if err != nil {
		return nil, fmt.Errorf("load cached exercises: %w", err)
	}
	bodyParts, equipment, targets, err := m.db.GetFacets()
	if err != nil {
		return nil, fmt.Errorf("load facets: %w", err)
	}
	return &ExerciseData{
		Exercises: exercises,
		BodyParts: bodyParts,
		Equipment: equipment,
		Targets:   targets,
	}, nil
}

// DownloadComplete reads the persisted download-completion flag.
func (m *Manager) DownloadComplete() (bool, error) {
	return m.db.GetBoolState(models.StateInitialExerciseDownloadComplete)
}

// NeedsDownload reports whether a full catalog download is required.
// A set flag with an empty cache is an inconsistency: it is logged and
// treated as "needs download" rather than silent success.
func (m *Manager) NeedsDownload() (bool, error) {
	complete, err := m.DownloadComplete()
	if err != nil {
		return false, fmt.Errorf("read download flag: %w", err)
	}
	if !complete {
		return true, nil
	}

	count, err := m.db.CountExercises()
	if err != nil {
		return false, fmt.Errorf("count cached exercises: %w", err)
	}
	if count == 0 {
		log.Errorf("exercise cache inconsistency: download flag set but cache is empty, re-downloading")
		return true, nil
	}
	return false, nil
}

// ToggleExerciseSaveLocally flips the user's local bookmark on one
// cached exercise and returns the new state. Purely local, no remote
// counterpart.
func (m *Manager) ToggleExerciseSaveLocally(id string) (bool, error) {
	exercise, err := m.db.GetExercise(id)
	if err != nil {
		return false, fmt.Errorf("toggle save %s: %w", id, err)
	}
	if exercise == nil {
		return false, fmt.Errorf("toggle save %s: exercise not in local cache", id)
	}

	newSaved := !exercise.IsSavedLocally
	if _, err := m.db.SetSavedLocally(id, newSaved); err != nil {
		return false, fmt.Errorf("toggle save %s: %w", id, err)
	}

	m.publishSaved()
	return newSaved, nil
}

// ObserveSavedExercises streams the list of locally saved exercises:
// the current list immediately, then on every bookmark change. The
// stream closes when ctx ends.
func (m *Manager) ObserveSavedExercises(ctx context.Context) (<-chan []models.CachedExercise, error) {
	updates := m.savedHub.Subscribe(ctx, savedTopic)

	current, err := m.db.GetSavedExercises()
	if err != nil {
		return nil, fmt.Errorf("observe saved exercises: %w", err)
	}

	out := make(chan []models.CachedExercise, 1)
	out <- current
	go watch.Forward(ctx, updates, out)
	return out, nil
}

func (m *Manager) publishSaved() {
	saved, err := m.db.GetSavedExercises()
	if err != nil {
		log.Errorf("publish saved exercises: %v", err)
		return
	}
	m.savedHub.Publish(savedTopic, saved)
}

// deriveFacets extracts the distinct sorted facet sets from a catalog.
func deriveFacets(exercises []models.CachedExercise) (bodyParts, equipment, targets []string) {
	return distinct(exercises, func(e models.CachedExercise) string { return e.BodyPart }),
		distinct(exercises, func(e models.CachedExercise) string { return e.EquipmentName }),
		distinct(exercises, func(e models.CachedExercise) string { return e.Target })
}

func distinct(exercises []models.CachedExercise, field func(models.CachedExercise) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, e := range exercises {
		v := field(e)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
