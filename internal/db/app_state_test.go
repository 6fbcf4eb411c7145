package db

import (
	"testing"

	"github.com/asteroid-belt/repcache/internal/models"
)

func TestAppState(t *testing.T) {
	db := testDB(t)

	// Seeded keys default to "false".
	val, err := db.GetAppState(models.StateInitialExerciseDownloadComplete)
	if err != nil {
		t.Fatalf("GetAppState() error = %v", err)
	}
	if val != "false" {
		t.Errorf("seeded value = %q, want %q", val, "false")
	}

	// Unknown key reads as empty.
	val, err = db.GetAppState("no_such_key")
	if err != nil {
		t.Fatalf("GetAppState(unknown) error = %v", err)
	}
	if val != "" {
		t.Errorf("unknown key = %q, want empty", val)
	}

	if err := db.SetAppState(models.StateLastCatalogSync, "2026-01-02T15:04:05Z"); err != nil {
		t.Fatalf("SetAppState() error = %v", err)
	}
	val, err = db.GetAppState(models.StateLastCatalogSync)
	if err != nil {
		t.Fatalf("GetAppState() error = %v", err)
	}
	if val != "2026-01-02T15:04:05Z" {
		t.Errorf("value = %q", val)
	}

	// Upsert replaces in place.
	if err := db.SetAppState(models.StateLastCatalogSync, "2026-02-03T00:00:00Z"); err != nil {
		t.Fatalf("SetAppState() overwrite error = %v", err)
	}
	val, _ = db.GetAppState(models.StateLastCatalogSync)
	if val != "2026-02-03T00:00:00Z" {
		t.Errorf("overwritten value = %q", val)
	}
}

func TestBoolState(t *testing.T) {
	db := testDB(t)

	done, err := db.GetBoolState(models.StateInitialExerciseDownloadComplete)
	if err != nil {
		t.Fatalf("GetBoolState() error = %v", err)
	}
	if done {
		t.Error("flag should default to false")
	}

	if err := db.SetBoolState(models.StateInitialExerciseDownloadComplete, true); err != nil {
		t.Fatalf("SetBoolState() error = %v", err)
	}
	done, err = db.GetBoolState(models.StateInitialExerciseDownloadComplete)
	if err != nil {
		t.Fatalf("GetBoolState() error = %v", err)
	}
	if !done {
		t.Error("flag should be true after SetBoolState")
	}

	// Garbage values read as false rather than erroring.
	if err := db.SetAppState("weird_flag", "not-a-bool"); err != nil {
		t.Fatalf("SetAppState() error = %v", err)
	}
	done, err = db.GetBoolState("weird_flag")
	if err != nil {
		t.Fatalf("GetBoolState(garbage) error = %v", err)
	}
	if done {
		t.Error("unparseable value should read as false")
	}
}

func TestGetOrCreateTrackingID(t *testing.T) {
	db := testDB(t)

	first := db.GetOrCreateTrackingID()
	if first == "" {
		t.Fatal("tracking ID should not be empty")
	}

	second := db.GetOrCreateTrackingID()
	if second != first {
		t.Errorf("tracking ID changed between calls: %q vs %q", first, second)
	}
}
