package db

import (
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/repcache/internal/models"
)

// GetAppState retrieves a persisted app state value.
// Returns "" for keys that were never set.
func (db *DB) GetAppState(key string) (string, error) {
	var state models.AppState
	err := db.First(&state, "key = ?", key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return state.Value, nil
}

// SetAppState sets a persisted app state value.
func (db *DB) SetAppState(key, value string) error {
	state := models.AppState{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&state).Error
}

// GetBoolState reads a boolean app state flag. Missing or unparseable
// values read as false.
func (db *DB) GetBoolState(key string) (bool, error) {
	value, err := db.GetAppState(key)
	if err != nil {
		return false, err
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return parsed, nil
}

// SetBoolState writes a boolean app state flag.
func (db *DB) SetBoolState(key string, value bool) error {
	return db.SetAppState(key, strconv.FormatBool(value))
}

// GetOrCreateTrackingID returns the persistent anonymous tracking ID,
// creating one if it doesn't exist. On any error it falls back to a
// per-session ID.
func (db *DB) GetOrCreateTrackingID() string {
	var state models.DeviceState
	err := db.First(&state, "id = ?", "default").Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return uuid.New().String()
	}

	if state.TrackingID != "" {
		return state.TrackingID
	}

	trackingID := uuid.New().String()
	state.ID = "default"
	state.TrackingID = trackingID
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tracking_id", "updated_at"}),
	}).Create(&state).Error
	if err != nil {
		// Even if the save fails, use the generated ID for this session.
		return trackingID
	}

	return trackingID
}
