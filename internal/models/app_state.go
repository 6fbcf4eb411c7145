package models

import "time"

// AppState stores persisted process-wide flags and sync metadata as
// key-value pairs.
type AppState struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (AppState) TableName() string {
	return "app_state"
}

// Common app state keys.
const (
	// StateInitialExerciseDownloadComplete gates whether the local
	// exercise cache is treated as authoritative.
	StateInitialExerciseDownloadComplete = "initial_exercise_download_complete"
	StateLastCatalogSync                 = "last_catalog_sync"
	StateLastLikeSync                    = "last_like_sync"
	StateSchemaVersion                   = "schema_version"
	StateTotalExercises                  = "total_exercises"
)

// DeviceState is the singleton row holding per-install identity.
// The table always contains exactly one row with id "default".
type DeviceState struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	TrackingID string    `gorm:"size:64" json:"tracking_id"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (DeviceState) TableName() string {
	return "device_state"
}
