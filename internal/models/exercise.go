package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a []string persisted as a JSON text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("scan StringList: unsupported type %T", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// CachedExercise is a locally mirrored record from the remote exercise
// catalog. The full local set is either empty (never downloaded) or a
// complete mirror; partial states only exist transiently during a paged
// download that has not been committed.
type CachedExercise struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	Name     string `gorm:"size:255;index" json:"name"`
	BodyPart string `gorm:"size:100;index" json:"body_part"`
	// Equipment column is named explicitly to avoid clashing with the
	// equipment facet table.
	EquipmentName string `gorm:"column:equipment;size:100;index" json:"equipment"`
	Target        string `gorm:"size:100;index" json:"target"`
	GifURL        string `gorm:"size:500" json:"gif_url"`

	Instructions     StringList `gorm:"type:text" json:"instructions"`
	SecondaryMuscles StringList `gorm:"type:text" json:"secondary_muscles"`

	// IsSavedLocally is the user's bookmark flag, independent of the
	// global cache. Preserved across catalog refreshes.
	IsSavedLocally bool `gorm:"default:false;index" json:"is_saved_locally"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (CachedExercise) TableName() string {
	return "cached_exercises"
}

// BodyPart is a derived facet label extracted from the cached catalog.
// Facet tables are rebuilt whenever the catalog is refreshed.
type BodyPart struct {
	Name string `gorm:"primaryKey;size:100" json:"name"`
}

// TableName specifies the table name for GORM.
func (BodyPart) TableName() string {
	return "body_parts"
}

// Equipment is a derived facet label extracted from the cached catalog.
type Equipment struct {
	Name string `gorm:"primaryKey;size:100" json:"name"`
}

// TableName specifies the table name for GORM.
func (Equipment) TableName() string {
	return "equipment"
}

// TargetMuscle is a derived facet label extracted from the cached catalog.
type TargetMuscle struct {
	Name string `gorm:"primaryKey;size:100" json:"name"`
}

// TableName specifies the table name for GORM.
func (TargetMuscle) TableName() string {
	return "target_muscles"
}

// CacheStats provides aggregate statistics about the local cache.
type CacheStats struct {
	TotalExercises int64     `json:"total_exercises"`
	TotalBodyParts int64     `json:"total_body_parts"`
	TotalEquipment int64     `json:"total_equipment"`
	TotalTargets   int64     `json:"total_targets"`
	SavedExercises int64     `json:"saved_exercises"`
	PendingLikes   int64     `json:"pending_likes"`
	CacheSizeBytes int64     `json:"cache_size_bytes"`
	LastUpdated    time.Time `json:"last_updated"`
}
