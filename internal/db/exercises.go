package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/repcache/internal/models"
)

// exerciseBatchSize limits the rows per INSERT when mirroring the catalog.
const exerciseBatchSize = 100

// ReplaceCatalog persists a fully downloaded exercise catalog and its
// derived facet tables in one transaction. Exercises are inserted or
// replaced by id; the user's is_saved_locally bookmark bit is preserved
// for rows that already exist. Facet tables are rebuilt from scratch.
func (db *DB) ReplaceCatalog(exercises []models.CachedExercise, bodyParts, equipment, targets []string) error {
	return db.Transaction(func(tx *DB) error {
		if len(exercises) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name", "body_part", "equipment", "target", "gif_url",
					"instructions", "secondary_muscles", "updated_at",
					// NOT updated: is_saved_locally
				}),
			}).CreateInBatches(exercises, exerciseBatchSize).Error
			if err != nil {
				return fmt.Errorf("upsert exercises: %w", err)
			}
		}

		if err := tx.replaceFacet(&models.BodyPart{}, bodyParts, func(name string) interface{} {
			return &models.BodyPart{Name: name}
		}); err != nil {
			return fmt.Errorf("replace body parts: %w", err)
		}
		if err := tx.replaceFacet(&models.Equipment{}, equipment, func(name string) interface{} {
			return &models.Equipment{Name: name}
		}); err != nil {
			return fmt.Errorf("replace equipment: %w", err)
		}
		if err := tx.replaceFacet(&models.TargetMuscle{}, targets, func(name string) interface{} {
			return &models.TargetMuscle{Name: name}
		}); err != nil {
			return fmt.Errorf("replace targets: %w", err)
		}

		return nil
	})
}

// replaceFacet rebuilds one facet table from a label set.
func (db *DB) replaceFacet(model interface{}, names []string, build func(string) interface{}) error {
	if err := db.Where("1 = 1").Delete(model).Error; err != nil {
		return err
	}
	for _, name := range names {
		if err := db.Create(build(name)).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetAllExercises returns the full cached catalog ordered by name.
// An empty slice means the catalog was never downloaded; callers
// distinguish that via the download-completion flag, not emptiness.
func (db *DB) GetAllExercises() ([]models.CachedExercise, error) {
	var exercises []models.CachedExercise
	err := db.Order("name ASC").Find(&exercises).Error
	return exercises, err
}

// GetExercise retrieves one cached exercise by id, nil when absent.
func (db *DB) GetExercise(id string) (*models.CachedExercise, error) {
	var exercise models.CachedExercise
	err := db.First(&exercise, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &exercise, nil
}

// CountExercises returns the number of cached exercises.
func (db *DB) CountExercises() (int64, error) {
	var count int64
	err := db.Model(&models.CachedExercise{}).Count(&count).Error
	return count, err
}

// GetFacets returns the derived facet label sets, each sorted by name.
func (db *DB) GetFacets() (bodyParts, equipment, targets []string, err error) {
	if err = db.Model(&models.BodyPart{}).Order("name ASC").Pluck("name", &bodyParts).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("load body parts: %w", err)
	}
	if err = db.Model(&models.Equipment{}).Order("name ASC").Pluck("name", &equipment).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("load equipment: %w", err)
	}
	if err = db.Model(&models.TargetMuscle{}).Order("name ASC").Pluck("name", &targets).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("load targets: %w", err)
	}
	return bodyParts, equipment, targets, nil
}

// SetSavedLocally updates the user's bookmark flag on one exercise.
// Returns the number of rows affected (zero when the id is not cached).
func (db *DB) SetSavedLocally(id string, saved bool) (int64, error) {
	result := db.Model(&models.CachedExercise{}).
		Where("id = ?", id).
		Update("is_saved_locally", saved)
	return result.RowsAffected, result.Error
}

// GetSavedExercises returns all exercises bookmarked by the user.
func (db *DB) GetSavedExercises() ([]models.CachedExercise, error) {
	var exercises []models.CachedExercise
	err := db.Where("is_saved_locally = ?", true).Order("name ASC").Find(&exercises).Error
	return exercises, err
}
