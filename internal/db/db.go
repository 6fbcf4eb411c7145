// Package db provides a GORM-based local persistent store for repcache.
// It uses the pure-Go SQLite driver so the cache works without cgo.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/asteroid-belt/repcache/internal/models"
)

// DB wraps the GORM database connection with repcache-specific operations.
// It is an explicit handle: opened at process start, closed at shutdown.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and runs migrations.
func New(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode for simpler transaction handling
	// (WAL mode has visibility issues with the pure-Go SQLite driver)
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := wrapped.seedAppState(); err != nil {
		return nil, fmt.Errorf("seed app state: %w", err)
	}

	if err := wrapped.seedDeviceState(); err != nil {
		return nil, fmt.Errorf("seed device state: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.CachedLike{},
		&models.CachedExercise{},
		&models.BodyPart{},
		&models.Equipment{},
		&models.TargetMuscle{},
		&models.AppState{},
		&models.DeviceState{},
	)
}

// seedAppState inserts default app state keys if not present.
func (db *DB) seedAppState() error {
	defaults := []models.AppState{
		{Key: models.StateInitialExerciseDownloadComplete, Value: "false"},
		{Key: models.StateLastCatalogSync, Value: ""},
		{Key: models.StateLastLikeSync, Value: ""},
		{Key: models.StateSchemaVersion, Value: "1"},
		{Key: models.StateTotalExercises, Value: "0"},
	}

	for _, state := range defaults {
		result := db.Where("key = ?", state.Key).FirstOrCreate(&state)
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}

// seedDeviceState inserts the singleton device row if not present.
func (db *DB) seedDeviceState() error {
	defaultState := models.DeviceState{ID: "default"}
	result := db.Where("id = ?", "default").FirstOrCreate(&defaultState)
	return result.Error
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
// If the callback returns an error, the transaction is rolled back.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path}
		return fc(wrappedTx)
	})
}

// GetStats returns aggregate statistics about the local cache.
func (db *DB) GetStats() (*models.CacheStats, error) {
	var stats models.CacheStats

	if err := db.Model(&models.CachedExercise{}).Count(&stats.TotalExercises).Error; err != nil {
		return nil, fmt.Errorf("count exercises: %w", err)
	}
	if err := db.Model(&models.BodyPart{}).Count(&stats.TotalBodyParts).Error; err != nil {
		return nil, fmt.Errorf("count body parts: %w", err)
	}
	if err := db.Model(&models.Equipment{}).Count(&stats.TotalEquipment).Error; err != nil {
		return nil, fmt.Errorf("count equipment: %w", err)
	}
	if err := db.Model(&models.TargetMuscle{}).Count(&stats.TotalTargets).Error; err != nil {
		return nil, fmt.Errorf("count targets: %w", err)
	}
	if err := db.Model(&models.CachedExercise{}).Where("is_saved_locally = ?", true).
		Count(&stats.SavedExercises).Error; err != nil {
		return nil, fmt.Errorf("count saved exercises: %w", err)
	}
	if err := db.Model(&models.CachedLike{}).Where("is_pending = ?", true).
		Count(&stats.PendingLikes).Error; err != nil {
		return nil, fmt.Errorf("count pending likes: %w", err)
	}

	if info, err := os.Stat(db.path); err == nil {
		stats.CacheSizeBytes = info.Size()
	}

	stats.LastUpdated = time.Now()

	return &stats, nil
}
