package db

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/repcache/internal/models"
)

// UpsertLike creates or updates the cached like row for its tuple.
// The deterministic document id is the primary key, so replaying the
// same tuple updates the single existing row in place.
func (db *DB) UpsertLike(like *models.CachedLike) error {
	if like.Timestamp.IsZero() {
		like.Timestamp = time.Now()
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_liked", "is_pending", "timestamp", "updated_at",
		}),
	}).Create(like).Error
}

// GetLike retrieves the cached like row for a tuple.
// Returns nil (not an error) when no row exists: absence means not liked.
func (db *DB) GetLike(key models.LikeKey) (*models.CachedLike, error) {
	var like models.CachedLike
	err := db.First(&like, "id = ?", key.DocumentID()).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

// ListLikesByType returns all cached like rows for a user and like type,
// optionally scoped to a post. Used to answer "which of these N entities
// does this user like" in one query.
func (db *DB) ListLikesByType(userID string, likeType models.LikeType, postID string) ([]models.CachedLike, error) {
	var likes []models.CachedLike
	q := db.Where("user_id = ? AND like_type = ?", userID, likeType)
	if postID != "" {
		q = q.Where("post_id = ?", postID)
	}
	err := q.Order("timestamp DESC").Find(&likes).Error
	return likes, err
}

// ListPendingLikes returns all rows whose remote write has not been
// confirmed, oldest mutation first.
func (db *DB) ListPendingLikes() ([]models.CachedLike, error) {
	var likes []models.CachedLike
	err := db.Where("is_pending = ?", true).Order("timestamp ASC").Find(&likes).Error
	return likes, err
}

// CountPendingLikes returns the number of unsynced like mutations.
func (db *DB) CountPendingLikes() (int64, error) {
	var count int64
	err := db.Model(&models.CachedLike{}).Where("is_pending = ?", true).Count(&count).Error
	return count, err
}

// ClearPending marks the remote write for a like row as confirmed, but
// only while the row still holds the confirmed liked state. A write
// confirmed after the user toggled again is stale; the newer mutation
// keeps its pending flag so the next sync replays it.
func (db *DB) ClearPending(docID string, liked bool) error {
	return db.Model(&models.CachedLike{}).
		Where("id = ? AND is_liked = ?", docID, liked).
		Update("is_pending", false).Error
}

// DeleteLike hard-deletes the cached like row for a tuple. Used for
// cleanup after a confirmed remote deletion.
func (db *DB) DeleteLike(key models.LikeKey) error {
	return db.Delete(&models.CachedLike{}, "id = ?", key.DocumentID()).Error
}
