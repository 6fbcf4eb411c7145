// Package models defines the core data structures for repcache.
package models

import (
	"strings"
	"time"
)

// LikeType identifies the kind of entity a like is attached to.
type LikeType string

const (
	LikeTypePost    LikeType = "POST"
	LikeTypeComment LikeType = "COMMENT"
	LikeTypeWorkout LikeType = "WORKOUT"
)

// ValidLikeTypes returns all valid like types.
func ValidLikeTypes() []LikeType {
	return []LikeType{LikeTypePost, LikeTypeComment, LikeTypeWorkout}
}

// ParseLikeType converts a string (any case) to a LikeType.
// Returns false if the string does not name a valid type.
func ParseLikeType(s string) (LikeType, bool) {
	t := LikeType(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range ValidLikeTypes() {
		if t == v {
			return t, true
		}
	}
	return "", false
}

// LikeKey is the composite key identifying one like relationship.
// PostID is empty unless the liked entity is scoped under a post
// (e.g. a comment within a post).
type LikeKey struct {
	UserID   string
	TargetID string
	Type     LikeType
	PostID   string
}

// docIDEscaper keeps component boundaries unambiguous: once escaped, no
// component contains a raw separator, so distinct tuples can never join
// to the same id.
var docIDEscaper = strings.NewReplacer("%", "%25", "_", "%5F")

// DocumentID returns the deterministic remote document id for this key.
// The same tuple always yields the same id, which is what makes remote
// like writes idempotent, and different tuples always yield different
// ids, which is what makes the id safe as the local primary key.
func (k LikeKey) DocumentID() string {
	parts := []string{
		docIDEscaper.Replace(k.UserID),
		docIDEscaper.Replace(k.TargetID),
		docIDEscaper.Replace(string(k.Type)),
	}
	if k.PostID != "" {
		parts = append(parts, docIDEscaper.Replace(k.PostID))
	}
	return strings.Join(parts, "_")
}

// CachedLike is the locally cached like state for one like tuple.
// The primary key is the deterministic document id, so at most one row
// can exist per (user, target, type, post) tuple.
type CachedLike struct {
	ID       string   `gorm:"primaryKey;size:255" json:"id"`
	UserID   string   `gorm:"size:64;index;uniqueIndex:idx_like_tuple" json:"user_id"`
	TargetID string   `gorm:"size:64;uniqueIndex:idx_like_tuple" json:"target_id"`
	LikeType LikeType `gorm:"size:16;uniqueIndex:idx_like_tuple" json:"like_type"`
	// PostID uses "" for "not post-scoped" so it can participate in the
	// unique index (SQLite treats NULLs as distinct).
	PostID string `gorm:"size:64;default:'';uniqueIndex:idx_like_tuple" json:"post_id"`

	IsLiked bool `gorm:"default:false" json:"is_liked"`
	// IsPending is true while the remote write for the current state has
	// not been confirmed.
	IsPending bool `gorm:"default:false;index" json:"is_pending"`

	// Timestamp of the last local mutation.
	Timestamp time.Time `json:"timestamp"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (CachedLike) TableName() string {
	return "cached_likes"
}

// Key returns the like tuple for this row.
func (l *CachedLike) Key() LikeKey {
	return LikeKey{
		UserID:   l.UserID,
		TargetID: l.TargetID,
		Type:     l.LikeType,
		PostID:   l.PostID,
	}
}

// NewCachedLike builds a row for a key with the given liked state,
// marked pending until the remote write is confirmed.
func NewCachedLike(key LikeKey, liked bool) *CachedLike {
	return &CachedLike{
		ID:        key.DocumentID(),
		UserID:    key.UserID,
		TargetID:  key.TargetID,
		LikeType:  key.Type,
		PostID:    key.PostID,
		IsLiked:   liked,
		IsPending: true,
		Timestamp: time.Now(),
	}
}
