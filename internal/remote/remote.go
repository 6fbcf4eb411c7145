// Package remote defines the contracts for the external collaborators the
// cache reconciles against: the paginated exercise catalog API and the
// remote like document store. HTTP implementations live alongside the
// interfaces; tests substitute fakes.
package remote

import (
	"context"
	"time"

	"github.com/asteroid-belt/repcache/internal/models"
)

// ExerciseRecord is one exercise as returned by the remote catalog API.
// Records map 1:1 onto local cache rows.
type ExerciseRecord struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	BodyPart         string   `json:"bodyPart"`
	Equipment        string   `json:"equipment"`
	Target           string   `json:"target"`
	GifURL           string   `json:"gifUrl"`
	Instructions     []string `json:"instructions"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
}

// ToCachedExercise converts a wire record to a local cache row.
func (r ExerciseRecord) ToCachedExercise() models.CachedExercise {
	return models.CachedExercise{
		ID:               r.ID,
		Name:             r.Name,
		BodyPart:         r.BodyPart,
		EquipmentName:    r.Equipment,
		Target:           r.Target,
		GifURL:           r.GifURL,
		Instructions:     models.StringList(r.Instructions),
		SecondaryMuscles: models.StringList(r.SecondaryMuscles),
	}
}

// CatalogClient fetches pages of the remote exercise catalog.
// An empty page signals end-of-data.
type CatalogClient interface {
	FetchPage(ctx context.Context, limit, offset int) ([]ExerciseRecord, error)
}

// LikeMutation is one like-state change to replay against the remote
// document store. DocID is deterministic for the key tuple, which is what
// makes replays idempotent: applying the same mutation twice must not
// double-count on the remote side.
type LikeMutation struct {
	DocID     string          `json:"doc_id"`
	UserID    string          `json:"user_id"`
	TargetID  string          `json:"target_id"`
	LikeType  models.LikeType `json:"like_type"`
	PostID    string          `json:"post_id,omitempty"`
	Liked     bool            `json:"liked"`
	Timestamp time.Time       `json:"timestamp"`
}

// MutationForLike builds the remote mutation equivalent to a cached row.
func MutationForLike(like *models.CachedLike) LikeMutation {
	return LikeMutation{
		DocID:     like.ID,
		UserID:    like.UserID,
		TargetID:  like.TargetID,
		LikeType:  like.LikeType,
		PostID:    like.PostID,
		Liked:     like.IsLiked,
		Timestamp: like.Timestamp,
	}
}

// LikeStore applies like mutations to the remote source of truth.
type LikeStore interface {
	// Apply sets or removes the like document identified by m.DocID.
	// Implementations must be idempotent per document id.
	Apply(ctx context.Context, m LikeMutation) error
}
