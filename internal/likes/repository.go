// Package likes implements the cached-like repository: a single boolean
// "liked" signal per like tuple that is immediately consistent for the
// caller and eventually consistent with the remote store.
//
// Local writes are optimistic. A toggle flips the cached state at once,
// marked pending, and the remote mutation is replayed asynchronously.
// Remote failures are never surfaced to the caller; the pending flag
// keeps the user's intent until the next sync point.
package likes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asteroid-belt/repcache/internal/db"
	"github.com/asteroid-belt/repcache/internal/log"
	"github.com/asteroid-belt/repcache/internal/models"
	"github.com/asteroid-belt/repcache/internal/remote"
	"github.com/asteroid-belt/repcache/internal/watch"
)

// DefaultRemoteTimeout bounds the detached remote write spawned by a
// toggle. The write runs on a background context so tearing down the
// caller's scope does not abandon it mid-flight.
const DefaultRemoteTimeout = 30 * time.Second

// Repository reconciles cached like state between the local store and
// the remote source of truth.
type Repository struct {
	db    *db.DB
	store remote.LikeStore

	likeHub *watch.Hub[*models.CachedLike]
	listHub *watch.Hub[[]models.CachedLike]

	// mu serializes toggle read-modify-write cycles so two in-process
	// toggles on the same key cannot interleave.
	mu sync.Mutex

	remoteTimeout time.Duration
	wg            sync.WaitGroup
}

// SyncReport summarizes one pending-like sync pass.
type SyncReport struct {
	Attempted int
	Synced    int
	Failed    int
}

// New creates a repository over the local store and remote like store.
func New(database *db.DB, store remote.LikeStore) *Repository {
	return &Repository{
		db:            database,
		store:         store,
		likeHub:       watch.NewHub[*models.CachedLike](),
		listHub:       watch.NewHub[[]models.CachedLike](),
		remoteTimeout: DefaultRemoteTimeout,
	}
}

// IsLiked reports the cached liked state for a tuple. Reads local cache
// only; a missing row means not liked.
func (r *Repository) IsLiked(key models.LikeKey) (bool, error) {
	like, err := r.db.GetLike(key)
	if err != nil {
		return false, fmt.Errorf("get like %s: %w", key.DocumentID(), err)
	}
	return like != nil && like.IsLiked, nil
}

// ToggleLike flips the cached liked state for a tuple and returns the
// new state. The local write is synchronous; the remote mutation is
// replayed in the background and, on failure, retried at the next sync
// point. The local state is never rolled back.
func (r *Repository) ToggleLike(ctx context.Context, key models.LikeKey) (bool, error) {
	r.mu.Lock()
	current, err := r.db.GetLike(key)
	if err != nil {
		r.mu.Unlock()
		return false, fmt.Errorf("toggle like %s: read: %w", key.DocumentID(), err)
	}

	newLiked := !(current != nil && current.IsLiked)
	row := models.NewCachedLike(key, newLiked)
	if err := r.db.UpsertLike(row); err != nil {
		r.mu.Unlock()
		return false, fmt.Errorf("toggle like %s: write: %w", key.DocumentID(), err)
	}
	r.mu.Unlock()

	r.publish(key)

	mutation := remote.MutationForLike(row)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		// Detached context: UI-scope teardown must not cancel the write.
		rctx, cancel := context.WithTimeout(context.Background(), r.remoteTimeout)
		defer cancel()

		if err := r.store.Apply(rctx, mutation); err != nil {
			log.Errorf("like %s: remote write failed, left pending: %v", mutation.DocID, err)
			return
		}
		// Conditional on the liked state: if a newer toggle flipped the
		// row while this write was in flight, confirming the stale write
		// must not clear the newer mutation's pending flag.
		if err := r.db.ClearPending(mutation.DocID, mutation.Liked); err != nil {
			log.Errorf("like %s: clear pending: %v", mutation.DocID, err)
			return
		}
		r.publish(key)
	}()

	return newLiked, nil
}

// RemoveLike hard-deletes the cached row for a tuple. Used for cleanup
// after a confirmed remote deletion.
func (r *Repository) RemoveLike(key models.LikeKey) error {
	if err := r.db.DeleteLike(key); err != nil {
		return fmt.Errorf("remove like %s: %w", key.DocumentID(), err)
	}
	r.publish(key)
	return nil
}

// SyncPendingLikes replays every pending like mutation against the
// remote store, clearing the pending flag on success. Failures are
// logged and left pending for the next sync point; they do not abort
// the pass. Replaying an already-applied mutation is safe because the
// document id is deterministic for the tuple.
func (r *Repository) SyncPendingLikes(ctx context.Context) (SyncReport, error) {
	pending, err := r.db.ListPendingLikes()
	if err != nil {
		return SyncReport{}, fmt.Errorf("list pending likes: %w", err)
	}

	report := SyncReport{Attempted: len(pending)}
	for i := range pending {
		row := &pending[i]
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if err := r.store.Apply(ctx, remote.MutationForLike(row)); err != nil {
			report.Failed++
			log.Errorf("sync like %s: %v", row.ID, err)
			continue
		}
		if err := r.db.ClearPending(row.ID, row.IsLiked); err != nil {
			report.Failed++
			log.Errorf("sync like %s: clear pending: %v", row.ID, err)
			continue
		}
		report.Synced++
		r.publish(row.Key())
	}

	if report.Synced > 0 {
		if err := r.db.SetAppState(models.StateLastLikeSync, time.Now().UTC().Format(time.RFC3339)); err != nil {
			log.Errorf("record like sync time: %v", err)
		}
	}

	return report, nil
}

// ObserveLike streams the cached row for one tuple: the current value
// immediately, then an update on every local change. The stream closes
// when ctx ends.
func (r *Repository) ObserveLike(ctx context.Context, key models.LikeKey) (<-chan *models.CachedLike, error) {
	updates := r.likeHub.Subscribe(ctx, key.DocumentID())

	current, err := r.db.GetLike(key)
	if err != nil {
		return nil, fmt.Errorf("observe like %s: %w", key.DocumentID(), err)
	}

	out := make(chan *models.CachedLike, 1)
	out <- current
	go watch.Forward(ctx, updates, out)
	return out, nil
}

// ObserveTypeLikes streams the list of cached likes for a user and like
// type (optionally scoped to a post): current list immediately, then on
// every change affecting that list.
func (r *Repository) ObserveTypeLikes(ctx context.Context, userID string, likeType models.LikeType, postID string) (<-chan []models.CachedLike, error) {
	updates := r.listHub.Subscribe(ctx, listTopic(userID, likeType, postID))

	current, err := r.db.ListLikesByType(userID, likeType, postID)
	if err != nil {
		return nil, fmt.Errorf("observe %s likes for %s: %w", likeType, userID, err)
	}

	out := make(chan []models.CachedLike, 1)
	out <- current
	go watch.Forward(ctx, updates, out)
	return out, nil
}

// Wait blocks until all in-flight background remote writes finish.
func (r *Repository) Wait() {
	r.wg.Wait()
}

// publish re-emits current state to subscribers affected by a change to
// one key: the single-like stream and every type-list stream the row
// belongs to. A post-scoped row is part of both its post's list and the
// unscoped list for its type, so both topics re-emit.
func (r *Repository) publish(key models.LikeKey) {
	row, err := r.db.GetLike(key)
	if err != nil {
		log.Errorf("publish like %s: %v", key.DocumentID(), err)
		return
	}
	r.likeHub.Publish(key.DocumentID(), row)

	r.publishList(key.UserID, key.Type, key.PostID)
	if key.PostID != "" {
		r.publishList(key.UserID, key.Type, "")
	}
}

func (r *Repository) publishList(userID string, likeType models.LikeType, postID string) {
	list, err := r.db.ListLikesByType(userID, likeType, postID)
	if err != nil {
		log.Errorf("publish %s likes for %s: %v", likeType, userID, err)
		return
	}
	r.listHub.Publish(listTopic(userID, likeType, postID), list)
}

func listTopic(userID string, likeType models.LikeType, postID string) string {
	return userID + "|" + string(likeType) + "|" + postID
}
