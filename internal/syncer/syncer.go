// Package syncer runs the startup hook that flushes pending like
// mutations to the remote store once per process lifetime.
package syncer

import (
	"context"
	"sync"

	"github.com/asteroid-belt/repcache/internal/likes"
	"github.com/asteroid-belt/repcache/internal/log"
	"github.com/asteroid-belt/repcache/internal/telemetry"
)

// Coordinator flushes pending like mutations at process start, after
// auth resolves. No retry backoff or background scheduling: likes that
// fail again stay pending until the next process start.
type Coordinator struct {
	likes *likes.Repository
	tel   telemetry.Client
	once  sync.Once
}

// New creates a coordinator. tel may be nil.
func New(repo *likes.Repository, tel telemetry.Client) *Coordinator {
	if tel == nil {
		tel = telemetry.New(nil)
	}
	return &Coordinator{likes: repo, tel: tel}
}

// Run performs the startup sync. Only the first call does work; later
// calls in the same process are no-ops and return the first result.
func (c *Coordinator) Run(ctx context.Context) error {
	var runErr error
	c.once.Do(func() {
		report, err := c.likes.SyncPendingLikes(ctx)
		if err != nil {
			log.Errorf("startup like sync: %v", err)
			runErr = err
			return
		}
		if report.Attempted > 0 {
			log.Printf("startup like sync: %d pending, %d synced, %d failed\n",
				report.Attempted, report.Synced, report.Failed)
		}
		c.tel.TrackPendingLikesSynced(report.Attempted, report.Synced, report.Failed)
	})
	return runErr
}
