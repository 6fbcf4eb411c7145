package cli

import (
	"context"
	"fmt"

	"github.com/asteroid-belt/repcache/internal/catalog"
	"github.com/asteroid-belt/repcache/internal/config"
	"github.com/asteroid-belt/repcache/internal/db"
	"github.com/asteroid-belt/repcache/internal/likes"
	"github.com/asteroid-belt/repcache/internal/remote"
	"github.com/asteroid-belt/repcache/internal/syncer"
)

// app bundles the wired-up components a CLI command needs.
type app struct {
	cfg     *config.Config
	db      *db.DB
	likes   *likes.Repository
	catalog *catalog.Manager
	syncer  *syncer.Coordinator
}

// openApp loads config, opens the local store, and wires the remote
// clients. Callers must Close().
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	likeStore := remote.NewHTTPLikeStore(cfg.API.BaseURL, cfg.API.AuthToken, cfg.API.RateLimit)
	catalogClient := remote.NewHTTPCatalog(cfg.API.BaseURL, cfg.API.AuthToken, cfg.API.RateLimit)

	likeRepo := likes.New(database, likeStore)

	return &app{
		cfg:     cfg,
		db:      database,
		likes:   likeRepo,
		catalog: catalog.New(database, catalogClient, cfg.Sync.PageSize),
		syncer:  syncer.New(likeRepo, telemetryClient),
	}, nil
}

// syncOnStartup flushes pending like mutations once per process.
// Requires a resolved user identity; a missing identity is not an error,
// the sync just waits for the next authenticated start.
func (a *app) syncOnStartup(ctx context.Context) {
	if a.cfg.API.UserID == "" {
		return
	}
	_ = a.syncer.Run(ctx)
}

// Close waits for in-flight remote writes and releases the local store.
func (a *app) Close() error {
	a.likes.Wait()
	return a.db.Close()
}
