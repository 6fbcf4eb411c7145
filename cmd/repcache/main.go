// repcache - Offline cache & sync engine for the Rep fitness app.
//
// Mirrors the remote exercise catalog into a local SQLite cache and
// keeps optimistic per-user like state in sync with the backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/repcache/internal/cli"
	"github.com/asteroid-belt/repcache/internal/config"
	"github.com/asteroid-belt/repcache/internal/db"
	"github.com/asteroid-belt/repcache/internal/log"
	"github.com/asteroid-belt/repcache/internal/models"
	"github.com/asteroid-belt/repcache/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Load config and open the database for the persistent tracking ID.
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	if err := log.Init(config.GetPaths(cfg).LogDir); err != nil {
		os.Exit(1)
	}
	defer func() {
		_ = log.Close()
	}()

	database, err := db.New(db.DefaultConfig(config.GetPaths(cfg).Database))
	if err != nil {
		os.Exit(1)
	}
	defer func() {
		_ = database.Close()
	}()

	telemetryClient := telemetry.New(database)
	defer telemetryClient.Close()

	cacheReady, _ := database.GetBoolState(models.StateInitialExerciseDownloadComplete)
	exerciseCount, _ := database.CountExercises()
	telemetryClient.TrackAppStarted("cli", cacheReady, exerciseCount)

	if err := cli.Execute(ctx, telemetryClient); err != nil {
		os.Exit(1)
	}
}
