package telemetry

import (
	"runtime"

	"github.com/asteroid-belt/repcache/pkg/version"
)

// Event names.
const (
	EventAppStarted         = "app_started"
	EventAppExited          = "app_exited"
	EventCLICommandExecuted = "cli_command_executed"
	EventCLIErrorOccurred   = "cli_error_occurred"
	EventCatalogSynced      = "catalog_synced"
	EventCatalogSyncFailed  = "catalog_sync_failed"
	EventLikeToggled        = "like_toggled"
	EventPendingLikesSynced = "pending_likes_synced"
	EventExerciseSaved      = "exercise_saved"
	EventExercisesFiltered  = "exercises_filtered"
)

// baseProperties returns properties attached to every event.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"app_version": version.Short(),
		"os":          runtime.GOOS,
		"arch":        runtime.GOARCH,
	}
}

func (c *posthogClient) track(event string, properties map[string]interface{}) {
	props := baseProperties()
	for k, v := range properties {
		props[k] = v
	}
	c.Track(event, props)
}

// TrackAppStarted records a process start.
func (c *posthogClient) TrackAppStarted(mode string, cacheReady bool, exerciseCount int64) {
	c.track(EventAppStarted, map[string]interface{}{
		"mode":           mode,
		"cache_ready":    cacheReady,
		"exercise_count": exerciseCount,
	})
}

// TrackAppExited records a process exit.
func (c *posthogClient) TrackAppExited(mode string, sessionDurationMs int64) {
	c.track(EventAppExited, map[string]interface{}{
		"mode":                mode,
		"session_duration_ms": sessionDurationMs,
	})
}

// TrackCLICommandExecuted records one CLI command run.
func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	c.track(EventCLICommandExecuted, map[string]interface{}{
		"command_name": commandName,
		"has_flags":    hasFlags,
		"duration_ms":  durationMs,
	})
}

// TrackCLIError records a CLI command failure by error class.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	c.track(EventCLIErrorOccurred, map[string]interface{}{
		"command_name": commandName,
		"error_type":   errorType,
	})
}

// TrackCatalogSynced records a completed catalog download.
func (c *posthogClient) TrackCatalogSynced(exerciseCount int, forced bool, durationMs int64) {
	c.track(EventCatalogSynced, map[string]interface{}{
		"exercise_count": exerciseCount,
		"forced":         forced,
		"duration_ms":    durationMs,
	})
}

// TrackCatalogSyncFailed records an aborted catalog download.
func (c *posthogClient) TrackCatalogSyncFailed(page int) {
	c.track(EventCatalogSyncFailed, map[string]interface{}{
		"failed_page": page,
	})
}

// TrackLikeToggled records a like toggle (never the target id).
func (c *posthogClient) TrackLikeToggled(likeType string, liked bool) {
	c.track(EventLikeToggled, map[string]interface{}{
		"like_type": likeType,
		"liked":     liked,
	})
}

// TrackPendingLikesSynced records a startup sync pass.
func (c *posthogClient) TrackPendingLikesSynced(attempted, synced, failed int) {
	c.track(EventPendingLikesSynced, map[string]interface{}{
		"attempted": attempted,
		"synced":    synced,
		"failed":    failed,
	})
}

// TrackExerciseSaved records a local bookmark toggle.
func (c *posthogClient) TrackExerciseSaved(saved bool) {
	c.track(EventExerciseSaved, map[string]interface{}{
		"saved": saved,
	})
}

// TrackExercisesFiltered records a filtered catalog view.
func (c *posthogClient) TrackExercisesFiltered(facetCount, resultCount int) {
	c.track(EventExercisesFiltered, map[string]interface{}{
		"facet_count":  facetCount,
		"result_count": resultCount,
	})
}

// No-op implementations.

func (c *noopClient) TrackAppStarted(mode string, cacheReady bool, exerciseCount int64)   {}
func (c *noopClient) TrackAppExited(mode string, sessionDurationMs int64)                 {}
func (c *noopClient) TrackCLICommandExecuted(commandName string, hasFlags bool, d int64)  {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                         {}
func (c *noopClient) TrackCatalogSynced(exerciseCount int, forced bool, durationMs int64) {}
func (c *noopClient) TrackCatalogSyncFailed(page int)                                     {}
func (c *noopClient) TrackLikeToggled(likeType string, liked bool)                        {}
func (c *noopClient) TrackPendingLikesSynced(attempted, synced, failed int)               {}
func (c *noopClient) TrackExerciseSaved(saved bool)                                       {}
func (c *noopClient) TrackExercisesFiltered(facetCount, resultCount int)                  {}
