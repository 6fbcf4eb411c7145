package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/repcache/internal/catalog"
)

var syncForce bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download the exercise catalog into the local cache",
	Long: `Download the full remote exercise catalog into the local cache.

Pages through the catalog API until an empty page is returned, derives
the filter facets (body part, equipment, target muscle), and commits
everything in one batch. A download that fails partway commits nothing.

If the catalog was already downloaded this is a no-op; pass --force to
refresh anyway. Pending like mutations are flushed first.

Examples:
  repcache sync
  repcache sync --force`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "re-download even if the catalog is already cached")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := openApp()
	if err != nil {
		return trackCLIError("sync", err)
	}
	defer func() { _ = app.Close() }()

	app.syncOnStartup(ctx)

	needed, err := app.catalog.NeedsDownload()
	if err != nil {
		return trackCLIError("sync", err)
	}
	if !needed && !syncForce {
		fmt.Println("Exercise catalog already cached. Use --force to refresh.")
		return nil
	}

	start := time.Now()

	for res := range app.catalog.StreamExerciseData(ctx, syncForce) {
		switch {
		case res.IsLoading():
			fmt.Println("Downloading exercise catalog...")
		case res.IsError():
			var dlErr *catalog.DownloadError
			if errors.As(res.Err, &dlErr) {
				telemetryClient.TrackCatalogSyncFailed(dlErr.Page)
				fmt.Printf("Download aborted on page %d; nothing was cached. Retry with: repcache sync\n", dlErr.Page)
			}
			return trackCLIError("sync", res.Err)
		case res.IsSuccess():
			count := len(res.Data.Exercises)
			telemetryClient.TrackCatalogSynced(count, syncForce, time.Since(start).Milliseconds())
			fmt.Printf("Cached %d exercises in %s.\n", count, time.Since(start).Round(time.Millisecond))
		}
	}
	return nil
}
