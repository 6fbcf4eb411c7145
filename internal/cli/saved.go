package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <exercise-id>",
	Short: "Toggle the local bookmark on a cached exercise",
	Long: `Toggle the local bookmark on one cached exercise.

This is purely local state with no remote counterpart; bookmarks
survive catalog refreshes.`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List locally bookmarked exercises",
	Args:  cobra.NoArgs,
	RunE:  runSaved,
}

func runSave(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return trackCLIError("save", err)
	}
	defer func() { _ = app.Close() }()

	saved, err := app.catalog.ToggleExerciseSaveLocally(args[0])
	if err != nil {
		return trackCLIError("save", err)
	}
	telemetryClient.TrackExerciseSaved(saved)

	if saved {
		fmt.Printf("Saved exercise %s.\n", args[0])
	} else {
		fmt.Printf("Removed exercise %s from saved.\n", args[0])
	}
	return nil
}

func runSaved(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return trackCLIError("saved", err)
	}
	defer func() { _ = app.Close() }()

	saved, err := app.db.GetSavedExercises()
	if err != nil {
		return trackCLIError("saved", err)
	}

	if len(saved) == 0 {
		fmt.Println("No saved exercises. Bookmark one with: repcache save <exercise-id>")
		return nil
	}

	for _, e := range saved {
		printExercise(e)
	}
	fmt.Printf("\n%d saved exercises\n", len(saved))
	return nil
}
