package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/repcache/internal/catalog"
	"github.com/asteroid-belt/repcache/internal/models"
)

var (
	exercisesQuery     string
	exercisesBodyPart  string
	exercisesTarget    string
	exercisesEquipment string
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	facetStyle = lipgloss.NewStyle().Faint(true)
	savedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List cached exercises, optionally filtered",
	Long: `List exercises from the local cache.

Filters combine with AND: a case-insensitive substring match on name
plus exact matches on the facet selectors. Reads never touch the
network; run 'repcache sync' first to populate the cache.

Examples:
  repcache exercises
  repcache exercises --query squat --body-part Legs
  repcache exercises --equipment "Barbell"`,
	Args: cobra.NoArgs,
	RunE: runExercises,
}

func init() {
	exercisesCmd.Flags().StringVarP(&exercisesQuery, "query", "q", "", "substring match on exercise name")
	exercisesCmd.Flags().StringVar(&exercisesBodyPart, "body-part", "", "exact body part filter")
	exercisesCmd.Flags().StringVar(&exercisesTarget, "target", "", "exact target muscle filter")
	exercisesCmd.Flags().StringVar(&exercisesEquipment, "equipment", "", "exact equipment filter")
}

func runExercises(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return trackCLIError("exercises", err)
	}
	defer func() { _ = app.Close() }()

	complete, err := app.catalog.DownloadComplete()
	if err != nil {
		return trackCLIError("exercises", err)
	}

	data, err := app.catalog.LoadCachedExerciseData()
	if err != nil {
		return trackCLIError("exercises", err)
	}

	if !complete && len(data.Exercises) == 0 {
		fmt.Println("Exercise catalog not downloaded yet. Run: repcache sync")
		return nil
	}

	filtered := catalog.FilterExercises(
		data.Exercises,
		exercisesQuery,
		facetSelector(exercisesBodyPart),
		facetSelector(exercisesTarget),
		facetSelector(exercisesEquipment),
	)

	facetCount := 0
	for _, f := range []string{exercisesBodyPart, exercisesTarget, exercisesEquipment} {
		if f != "" {
			facetCount++
		}
	}
	telemetryClient.TrackExercisesFiltered(facetCount, len(filtered))

	if len(filtered) == 0 {
		fmt.Println("No exercises match.")
		return nil
	}

	for _, e := range filtered {
		printExercise(e)
	}
	fmt.Printf("\n%d of %d exercises\n", len(filtered), len(data.Exercises))
	return nil
}

func printExercise(e models.CachedExercise) {
	marker := "  "
	if e.IsSavedLocally {
		marker = savedStyle.Render("* ")
	}
	fmt.Printf("%s%s  %s\n", marker, nameStyle.Render(e.Name),
		facetStyle.Render(fmt.Sprintf("[%s / %s / %s]  id=%s", e.BodyPart, e.Target, e.EquipmentName, e.ID)))
}

// facetSelector maps an empty flag to "no constraint".
func facetSelector(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
