package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/repcache/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle  = lipgloss.NewStyle().Faint(true).Width(22)
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show local cache state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return trackCLIError("status", err)
	}
	defer func() { _ = app.Close() }()

	stats, err := app.db.GetStats()
	if err != nil {
		return trackCLIError("status", err)
	}

	complete, err := app.catalog.DownloadComplete()
	if err != nil {
		return trackCLIError("status", err)
	}

	lastCatalog, err := app.db.GetAppState(models.StateLastCatalogSync)
	if err != nil {
		return trackCLIError("status", err)
	}
	lastLikes, err := app.db.GetAppState(models.StateLastLikeSync)
	if err != nil {
		return trackCLIError("status", err)
	}

	fmt.Println(headerStyle.Render("repcache status"))
	fmt.Println()
	printRow("Database", app.db.Path())
	printRow("Catalog downloaded", fmt.Sprintf("%t", complete))
	printRow("Exercises", fmt.Sprintf("%d", stats.TotalExercises))
	printRow("Body parts", fmt.Sprintf("%d", stats.TotalBodyParts))
	printRow("Equipment", fmt.Sprintf("%d", stats.TotalEquipment))
	printRow("Target muscles", fmt.Sprintf("%d", stats.TotalTargets))
	printRow("Saved exercises", fmt.Sprintf("%d", stats.SavedExercises))
	printRow("Pending likes", fmt.Sprintf("%d", stats.PendingLikes))
	printRow("Cache size", fmt.Sprintf("%d bytes", stats.CacheSizeBytes))
	printRow("Last catalog sync", orNever(lastCatalog))
	printRow("Last like sync", orNever(lastLikes))
	return nil
}

func printRow(label, value string) {
	fmt.Printf("%s %s\n", labelStyle.Render(label), value)
}

func orNever(value string) string {
	if value == "" {
		return "never"
	}
	return value
}
