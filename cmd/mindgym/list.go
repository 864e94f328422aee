package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgym/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every training game with its controls.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	settings, err := loadSettings()
	if err != nil {
		logger.Warn("could not load settings", "error", err)
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-3s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "On", "Controls")
	fmt.Printf("  %-*s  %-*s  %-3s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "--", "--------")

	for _, g := range games {
		on := ""
		if settings.Enabled(g.ID) {
			on = "*"
		}
		fmt.Printf("  %-*s  %-*s  %-3s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, on, g.Controls)
	}

	fmt.Println()
	fmt.Println("Run 'mindgym menu' to choose games, or 'mindgym play' to start.")
}
