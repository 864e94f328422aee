package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgym/internal/config"
	"github.com/vovakirdan/mindgym/internal/platform/tui"
	"github.com/vovakirdan/mindgym/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Choose games and timers, then play",
	Long: `Start MindGym in interactive menu mode.

Toggle games, adjust their timers and levels, then press Enter to start.
After a session ends, you return to the menu with the same settings.
Settings chosen in the menu are saved to ~/.mindgym/settings.yaml unless
--config or --settings was given.

Controls:
  Up/Down/j/k  - Navigate
  Space/x      - Toggle game
  Left/Right   - Faster/slower timer
  [ / ]        - Lower/raise level
  c/i/n        - Toggle N-back colors/icons/numbers
  Enter        - Start session
  Tab          - History
  Q            - Quit

Examples:
  mindgym menu
  mindgym menu --db ./history.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		logger.Warn("could not load settings, using defaults", "error", err)
		settings = config.DefaultSettings()
	}

	// Open history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	width, height := terminalSize()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(settings, width, height)
		if err != nil {
			return err
		}
		settings = menuResult.Settings

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsHistory {
			var history tui.HistoryStore
			if store != nil {
				history = store
			}
			goBack, err := tui.RunHistory(history, width, height)
			if err != nil {
				logger.Error("history screen failed", "error", err)
			}
			if goBack {
				continue // Back to menu
			}
			return nil
		}

		if !menuResult.Start {
			return nil
		}

		saveMenuSettings(settings)

		result, err := playSession(settings, store)
		if err != nil {
			logger.Error("session failed", "error", err)
			continue
		}
		if result != nil {
			fmt.Println(tui.Summary(*result))
		}

		// Loop back to menu
	}
}

// saveMenuSettings stores the menu choice as the user's settings, unless
// the settings came from an explicit file or link.
func saveMenuSettings(settings config.Settings) {
	if flagConfig != "" || flagSettings != "" {
		return
	}
	path := config.UserSettingsPath()
	if path == "" {
		return
	}
	if err := config.Save(path, settings); err != nil {
		logger.Warn("could not save settings", "path", path, "error", err)
	}
}
