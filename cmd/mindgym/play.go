package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mindgym/internal/config"
	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/platform/tui"
	"github.com/vovakirdan/mindgym/internal/session"
	"github.com/vovakirdan/mindgym/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a training session",
	Long: `Start a session with the saved settings, a YAML file (--config) or a
settings link (--settings). The session ends when you quit; the result is
stored in the history database.

Controls:
  a/d        - Move blocks left/right
  s          - Soft drop
  w/q        - Rotate clockwise/counter-clockwise
  Space      - Hard drop
  r          - Restart blocks
  Arrows     - Steer the snake
  h/j/k/l    - N-back: position/color/icon/number match
  0-9        - PASAT and counting answers
  ?          - Toggle full help
  Esc/Ctrl+C - End the session

Examples:
  mindgym play
  mindgym play --config ./settings.yaml
  mindgym play --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: enable one in the menu or the settings file", err)
	}

	// Open history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		store = nil
	}

	result, runErr := playSession(settings, store)

	// Close store before reporting
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("error running session: %w", runErr)
	}
	if result != nil {
		fmt.Println(tui.Summary(*result))
	}
	return nil
}

// playSession runs one session to completion. store may be nil, in which
// case the result is not recorded.
func playSession(settings config.Settings, store *storage.Store) (*session.Result, error) {
	sess := session.New(settings, core.NewRand(flagSeed), time.Now(), session.WithLogger(logger))
	logger.Debug("session started", "session", sess.ID, "games", settings.EnabledGames())

	opts := []tui.ModelOption{tui.WithModelLogger(logger)}
	if store != nil {
		opts = append(opts, tui.WithSaver(store))
	}
	return tui.Run(sess, opts...)
}

// terminalSize returns the current terminal size, or 80x24 when stdout is
// not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
