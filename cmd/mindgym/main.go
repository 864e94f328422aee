// mindgym is a terminal cognitive-training session: falling blocks, snake,
// dual N-back, PASAT and dot counting played at once, with cross-game
// penalties and a local history of finished sessions.
//
// Usage:
//
//	mindgym play             - Start a session with the saved settings
//	mindgym menu             - Pick games and timers interactively
//	mindgym list             - List available games
//	mindgym link             - Print or decode a settings link
//	mindgym scores           - Show recent sessions and per-game stats
//	mindgym serve            - Start SSH server for remote sessions
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible sessions
//	--db <path>         - Set database path (default: ~/.mindgym/history.db)
//	--config <path>     - Read settings from a YAML file
//	--settings <blob>   - Use settings from a link blob
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgym/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/mindgym/internal/games/counting"
	_ "github.com/vovakirdan/mindgym/internal/games/nback"
	_ "github.com/vovakirdan/mindgym/internal/games/pasat"
	_ "github.com/vovakirdan/mindgym/internal/games/snake"
	_ "github.com/vovakirdan/mindgym/internal/games/tetris"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagSettings string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mindgym",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mindgym",
	Short: "MindGym - several brain-training games at once in your terminal",
	Long: `MindGym runs several training games side by side. Mistakes in the
memory and arithmetic games push garbage lines into the falling blocks,
and clearing blocks restarts the snake.

Available commands:
  play     - Start a session right away
  menu     - Choose games, timers and levels interactively
  list     - Show all available games
  link     - Print or decode a settings link
  scores   - View recent sessions and per-game stats
  serve    - Start SSH server for remote sessions

Examples:
  mindgym play
  mindgym play --settings eyJ0ZXRyaXMiOnsi...
  mindgym menu --db ./history.db
  mindgym serve --ssh :2222
  mindgym scores`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyEnv,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mindgym/history.db", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Settings link or blob (overrides --config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyEnv fills flags the user did not set from MINDGYM_* variables and
// configures the logger.
func applyEnv(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("db") && env.DB != "" {
		flagDBPath = env.DB
	}
	if !flags.Changed("seed") && env.Seed != 0 {
		flagSeed = env.Seed
	}
	if !flags.Changed("settings") && env.Settings != "" {
		flagSettings = env.Settings
	}
	if !flags.Changed("log-level") && env.LogLevel != "" {
		flagLogLevel = env.LogLevel
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	return nil
}

// loadSettings resolves the session settings: a link blob wins over a YAML
// file, which wins over the saved user settings and the defaults.
func loadSettings() (config.Settings, error) {
	if flagSettings != "" {
		settings, ok := config.Decode(flagSettings)
		if !ok {
			logger.Warn("could not decode settings link, using defaults")
		}
		return settings, nil
	}
	return config.Load(flagConfig)
}
