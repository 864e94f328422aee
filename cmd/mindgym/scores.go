package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/registry"
	"github.com/vovakirdan/mindgym/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show session history and per-game stats",
	Long: `Without arguments, show the most recent sessions and a summary per game.
With a game ID, show that game's best results.

Examples:
  mindgym scores
  mindgym scores pasat --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening history database: %w", err)
	}
	defer store.Close()

	if len(args) == 1 {
		return printTopScores(store, args[0])
	}
	if err := printRecentSessions(store); err != nil {
		return err
	}
	return printGameStats(store)
}

func printTopScores(store *storage.Store, gameID string) error {
	game, err := registry.Get(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'mindgym list' to see available games)", err)
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("Best results - %s\n", game.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		score := fmt.Sprintf("%d", entry.Score)
		if game.Scored {
			score = formatScore(entry.Score, entry.Total)
		}
		fmt.Printf("  %-4d  %-12s  %s\n", i+1, score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRecentSessions(store *storage.Store) error {
	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving sessions: %w", err)
	}

	fmt.Println("Recent sessions")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'mindgym play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %-12s  %-5s  %-5s  %s\n", "Date", "Time", "Score", "Lines", "Snake", "Games")
	fmt.Printf("  %-16s  %-6s  %-12s  %-5s  %-5s  %s\n", "----", "----", "-----", "-----", "-----", "-----")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-6s  %-12s  %-5d  %-5d  %v\n",
			s.StartedAt.Format("2006-01-02 15:04"),
			formatDuration(s.Duration),
			formatScore(s.Score, s.Total),
			s.Lines,
			s.SnakeScore,
			s.Games,
		)
	}
	fmt.Println()
	return nil
}

func printGameStats(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		return nil
	}

	fmt.Println("Per game")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-6s  %-8s  %s\n", "Game", "Played", "Best", "Average", "Accuracy")
	fmt.Printf("  %-10s  %-6s  %-6s  %-8s  %s\n", "----", "------", "----", "-------", "--------")
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok {
			continue
		}
		accuracy := "-"
		if st.Answers > 0 {
			accuracy = fmt.Sprintf("%.0f%%", st.Accuracy()*100)
		}
		fmt.Printf("  %-10s  %-6d  %-6d  %-8.1f  %s\n", st.GameID, st.GamesCount, st.HighScore, st.AvgScore, accuracy)
	}
	return nil
}

func formatScore(score, total int) string {
	s := core.Score{Score: score, Total: total}
	if s.Total == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d (%.0f%%)", s.Score, s.Total, s.Accuracy()*100)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
