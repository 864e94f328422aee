// Package storage provides SQLite-based persistence for finished sessions
// and per-game scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/games/snake"
	"github.com/vovakirdan/mindgym/internal/games/tetris"
	"github.com/vovakirdan/mindgym/internal/session"
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one game's result within a session. For the falling-block
// game Score is cleared lines, for snake it is food eaten; both have no
// Total.
type ScoreEntry struct {
	ID        int64
	SessionID string
	GameID    string
	Score     int
	Total     int
	CreatedAt time.Time
}

// SessionRecord is a stored session summary.
type SessionRecord struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	Score      int
	Total      int
	Lines      int
	SnakeScore int
	Games      []string
	Settings   string // link-encoded settings
	CreatedAt  time.Time
}

// Accuracy is Score/Total, 0 when nothing was scored.
func (r SessionRecord) Accuracy() float64 {
	return core.Score{Score: r.Score, Total: r.Total}.Accuracy()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			snake_score INTEGER NOT NULL DEFAULT 0,
			games TEXT NOT NULL,
			settings TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_session ON scores(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult implements session.ResultSaver. It stores the session summary
// and one score row per enabled game in a single transaction.
func (s *Store) SaveResult(r session.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(
		`INSERT INTO sessions
		 (id, started_at, duration_ms, score, total, lines, snake_score, games, settings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Started.UnixMilli(),
		r.Duration.Milliseconds(),
		r.Score.Score,
		r.Score.Total,
		r.Lines,
		r.SnakeScore,
		strings.Join(r.Games, ","),
		r.Settings,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}

	for _, gameID := range r.Games {
		var sc core.Score
		switch gameID {
		case tetris.ID:
			sc.Score = r.Lines
		case snake.ID:
			sc.Score = r.SnakeScore
		default:
			sc = r.GameScores[gameID]
		}
		if _, err := tx.Exec(
			"INSERT INTO scores (session_id, game_id, score, total) VALUES (?, ?, ?, ?)",
			r.ID, gameID, sc.Score, sc.Total,
		); err != nil {
			return fmt.Errorf("storage: cannot save score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return nil
}

// Ensure Store implements ResultSaver
var _ session.ResultSaver = (*Store)(nil)

const sessionColumns = `id, started_at, duration_ms, score, total, lines, snake_score, games, settings, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionRecord, error) {
	var r SessionRecord
	var startedMs, durationMs int64
	var games string
	var createdAt any
	if err := row.Scan(
		&r.ID,
		&startedMs,
		&durationMs,
		&r.Score,
		&r.Total,
		&r.Lines,
		&r.SnakeScore,
		&games,
		&r.Settings,
		&createdAt,
	); err != nil {
		return r, err
	}
	r.StartedAt = time.UnixMilli(startedMs)
	r.Duration = time.Duration(durationMs) * time.Millisecond
	if games != "" {
		r.Games = strings.Split(games, ",")
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// SessionByID retrieves a session by its ID. Returns nil if not found.
func (s *Store) SessionByID(id string) (*SessionRecord, error) {
	r, err := scanSession(s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &r, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var results []SessionRecord
	for rows.Next() {
		r, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, game_id, score, total, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.GameID, &e.Score, &e.Total, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	Answers    int64 // sum of totals, scored games only
	LastPlayed time.Time
}

// Accuracy is TotalScore/Answers for scored games, 0 otherwise.
func (g GameStats) Accuracy() float64 {
	if g.Answers == 0 {
		return 0
	}
	return float64(g.TotalScore) / float64(g.Answers)
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(SUM(total), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.Answers)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), SUM(total), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var g GameStats
		var lastPlayed any
		if err := rows.Scan(&g.GameID, &g.GamesCount, &g.HighScore, &g.AvgScore, &g.TotalScore, &g.Answers, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		g.LastPlayed = parseTime(lastPlayed)
		stats[g.GameID] = &g
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime reads a DATETIME column, which the driver returns either as
// time.Time or as text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
