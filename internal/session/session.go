// Package session composes the enabled training games into one session.
//
// The coordinator owns each game's state and is the only place where games
// affect one another. Cross-game effects are expressed as actions sent to
// the affected game's reducer:
//
//   - a wrong or missing answer, or a snake failure, pushes one garbage line
//     into the falling-block board at the next round boundary;
//   - every tetris.MilestoneLines cleared lines restart the snake.
//
// A Session is not safe for concurrent use. The TUI drives it from a single
// Bubble Tea update loop.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/mindgym/internal/config"
	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/games/counting"
	"github.com/vovakirdan/mindgym/internal/games/nback"
	"github.com/vovakirdan/mindgym/internal/games/pasat"
	"github.com/vovakirdan/mindgym/internal/games/snake"
	"github.com/vovakirdan/mindgym/internal/games/tetris"
)

// MinWindow is the shortest round window.
const MinWindow = 2000 * time.Millisecond

// Snake length after a coordinator restart.
const restartLength = 3

// PenaltyLines is the number of garbage lines per penalty.
const PenaltyLines = 1

// Session is a running set of games sharing one settings record.
type Session struct {
	ID       string
	Settings config.Settings
	Started  time.Time

	Tetris   tetris.State
	Snake    snake.State
	NBack    nback.State
	Pasat    pasat.State
	Counting counting.State

	rng core.Rand
	log *log.Logger

	snakeFailed  bool      // snake failure since the last boundary
	lastBoundary time.Time // time of the last Round
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for coordinator debug events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		s.ID = id
	}
}

// New starts a session. Settings are normalized and then fixed for the
// session's lifetime.
func New(settings config.Settings, rng core.Rand, now time.Time, opts ...Option) *Session {
	settings = settings.Normalize()
	nb := settings.NBack

	s := &Session{
		ID:       uuid.NewString(),
		Settings: settings,
		Started:  now,
		Tetris:   tetris.Initial(),
		Snake:    snake.Initial(snake.DefaultInc),
		NBack:    nback.Initial(nb.N, nback.Modalities(nb.Colors, nb.Icons, nb.Numbers)),
		Pasat:    pasat.Initial(settings.Pasat.N),
		Counting: counting.Initial(settings.Counting.Min, settings.Counting.Max),
		rng:      rng,
		log:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window is the round length: the longest enabled scored timer, never less
// than MinWindow.
func (s *Session) Window() time.Duration {
	w := MinWindow
	if s.Settings.NBack.Enabled {
		w = max(w, config.Millis(s.Settings.NBack.Timer))
	}
	if s.Settings.Pasat.Enabled {
		w = max(w, config.Millis(s.Settings.Pasat.Timer))
	}
	if s.Settings.Counting.Enabled {
		w = max(w, config.Millis(s.Settings.Counting.Timer))
	}
	return w
}

// TetrisDelay is the current gravity interval.
func (s *Session) TetrisDelay() time.Duration {
	return tetris.Delay(config.Millis(s.Settings.Tetris.Timer), s.Tetris.Lines)
}

// SnakeDelay is the snake step interval.
func (s *Session) SnakeDelay() time.Duration {
	return config.Millis(s.Settings.Snake.Timer)
}

// Score sums correct answers over all enabled scored games.
func (s *Session) Score() core.Score {
	var total core.Score
	for _, sc := range s.GameScores() {
		total = total.Add(sc)
	}
	return total
}

// GameScores returns the score of each enabled scored game by ID.
func (s *Session) GameScores() map[string]core.Score {
	out := make(map[string]core.Score)
	if s.Settings.NBack.Enabled {
		out[nback.ID] = s.NBack.Score()
	}
	if s.Settings.Pasat.Enabled {
		out[pasat.ID] = s.Pasat.Score()
	}
	if s.Settings.Counting.Enabled {
		out[counting.ID] = s.Counting.Score()
	}
	return out
}

// RoundStart is the time of the last round boundary, zero before the first.
func (s *Session) RoundStart() time.Time {
	return s.lastBoundary
}

// Progress is the fraction of the current window that has elapsed, in
// [0, 1].
func (s *Session) Progress(now time.Time) float64 {
	if s.lastBoundary.IsZero() {
		return 0
	}
	p := float64(now.Sub(s.lastBoundary)) / float64(s.Window())
	return min(max(p, 0), 1)
}

// Round closes the current window. It ticks every enabled stack game,
// collects the history entries the tick closed and applies at most one
// penalty. A second call for the same or an earlier instant is a no-op.
func (s *Session) Round(now time.Time) []Event {
	if !s.lastBoundary.IsZero() && !now.After(s.lastBoundary) {
		return nil
	}
	s.lastBoundary = now

	closed, failed := 0, false
	if s.Settings.NBack.Enabled {
		before := len(s.NBack.History)
		s.NBack = nback.Reduce(s.NBack, nback.Tick{Time: now}, s.rng)
		for _, e := range s.NBack.History[before:] {
			closed++
			failed = failed || !e.Correct
		}
	}
	if s.Settings.Pasat.Enabled {
		before := len(s.Pasat.History)
		s.Pasat = pasat.Reduce(s.Pasat, pasat.Tick{Time: now}, s.rng)
		for _, e := range s.Pasat.History[before:] {
			closed++
			failed = failed || !e.Correct
		}
	}
	if s.Settings.Counting.Enabled {
		before := len(s.Counting.History)
		s.Counting = counting.Reduce(s.Counting, counting.Tick{Time: now}, s.rng)
		for _, e := range s.Counting.History[before:] {
			closed++
			failed = failed || !e.Correct
		}
	}

	events := []Event{RoundClosed{Time: now, Entries: closed, Failed: failed}}

	snakeFailed := s.snakeFailed
	s.snakeFailed = false
	if !s.Settings.Tetris.Enabled || s.Tetris.Over || !(failed || snakeFailed) {
		return events
	}

	reason := PenaltyAnswer
	switch {
	case failed && snakeFailed:
		reason = PenaltyBoth
	case snakeFailed:
		reason = PenaltySnake
	}
	s.Tetris = tetris.Reduce(s.Tetris, tetris.Punish{Lines: PenaltyLines}, s.rng)
	s.log.Debug("penalty applied", "session", s.ID, "reason", reason)
	return append(events, PenaltyApplied{Reason: reason, Lines: PenaltyLines})
}

// TickSnake advances the snake. Expired food and game over are recorded
// for the next round's penalty. With the falling-block game enabled, game
// over restarts the snake at once; otherwise it is final.
func (s *Session) TickSnake(now time.Time) []Event {
	if !s.Settings.Snake.Enabled || s.Snake.Over {
		return nil
	}
	s.Snake = snake.Reduce(s.Snake, snake.Tick{Time: now}, s.rng)

	var events []Event
	expired := 0
	if !s.Snake.Over {
		expired = len(s.Snake.ExpiredFood)
	}
	if expired > 0 || s.Snake.Over {
		s.snakeFailed = true
		events = append(events, SnakeFailed{Expired: expired, Over: s.Snake.Over})
	}

	if s.Snake.Over && s.Settings.Tetris.Enabled {
		s.Snake = snake.Reduce(s.Snake, snake.Tick{Time: now, Restart: &snake.Restart{
			Body:      []core.Point{snake.StartPoint},
			ResetFood: true,
			N:         restartLength,
		}}, s.rng)
		s.log.Debug("snake restarted", "session", s.ID, "reason", RestartGameOver)
		events = append(events, SnakeRestarted{Reason: RestartGameOver})
	}
	return events
}

// MoveSnake steers the snake.
func (s *Session) MoveSnake(dir core.Point) {
	if !s.Settings.Snake.Enabled {
		return
	}
	s.Snake = snake.Reduce(s.Snake, snake.Move{Dir: dir}, s.rng)
}

// ApplyTetris applies a falling-block action. Crossing a line milestone
// restarts the snake when it is enabled.
func (s *Session) ApplyTetris(a tetris.Action) []Event {
	if !s.Settings.Tetris.Enabled {
		return nil
	}
	before := s.Tetris.Milestone()
	s.Tetris = tetris.Reduce(s.Tetris, a, s.rng)
	if s.Tetris.Milestone() <= before {
		return nil
	}

	events := []Event{TetrisMilestone{Lines: s.Tetris.Lines}}
	if s.Settings.Snake.Enabled {
		s.Snake = snake.Reduce(s.Snake, snake.Tick{Time: s.Snake.Time, Restart: &snake.Restart{
			N: restartLength,
		}}, s.rng)
		s.log.Debug("snake restarted", "session", s.ID, "reason", RestartMilestone, "lines", s.Tetris.Lines)
		events = append(events, SnakeRestarted{Reason: RestartMilestone})
	}
	return events
}

// SubmitNBack presses an N-back modality key.
func (s *Session) SubmitNBack(modality string, now time.Time) {
	if !s.Settings.NBack.Enabled {
		return
	}
	s.NBack = nback.Reduce(s.NBack, nback.Submit{Value: []string{modality}, Time: now}, s.rng)
}

// SubmitDigit sends a digit answer to PASAT and counting.
func (s *Session) SubmitDigit(d int, now time.Time) {
	if s.Settings.Pasat.Enabled {
		s.Pasat = pasat.Reduce(s.Pasat, pasat.Submit{Value: d, Time: now}, s.rng)
	}
	if s.Settings.Counting.Enabled {
		s.Counting = counting.Reduce(s.Counting, counting.Submit{Value: d, Time: now}, s.rng)
	}
}

// Result summarizes a session for storage.
type Result struct {
	ID         string
	Started    time.Time
	Duration   time.Duration
	Score      core.Score
	GameScores map[string]core.Score
	Lines      int
	SnakeScore int
	Games      []string
	Settings   string // link-encoded settings
}

// ResultSaver persists finished sessions.
type ResultSaver interface {
	SaveResult(Result) error
}

// Result returns the summary of the session as of now.
func (s *Session) Result(now time.Time) Result {
	r := Result{
		ID:         s.ID,
		Started:    s.Started,
		Duration:   now.Sub(s.Started),
		Score:      s.Score(),
		GameScores: s.GameScores(),
		Games:      s.Settings.EnabledGames(),
		Settings:   config.Encode(s.Settings),
	}
	if s.Settings.Tetris.Enabled {
		r.Lines = s.Tetris.Lines
	}
	if s.Settings.Snake.Enabled {
		r.SnakeScore = s.Snake.Score
	}
	return r
}
