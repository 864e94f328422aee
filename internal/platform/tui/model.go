package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mindgym/internal/games/snake"
	"github.com/vovakirdan/mindgym/internal/games/tetris"
	"github.com/vovakirdan/mindgym/internal/session"
)

// frameInterval is how often the round progress bar is redrawn when no
// game timer causes a render.
const frameInterval = 100 * time.Millisecond

// frameMsg redraws the progress bar.
type frameMsg struct{ gen uint64 }

// Model is the Bubble Tea model for a running session.
type Model struct {
	sess  *session.Session
	saver session.ResultSaver
	log   *log.Logger
	now   func() time.Time

	timers      *timers
	tetrisDelay time.Duration

	keys     KeyMap
	help     help.Model
	progress progress.Model

	width  int
	height int
	notice string // last cross-game event, for the status line

	result   *session.Result
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithSaver persists the session result when the session ends.
func WithSaver(saver session.ResultSaver) ModelOption {
	return func(m *Model) {
		m.saver = saver
	}
}

// WithModelLogger sets the logger for storage warnings.
func WithModelLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// withClock overrides the wall clock.
func withClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// NewModel creates a model driving sess.
func NewModel(sess *session.Session, opts ...ModelOption) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		sess:     sess,
		log:      log.New(io.Discard),
		now:      time.Now,
		timers:   &timers{},
		keys:     NewKeyMap(sess.Settings),
		help:     h,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.tetrisDelay = sess.TetrisDelay()
	return m
}

// Init arms the timers of the enabled games.
func (m Model) Init() tea.Cmd {
	s := m.sess.Settings
	var cmds []tea.Cmd
	if s.Tetris.Enabled {
		cmds = append(cmds, m.timers.arm(TimerTetris, m.tetrisDelay))
	}
	if s.Snake.Enabled {
		cmds = append(cmds, m.timers.arm(TimerSnake, m.sess.SnakeDelay()))
	}
	// Snake failures are charged at round boundaries too.
	if s.NBack.Enabled || s.Pasat.Enabled || s.Counting.Enabled || (s.Snake.Enabled && s.Tetris.Enabled) {
		cmds = append(cmds, m.timers.arm(TimerRound, m.sess.Window()), m.frame())
	}
	return tea.Batch(cmds...)
}

// armTetris re-arms gravity with the current adaptive delay.
func (m *Model) armTetris() tea.Cmd {
	m.tetrisDelay = m.sess.TetrisDelay()
	return m.timers.arm(TimerTetris, m.tetrisDelay)
}

func (m Model) frame() tea.Cmd {
	gen := m.timers.gen[TimerRound]
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-20, 10), 60)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case frameMsg:
		if m.quitting || msg.gen != m.timers.gen[TimerRound] {
			return m, nil
		}
		return m, m.frame()
	}

	return m, nil
}

// handleKey dispatches a key press to the session.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch in := m.keys.Map(msg).(type) {
	case QuitIntent:
		return m.finish()

	case HelpIntent:
		m.help.ShowAll = !m.help.ShowAll

	case TetrisIntent:
		m.note(m.sess.ApplyTetris(in.Action))
		if m.sess.TetrisDelay() != m.tetrisDelay {
			return m, m.armTetris()
		}

	case SnakeIntent:
		m.sess.MoveSnake(in.Dir)

	case NBackIntent:
		m.sess.SubmitNBack(in.Modality, m.now())

	case DigitIntent:
		m.sess.SubmitDigit(in.Digit, m.now())
	}

	return m, nil
}

// handleTick advances the game a timer belongs to and re-arms it.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if m.quitting || !m.timers.accept(msg) {
		return m, nil
	}

	switch msg.Timer {
	case TimerTetris:
		m.note(m.sess.ApplyTetris(tetris.Tick{}))
		return m, m.armTetris()

	case TimerSnake:
		m.note(m.sess.TickSnake(msg.Time))
		return m, m.timers.arm(TimerSnake, m.sess.SnakeDelay())

	case TimerRound:
		m.note(m.sess.Round(msg.Time))
		return m, tea.Batch(m.timers.arm(TimerRound, m.sess.Window()), m.frame())
	}

	return m, nil
}

// note records the most visible event for the status line.
func (m *Model) note(events []session.Event) {
	for _, e := range events {
		switch e := e.(type) {
		case session.PenaltyApplied:
			m.notice = fmt.Sprintf("+%d line: %s", e.Lines, e.Reason)
		case session.SnakeRestarted:
			m.notice = fmt.Sprintf("snake restarted: %s", e.Reason)
		case session.TetrisMilestone:
			m.notice = fmt.Sprintf("%d lines cleared", e.Lines)
		}
	}
}

// finish stops every timer and saves the result once.
func (m Model) finish() (tea.Model, tea.Cmd) {
	m.timers.cancelAll()
	m.quitting = true

	r := m.sess.Result(m.now())
	m.result = &r
	if m.saver != nil {
		if err := m.saver.SaveResult(r); err != nil {
			m.log.Warn("could not save session", "session", r.ID, "error", err)
		}
	}
	return m, tea.Quit
}

// Result returns the session summary once the session has ended.
func (m Model) Result() *session.Result {
	return m.result
}

// IsQuitting returns true once the session has ended.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.sess.Settings
	var b strings.Builder

	header := fmt.Sprintf("MINDGYM  score %s", formatScore(m.sess.Score()))
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	if s.NBack.Enabled || s.Pasat.Enabled || s.Counting.Enabled {
		b.WriteString(m.progress.ViewAs(m.sess.Progress(m.now())))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var boards []string
	if s.Tetris.Enabled {
		boards = append(boards, renderTetris(m.sess.Tetris))
	}
	if s.Snake.Enabled {
		boards = append(boards, renderSnake(m.sess.Snake))
	}
	var tests []string
	if s.NBack.Enabled {
		tests = append(tests, renderNBack(m.sess.NBack))
	}
	if s.Pasat.Enabled {
		tests = append(tests, renderPasat(m.sess.Pasat))
	}
	if s.Counting.Enabled {
		tests = append(tests, renderCounting(m.sess.Counting))
	}
	if len(tests) > 0 {
		boards = append(boards, lipgloss.JoinVertical(lipgloss.Left, tests...))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boards...))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(badStyle.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Summary is a one-line description of a finished session.
func Summary(r session.Result) string {
	parts := []string{"score " + formatScore(r.Score)}
	for _, id := range r.Games {
		switch id {
		case tetris.ID:
			parts = append(parts, fmt.Sprintf("lines %d", r.Lines))
		case snake.ID:
			parts = append(parts, fmt.Sprintf("snake %d", r.SnakeScore))
		}
	}
	parts = append(parts, formatDuration(r.Duration))
	return strings.Join(parts, "  ")
}

// Run starts a session program and returns its result once the player
// finishes.
func Run(sess *session.Session, opts ...ModelOption) (*session.Result, error) {
	p := tea.NewProgram(
		NewModel(sess, opts...),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, err := finalAs[Model](finalModel)
	if err != nil {
		return nil, err
	}
	return m.Result(), nil
}

// finalAs asserts the model a program ended with.
func finalAs[T tea.Model](final tea.Model) (T, error) {
	m, ok := final.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("tui: unexpected final model %T", final)
	}
	return m, nil
}
