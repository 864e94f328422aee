package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mindgym/internal/config"
	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/session"
)

var t0 = time.UnixMilli(1_700_000_000_000)

type fakeSaver struct {
	saved []session.Result
	err   error
}

func (f *fakeSaver) SaveResult(r session.Result) error {
	f.saved = append(f.saved, r)
	return f.err
}

// newTestModel returns an initialized model for falling blocks and PASAT.
func newTestModel(t *testing.T, saver session.ResultSaver) Model {
	t.Helper()
	settings := config.DefaultSettings().Toggle("nback").Toggle("pasat")
	settings.Pasat.N = 1
	sess := session.New(settings, core.NewRand(1), t0, session.WithID("test"))

	m := NewModel(sess, WithSaver(saver), withClock(func() time.Time { return t0.Add(time.Minute) }))
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() returned nil command")
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelRoundTick(t *testing.T) {
	m := newTestModel(t, nil)

	tick := TickMsg{Timer: TimerRound, Gen: m.timers.gen[TimerRound], Time: t0.Add(3 * time.Second)}
	m, cmd := update(t, m, tick)

	if cmd == nil {
		t.Error("round tick should re-arm the timer")
	}
	if len(m.sess.Pasat.Stack) != 1 {
		t.Errorf("PASAT stack = %v, expected one number", m.sess.Pasat.Stack)
	}
	if m.timers.accept(tick) {
		t.Error("handled tick should be stale after re-arming")
	}
}

func TestModelDropsStaleTick(t *testing.T) {
	m := newTestModel(t, nil)

	stale := TickMsg{Timer: TimerRound, Gen: m.timers.gen[TimerRound] - 1, Time: t0.Add(3 * time.Second)}
	m, cmd := update(t, m, stale)

	if cmd != nil {
		t.Error("stale tick should not re-arm")
	}
	if len(m.sess.Pasat.Stack) != 0 {
		t.Error("stale tick should not reach the session")
	}
}

func TestModelTetrisTick(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := update(t, m, TickMsg{Timer: TimerTetris, Gen: m.timers.gen[TimerTetris], Time: t0})
	if cmd == nil {
		t.Error("gravity tick should re-arm the timer")
	}
	if m.sess.Tetris.Piece == nil {
		t.Error("first gravity tick should spawn a piece")
	}
}

func TestModelKeysReachSession(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, TickMsg{Timer: TimerRound, Gen: m.timers.gen[TimerRound], Time: t0.Add(3 * time.Second)})

	m, _ = update(t, m, runeKey('4'))
	if m.sess.Pasat.Pending == nil || m.sess.Pasat.Pending.Value != 4 {
		t.Errorf("PASAT pending = %+v, expected 4", m.sess.Pasat.Pending)
	}

	m, _ = update(t, m, runeKey('a'))
	if m.sess.Tetris.Piece == nil {
		t.Error("falling-block key should reach the game")
	}

	m, _ = update(t, m, runeKey('?'))
	if !m.help.ShowAll {
		t.Error("? should toggle full help")
	}
}

func TestModelQuitSavesOnce(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(t, saver)
	tetrisGen := m.timers.gen[TimerTetris]

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if !m.IsQuitting() || m.Result() == nil {
		t.Fatal("quit should end the session with a result")
	}
	if m.Result().Duration != time.Minute {
		t.Errorf("duration = %v, expected 1m", m.Result().Duration)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if len(saver.saved) != 1 {
		t.Errorf("saved %d results, expected 1", len(saver.saved))
	}

	if _, cmd := update(t, m, TickMsg{Timer: TimerTetris, Gen: tetrisGen}); cmd != nil {
		t.Error("timers should be cancelled after quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quit")
	}
}

func TestModelSaveFailureKeepsResult(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	m := newTestModel(t, saver)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.Result() == nil || m.Result().ID != "test" {
		t.Error("a failed save should still return the result")
	}
}

func TestModelPenaltyNotice(t *testing.T) {
	m := newTestModel(t, nil)
	for i := 1; i <= 2; i++ {
		m, _ = update(t, m, TickMsg{
			Timer: TimerRound,
			Gen:   m.timers.gen[TimerRound],
			Time:  t0.Add(time.Duration(i) * 3 * time.Second),
		})
	}

	if !strings.Contains(m.notice, "line") {
		t.Errorf("notice = %q, expected a penalty notice", m.notice)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()

	for _, want := range []string{"MINDGYM", "Falling Blocks", "PASAT"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if strings.Contains(view, "Snake") {
		t.Error("View() should not draw disabled games")
	}
}

func TestSummary(t *testing.T) {
	r := session.Result{
		Score:      core.Score{Score: 7, Total: 10},
		Lines:      6,
		SnakeScore: 2,
		Duration:   125 * time.Second,
		Games:      []string{"tetris", "snake", "nback"},
	}
	expected := "score 7/10 (70%)  lines 6  snake 2  2:05"
	if got := Summary(r); got != expected {
		t.Errorf("Summary() = %q, expected %q", got, expected)
	}

	r.Games = []string{"nback"}
	if got := Summary(r); got != "score 7/10 (70%)  2:05" {
		t.Errorf("Summary() = %q, expected no block or snake scores", got)
	}
}

func TestFinalAs(t *testing.T) {
	m := newTestModel(t, nil)

	got, err := finalAs[Model](m)
	if err != nil || got.sess != m.sess {
		t.Errorf("finalAs[Model]() = %v, expected the same model", err)
	}

	if _, err := finalAs[Model](NewMenuModel(config.DefaultSettings(), 80, 24)); err == nil {
		t.Error("finalAs[Model]() should reject a menu model")
	}
}
