package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mindgym/internal/storage"
)

type fakeHistory struct {
	sessions []storage.SessionRecord
	scores   map[string][]storage.ScoreEntry
	err      error
}

func (f fakeHistory) RecentSessions(int) ([]storage.SessionRecord, error) {
	return f.sessions, f.err
}

func (f fakeHistory) TopScores(gameID string, _ int) ([]storage.ScoreEntry, error) {
	return f.scores[gameID], f.err
}

func historyUpdate(t *testing.T, m HistoryModel, msgs ...tea.Msg) HistoryModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		nm, ok := next.(HistoryModel)
		if !ok {
			t.Fatalf("Update() returned %T, expected HistoryModel", next)
		}
		m = nm
	}
	return m
}

func testHistory() fakeHistory {
	return fakeHistory{
		sessions: []storage.SessionRecord{{
			ID:        "s1",
			StartedAt: time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
			Duration:  95 * time.Second,
			Score:     3,
			Total:     4,
			Lines:     6,
			Games:     []string{"tetris", "pasat"},
		}},
		scores: map[string][]storage.ScoreEntry{
			"tetris": {{Score: 12}, {Score: 6}},
			"pasat":  {{Score: 3, Total: 4}},
		},
	}
}

func TestHistorySessionRows(t *testing.T) {
	m := NewHistoryModel(testHistory(), 100, 30)

	if len(m.rows) != 1 {
		t.Fatalf("rows = %d, expected 1", len(m.rows))
	}
	row := m.rows[0]
	tests := []struct {
		column   int
		expected string
	}{
		{0, "Mar 05 10:30"},
		{1, "1:35"},
		{2, "3/4 (75%)"},
		{3, "6"},
		{5, "tetris,pasat"},
	}
	for _, tc := range tests {
		if row[tc.column] != tc.expected {
			t.Errorf("column %d = %q, expected %q", tc.column, row[tc.column], tc.expected)
		}
	}
}

func TestHistoryCyclesViews(t *testing.T) {
	m := NewHistoryModel(testHistory(), 100, 30)

	m = historyUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.views[m.cursor].gameID != "tetris" {
		t.Fatalf("view = %q, expected tetris", m.views[m.cursor].gameID)
	}
	if len(m.rows) != 2 || m.rows[0][1] != "12" {
		t.Errorf("tetris rows = %v", m.rows)
	}

	m = historyUpdate(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.views[m.cursor].gameID != "counting" {
		t.Errorf("view = %q, expected wraparound to counting", m.views[m.cursor].gameID)
	}

	m = historyUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.views[m.cursor].gameID != "pasat" {
		t.Fatalf("view = %q, expected pasat", m.views[m.cursor].gameID)
	}
	if m.rows[0][1] != "3/4 (75%)" {
		t.Errorf("scored game row = %v, expected accuracy", m.rows[0])
	}
}

func TestHistoryLoadError(t *testing.T) {
	m := NewHistoryModel(fakeHistory{err: errors.New("locked")}, 100, 30)

	if !strings.Contains(m.View(), "locked") {
		t.Error("View() should show the load error")
	}
}

func TestHistoryEmptyAndNilStore(t *testing.T) {
	m := NewHistoryModel(nil, 60, 20)
	if !strings.Contains(m.View(), "Nothing recorded yet") {
		t.Error("View() should show the empty message")
	}
}

func TestHistoryBackAndQuit(t *testing.T) {
	m := historyUpdate(t, NewHistoryModel(nil, 80, 24), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back to the menu")
	}

	m = historyUpdate(t, NewHistoryModel(nil, 80, 24), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
