// Package tui provides the Bubble Tea front end for a training session.
// It owns the timers, maps keys to game intents and renders the games.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TimerID names one of the session's periodic timers.
type TimerID int

const (
	TimerTetris TimerID = iota // adaptive gravity
	TimerSnake                 // fixed snake step
	TimerRound                 // aggregate window for the stack games
	timerCount
)

func (id TimerID) String() string {
	switch id {
	case TimerTetris:
		return "tetris"
	case TimerSnake:
		return "snake"
	case TimerRound:
		return "round"
	default:
		return "unknown"
	}
}

// TickMsg is delivered when a timer fires. Gen identifies the arming it
// belongs to; a stale generation means the timer was re-armed or
// cancelled since.
type TickMsg struct {
	Timer TimerID
	Gen   uint64
	Time  time.Time
}

// generations are unique per process, so a tick left over from a
// finished session can never match a timer of the next one.
var generations atomic.Uint64

// timers tracks the live generation of each timer. Ticks never repeat on
// their own: the receiver re-arms after handling one.
type timers struct {
	gen [timerCount]uint64
}

// arm schedules one tick of id after d, invalidating any outstanding tick
// for the same timer.
func (t *timers) arm(id TimerID, d time.Duration) tea.Cmd {
	gen := generations.Add(1)
	t.gen[id] = gen
	return tea.Tick(d, func(at time.Time) tea.Msg {
		return TickMsg{Timer: id, Gen: gen, Time: at}
	})
}

// accept reports whether msg belongs to the current arming of its timer.
func (t *timers) accept(msg TickMsg) bool {
	if msg.Timer < 0 || msg.Timer >= timerCount {
		return false
	}
	return msg.Gen == t.gen[msg.Timer]
}

// cancel drops any outstanding tick of id.
func (t *timers) cancel(id TimerID) {
	t.gen[id] = generations.Add(1)
}

// cancelAll drops every outstanding tick.
func (t *timers) cancelAll() {
	for i := range t.gen {
		t.gen[i] = generations.Add(1)
	}
}
