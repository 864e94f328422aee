package tui

import (
	"testing"
	"time"
)

func TestTimersAcceptCurrentGeneration(t *testing.T) {
	var tm timers

	if cmd := tm.arm(TimerSnake, time.Millisecond); cmd == nil {
		t.Fatal("arm() returned nil command")
	}
	current := TickMsg{Timer: TimerSnake, Gen: tm.gen[TimerSnake]}
	if !tm.accept(current) {
		t.Error("tick of the current arming should be accepted")
	}
}

func TestTimersRearmDropsStaleTick(t *testing.T) {
	var tm timers

	tm.arm(TimerTetris, time.Second)
	stale := TickMsg{Timer: TimerTetris, Gen: tm.gen[TimerTetris]}
	tm.arm(TimerTetris, time.Millisecond)

	if tm.accept(stale) {
		t.Error("tick of a previous arming should be dropped")
	}
	if !tm.accept(TickMsg{Timer: TimerTetris, Gen: tm.gen[TimerTetris]}) {
		t.Error("tick of the new arming should be accepted")
	}
}

func TestTimersIndependent(t *testing.T) {
	var tm timers

	tm.arm(TimerRound, time.Second)
	round := TickMsg{Timer: TimerRound, Gen: tm.gen[TimerRound]}
	tm.arm(TimerSnake, time.Second)
	tm.cancel(TimerTetris)

	if !tm.accept(round) {
		t.Error("arming another timer should not invalidate the round tick")
	}
}

func TestTimersCancelAll(t *testing.T) {
	var tm timers
	var pending []TickMsg
	for _, id := range []TimerID{TimerTetris, TimerSnake, TimerRound} {
		tm.arm(id, time.Second)
		pending = append(pending, TickMsg{Timer: id, Gen: tm.gen[id]})
	}

	tm.cancelAll()

	for _, msg := range pending {
		if tm.accept(msg) {
			t.Errorf("%v tick accepted after cancelAll", msg.Timer)
		}
	}
}

func TestTimersRejectUnknownTimer(t *testing.T) {
	var tm timers
	if tm.accept(TickMsg{Timer: timerCount}) {
		t.Error("unknown timer should be rejected")
	}
	if tm.accept(TickMsg{Timer: -1}) {
		t.Error("negative timer should be rejected")
	}
}

func TestTimerIDString(t *testing.T) {
	tests := []struct {
		id       TimerID
		expected string
	}{
		{TimerTetris, "tetris"},
		{TimerSnake, "snake"},
		{TimerRound, "round"},
		{timerCount, "unknown"},
	}
	for _, tc := range tests {
		if got := tc.id.String(); got != tc.expected {
			t.Errorf("TimerID(%d).String() = %q, expected %q", tc.id, got, tc.expected)
		}
	}
}
