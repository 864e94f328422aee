package session

import "time"

// Event is something a session operation caused. Every operation returns
// the events it produced, in order.
type Event interface {
	sessionEvent()
}

// RoundClosed is emitted at every aggregate tick boundary.
type RoundClosed struct {
	Time    time.Time
	Entries int  // history entries closed by this boundary
	Failed  bool // at least one closed entry was wrong or a miss
}

func (RoundClosed) sessionEvent() {}

// PenaltyApplied is emitted when a garbage line is pushed into the
// falling-block board.
type PenaltyApplied struct {
	Reason PenaltyReason
	Lines  int
}

func (PenaltyApplied) sessionEvent() {}

// SnakeFailed is emitted when the snake loses food to expiry or bites
// itself.
type SnakeFailed struct {
	Expired int  // food items that timed out on this tick
	Over    bool // the snake collided with itself
}

func (SnakeFailed) sessionEvent() {}

// SnakeRestarted is emitted when the coordinator revives or resets the
// snake.
type SnakeRestarted struct {
	Reason RestartReason
}

func (SnakeRestarted) sessionEvent() {}

// TetrisMilestone is emitted when the cleared line count crosses a
// multiple of tetris.MilestoneLines.
type TetrisMilestone struct {
	Lines int
}

func (TetrisMilestone) sessionEvent() {}

// PenaltyReason describes why a penalty was applied.
type PenaltyReason int

const (
	PenaltyAnswer PenaltyReason = iota // a wrong or missing answer
	PenaltySnake                       // snake failure since the last boundary
	PenaltyBoth                        // both of the above
)

func (r PenaltyReason) String() string {
	switch r {
	case PenaltyAnswer:
		return "wrong or missing answer"
	case PenaltySnake:
		return "snake failure"
	case PenaltyBoth:
		return "wrong answer and snake failure"
	default:
		return "unknown"
	}
}

// RestartReason describes why the snake was restarted.
type RestartReason int

const (
	RestartGameOver  RestartReason = iota // the snake bit itself
	RestartMilestone                      // falling-block milestone reached
)

func (r RestartReason) String() string {
	switch r {
	case RestartGameOver:
		return "game over"
	case RestartMilestone:
		return "line milestone"
	default:
		return "unknown"
	}
}
