package state

import (
	"context"

	"github.com/looplab/fsm"

	"flipmind/internal/deck"
)

// FSM states.
const (
	Idle   = "idle"
	Active = "active"
	Won    = "won"
	Lost   = "lost"
)

// FSM events.
const (
	EventStart  = "start"
	EventWin    = "win"
	EventExpire = "expire"
)

// Hooks receives the side effects of state transitions. The game layer
// implements it to drive the clock, scoring and renderer.
type Hooks interface {
	OnStart(ctx context.Context)
	OnWin(ctx context.Context)
	OnLoss(ctx context.Context)
}

// State is one game session: the board plus everything a flip can change.
type State struct {
	Difficulty    deck.Difficulty
	Level         deck.Level
	Board         deck.Board
	Flipped       []int            // flip buffer, in flip order, at most 2
	Matched       map[int]struct{} // ids of matched cards
	Moves         int
	TimeRemaining int
	IsActive      bool
	FSM           *fsm.FSM
}

// NewState creates an idle session for the given board.
func NewState(d deck.Difficulty, board deck.Board, hooks Hooks) *State {
	level := d.Level()
	s := &State{
		Difficulty:    d,
		Level:         level,
		Board:         board,
		Flipped:       make([]int, 0, 2),
		Matched:       make(map[int]struct{}, len(board)),
		TimeRemaining: level.TimeLimitSeconds,
	}

	s.FSM = fsm.NewFSM(
		Idle,
		getStateTransitions(),
		getStateCallbacks(s, hooks),
	)

	return s
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: EventStart, Src: []string{Idle}, Dst: Active},
		{Name: EventWin, Src: []string{Active}, Dst: Won},
		{Name: EventExpire, Src: []string{Active}, Dst: Lost},
	}
}

func getStateCallbacks(s *State, hooks Hooks) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_" + Active: func(ctx context.Context, e *fsm.Event) {
			s.IsActive = true
			if hooks != nil {
				hooks.OnStart(ctx)
			}
		},
		"enter_" + Won: func(ctx context.Context, e *fsm.Event) {
			s.IsActive = false
			if hooks != nil {
				hooks.OnWin(ctx)
			}
		},
		"enter_" + Lost: func(ctx context.Context, e *fsm.Event) {
			s.IsActive = false
			if hooks != nil {
				hooks.OnLoss(ctx)
			}
		},
	}
}
