package game

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"flipmind/internal/deck"
	"flipmind/internal/scoring"
	"flipmind/internal/state"
)

// Game encapsulates one session's rules, independent of the UI.
type Game struct {
	ID     uuid.UUID
	State  *state.State
	Result *scoring.Result // set when the game is won

	clock    *Clock
	resolver *Resolver
	store    scoring.BestScoreStore
	render   Renderer
	log      zerolog.Logger
}

// NewGame creates an idle game on the given board. store may be nil, in
// which case wins are not recorded.
func NewGame(d deck.Difficulty, board deck.Board, store scoring.BestScoreStore, sched Scheduler, render Renderer) *Game {
	if render == nil {
		render = NopRenderer{}
	}
	g := &Game{
		ID:     uuid.New(),
		store:  store,
		render: render,
	}
	g.log = log.With().Str("game", g.ID.String()).Str("difficulty", d.String()).Logger()
	g.State = state.NewState(d, board, g)
	g.clock = NewClock(g.ID, sched, g.State.TimeRemaining)
	g.resolver = NewResolver(g.ID, sched)
	return g
}

func (g *Game) Clock() *Clock { return g.clock }

// RequestFlip turns a card face up. Requests that break the acceptance rule
// are ignored and return false.
func (g *Game) RequestFlip(id int) bool {
	s := g.State
	if !s.CanFlip(id) {
		return false
	}

	ctx := context.Background()
	if s.FSM.Is(state.Idle) {
		_ = s.FSM.Event(ctx, state.EventStart)
	}

	g.render.CardFlipped(id)
	if s.AddFlip(id) {
		g.render.MovesUpdated(s.Moves)
		first, second, _ := s.PendingPair()
		p := g.resolver.Evaluate(first, second, s.Board)
		g.log.Debug().Int("first", first).Int("second", second).Stringer("outcome", p.Outcome).Msg("pair evaluated")
	}
	return true
}

// Deliver applies a scheduled task that has come due. Stale tasks are dropped.
func (g *Game) Deliver(task Task) {
	if task.Game != g.ID {
		return
	}

	switch task.Kind {
	case TaskTick:
		remaining, expired, ok := g.clock.Tick(task)
		if !ok {
			return
		}
		g.onClockTick(remaining)
		if expired {
			g.onClockExpired()
		}
	case TaskMatchSettled, TaskMismatchSettled:
		if p, ok := g.resolver.Settle(task); ok {
			g.settle(p)
		}
	}
}

// Abandon stops the clock of a game that is being replaced.
func (g *Game) Abandon() {
	g.clock.Stop()
	g.resolver.Flush()
}

func (g *Game) settle(p Pending) {
	switch p.Outcome {
	case OutcomeMatch:
		g.onMatchSettled(p.First, p.Second)
	case OutcomeMismatch:
		g.onMismatchSettled()
	}
}

func (g *Game) onClockTick(remaining int) {
	g.State.TimeRemaining = remaining
	g.render.TimeUpdated(remaining)
}

// onClockExpired commits a pending outcome before judging the loss, so a
// pair found as time runs out still counts and can win the game.
func (g *Game) onClockExpired() {
	if g.State.IsOver() {
		return
	}
	if p, ok := g.resolver.Flush(); ok {
		g.settle(p)
	}
	if g.State.IsOver() {
		return
	}
	_ = g.State.FSM.Event(context.Background(), state.EventExpire)
}

func (g *Game) onMatchSettled(first, second int) {
	s := g.State
	s.CommitMatch(first, second)
	g.render.CardMatched(first)
	g.render.CardMatched(second)

	if s.AllMatched() {
		_ = s.FSM.Event(context.Background(), state.EventWin)
	}
}

func (g *Game) onMismatchSettled() {
	for _, id := range g.State.ClearFlips() {
		g.render.CardUnflipped(id)
	}
}

// OnStart implements state.Hooks.
func (g *Game) OnStart(ctx context.Context) {
	g.clock.Start()
	g.log.Info().Msg("game started")
}

// OnWin implements state.Hooks.
func (g *Game) OnWin(ctx context.Context) {
	g.clock.Stop()
	s := g.State
	score := s.Score()

	g.log.Info().
		Int("moves", s.Moves).
		Int("time_remaining", s.TimeRemaining).
		Int("score", score).
		Msg("game won")

	g.render.GameWon(s.Moves, s.TimeRemaining, score)
	if g.store == nil {
		g.Result = &scoring.Result{Difficulty: s.Difficulty, Score: score}
		return
	}

	res, err := scoring.RecordBest(g.store, s.Difficulty, score)
	g.Result = &res
	if err != nil {
		g.log.Warn().Err(err).Msg("best score unavailable")
		g.render.BestScoreChanged(s.Difficulty, 0, false)
		return
	}
	if res.NewBest {
		g.render.BestScoreChanged(s.Difficulty, score, true)
	}
}

// OnLoss implements state.Hooks.
func (g *Game) OnLoss(ctx context.Context) {
	g.clock.Stop()
	g.log.Info().Int("moves", g.State.Moves).Int("matched", len(g.State.Matched)).Msg("game lost")
	g.render.GameLost()
}
