package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"flipmind/internal/deck"
	"flipmind/internal/scoring"
	"flipmind/internal/state"
)

var ErrNoScheduler = errors.New("session requires a scheduler")

// Options configures a Session. Zero values fall back to defaults: the
// built-in catalog, a time-seeded shuffler, an in-memory store and a
// renderer that ignores events.
type Options struct {
	Difficulty deck.Difficulty
	Catalog    deck.Catalog
	Shuffler   deck.Shuffler
	Store      scoring.BestScoreStore
	Scheduler  Scheduler
	Renderer   Renderer
}

// Session owns the current game and replaces it on reset or difficulty
// change. Tasks from replaced games are discarded here.
type Session struct {
	Difficulty  deck.Difficulty
	Catalog     deck.Catalog
	CurrentGame *Game

	// Aggregate State
	Wins   int
	Losses int

	shuffler  deck.Shuffler
	store     scoring.BestScoreStore
	scheduler Scheduler
	renderer  Renderer
}

// NewSession validates the catalog against every difficulty and starts the
// first game. A catalog error is a configuration error.
func NewSession(opts Options) (*Session, error) {
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}

	s := &Session{
		Difficulty: opts.Difficulty,
		Catalog:    opts.Catalog,
		shuffler:   opts.Shuffler,
		store:      opts.Store,
		scheduler:  opts.Scheduler,
		renderer:   opts.Renderer,
	}
	if s.Catalog == nil {
		s.Catalog = deck.DefaultCatalog()
	}
	if s.shuffler == nil {
		s.shuffler = deck.NewShuffler(rand.NewSource(time.Now().UnixNano()))
	}
	if s.store == nil {
		s.store = scoring.NewMemoryStorage()
	}
	if s.renderer == nil {
		s.renderer = NopRenderer{}
	}

	if err := s.Catalog.Validate(deck.Difficulties()); err != nil {
		return nil, fmt.Errorf("invalid symbol catalog: %w", err)
	}

	if err := s.NewGame(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewGame discards the current game and deals a fresh one at the session's
// difficulty.
func (s *Session) NewGame() error {
	if s.CurrentGame != nil {
		s.CurrentGame.Abandon()
	}

	level := s.Difficulty.Level()
	board, err := deck.Generate(s.Catalog, level.PairCount, s.shuffler)
	if err != nil {
		return fmt.Errorf("could not deal board: %w", err)
	}

	g := NewGame(s.Difficulty, board, s.store, s.scheduler, s.renderer)
	s.CurrentGame = g
	log.Debug().Str("game", g.ID.String()).Str("difficulty", s.Difficulty.String()).Msg("new game")

	s.renderer.BoardCreated(board)
	s.renderer.TimeUpdated(g.State.TimeRemaining)
	s.renderer.MovesUpdated(0)
	score, ok := s.BestScore()
	s.renderer.BestScoreChanged(s.Difficulty, score, ok)
	return nil
}

// Reset restarts at the current difficulty.
func (s *Session) Reset() error {
	return s.NewGame()
}

// SelectDifficulty switches difficulty and starts a fresh game.
func (s *Session) SelectDifficulty(d deck.Difficulty) error {
	s.Difficulty = d
	return s.NewGame()
}

func (s *Session) RequestFlip(id int) bool {
	return s.CurrentGame.RequestFlip(id)
}

// Deliver routes a due task to the current game, dropping tasks that
// belong to a replaced one.
func (s *Session) Deliver(task Task) {
	g := s.CurrentGame
	if g == nil || task.Game != g.ID {
		log.Debug().Str("game", task.Game.String()).Stringer("kind", task.Kind).Msg("dropping stale task")
		return
	}

	wasOver := g.State.IsOver()
	g.Deliver(task)
	if wasOver || !g.State.IsOver() {
		return
	}
	if g.State.FSM.Is(state.Won) {
		s.Wins++
	} else {
		s.Losses++
	}
}

// BestScore returns the stored best for the current difficulty. Store
// failures degrade to "no score".
func (s *Session) BestScore() (int, bool) {
	score, ok, err := s.store.Get(s.Difficulty)
	if err != nil {
		log.Warn().Err(err).Str("difficulty", s.Difficulty.String()).Msg("could not read best score")
		return 0, false
	}
	return score, ok
}
