package game

import (
	"errors"
	"math/rand"
	"testing"

	"flipmind/internal/deck"
	"flipmind/internal/scoring"
	"flipmind/internal/state"
)

func TestSession_Init(t *testing.T) {
	rec := &recorder{}
	store := newMockStorage()
	store.Record[deck.Medium] = 42

	sess, err := NewSession(Options{
		Difficulty: deck.Medium,
		Shuffler:   deck.NewShuffler(rand.NewSource(1)),
		Store:      store,
		Scheduler:  &QueueScheduler{},
		Renderer:   rec,
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if sess.CurrentGame == nil {
		t.Fatal("CurrentGame should be initialized")
	}
	g := sess.CurrentGame
	if len(g.State.Board) != 20 {
		t.Errorf("Expected 20 cards, got %d", len(g.State.Board))
	}
	if g.State.Phase() != state.Idle {
		t.Errorf("Expected idle, got %s", g.State.Phase())
	}

	for _, want := range []string{"board 20", "time 90", "moves 0", "best medium 42 true"} {
		if !rec.has(want) {
			t.Errorf("Missing event %q in %v", want, rec.events)
		}
	}
}

func TestSession_Defaults(t *testing.T) {
	sess, err := NewSession(Options{Scheduler: &QueueScheduler{}})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	// Zero value difficulty is easy
	if len(sess.CurrentGame.State.Board) != 12 {
		t.Errorf("Expected 12 cards, got %d", len(sess.CurrentGame.State.Board))
	}
	if _, ok := sess.BestScore(); ok {
		t.Error("Fresh memory store should have no best score")
	}
}

func TestSession_RequiresScheduler(t *testing.T) {
	if _, err := NewSession(Options{}); !errors.Is(err, ErrNoScheduler) {
		t.Errorf("Expected ErrNoScheduler, got %v", err)
	}
}

func TestSession_CatalogTooSmall(t *testing.T) {
	_, err := NewSession(Options{
		Catalog:   deck.DefaultCatalog()[:12],
		Scheduler: &QueueScheduler{},
	})
	if !errors.Is(err, deck.ErrCatalogTooSmall) {
		t.Errorf("Expected ErrCatalogTooSmall, got %v", err)
	}
}

func TestSession_CustomCatalog(t *testing.T) {
	catalog := make(deck.Catalog, 16)
	for i := range catalog {
		catalog[i] = string(rune('A' + i))
	}

	sess, err := NewSession(Options{
		Difficulty: deck.Hard,
		Catalog:    catalog,
		Scheduler:  &QueueScheduler{},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range sess.CurrentGame.State.Board {
		if c.Symbol < "A" || c.Symbol > "P" {
			t.Errorf("Unexpected symbol %q", c.Symbol)
		}
	}
}

func TestSession_ResetKeepsDifficulty(t *testing.T) {
	h := newHarness(deck.Hard)
	first := h.game()
	h.sess.RequestFlip(0)

	if err := h.sess.Reset(); err != nil {
		t.Fatal(err)
	}
	if h.game() == first {
		t.Fatal("Reset should replace the game")
	}
	if h.sess.Difficulty != deck.Hard || len(h.game().State.Board) != 32 {
		t.Errorf("Reset should keep hard difficulty")
	}
	if h.game().State.Moves != 0 || h.game().State.IsActive {
		t.Error("New game should be fresh")
	}
}

func TestSession_QueueSchedulerRoundTrip(t *testing.T) {
	q := &QueueScheduler{}
	store := scoring.NewMemoryStorage()
	sess, err := NewSession(Options{
		Difficulty: deck.Easy,
		Shuffler:   identityShuffler{},
		Store:      store,
		Scheduler:  q,
	})
	if err != nil {
		t.Fatal(err)
	}

	sess.RequestFlip(0)
	sess.RequestFlip(6)

	// Clock tick and match settle are queued; deliver them as an event loop would
	queued := q.Drain()
	if len(queued) != 2 {
		t.Fatalf("Expected 2 queued tasks, got %d", len(queued))
	}
	for _, s := range queued {
		sess.Deliver(s.Task)
	}

	g := sess.CurrentGame
	if !g.State.IsMatched(0) {
		t.Error("Match should settle on delivery")
	}
	if g.State.TimeRemaining != 59 {
		t.Errorf("Expected 59s, got %d", g.State.TimeRemaining)
	}
	// The tick re-armed the clock
	next := q.Drain()
	if len(next) != 1 || next[0].Task.Kind != TaskTick {
		t.Errorf("Expected the next tick to be queued, got %+v", next)
	}
}
