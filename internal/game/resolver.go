package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"flipmind/internal/deck"
)

// Matches settle quickly; mismatches stay face up long enough to memorize.
const (
	MatchSettleDelay    = 500 * time.Millisecond
	MismatchSettleDelay = 1000 * time.Millisecond
)

type Outcome int

const (
	OutcomeMatch Outcome = iota
	OutcomeMismatch
)

func (o Outcome) String() string {
	if o == OutcomeMatch {
		return "match"
	}
	return "mismatch"
}

// Pending is an evaluated pair waiting for its settle delay.
type Pending struct {
	Outcome Outcome
	First   int
	Second  int
	Seq     uint64
}

// Resolver evaluates flipped pairs and schedules their outcome. At most one
// outcome is pending at a time.
type Resolver struct {
	game    uuid.UUID
	sched   Scheduler
	seq     uint64
	pending *Pending
}

func NewResolver(game uuid.UUID, sched Scheduler) *Resolver {
	return &Resolver{game: game, sched: sched}
}

// Evaluate compares the two cards and schedules the settle task. Equal or
// unknown ids, or an evaluation while another is pending, are programming
// errors and panic.
func (r *Resolver) Evaluate(first, second int, board deck.Board) Pending {
	if first == second {
		panic(fmt.Sprintf("resolver: evaluate called with the same card %d twice", first))
	}
	a, ok := board.Card(first)
	if !ok {
		panic(fmt.Sprintf("resolver: unknown card %d", first))
	}
	b, ok := board.Card(second)
	if !ok {
		panic(fmt.Sprintf("resolver: unknown card %d", second))
	}
	if r.pending != nil {
		panic("resolver: evaluate called while an outcome is pending")
	}

	r.seq++
	p := Pending{Outcome: OutcomeMismatch, First: first, Second: second, Seq: r.seq}
	kind, delay := TaskMismatchSettled, MismatchSettleDelay
	if a.Symbol == b.Symbol {
		p.Outcome = OutcomeMatch
		kind, delay = TaskMatchSettled, MatchSettleDelay
	}

	r.pending = &p
	r.sched.Schedule(delay, Task{Game: r.game, Kind: kind, Seq: p.Seq})
	return p
}

// Settle takes the pending outcome a delivered task refers to. ok is false
// for stale tasks.
func (r *Resolver) Settle(task Task) (Pending, bool) {
	if r.pending == nil || task.Game != r.game || task.Seq != r.pending.Seq {
		return Pending{}, false
	}
	return r.Flush()
}

// Flush takes the pending outcome immediately, making its scheduled task stale.
func (r *Resolver) Flush() (Pending, bool) {
	if r.pending == nil {
		return Pending{}, false
	}
	p := *r.pending
	r.pending = nil
	return p, true
}

func (r *Resolver) Pending() (Pending, bool) {
	if r.pending == nil {
		return Pending{}, false
	}
	return *r.pending, true
}
