package game

import (
	"fmt"
	"slices"
	"time"

	"flipmind/internal/deck"
	"flipmind/internal/scoring"
)

// fakeScheduler runs tasks on a virtual clock. Tasks due at the same instant
// run in the order they were scheduled.
type fakeScheduler struct {
	now   time.Duration
	order int
	queue []fakeTask
}

type fakeTask struct {
	due   time.Duration
	order int
	task  Task
}

func (f *fakeScheduler) Schedule(delay time.Duration, task Task) {
	f.queue = append(f.queue, fakeTask{due: f.now + delay, order: f.order, task: task})
	f.order++
}

// Advance moves virtual time forward by d, delivering every task that falls
// due on the way, including tasks scheduled by earlier deliveries.
func (f *fakeScheduler) Advance(d time.Duration, deliver func(Task)) {
	target := f.now + d
	for {
		idx := -1
		for i, ft := range f.queue {
			if ft.due > target {
				continue
			}
			if idx == -1 || ft.due < f.queue[idx].due ||
				(ft.due == f.queue[idx].due && ft.order < f.queue[idx].order) {
				idx = i
			}
		}
		if idx == -1 {
			break
		}
		ft := f.queue[idx]
		f.queue = slices.Delete(f.queue, idx, idx+1)
		f.now = ft.due
		deliver(ft.task)
	}
	f.now = target
}

func (f *fakeScheduler) count(kind TaskKind) int {
	n := 0
	for _, ft := range f.queue {
		if ft.task.Kind == kind {
			n++
		}
	}
	return n
}

// identityShuffler leaves the order alone, so on a board of n pairs card i
// matches card i+n.
type identityShuffler struct{}

func (identityShuffler) Shuffle(seq []string) []string {
	return slices.Clone(seq)
}

// recorder is a Renderer that logs every event as a string.
type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) BoardCreated(b deck.Board)   { r.add("board %d", len(b)) }
func (r *recorder) CardFlipped(id int)          { r.add("flipped %d", id) }
func (r *recorder) CardUnflipped(id int)        { r.add("unflipped %d", id) }
func (r *recorder) CardMatched(id int)          { r.add("matched %d", id) }
func (r *recorder) TimeUpdated(remaining int)   { r.add("time %d", remaining) }
func (r *recorder) MovesUpdated(count int)      { r.add("moves %d", count) }
func (r *recorder) GameWon(m, rem, score int)   { r.add("won %d %d %d", m, rem, score) }
func (r *recorder) GameLost()                   { r.add("lost") }
func (r *recorder) BestScoreChanged(d deck.Difficulty, score int, ok bool) {
	r.add("best %s %d %v", d, score, ok)
}

func (r *recorder) has(event string) bool {
	return slices.Contains(r.events, event)
}

func (r *recorder) reset() {
	r.events = nil
}

// MockStorage implements scoring.BestScoreStore for testing
type MockStorage struct {
	Record scoring.BestScoreRecord
	Err    error
}

func newMockStorage() *MockStorage {
	return &MockStorage{Record: scoring.NewBestScoreRecord()}
}

func (m *MockStorage) Get(d deck.Difficulty) (int, bool, error) {
	if m.Err != nil {
		return 0, false, m.Err
	}
	score, ok := m.Record.Get(d)
	return score, ok, nil
}

func (m *MockStorage) Set(d deck.Difficulty, score int) error {
	if m.Err != nil {
		return m.Err
	}
	m.Record[d] = score
	return nil
}

// harness wires a Session to the fake scheduler and a recorder.
type harness struct {
	sched *fakeScheduler
	rec   *recorder
	store *MockStorage
	sess  *Session
}

func newHarness(d deck.Difficulty) *harness {
	h := &harness{
		sched: &fakeScheduler{},
		rec:   &recorder{},
		store: newMockStorage(),
	}
	sess, err := NewSession(Options{
		Difficulty: d,
		Shuffler:   identityShuffler{},
		Store:      h.store,
		Scheduler:  h.sched,
		Renderer:   h.rec,
	})
	if err != nil {
		panic(err)
	}
	h.sess = sess
	return h
}

func (h *harness) game() *Game {
	return h.sess.CurrentGame
}

func (h *harness) advance(d time.Duration) {
	h.sched.Advance(d, h.sess.Deliver)
}

// pairs returns the number of pairs on the current board.
func (h *harness) pairs() int {
	return len(h.game().State.Board) / 2
}

// matchPair flips card i and its partner and lets the match settle.
func (h *harness) matchPair(i int) {
	h.sess.RequestFlip(i)
	h.sess.RequestFlip(i + h.pairs())
	h.advance(MatchSettleDelay)
}
