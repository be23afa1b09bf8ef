package game

import (
	"time"

	"github.com/google/uuid"
)

// TaskKind identifies what a scheduled Task does when it comes due.
type TaskKind int

const (
	TaskTick TaskKind = iota
	TaskMatchSettled
	TaskMismatchSettled
)

func (k TaskKind) String() string {
	switch k {
	case TaskTick:
		return "tick"
	case TaskMatchSettled:
		return "match-settled"
	case TaskMismatchSettled:
		return "mismatch-settled"
	default:
		return "unknown"
	}
}

// Task is a delayed effect tagged with the game that created it. Seq is the
// clock epoch for ticks and the resolver sequence for settles.
type Task struct {
	Game uuid.UUID
	Kind TaskKind
	Seq  uint64
}

// Scheduler hands a Task back to the session after delay. Implementations
// must deliver on the session's control thread, never concurrently.
type Scheduler interface {
	Schedule(delay time.Duration, task Task)
}

// Scheduled is a Task waiting to be turned into a timer.
type Scheduled struct {
	Delay time.Duration
	Task  Task
}

// QueueScheduler buffers tasks until the event loop drains them, so an
// event-driven UI can convert them into its own timer commands.
type QueueScheduler struct {
	pending []Scheduled
}

func (q *QueueScheduler) Schedule(delay time.Duration, task Task) {
	q.pending = append(q.pending, Scheduled{Delay: delay, Task: task})
}

// Drain returns everything scheduled since the last call, in order.
func (q *QueueScheduler) Drain() []Scheduled {
	out := q.pending
	q.pending = nil
	return out
}
