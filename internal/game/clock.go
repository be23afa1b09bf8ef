package game

import (
	"time"

	"github.com/google/uuid"
)

const TickInterval = time.Second

type ClockState int

const (
	ClockStopped ClockState = iota
	ClockRunning
)

// Clock counts a game's time down one second per tick. Each Start opens a
// new epoch and ticks carrying an older epoch are dropped, so a game never
// has two live tick streams.
type Clock struct {
	game      uuid.UUID
	sched     Scheduler
	state     ClockState
	epoch     uint64
	remaining int
}

func NewClock(game uuid.UUID, sched Scheduler, seconds int) *Clock {
	return &Clock{
		game:      game,
		sched:     sched,
		remaining: seconds,
	}
}

func (c *Clock) State() ClockState { return c.state }
func (c *Clock) Remaining() int    { return c.remaining }

// Start moves Stopped to Running and schedules the first tick.
// Starting a running clock does nothing.
func (c *Clock) Start() {
	if c.state == ClockRunning {
		return
	}
	c.state = ClockRunning
	c.epoch++
	c.scheduleTick()
}

// Stop moves Running to Stopped. Stopping a stopped clock does nothing.
func (c *Clock) Stop() {
	if c.state == ClockStopped {
		return
	}
	c.state = ClockStopped
	c.epoch++
}

// Tick applies a delivered tick task. ok is false when the task is stale or
// the clock is stopped. On expiry the clock stops itself.
func (c *Clock) Tick(task Task) (remaining int, expired bool, ok bool) {
	if c.state != ClockRunning || task.Game != c.game || task.Seq != c.epoch {
		return c.remaining, false, false
	}

	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.Stop()
		return 0, true, true
	}
	c.scheduleTick()
	return c.remaining, false, true
}

func (c *Clock) scheduleTick() {
	c.sched.Schedule(TickInterval, Task{Game: c.game, Kind: TaskTick, Seq: c.epoch})
}
