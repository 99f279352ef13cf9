package roundctl

import (
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/player"
)

// RoleAssignment pairs a role:assigned wire payload with the socket id it
// must be unicast to.
type RoleAssignment struct {
	SocketID string
	Payload  events.RoleAssignedPayload
}

// Countdown drives the pre-round sequence: reset players, emit
// role:assigned, emit one snapshot game:tick, then count down once per
// second to a single phase=go event that triggers startRound.
type Countdown struct {
	bus             *eventbus.Bus
	durationSeconds int
	onGo            func(gameTime int64)

	roundNumber, totalRounds int

	running           bool
	startedAt         int64
	lastEmittedSecond int
}

// NewCountdown constructs a Countdown emitting on bus; durationSeconds<=0
// skips directly to phase=go.
func NewCountdown(bus *eventbus.Bus, durationSeconds int, onGo func(gameTime int64)) *Countdown {
	return &Countdown{bus: bus, durationSeconds: durationSeconds, onGo: onGo}
}

// Begin resets every player for the round, emits role:assigned for any
// role-using players, emits one snapshot game:tick, and starts the
// per-second countdown.
func (c *Countdown) Begin(gameTime int64, roundNumber, totalRounds int, players []*player.Player, roleAssignments []RoleAssignment, snapshot events.TickPayload) {
	c.roundNumber = roundNumber
	c.totalRounds = totalRounds

	for _, p := range players {
		p.ResetForRound()
	}

	for _, ra := range roleAssignments {
		c.bus.Emit(events.RoleAssigned, ra)
	}

	c.bus.Emit(events.GameTick, snapshot)

	c.startedAt = gameTime
	c.lastEmittedSecond = -1
	c.running = true

	if c.durationSeconds <= 0 {
		c.finish(gameTime)
	}
}

// Tick advances the countdown; call once per engine tick while Running.
func (c *Countdown) Tick(gameTime int64) {
	if !c.running {
		return
	}
	elapsedMs := gameTime - c.startedAt
	secondsRemaining := c.durationSeconds - int(elapsedMs/1000)
	if secondsRemaining < 0 {
		secondsRemaining = 0
	}
	if secondsRemaining == c.lastEmittedSecond {
		return
	}
	c.lastEmittedSecond = secondsRemaining

	if secondsRemaining > 0 {
		c.bus.Emit(events.GameCountdown, events.CountdownPayload{
			SecondsRemaining: secondsRemaining,
			Phase:            "countdown",
			RoundNumber:      c.roundNumber,
			TotalRounds:      c.totalRounds,
		})
		return
	}

	c.finish(gameTime)
}

func (c *Countdown) finish(gameTime int64) {
	c.running = false
	c.bus.Emit(events.GameCountdown, events.CountdownPayload{
		SecondsRemaining: 0,
		Phase:            "go",
		RoundNumber:      c.roundNumber,
		TotalRounds:      c.totalRounds,
	})
	if c.onGo != nil {
		c.onGo(gameTime)
	}
}

// Running reports whether the countdown is still in progress.
func (c *Countdown) Running() bool {
	return c.running
}
