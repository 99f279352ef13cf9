package engine

import (
	"github.com/motionjam/shakedown/internal/actor"
	"github.com/motionjam/shakedown/internal/player"
)

// maxDebugFastForwardTicks bounds a single fast-forward request so a
// malformed dev-tool call can't wedge the engine goroutine indefinitely.
const maxDebugFastForwardTicks = 36_000 // one hour at the default 100ms rate

// handleDebugFastForward replays handleTick synchronously, letting a
// test harness skip ahead without waiting on the real ticker.
func (e *Engine) handleDebugFastForward(ctx actor.Context, m DebugFastForwardMessage) {
	ticks := m.Ticks
	if ticks > maxDebugFastForwardTicks {
		ticks = maxDebugFastForwardTicks
	}
	for i := 0; i < ticks; i++ {
		e.handleTick()
	}
	ctx.Reply(nil)
}

// handleDebugReset drops every player and round-in-progress state back
// to a fresh waiting lobby, without touching ConnectionManager sockets
// (a reconnecting client should still resolve to the same token).
func (e *Engine) handleDebugReset(ctx actor.Context) {
	e.stopToWaiting()
	e.players = make(map[string]*player.Player)
	e.order = nil
	ctx.Reply(nil)
}
