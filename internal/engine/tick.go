package engine

import (
	"time"

	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/mode"
)

// speedShiftEventType names the periodic mode event a GameEventManager
// drives for every mode: a window that globally alters movement
// sensitivity. Real accelerometer normalization happens client-side, so
// this only ever emits the mode:event notification a client can react
// to.
const speedShiftEventType = "speed-shift"
const speedShiftIntervalMs int64 = 45_000
const speedShiftWindowMs int64 = 8_000

func registerDefaultGameEvents(mgr *mode.GameEventManager) {
	var nextAt int64 = speedShiftIntervalMs
	var endsAt int64
	mgr.Register(&mode.GameEvent{
		Type: speedShiftEventType,
		ShouldActivate: func(gameTime int64) bool {
			return gameTime >= nextAt
		},
		OnStart: func(gameTime int64) {
			endsAt = gameTime + speedShiftWindowMs
		},
		ShouldDeactivate: func(gameTime int64) bool {
			return gameTime >= endsAt
		},
		OnEnd: func(gameTime int64) {
			nextAt = gameTime + speedShiftIntervalMs
		},
	})
}

// handleTick runs the five-step per-tick algorithm: advance gameTime,
// let the mode react, tick every alive player in priority order,
// broadcast a snapshot, then check the win condition.
func (e *Engine) handleTick() {
	now := time.Now()
	deltaMs := e.tickRate.Milliseconds()
	if !e.lastTickAt.IsZero() {
		deltaMs = now.Sub(e.lastTickAt).Milliseconds()
	}
	e.lastTickAt = now

	e.ready.Tick(e.gameTime)

	if e.state == StateCountdown && e.countdown != nil {
		e.countdown.Tick(e.gameTime)
		e.gameTime += deltaMs
		return
	}

	if e.state != StateActive {
		return
	}

	e.gameTime += deltaMs

	if e.gameMode != nil {
		baseEvents := e.gameMode.OnTick(engineRoster{e}, e.gameTime, deltaMs)
		for _, be := range baseEvents {
			e.bus.Emit(events.BasePoint, be)
		}
		e.gameEvents.Tick(e.gameTime, deltaMs)
	}

	for _, p := range e.playersByPriority() {
		wasAlive := p.IsAlive()
		p.OnTick(e.gameTime, deltaMs)
		if wasAlive && !p.IsAlive() {
			e.bus.Emit(events.PlayerDeath, events.PlayerDeathPayload{
				VictimID:       p.ID,
				VictimNumber:   p.Number,
				VictimName:     p.Name,
				VictimRoleKind: p.Role.Kind,
				GameTime:       e.gameTime,
			})
		}
	}

	e.bus.Emit(events.GameTick, e.buildTickSnapshot())

	if e.gameMode == nil {
		return
	}
	result := e.gameMode.CheckWinCondition(engineRoster{e}, e.currentRound, e.roundCount, e.gameTime)
	if result.RoundEnded {
		e.endRound(result)
	}
}

// handlePlayerMovement applies one accelerometer sample and reports the
// death it may cause. Movement arrives fire-and-forget over the socket
// (never Ask'd), so rejections are silent: samples arriving outside the
// active round are dropped without a log line, and samples from unknown
// player ids are logged and dropped, never surfaced as a wire error.
func (e *Engine) handlePlayerMovement(playerID string, intensity float64) {
	if e.state != StateActive {
		return
	}
	p, ok := e.players[playerID]
	if !ok {
		e.logError("movement from unknown player %q ignored", playerID)
		return
	}
	died := p.UpdateMovement(intensity, e.gameTime)
	if e.gameMode != nil {
		e.gameMode.OnPlayerMove(engineRoster{e}, p, e.gameTime)
	}
	if died {
		e.bus.Emit(events.PlayerDeath, events.PlayerDeathPayload{
			VictimID:       p.ID,
			VictimNumber:   p.Number,
			VictimName:     p.Name,
			VictimRoleKind: p.Role.Kind,
			GameTime:       e.gameTime,
		})
	}
}

// endRound finalizes a round's scoreboard and either opens the
// post-round ready window or ends the game, per the mode's WinResult.
func (e *Engine) endRound(result mode.WinResult) {
	e.bus.ClearRoundListeners()
	scores := e.gameMode.ScoreRound(engineRoster{e}, e.currentRound, e.roundCount)

	if !result.SkipRoundEndEvent {
		e.bus.Emit(events.RoundEnd, events.RoundEndPayload{
			RoundNumber: e.currentRound,
			Scores:      scores,
			WinnerID:    result.WinnerID,
		})
	}

	if result.GameEnded {
		e.endGame(scores, result.WinnerID)
		return
	}

	e.state = StateRoundEnded
	e.ready.StartReadyDelay(e.gameTime, e.testMode)
}

func (e *Engine) endGame(scores []events.ScoreEntry, winnerID string) {
	e.state = StateFinished
	e.lastFinalScores = scores

	if e.gameMode != nil && e.gameMode.Name() == "domination" {
		teamScores := make(map[string]int, len(scores))
		for _, s := range scores {
			teamScores[s.PlayerID] = s.TotalPoints
		}
		e.bus.Emit(events.DominationWin, events.DominationWinPayload{
			WinningTeamID: winnerID,
			Scores:        teamScores,
		})
	}

	e.bus.Emit(events.GameEnd, events.GameEndPayload{
		Scores:      scores,
		WinnerID:    winnerID,
		TotalRounds: e.roundCount,
	})
	e.ready.StartReadyDelay(e.gameTime, e.testMode)
}
