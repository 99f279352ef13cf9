package engine

import (
	"github.com/motionjam/shakedown/internal/effect"
	"github.com/motionjam/shakedown/internal/events"
)

// buildTickSnapshot renders the current roster into the game:tick wire
// payload.
func (e *Engine) buildTickSnapshot() events.TickPayload {
	out := events.TickPayload{GameTime: e.gameTime}
	if e.gameMode != nil {
		if duration := e.gameMode.RoundDurationMs(); duration > 0 {
			remaining := duration - e.gameTime
			if remaining < 0 {
				remaining = 0
			}
			out.RoundTimeRemaining = remaining
		}
	}
	effectName := func(kind string) string {
		if def, ok := e.effects.Lookup(effect.Kind(kind)); ok && def.DisplayName != "" {
			return def.DisplayName
		}
		return kind
	}
	for _, id := range e.order {
		p, ok := e.players[id]
		if !ok {
			continue
		}
		out.Players = append(out.Players, p.Snapshot(e.gameTime, effectName))
	}
	return out
}

// StateSnapshot is GET /api/game/state and StateQueryMessage's reply:
// the full state a freshly-connecting client needs to reconstruct the
// room without having observed every intervening event.
type StateSnapshot struct {
	State        string                `json:"state"`
	CurrentRound int                   `json:"currentRound"`
	RoundCount   int                   `json:"roundCount"`
	Mode         string                `json:"mode"`
	Theme        string                `json:"theme"`
	Tick         events.TickPayload    `json:"tick"`
	FinalScores  []events.ScoreEntry   `json:"finalScores,omitempty"`
	ReadyCount   int                   `json:"readyCount"`
	ReadyTotal   int                   `json:"readyTotal"`
	ReadyDelay   bool                  `json:"readyDelayActive"`
}

// Snapshot builds the full engine-state view, safe to call only from
// within Receive (the engine's own goroutine).
func (e *Engine) Snapshot() StateSnapshot {
	modeName := e.lastMode
	if e.gameMode != nil {
		modeName = e.gameMode.Name()
	}
	ready, total := e.ready.GetReadyCount(e.conn.ConnectedPlayerIDs())
	return StateSnapshot{
		State:        string(e.state),
		CurrentRound: e.currentRound,
		RoundCount:   e.roundCount,
		Mode:         modeName,
		Theme:        string(e.lastTheme),
		Tick:         e.buildTickSnapshot(),
		FinalScores:  e.lastFinalScores,
		ReadyCount:   ready,
		ReadyTotal:   total,
		ReadyDelay:   e.ready.IsDelayActive(),
	}
}
