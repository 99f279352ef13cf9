// Package mode implements the GameMode strategy interface: per-variant
// win conditions, scoring, role pools, and per-tick behaviour, plus the
// GameEventManager for in-round "mode events" like speed-shift windows.
package mode

import (
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/player"
	"github.com/motionjam/shakedown/internal/role"
)

// WinResult is mode.checkWinCondition's verdict for the current tick.
type WinResult struct {
	RoundEnded bool
	GameEnded  bool
	WinnerID   string
	// SkipRoundEndEvent suppresses round:end/round:start when GameEnded is
	// also true, for single-unbounded-round modes like Domination: a
	// target-score mode has one unbounded round, so there is no
	// intermediate round boundary to announce.
	SkipRoundEndEvent bool
}

// Roster is the read access a mode needs into the engine's live player
// set, kept narrow so mode code can't mutate engine bookkeeping it
// doesn't own.
type Roster interface {
	Players() []*player.Player
	ByID(id string) (*player.Player, bool)
	TeamOf(playerID string) (teamID int, ok bool)
}

// Mode is the strategy every game variant implements.
type Mode interface {
	Name() string
	UsesRoles() bool
	UsesTeams() bool

	// RoundDurationMs is the fixed round length, or 0 for a mode whose
	// round ends on a player-count condition instead of a clock.
	RoundDurationMs() int64

	// RolePool returns the role kinds to draw from for n players, or nil
	// for a mode that does not use roles.
	RolePool(registry *role.Registry, n int) []role.Kind

	// OnRoundStart is called once per round, right before the countdown
	// begins and after ClearRoundListeners has wiped the previous
	// round's subscriptions. Modes that need a round-scoped bus listener
	// (e.g. death-count's respawn scheduler) re-wire it here instead of
	// only at construction time, since the mode itself is built once per
	// game, not once per round.
	OnRoundStart(bus *eventbus.Bus)

	// OnTick runs once per engine tick before win-condition checking,
	// e.g. Domination's base scoring.
	OnTick(roster Roster, gameTime int64, deltaTimeMs int64) []events.BaseEventPayload

	// OnPlayerMove is called after a movement sample is applied,
	// letting a mode react (death-count's respawn scheduling reads
	// deaths via CheckWinCondition/OnTick instead, but modes may hook
	// moves directly, e.g. for per-move scoring).
	OnPlayerMove(roster Roster, p *player.Player, gameTime int64)

	// CheckWinCondition is evaluated every tick.
	CheckWinCondition(roster Roster, currentRound, roundCount int, gameTime int64) WinResult

	// ScoreRound computes the round scoreboard once a round ends.
	ScoreRound(roster Roster, currentRound, roundCount int) []events.ScoreEntry
}

// effectivelyAliveCount counts players not effectively-out as of now.
func effectivelyAliveCount(roster Roster, now int64) int {
	count := 0
	for _, p := range roster.Players() {
		if !p.EffectivelyOut(now) {
			count++
		}
	}
	return count
}
