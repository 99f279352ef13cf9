package mode

import (
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/player"
	"github.com/motionjam/shakedown/internal/role"
)

// classicPointsPerWin is the round score a survivor earns; non-survivors
// earn nothing.
const classicPointsPerWin = 1

// Classic is the last-alive mode.
type Classic struct{}

func NewClassic() *Classic { return &Classic{} }

func (m *Classic) Name() string           { return "classic" }
func (m *Classic) UsesRoles() bool        { return false }
func (m *Classic) UsesTeams() bool        { return false }
func (m *Classic) RoundDurationMs() int64 { return 0 }

func (m *Classic) RolePool(registry *role.Registry, n int) []role.Kind { return nil }

func (m *Classic) OnRoundStart(bus *eventbus.Bus) {}

func (m *Classic) OnTick(roster Roster, gameTime int64, deltaTimeMs int64) []events.BaseEventPayload {
	return nil
}

func (m *Classic) OnPlayerMove(roster Roster, p *player.Player, gameTime int64) {}

func (m *Classic) CheckWinCondition(roster Roster, currentRound, roundCount int, gameTime int64) WinResult {
	alive := effectivelyAliveCount(roster, gameTime)
	if alive > 1 {
		return WinResult{}
	}

	result := WinResult{RoundEnded: true}
	for _, p := range roster.Players() {
		if !p.EffectivelyOut(gameTime) {
			result.WinnerID = p.ID
			break
		}
	}
	if currentRound >= roundCount {
		result.GameEnded = true
	}
	return result
}

func (m *Classic) ScoreRound(roster Roster, currentRound, roundCount int) []events.ScoreEntry {
	entries := make([]events.ScoreEntry, 0, len(roster.Players()))
	for _, p := range roster.Players() {
		points := 0
		if p.IsAlive() {
			points = classicPointsPerWin
		}
		p.AddPoints(points)
		entries = append(entries, events.ScoreEntry{
			PlayerID:    p.ID,
			PlayerName:  p.Name,
			Points:      points,
			TotalPoints: p.TotalPoints,
		})
	}
	return entries
}
