package mode

import (
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/player"
	"github.com/motionjam/shakedown/internal/role"
)

// RoleBased is the role-driven variant: same last-alive win condition
// as Classic, but role assignment is active and a themed pool backs
// RolePool. Per-role behaviour (Vampire bloodlust, Angel veto,
// BeastHunter/Assassin bonuses) lives entirely in the role package's
// hooks; this mode only supplies the pool and the win condition.
type RoleBased struct {
	theme role.Theme
}

func NewRoleBased(theme role.Theme) *RoleBased {
	return &RoleBased{theme: theme}
}

func (m *RoleBased) Name() string           { return "role-based" }
func (m *RoleBased) UsesRoles() bool        { return true }
func (m *RoleBased) UsesTeams() bool        { return false }
func (m *RoleBased) RoundDurationMs() int64 { return 0 }

func (m *RoleBased) RolePool(registry *role.Registry, n int) []role.Kind {
	return registry.RolePoolForCount(m.theme, n)
}

// OnRoundStart is a no-op: role hooks re-subscribe their own round-scoped
// listeners from assignRolesForRound's per-round def.Build call.
func (m *RoleBased) OnRoundStart(bus *eventbus.Bus) {}

func (m *RoleBased) OnTick(roster Roster, gameTime int64, deltaTimeMs int64) []events.BaseEventPayload {
	return nil
}

func (m *RoleBased) OnPlayerMove(roster Roster, p *player.Player, gameTime int64) {}

func (m *RoleBased) CheckWinCondition(roster Roster, currentRound, roundCount int, gameTime int64) WinResult {
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

func (m *RoleBased) ScoreRound(roster Roster, currentRound, roundCount int) []events.ScoreEntry {
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
