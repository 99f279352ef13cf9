package mode

import (
	"sort"

	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/player"
	"github.com/motionjam/shakedown/internal/role"
)

// DeathCount is the timed respawn mode: round ends on a clock, deaths
// are counted, and score ranks inversely to death count.
type DeathCount struct {
	roundDurationMs int64
	respawnDelayMs  int64
	respawnAt       map[string]int64
}

// NewDeathCount constructs a DeathCount. The mode is built once per game
// (see buildMode), not once per round, so its round-scoped respawn
// listener is wired by OnRoundStart rather than here.
func NewDeathCount(roundDurationMs, respawnDelayMs int64) *DeathCount {
	return &DeathCount{
		roundDurationMs: roundDurationMs,
		respawnDelayMs:  respawnDelayMs,
		respawnAt:       make(map[string]int64),
	}
}

// OnRoundStart re-registers the respawn scheduler as a round-scoped
// listener. ClearRoundListeners wipes every round-scoped subscription at
// the end of each round, so this must run again at the start of every
// round, not just the first.
func (m *DeathCount) OnRoundStart(bus *eventbus.Bus) {
	m.respawnAt = make(map[string]int64)
	if bus == nil {
		return
	}
	bus.OnRound(events.PlayerDeath, func(payload interface{}) {
		deathPayload, ok := payload.(events.PlayerDeathPayload)
		if !ok {
			return
		}
		m.respawnAt[deathPayload.VictimID] = deathPayload.GameTime + m.respawnDelayMs
	})
}

func (m *DeathCount) Name() string           { return "death-count" }
func (m *DeathCount) UsesRoles() bool        { return false }
func (m *DeathCount) UsesTeams() bool        { return false }
func (m *DeathCount) RoundDurationMs() int64 { return m.roundDurationMs }

func (m *DeathCount) RolePool(registry *role.Registry, n int) []role.Kind { return nil }

func (m *DeathCount) OnTick(roster Roster, gameTime int64, deltaTimeMs int64) []events.BaseEventPayload {
	for _, p := range roster.Players() {
		if p.IsAlive() {
			continue
		}
		respawnAt, scheduled := m.respawnAt[p.ID]
		if scheduled && gameTime >= respawnAt {
			p.Respawn()
			delete(m.respawnAt, p.ID)
		}
	}
	return nil
}

func (m *DeathCount) OnPlayerMove(roster Roster, p *player.Player, gameTime int64) {}

func (m *DeathCount) CheckWinCondition(roster Roster, currentRound, roundCount int, gameTime int64) WinResult {
	if gameTime < m.roundDurationMs {
		return WinResult{}
	}
	result := WinResult{RoundEnded: true}
	if currentRound >= roundCount {
		result.GameEnded = true
	}
	best := bestByFewestDeaths(roster.Players())
	if best != nil {
		result.WinnerID = best.ID
	}
	return result
}

func bestByFewestDeaths(players []*player.Player) *player.Player {
	var best *player.Player
	for _, p := range players {
		if best == nil || p.DeathCount < best.DeathCount {
			best = p
		}
	}
	return best
}

// ScoreRound ranks players by ascending death count (fewer deaths ranks
// higher) and awards len(players)-rank points, so the lowest death count
// earns the most.
func (m *DeathCount) ScoreRound(roster Roster, currentRound, roundCount int) []events.ScoreEntry {
	players := append([]*player.Player(nil), roster.Players()...)
	sort.Slice(players, func(i, j int) bool { return players[i].DeathCount < players[j].DeathCount })

	entries := make([]events.ScoreEntry, 0, len(players))
	for i, p := range players {
		points := len(players) - i
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
