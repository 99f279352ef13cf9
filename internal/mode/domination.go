package mode

import (
	"sort"
	"strconv"

	"github.com/motionjam/shakedown/internal/base"
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/player"
	"github.com/motionjam/shakedown/internal/role"
)

// Domination is the territorial mode: teams hold Base devices and
// accumulate points per controlInterval; first team to targetScore
// wins, with no round limit.
type Domination struct {
	bases             *base.Manager
	controlIntervalMs int64
	targetScore       int
	teamScores        map[int]int
}

func NewDomination(bases *base.Manager, controlIntervalMs int64, targetScore int) *Domination {
	return &Domination{
		bases:             bases,
		controlIntervalMs: controlIntervalMs,
		targetScore:       targetScore,
		teamScores:        make(map[int]int),
	}
}

func (m *Domination) Name() string           { return "domination" }
func (m *Domination) UsesRoles() bool        { return false }
func (m *Domination) UsesTeams() bool        { return true }
func (m *Domination) RoundDurationMs() int64 { return 0 }

func (m *Domination) RolePool(registry *role.Registry, n int) []role.Kind { return nil }

// OnRoundStart is a no-op: Domination has no round boundary (a single
// unbounded round runs to target score), so there is nothing to re-wire.
func (m *Domination) OnRoundStart(bus *eventbus.Bus) {}

// OnTick advances base scoring and reports per-base events the engine
// should forward as base:point.
func (m *Domination) OnTick(roster Roster, gameTime int64, deltaTimeMs int64) []events.BaseEventPayload {
	deltas := m.bases.ScoreTick(gameTime, m.controlIntervalMs)
	if len(deltas) == 0 {
		return nil
	}

	var out []events.BaseEventPayload
	for teamID, points := range deltas {
		m.teamScores[teamID] += points
		out = append(out, events.BaseEventPayload{OwnerTeamID: teamIDString(teamID)})
	}
	return out
}

func (m *Domination) OnPlayerMove(roster Roster, p *player.Player, gameTime int64) {}

func (m *Domination) CheckWinCondition(roster Roster, currentRound, roundCount int, gameTime int64) WinResult {
	for teamID, score := range m.teamScores {
		if score >= m.targetScore {
			return WinResult{
				RoundEnded:        true,
				GameEnded:         true,
				WinnerID:          teamIDString(teamID),
				SkipRoundEndEvent: true,
			}
		}
	}
	return WinResult{}
}

// ScoreRound reports the final per-team tally; Domination has no
// per-round scoreboard, only the one at game end. Every team currently
// holding a player is enumerated even if it never scored a point, and
// teams are sorted by id so the board is stable across calls.
func (m *Domination) ScoreRound(roster Roster, currentRound, roundCount int) []events.ScoreEntry {
	teamIDs := make(map[int]struct{}, len(m.teamScores))
	for teamID := range m.teamScores {
		teamIDs[teamID] = struct{}{}
	}
	for _, p := range roster.Players() {
		if teamID, ok := roster.TeamOf(p.ID); ok {
			teamIDs[teamID] = struct{}{}
		}
	}

	ids := make([]int, 0, len(teamIDs))
	for teamID := range teamIDs {
		ids = append(ids, teamID)
	}
	sort.Ints(ids)

	entries := make([]events.ScoreEntry, 0, len(ids))
	for _, teamID := range ids {
		score := m.teamScores[teamID]
		entries = append(entries, events.ScoreEntry{
			PlayerID:    teamIDString(teamID),
			PlayerName:  teamIDString(teamID),
			Points:      score,
			TotalPoints: score,
		})
	}
	return entries
}

func teamIDString(teamID int) string {
	return strconv.Itoa(teamID)
}
