// Package team implements assignment of players to 2-4 teams,
// round-robin balancing, shuffling, and cycling a single player to the
// next team (player:team-switch).
package team

import (
	"math/rand"
	"sort"
	"sync"
)

// Team is a fixed-identity team slot: id, name, color.
type Team struct {
	ID    int
	Name  string
	Color string
}

// defaultTeams are the named/coloured slots teams are drawn from, in
// order, for teamCount between 2 and 4.
var defaultTeams = []Team{
	{ID: 0, Name: "Red", Color: "#e53935"},
	{ID: 1, Name: "Blue", Color: "#1e88e5"},
	{ID: 2, Name: "Green", Color: "#43a047"},
	{ID: 3, Name: "Yellow", Color: "#fdd835"},
}

// Manager owns the playerId -> teamId assignment map and the active
// team count.
type Manager struct {
	mu        sync.Mutex
	teamCount int
	teams     []Team
	assigned  map[string]int
	order     []string // join order, for stable round-robin assignment
}

// NewManager constructs a Manager configured for teamCount teams (clamped
// to [2,4]).
func NewManager(teamCount int) *Manager {
	return &Manager{
		teamCount: clampTeamCount(teamCount),
		teams:     append([]Team(nil), defaultTeams[:clampTeamCount(teamCount)]...),
		assigned:  make(map[string]int),
	}
}

func clampTeamCount(n int) int {
	if n < 2 {
		return 2
	}
	if n > 4 {
		return 4
	}
	return n
}

// SetTeamCount reconfigures the team count for a new game, dropping any
// prior assignment (the caller is expected to call this before
// AssignRoundRobin at game launch).
func (m *Manager) SetTeamCount(teamCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teamCount = clampTeamCount(teamCount)
	m.teams = append([]Team(nil), defaultTeams[:m.teamCount]...)
	m.assigned = make(map[string]int)
	m.order = nil
}

// Teams returns the active team slots.
func (m *Manager) Teams() []Team {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Team(nil), m.teams...)
}

// AssignRoundRobin assigns every playerID a team in join order, cycling
// through the active team slots sequentially. Existing assignments for
// ids already present are left untouched so a mid-lobby joiner doesn't
// reshuffle the room.
func (m *Manager) AssignRoundRobin(playerIDs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range playerIDs {
		if _, ok := m.assigned[id]; ok {
			continue
		}
		m.assigned[id] = len(m.order) % m.teamCount
		m.order = append(m.order, id)
	}
}

// Shuffle re-randomizes every current assignment across the active team
// slots, keeping team sizes as even as possible.
func (m *Manager) Shuffle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.assigned))
	for id := range m.assigned {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic base order before shuffling
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	for i, id := range ids {
		m.assigned[id] = i % m.teamCount
	}
	m.order = ids
}

// Cycle advances a single player to the next team slot in sequence
// (player:team-switch), wrapping back to team 0.
func (m *Manager) Cycle(playerID string) (teamID int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, exists := m.assigned[playerID]
	if !exists {
		return 0, false
	}
	next := (current + 1) % m.teamCount
	m.assigned[playerID] = next
	return next, true
}

// TeamOf returns the team id assigned to playerID, if any.
func (m *Manager) TeamOf(playerID string) (teamID int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	teamID, ok = m.assigned[playerID]
	return teamID, ok
}

// Remove drops a player's assignment (e.g. on removal from the lobby).
func (m *Manager) Remove(playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assigned, playerID)
	for i, id := range m.order {
		if id == playerID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Roster returns every team id mapped to the player ids currently on it.
func (m *Manager) Roster() map[int][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int][]string, m.teamCount)
	for _, t := range m.teams {
		out[t.ID] = nil
	}
	for _, id := range m.order {
		teamID, ok := m.assigned[id]
		if !ok {
			continue
		}
		out[teamID] = append(out[teamID], id)
	}
	return out
}
