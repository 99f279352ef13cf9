package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motionjam/shakedown/internal/base"
	"github.com/motionjam/shakedown/internal/effect"
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/player"
)

type fakeRoster struct {
	players []*player.Player
	teams   map[string]int
}

func (r *fakeRoster) Players() []*player.Player { return r.players }

func (r *fakeRoster) ByID(id string) (*player.Player, bool) {
	for _, p := range r.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (r *fakeRoster) TeamOf(playerID string) (int, bool) {
	teamID, ok := r.teams[playerID]
	return teamID, ok
}

func newFakePlayer(id string) *player.Player {
	return player.New(id, id, 1, player.RoleHooks{}, player.DefaultMovementConfig(), effect.NewRegistry(), 0)
}

func TestClassicRoundEndsWhenOneSurvivorRemains(t *testing.T) {
	a := newFakePlayer("a")
	b := newFakePlayer("b")
	roster := &fakeRoster{players: []*player.Player{a, b}}

	m := NewClassic()
	result := m.CheckWinCondition(roster, 1, 3, 0)
	assert.False(t, result.RoundEnded)

	for i := 0; i < 100; i++ {
		a.UpdateMovement(1.0, int64(i)*10)
	}
	require.False(t, a.IsAlive())

	result = m.CheckWinCondition(roster, 1, 3, 2000)
	assert.True(t, result.RoundEnded)
	assert.Equal(t, "b", result.WinnerID)
	assert.False(t, result.GameEnded)

	result = m.CheckWinCondition(roster, 3, 3, 2000)
	assert.True(t, result.GameEnded)
}

func TestClassicScoreRoundAwardsSurvivorOnly(t *testing.T) {
	a := newFakePlayer("a")
	b := newFakePlayer("b")
	for i := 0; i < 100; i++ {
		a.UpdateMovement(1.0, int64(i)*10)
	}
	roster := &fakeRoster{players: []*player.Player{a, b}}

	entries := NewClassic().ScoreRound(roster, 1, 3)
	byID := map[string]events.ScoreEntry{}
	for _, e := range entries {
		byID[e.PlayerID] = e
	}
	assert.Equal(t, 0, byID["a"].Points)
	assert.Equal(t, 1, byID["b"].Points)
}

func TestDeathCountRespawnsAfterDelay(t *testing.T) {
	bus := eventbus.New()
	m := NewDeathCount(60_000, 3_000)
	m.OnRoundStart(bus)

	p := newFakePlayer("a")
	roster := &fakeRoster{players: []*player.Player{p}}

	for i := 0; i < 100; i++ {
		p.UpdateMovement(1.0, int64(i)*10)
	}
	require.False(t, p.IsAlive())

	bus.Emit(events.PlayerDeath, events.PlayerDeathPayload{VictimID: "a", GameTime: 1000})

	m.OnTick(roster, 2000, 100)
	assert.False(t, p.IsAlive(), "respawn delay has not elapsed yet")

	m.OnTick(roster, 4000, 100)
	assert.True(t, p.IsAlive())
}

func TestDeathCountOnRoundStartResubscribesAfterRoundListenersCleared(t *testing.T) {
	bus := eventbus.New()
	m := NewDeathCount(60_000, 3_000)
	m.OnRoundStart(bus)

	bus.ClearRoundListeners()
	m.OnRoundStart(bus)

	p := newFakePlayer("a")
	roster := &fakeRoster{players: []*player.Player{p}}
	for i := 0; i < 100; i++ {
		p.UpdateMovement(1.0, int64(i)*10)
	}
	require.False(t, p.IsAlive())

	bus.Emit(events.PlayerDeath, events.PlayerDeathPayload{VictimID: "a", GameTime: 1000})
	m.OnTick(roster, 4000, 100)
	assert.True(t, p.IsAlive(), "respawn listener must still fire after ClearRoundListeners+OnRoundStart")
}

func TestDeathCountWinConditionFiresAtRoundDuration(t *testing.T) {
	m := NewDeathCount(60_000, 3_000)
	roster := &fakeRoster{players: []*player.Player{newFakePlayer("a")}}

	assert.False(t, m.CheckWinCondition(roster, 1, 1, 59_000).RoundEnded)
	result := m.CheckWinCondition(roster, 1, 1, 60_000)
	assert.True(t, result.RoundEnded)
	assert.True(t, result.GameEnded)
}

func TestDeathCountScoresFewerDeathsHigher(t *testing.T) {
	m := NewDeathCount(60_000, 3_000)
	a := newFakePlayer("a")
	b := newFakePlayer("b")
	a.DeathCount = 3
	b.DeathCount = 1
	roster := &fakeRoster{players: []*player.Player{a, b}}

	entries := m.ScoreRound(roster, 1, 1)
	byID := map[string]events.ScoreEntry{}
	for _, e := range entries {
		byID[e.PlayerID] = e
	}
	assert.Greater(t, byID["b"].Points, byID["a"].Points)
}

func TestDominationWinsAtTargetScore(t *testing.T) {
	bases := base.NewManager()
	bases.Register("base-red", "sock-1")
	bases.Tap("base-red", 0, 0)

	m := NewDomination(bases, 5_000, 10)
	roster := &fakeRoster{players: nil}

	for gameTime := int64(0); gameTime <= 50_000; gameTime += 5_000 {
		m.OnTick(roster, gameTime, 5_000)
	}

	result := m.CheckWinCondition(roster, 1, 1, 50_000)
	assert.True(t, result.GameEnded)
	assert.True(t, result.SkipRoundEndEvent)
	assert.Equal(t, "0", result.WinnerID)
}

func TestDominationScoreRoundIncludesShutOutTeams(t *testing.T) {
	bases := base.NewManager()
	bases.Register("base-red", "sock-1")
	bases.Tap("base-red", 0, 0)

	m := NewDomination(bases, 5_000, 10)
	roster := &fakeRoster{
		players: []*player.Player{newFakePlayer("a"), newFakePlayer("b")},
		teams:   map[string]int{"a": 0, "b": 1},
	}

	for gameTime := int64(0); gameTime <= 10_000; gameTime += 5_000 {
		m.OnTick(roster, gameTime, 5_000)
	}

	entries := m.ScoreRound(roster, 1, 1)
	require.Len(t, entries, 2, "team 1 never scored but still has a player and must appear")
	assert.Equal(t, "0", entries[0].PlayerID, "entries sort by team id")
	assert.Equal(t, "1", entries[1].PlayerID)
	assert.Greater(t, entries[0].Points, 0)
	assert.Equal(t, 0, entries[1].Points)
}

func TestGameEventManagerActivatesAndDeactivates(t *testing.T) {
	var notified []string
	m := NewGameEventManager(func(payload events.ModeEventPayload) {
		notified = append(notified, payload.Data["phase"].(string))
	})

	m.Register(&GameEvent{
		Type:             "speed-shift",
		ShouldActivate:   func(gameTime int64) bool { return gameTime >= 1000 },
		ShouldDeactivate: func(gameTime int64) bool { return gameTime >= 2000 },
	})

	m.Tick(500, 100)
	assert.Empty(t, m.ActiveTypes())

	m.Tick(1000, 100)
	assert.Equal(t, []string{"speed-shift"}, m.ActiveTypes())

	m.Tick(2000, 100)
	assert.Empty(t, m.ActiveTypes())
	assert.Equal(t, []string{"start", "end"}, notified)
}
