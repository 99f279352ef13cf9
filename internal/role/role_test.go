package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motionjam/shakedown/internal/effect"
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/player"
)

func newTestPlayer(t *testing.T, id string, hooks player.RoleHooks) *player.Player {
	t.Helper()
	registry := effect.NewRegistry()
	p := player.New(id, id, 1, hooks, player.DefaultMovementConfig(), registry, 0)
	if hooks.OnAssigned != nil {
		hooks.OnAssigned(p, 0)
	}
	return p
}

// TestVampireSelfDestructsWithoutKill: bloodlust starts at t=30s; with
// no other death by t=35s the Vampire self-destructs.
func TestVampireSelfDestructsWithoutKill(t *testing.T) {
	registry := NewRegistry()
	def, ok := registry.Lookup(KindVampire)
	require.True(t, ok)

	bus := eventbus.New()
	hooks := def.Build(BuildContext{Bus: bus})
	vampire := newTestPlayer(t, "vampire-1", hooks)

	vampire.OnTick(29_000, 1_000)
	assert.True(t, vampire.IsAlive())

	vampire.OnTick(30_000, 1_000)
	assert.True(t, vampire.HasEffect(effect.Bloodlust))
	assert.True(t, vampire.IsAlive())

	vampire.OnTick(35_000, 1_000)
	assert.False(t, vampire.IsAlive())
}

func TestVampireSurvivesIfDeathOccursDuringBloodlust(t *testing.T) {
	registry := NewRegistry()
	def, _ := registry.Lookup(KindVampire)

	bus := eventbus.New()
	hooks := def.Build(BuildContext{Bus: bus})
	vampire := newTestPlayer(t, "vampire-1", hooks)

	vampire.OnTick(30_000, 1_000)
	require.True(t, vampire.HasEffect(effect.Bloodlust))

	bus.Emit(events.PlayerDeath, events.PlayerDeathPayload{VictimID: "someone-else", GameTime: 33_000})

	vampire.OnTick(35_000, 1_000)
	assert.True(t, vampire.IsAlive())
	assert.False(t, vampire.HasEffect(effect.Bloodlust))
}

func TestAngelVetoesFirstDeathOnly(t *testing.T) {
	registry := NewRegistry()
	def, _ := registry.Lookup(KindAngel)
	hooks := def.Build(BuildContext{})
	angel := newTestPlayer(t, "angel-1", hooks)

	for i := 0; i < 100; i++ {
		angel.UpdateMovement(1.0, int64(i)*100)
	}
	assert.True(t, angel.IsAlive(), "first fatal accumulation should be vetoed")

	for i := 0; i < 100; i++ {
		angel.UpdateMovement(1.0, 10_000+int64(i)*100)
	}
	assert.False(t, angel.IsAlive(), "second fatal accumulation should not be vetoed")
}

func TestBeastHunterEarnsBonusOnBeastDeath(t *testing.T) {
	bus := eventbus.New()

	beastDef, _ := NewRegistry().Lookup(KindBeast)
	beastHooks := beastDef.Build(BuildContext{Bus: bus})
	beast := newTestPlayer(t, "beast-1", beastHooks)

	hunterDef, _ := NewRegistry().Lookup(KindBeastHunter)
	hunterHooks := hunterDef.Build(BuildContext{Bus: bus})
	hunter := newTestPlayer(t, "hunter-1", hunterHooks)

	assert.Equal(t, 0, hunter.TotalPoints)

	for i := 0; i < 100; i++ {
		beast.UpdateMovement(1.0, int64(i)*10)
	}
	require.False(t, beast.IsAlive())

	bus.Emit(events.PlayerDeath, events.PlayerDeathPayload{
		VictimID:       beast.ID,
		VictimRoleKind: string(KindBeast),
	})

	assert.Equal(t, beastHunterBonusPoints, hunter.TotalPoints)
}

func TestAssassinEarnsBonusOnlyForAssignedTarget(t *testing.T) {
	bus := eventbus.New()

	def, _ := NewRegistry().Lookup(KindAssassin)
	hooks := def.Build(BuildContext{Bus: bus, TargetID: "target-1", TargetName: "Target", TargetNumber: 4})
	assassin := newTestPlayer(t, "assassin-1", hooks)
	assert.Equal(t, 4, hooks.TargetNumber, "TargetNumber should flow through to RoleHooks for the wire payload")

	bus.Emit(events.PlayerDeath, events.PlayerDeathPayload{VictimID: "someone-else"})
	assert.Equal(t, 0, assassin.TotalPoints)

	bus.Emit(events.PlayerDeath, events.PlayerDeathPayload{VictimID: "target-1"})
	assert.Equal(t, assassinBonusPoints, assassin.TotalPoints)
}

func TestRolePoolForCountCyclesThemedPool(t *testing.T) {
	registry := NewRegistry()
	pool := registry.RolePoolForCount(ThemeMafia, 5)
	require.Len(t, pool, 5)
	base := registry.Pool(ThemeMafia)
	for i, kind := range pool {
		assert.Equal(t, base[i%len(base)], kind)
	}
}
