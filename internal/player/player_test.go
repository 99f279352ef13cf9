package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motionjam/shakedown/internal/effect"
	"github.com/motionjam/shakedown/internal/player"
)

func newTestPlayer(hooks player.RoleHooks) *player.Player {
	return player.New("p1", "Alice", 1, hooks, player.DefaultMovementConfig(), effect.NewRegistry(), 0)
}

func TestUpdateMovementBelowThresholdCausesNoDamage(t *testing.T) {
	p := newTestPlayer(player.RoleHooks{})
	died := p.UpdateMovement(0.1, 1000)
	assert.False(t, died)
	assert.Equal(t, 0.0, p.AccumulatedDamage())
}

func TestUpdateMovementAccumulatesAndKillsAt100(t *testing.T) {
	p := newTestPlayer(player.RoleHooks{})
	p.MovementConfig.DamageMultiplier = 250 // force death in one sample

	died := p.UpdateMovement(1.0, 1000)

	assert.True(t, died)
	assert.False(t, p.IsAlive())
}

func TestDeadPlayerIgnoresFurtherMovement(t *testing.T) {
	p := newTestPlayer(player.RoleHooks{})
	p.MovementConfig.DamageMultiplier = 250
	p.UpdateMovement(1.0, 1000)
	require.False(t, p.IsAlive())

	died := p.UpdateMovement(1.0, 1100)
	assert.False(t, died)
}

func TestBeforeDeathVetoPreventsDeathOnce(t *testing.T) {
	vetoed := false
	hooks := player.RoleHooks{
		BeforeDeath: func(p *player.Player, gameTime int64) bool {
			if vetoed {
				return false
			}
			vetoed = true
			return true
		},
	}
	p := newTestPlayer(hooks)
	p.MovementConfig.DamageMultiplier = 250

	died := p.UpdateMovement(1.0, 1000)
	assert.False(t, died, "first death should be vetoed")
	assert.True(t, p.IsAlive())

	p.ApplyEffect("reset-marker", 1000, 0, nil) // no-op kind, just advances time semantics
	died = p.UpdateMovement(1.0, 1100)
	assert.True(t, died, "second death should not be vetoed")
}

func TestInvulnerabilityBlocksDamageEntirely(t *testing.T) {
	p := newTestPlayer(player.RoleHooks{})
	p.MovementConfig.DamageMultiplier = 250
	p.ApplyEffect(effect.Invulnerability, 0, 5000, nil)

	died := p.UpdateMovement(1.0, 1000)

	assert.False(t, died)
	assert.Equal(t, 0.0, p.AccumulatedDamage())
}

func TestApplyEffectReplacesRatherThanExtends(t *testing.T) {
	p := newTestPlayer(player.RoleHooks{})
	p.ApplyEffect(effect.Stunned, 0, 10_000, nil)
	p.ApplyEffect(effect.Stunned, 5_000, 1_000, nil)

	effects := p.SortedEffects()
	require.Len(t, effects, 1)
	assert.Equal(t, int64(5_000), effects[0].AppliedAt)
}

func TestOnTickExpiresEffects(t *testing.T) {
	p := newTestPlayer(player.RoleHooks{})
	p.ApplyEffect(effect.Stunned, 0, 100, nil)
	require.True(t, p.HasEffect(effect.Stunned))

	p.OnTick(200, 100)

	assert.False(t, p.HasEffect(effect.Stunned))
}

func TestRegeneratingEffectHealsOverTicks(t *testing.T) {
	p := newTestPlayer(player.RoleHooks{})
	p.MovementConfig.DamageMultiplier = 250
	p.UpdateMovement(0.7, 0) // small amount of damage, well under 100
	before := p.AccumulatedDamage()
	require.Greater(t, before, 0.0)

	p.ApplyEffect(effect.Regenerating, 0, 0, map[string]float64{"ratePerSecond": 1000})
	p.OnTick(500, 500)

	assert.Less(t, p.AccumulatedDamage(), before)
}

func TestEffectivelyOutCountsDisconnectBeyondGrace(t *testing.T) {
	p := newTestPlayer(player.RoleHooks{})
	p.SetDisconnected(0)

	assert.False(t, p.EffectivelyOut(5_000))
	assert.True(t, p.EffectivelyOut(10_000))
	assert.True(t, p.IsAlive(), "disconnect never flips isAlive")
}

func TestResetForRoundClearsRoundStateButKeepsTotalPoints(t *testing.T) {
	p := newTestPlayer(player.RoleHooks{})
	p.AddPoints(3)
	p.MovementConfig.DamageMultiplier = 250
	p.UpdateMovement(1.0, 0)

	p.ResetForRound()

	assert.True(t, p.IsAlive())
	assert.Equal(t, 0.0, p.AccumulatedDamage())
	assert.Equal(t, 0, p.Points)
	assert.Equal(t, 3, p.TotalPoints)
}
