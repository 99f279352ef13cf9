package effect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motionjam/shakedown/internal/effect"
)

type fakeHost struct{ healed float64 }

func (f *fakeHost) Heal(amount float64) { f.healed += amount }

func TestRegenerationHealsProportionallyToDeltaTime(t *testing.T) {
	reg := effect.NewRegistry()
	def, ok := reg.Lookup(effect.Regenerating)
	require.True(t, ok)

	inst := reg.New(effect.Regenerating, 0, 0, map[string]float64{"ratePerSecond": 10})
	host := &fakeHost{}

	def.Tick(host, &inst, 500)

	assert.InDelta(t, 5.0, host.healed, 0.001)
}

func TestInvulnerabilityBlocksDamageByDefinition(t *testing.T) {
	reg := effect.NewRegistry()
	def, ok := reg.Lookup(effect.Invulnerability)
	require.True(t, ok)
	assert.True(t, def.BlocksDamage)
	assert.Greater(t, def.Priority, 0)
}

func TestEffectExpiresAfterDuration(t *testing.T) {
	reg := effect.NewRegistry()
	inst := reg.New(effect.Stunned, 1000, 500, nil)

	assert.False(t, inst.Expired(1400))
	assert.True(t, inst.Expired(1500))
}

func TestIndefiniteEffectNeverExpires(t *testing.T) {
	reg := effect.NewRegistry()
	inst := reg.New(effect.Bloodlust, 1000, 0, nil)

	assert.False(t, inst.Expired(1_000_000))
}

func TestPriorityOrderingInvulnerabilityOutranksToughened(t *testing.T) {
	reg := effect.NewRegistry()
	inv, _ := reg.Lookup(effect.Invulnerability)
	tough, _ := reg.Lookup(effect.Toughened)
	assert.Greater(t, inv.Priority, tough.Priority)
}
