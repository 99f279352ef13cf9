package player

import (
	"sort"

	"github.com/motionjam/shakedown/internal/effect"
)

// ApplyEffect attaches kind to the player. At most one instance per kind
// is kept; applying the same kind again replaces the earlier instance
// outright rather than extending it — longest-remaining-wins is
// explicitly not the policy.
func (p *Player) ApplyEffect(kind effect.Kind, gameTime int64, durationMs int64, payload map[string]float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statusEffects[kind] = p.effects.New(kind, gameTime, durationMs, payload)
}

// ClearEffect removes kind if present; a no-op otherwise.
func (p *Player) ClearEffect(kind effect.Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.statusEffects, kind)
}

// HasEffect reports whether kind is currently active.
func (p *Player) HasEffect(kind effect.Kind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.statusEffects[kind]
	return ok
}

// SortedEffects returns active effects ordered by priority, highest
// first.
func (p *Player) SortedEffects() []effect.Instance {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sortedEffectsLocked()
}

func (p *Player) sortedEffectsLocked() []effect.Instance {
	out := make([]effect.Instance, 0, len(p.statusEffects))
	for _, inst := range p.statusEffects {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// Heal reduces accumulated damage, implementing effect.Host for the
// Regenerating effect's tick hook.
func (p *Player) Heal(amount float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accumulatedDamage -= amount
	if p.accumulatedDamage < 0 {
		p.accumulatedDamage = 0
	}
}

// damageModifierLocked returns the highest-priority active effect that
// gates damage or movement, if any. Callers must hold p.mu.
func (p *Player) damageModifierLocked() (blocks bool, ignoresMovement bool, multiplier float64, present bool) {
	for _, inst := range p.sortedEffectsLocked() {
		def, ok := p.effects.Lookup(inst.Kind)
		if !ok {
			continue
		}
		if def.BlocksDamage || def.IgnoresMovement || def.DamageMultiplier != 1 {
			return def.BlocksDamage, def.IgnoresMovement, def.DamageMultiplier, true
		}
	}
	return false, false, 1, false
}

// tickEffects ticks every active effect's registry hook and removes any
// that have expired as of now. Tick hooks (e.g. Regenerating's heal) call
// back into Player methods that take p.mu themselves, so the snapshot is
// taken and expiry applied under the lock, but hooks run with it released.
func (p *Player) tickEffects(now int64, deltaTimeMs int64) {
	p.mu.Lock()
	snapshot := make(map[effect.Kind]effect.Instance, len(p.statusEffects))
	for k, v := range p.statusEffects {
		snapshot[k] = v
	}
	p.mu.Unlock()

	for kind, inst := range snapshot {
		def, ok := p.effects.Lookup(kind)
		if ok && def.Tick != nil {
			instCopy := inst
			def.Tick(p, &instCopy, deltaTimeMs)
		}
	}

	p.mu.Lock()
	for kind, inst := range p.statusEffects {
		if inst.Expired(now) {
			delete(p.statusEffects, kind)
		}
	}
	p.mu.Unlock()
}
