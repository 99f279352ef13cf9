package player

// UpdateMovement accepts one accelerometer-derived intensity sample and
// accumulates damage according to MovementConfig and any active status
// effect that gates damage or movement. Returns true iff this sample
// caused the player to die.
func (p *Player) UpdateMovement(intensity float64, gameTime int64) (died bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isAlive {
		return false
	}

	blocks, ignoresMovement, multiplier, _ := p.damageModifierLocked()
	if ignoresMovement {
		return false
	}

	excess := intensity - p.MovementConfig.DangerThreshold
	if excess <= 0 {
		return false
	}

	if blocks {
		return false
	}

	toughness := p.Toughness
	if toughness <= 0 {
		toughness = 1
	}

	damage := excess * p.MovementConfig.DamageMultiplier * multiplier / toughness
	p.accumulatedDamage += damage

	if p.accumulatedDamage < 100 {
		return false
	}

	return p.tryDieLocked(gameTime)
}

// tryDieLocked applies the role's veto hook (if any) and, absent a veto,
// kills the player. Callers must hold p.mu; the role hooks themselves
// must not call back into locking Player methods re-entrantly.
func (p *Player) tryDieLocked(gameTime int64) bool {
	if p.Role.BeforeDeath != nil {
		p.mu.Unlock()
		veto := p.Role.BeforeDeath(p, gameTime)
		p.mu.Lock()
		if veto {
			return false
		}
	}

	p.isAlive = false
	p.DeathCount++

	if p.Role.OnDeath != nil {
		p.mu.Unlock()
		p.Role.OnDeath(p, gameTime)
		p.mu.Lock()
	}

	return true
}

// Kill forces a death outside of movement-damage accumulation (e.g. a
// Vampire's bloodlust self-destruct). Still subject to the role's
// BeforeDeath veto, same as a damage-driven death. Returns false if the
// player was already dead.
func (p *Player) Kill(gameTime int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isAlive {
		return false
	}
	p.accumulatedDamage = 100
	return p.tryDieLocked(gameTime)
}

// OnTick advances status effects and, if a role defines one, its OnTick
// hook. Runs once per engine tick for every alive player, in
// priority-descending order as decided by the caller.
func (p *Player) OnTick(gameTime int64, deltaTimeMs int64) {
	p.tickEffects(gameTime, deltaTimeMs)

	if p.Role.OnTick != nil {
		p.Role.OnTick(p, gameTime, deltaTimeMs)
	}
}
