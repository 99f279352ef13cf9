package player

import "github.com/motionjam/shakedown/internal/effect"

// SetDisconnected records that this player's socket dropped mid-round.
// It does not mark the player dead.
func (p *Player) SetDisconnected(gameTime int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := gameTime
	p.disconnectedAt = &t
}

// ClearDisconnected clears disconnect state on a successful reconnect.
func (p *Player) ClearDisconnected() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnectedAt = nil
}

// IsDisconnected reports whether the player's socket is currently down.
func (p *Player) IsDisconnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disconnectedAt != nil
}

// IsDisconnectedBeyondGrace reports whether a disconnected player has
// exceeded GracePeriodMs as of now (gameTime ms).
func (p *Player) IsDisconnectedBeyondGrace(now int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disconnectedAt == nil {
		return false
	}
	return now-*p.disconnectedAt >= GracePeriodMs
}

// GraceTimeRemainingMs returns the milliseconds left in the disconnect
// grace window, or 0 if not disconnected or already past grace.
func (p *Player) GraceTimeRemainingMs(now int64) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disconnectedAt == nil {
		return 0
	}
	remaining := GracePeriodMs - (now - *p.disconnectedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// EffectivelyOut reports whether the player should be treated as "out"
// for a mode's win-condition accounting: dead, or disconnected beyond
// grace.
func (p *Player) EffectivelyOut(now int64) bool {
	p.mu.Lock()
	isAlive := p.isAlive
	p.mu.Unlock()
	if !isAlive {
		return true
	}
	return p.IsDisconnectedBeyondGrace(now)
}

// Respawn resets health state for death-count mode's mid-round respawn,
// preserving death count and points.
func (p *Player) Respawn() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.isAlive = true
	p.accumulatedDamage = 0
	p.statusEffects = make(map[effect.Kind]effect.Instance)
}

// ResetForRound restores the per-round health/ready state a CountdownManager
// applies before a new round: alive, zero damage, no status effects, not
// ready. TotalPoints and identity survive.
func (p *Player) ResetForRound() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.isAlive = true
	p.accumulatedDamage = 0
	p.DeathCount = 0
	p.Points = 0
	p.IsReady = false
	p.statusEffects = make(map[effect.Kind]effect.Instance)
}

// AddPoints awards round points, mirroring into TotalPoints. Points are
// conserved, never created elsewhere.
func (p *Player) AddPoints(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Points += n
	p.TotalPoints += n
}
