package player

// EffectView is the wire-facing view of one active status effect.
type EffectView struct {
	Kind        string `json:"kind"`
	DisplayName string `json:"displayName"`
	RemainingMs int64  `json:"remainingMs"`
	Indefinite  bool   `json:"indefinite"`
}

// Snapshot is the per-player payload emitted in game:tick: id, name,
// isAlive, damage, points, toughness, deathCount, isDisconnected,
// graceTimeRemaining, statusEffects.
type Snapshot struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Number             int          `json:"number"`
	IsAlive            bool         `json:"isAlive"`
	AccumulatedDamage  float64      `json:"accumulatedDamage"`
	Points             int          `json:"points"`
	TotalPoints        int          `json:"totalPoints"`
	Toughness          float64      `json:"toughness"`
	DeathCount         int          `json:"deathCount"`
	IsDisconnected     bool         `json:"isDisconnected"`
	GraceTimeRemaining int64        `json:"graceTimeRemaining"`
	StatusEffects      []EffectView `json:"statusEffects"`
}

// Snapshot renders the current state for broadcast. now is gameTime ms,
// used to compute remaining effect durations and disconnect grace.
// displayName resolves an effect kind to its display label; pass nil to
// use the raw kind string.
func (p *Player) Snapshot(now int64, displayName func(kind string) string) Snapshot {
	if displayName == nil {
		displayName = func(k string) string { return k }
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	effects := make([]EffectView, 0, len(p.statusEffects))
	for kind, inst := range p.statusEffects {
		ev := EffectView{Kind: string(kind), DisplayName: displayName(string(kind))}
		if inst.Duration == nil {
			ev.Indefinite = true
		} else {
			remaining := inst.AppliedAt + *inst.Duration - now
			if remaining < 0 {
				remaining = 0
			}
			ev.RemainingMs = remaining
		}
		effects = append(effects, ev)
	}

	var graceRemaining int64
	if p.disconnectedAt != nil {
		graceRemaining = GracePeriodMs - (now - *p.disconnectedAt)
		if graceRemaining < 0 {
			graceRemaining = 0
		}
	}

	return Snapshot{
		ID:                 p.ID,
		Name:               p.Name,
		Number:             p.Number,
		IsAlive:            p.isAlive,
		AccumulatedDamage:  p.accumulatedDamage,
		Points:             p.Points,
		TotalPoints:        p.TotalPoints,
		Toughness:          p.Toughness,
		DeathCount:         p.DeathCount,
		IsDisconnected:     p.disconnectedAt != nil,
		GraceTimeRemaining: graceRemaining,
		StatusEffects:      effects,
	}
}
