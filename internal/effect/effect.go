// Package effect implements the status-effect system: a time-bounded,
// priority-ordered modifier on a player. Concrete effects are tagged
// values plus a registry-held behaviour table, replacing class
// inheritance with a tagged variant plus a registry mapping a name to a
// constructor plus a behaviour table — nothing here is dispatched by
// name at call sites beyond the one registry lookup.
package effect

// Kind identifies an effect class.
type Kind string

const (
	Invulnerability Kind = "invulnerability"
	Bloodlust       Kind = "bloodlust"
	Toughened       Kind = "toughened"
	Stunned         Kind = "stunned"
	Regenerating    Kind = "regenerating"
	Berserker       Kind = "berserker"
)

// Host is the minimal surface a tick hook needs from whatever holds the
// effect (always a *player.Player in practice, but this package must not
// import player — that would cycle, since Player holds effects).
type Host interface {
	Heal(amount float64)
}

// TickHook runs every engine tick for as long as the effect is active.
type TickHook func(host Host, eff *Instance, deltaTimeMs int64)

// Definition is the behaviour table entry for one Kind: priority (higher
// wins when two active effects would gate the same computation),
// display metadata, and the handful of fixed capability flags/hooks the
// engine ever looks at for effects specifically (damage blocking,
// damage multiplier, movement suppression, periodic tick).
type Definition struct {
	Kind             Kind
	Priority         int
	DisplayName      string
	BlocksDamage     bool
	DamageMultiplier float64 // 1 = no change; <1 mitigates; >1 amplifies
	IgnoresMovement  bool
	Tick             TickHook
}

// Instance is one applied effect on a player.
type Instance struct {
	Kind      Kind
	Priority  int
	AppliedAt int64          // gameTime ms when applied
	Duration  *int64         // ms; nil means indefinite
	Payload   map[string]float64
}

// Expired reports whether the instance's duration has elapsed as of now
// (gameTime ms).
func (i *Instance) Expired(now int64) bool {
	if i.Duration == nil {
		return false
	}
	return i.AppliedAt+*i.Duration <= now
}

// Registry holds effect Definitions keyed by Kind.
type Registry struct {
	defs map[Kind]Definition
}

// NewRegistry builds the registry of every effect kind: Invulnerability,
// Bloodlust, Toughened, Stunned, Regenerating, Berserker.
func NewRegistry() *Registry {
	r := &Registry{defs: make(map[Kind]Definition)}
	r.register(Definition{
		Kind: Invulnerability, Priority: 100, DisplayName: "Invulnerable",
		BlocksDamage: true, DamageMultiplier: 1,
	})
	r.register(Definition{
		Kind: Bloodlust, Priority: 50, DisplayName: "Bloodlust",
		DamageMultiplier: 1,
	})
	r.register(Definition{
		Kind: Toughened, Priority: 40, DisplayName: "Toughened",
		DamageMultiplier: 0.5,
	})
	r.register(Definition{
		Kind: Stunned, Priority: 30, DisplayName: "Stunned",
		IgnoresMovement: true, DamageMultiplier: 1,
	})
	r.register(Definition{
		Kind: Regenerating, Priority: 20, DisplayName: "Regenerating",
		DamageMultiplier: 1,
		Tick: func(host Host, eff *Instance, deltaTimeMs int64) {
			ratePerSecond := eff.Payload["ratePerSecond"]
			if ratePerSecond <= 0 {
				return
			}
			host.Heal(ratePerSecond * float64(deltaTimeMs) / 1000.0)
		},
	})
	r.register(Definition{
		Kind: Berserker, Priority: 10, DisplayName: "Berserker",
		DamageMultiplier: 1.5,
	})
	return r
}

func (r *Registry) register(def Definition) {
	r.defs[def.Kind] = def
}

// Lookup returns the Definition for kind and whether it was registered.
func (r *Registry) Lookup(kind Kind) (Definition, bool) {
	def, ok := r.defs[kind]
	return def, ok
}

// New constructs an Instance for kind at gameTime, applying the
// registry's priority. durationMs <= 0 means indefinite.
func (r *Registry) New(kind Kind, gameTime int64, durationMs int64, payload map[string]float64) Instance {
	def := r.defs[kind]
	inst := Instance{
		Kind:      kind,
		Priority:  def.Priority,
		AppliedAt: gameTime,
		Payload:   payload,
	}
	if durationMs > 0 {
		d := durationMs
		inst.Duration = &d
	}
	return inst
}
