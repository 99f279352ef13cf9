// Package role implements role classes keyed by name, each with
// priority, difficulty, role-specific state, and a fixed set of hooks
// built fresh for every round. Like effect.Registry, this replaces
// class inheritance with a tagged kind plus a behaviour-table entry (a
// Build function) looked up once per assignment — nothing downstream
// dispatches on role name again.
package role

import (
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/player"
)

// Kind identifies a role class.
type Kind string

const (
	KindVampire     Kind = "vampire"
	KindAngel       Kind = "angel"
	KindBeast       Kind = "beast"
	KindBeastHunter Kind = "beast_hunter"
	KindAssassin    Kind = "assassin"
	KindCivilian    Kind = "civilian"
)

// Theme names the role pool a role-based mode draws from.
type Theme string

const (
	ThemeStandard  Theme = "standard"
	ThemeHalloween Theme = "halloween"
	ThemeMafia     Theme = "mafia"
	ThemeFantasy   Theme = "fantasy"
	ThemeSciFi     Theme = "sci-fi"
)

// BuildContext is everything a role's Build function may need beyond the
// Player it will be attached to: a round-scoped EventBus for
// cross-player coordination, and an optional target player id for roles
// like Assassin that are assigned a victim at round start.
type BuildContext struct {
	Bus          *eventbus.Bus
	TargetID     string
	TargetName   string
	TargetNumber int
}

// Definition is the behaviour-table entry for one role Kind.
type Definition struct {
	Kind        Kind
	DisplayName string
	Description string
	Difficulty  string
	Priority    int
	Movement    *player.MovementConfig // nil: use the mode default
	Build       func(ctx BuildContext) player.RoleHooks
}

// Registry holds Definitions keyed by Kind.
type Registry struct {
	defs  map[Kind]Definition
	pools map[Theme][]Kind
}

// NewRegistry builds the registry of every role kind and their themed
// pools.
func NewRegistry() *Registry {
	r := &Registry{defs: make(map[Kind]Definition), pools: make(map[Theme][]Kind)}

	r.register(vampireDefinition())
	r.register(angelDefinition())
	r.register(beastDefinition())
	r.register(beastHunterDefinition())
	r.register(assassinDefinition())
	r.register(civilianDefinition())

	r.pools[ThemeStandard] = []Kind{KindVampire, KindAngel, KindBeastHunter, KindBeast, KindCivilian}
	r.pools[ThemeHalloween] = []Kind{KindVampire, KindBeast, KindBeastHunter, KindCivilian}
	r.pools[ThemeMafia] = []Kind{KindAssassin, KindCivilian, KindCivilian}
	r.pools[ThemeFantasy] = []Kind{KindAngel, KindBeast, KindBeastHunter, KindCivilian}
	r.pools[ThemeSciFi] = []Kind{KindVampire, KindAssassin, KindCivilian}

	return r
}

func (r *Registry) register(def Definition) {
	r.defs[def.Kind] = def
}

// Lookup returns the Definition for kind.
func (r *Registry) Lookup(kind Kind) (Definition, bool) {
	def, ok := r.defs[kind]
	return def, ok
}

// DisplayName resolves kind to its display label, or kind itself if
// unregistered.
func (r *Registry) DisplayName(kind string) string {
	if def, ok := r.defs[Kind(kind)]; ok {
		return def.DisplayName
	}
	return kind
}

// Pool returns the role kinds a themed pool draws from. An unknown theme
// yields ThemeStandard's pool.
func (r *Registry) Pool(theme Theme) []Kind {
	if pool, ok := r.pools[theme]; ok {
		return pool
	}
	return r.pools[ThemeStandard]
}

// RolePoolForCount expands/truncates a themed pool to exactly n entries
// by cycling through it, so every player gets a role regardless of
// lobby size.
func (r *Registry) RolePoolForCount(theme Theme, n int) []Kind {
	pool := r.Pool(theme)
	if len(pool) == 0 || n <= 0 {
		return nil
	}
	out := make([]Kind, n)
	for i := 0; i < n; i++ {
		out[i] = pool[i%len(pool)]
	}
	return out
}
