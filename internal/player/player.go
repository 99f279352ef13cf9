// Package player implements the per-player runtime state machine:
// health, status effects, movement-damage accumulation, death/respawn,
// and disconnect grace.
package player

import (
	"sync"

	"github.com/motionjam/shakedown/internal/effect"
)

// GracePeriodMs is the in-game disconnect grace window: 10s before a
// disconnected player is treated as "effectively out" by win-condition
// checks, without being marked dead.
const GracePeriodMs int64 = 10_000

// MaxNumber is the highest sequential player number assigned before the
// connection layer falls back to size+1.
const MaxNumber = 20

// MovementConfig holds the per-role overrides a role can apply to how
// accelerometer intensity turns into damage.
type MovementConfig struct {
	DangerThreshold  float64
	DamageMultiplier float64
}

// DefaultMovementConfig is used for non-role modes and any role that
// does not override movement behaviour.
func DefaultMovementConfig() MovementConfig {
	return MovementConfig{DangerThreshold: 0.6, DamageMultiplier: 1.0}
}

// RoleHooks is the fixed, enumerated set of role-contributed behaviour a
// Player can carry for one round — a value with a fixed set of
// capability hooks, nothing dynamic dispatched by name at call sites.
// The zero value is the no-role behaviour used by modes with
// UseRoles=false.
type RoleHooks struct {
	Kind        string
	DisplayName string
	Description string
	Difficulty  string
	Priority    int
	TargetID     string
	TargetName   string
	TargetNumber int

	// OnAssigned fires exactly once, right after the Player carrying
	// these hooks is constructed for the round — the hook's chance to
	// register round-scoped EventBus listeners (e.g. a BeastHunter
	// watching for a Beast's death).
	OnAssigned func(p *Player, gameTime int64)
	// BeforeDeath is invoked once damage would cross the death
	// threshold; returning true vetoes the death (e.g. Angel's single
	// invulnerability window).
	BeforeDeath func(p *Player, gameTime int64) (veto bool)
	// OnDeath fires after a death is not vetoed.
	OnDeath func(p *Player, gameTime int64)
	// OnTick fires every engine tick, after effect ticking.
	OnTick func(p *Player, gameTime int64, deltaTimeMs int64)
}

// Player is the per-player runtime state. Identity-bound to a session,
// not to a transport socket.
type Player struct {
	mu sync.Mutex

	ID       string
	Name     string
	Number   int
	SocketID string
	IsBot    bool

	Role RoleHooks

	isAlive           bool
	accumulatedDamage float64
	Toughness         float64

	Points      int
	TotalPoints int
	DeathCount  int

	statusEffects map[effect.Kind]effect.Instance
	effects       *effect.Registry

	disconnectedAt *int64

	IsReady bool

	MovementConfig MovementConfig
}

// New constructs a Player bound to identity id/name/number, with the
// given role hooks and movement configuration, for one round.
// totalPoints carries over from the previous round: assignRolesForRound
// preserves totalPoints across rounds.
func New(id, name string, number int, hooks RoleHooks, movementConfig MovementConfig, registry *effect.Registry, totalPoints int) *Player {
	return &Player{
		ID:             id,
		Name:           name,
		Number:         number,
		Role:           hooks,
		isAlive:        true,
		Toughness:      1.0,
		TotalPoints:    totalPoints,
		statusEffects:  make(map[effect.Kind]effect.Instance),
		effects:        registry,
		MovementConfig: movementConfig,
	}
}

func (p *Player) IsAlive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isAlive
}

func (p *Player) AccumulatedDamage() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.accumulatedDamage
}

// Priority is the player's tick-ordering priority — priority desc, then
// stable tie-break by number — drawn from the assigned role.
func (p *Player) Priority() int {
	return p.Role.Priority
}
