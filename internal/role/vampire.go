package role

import (
	"github.com/motionjam/shakedown/internal/effect"
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/player"
)

// bloodlustIntervalMs is how often the Vampire gains a fresh Bloodlust
// window.
const bloodlustIntervalMs int64 = 30_000

// bloodlustWindowMs is how long the Vampire has, after Bloodlust starts,
// to cause another player's death before self-destructing.
const bloodlustWindowMs int64 = 5_000

// vampireState is the role-local, round-scoped state a Vampire's hooks
// close over. One instance per assignment; discarded at round end.
type vampireState struct {
	selfID              string
	handle              eventbus.Handle
	nextBloodlustAt     int64
	bloodlustActive     bool
	bloodlustEndsAt     int64
	causedDeathInWindow bool
}

// vampireDefinition: a Vampire that fails to cause a death within its
// bloodlust window dies by its own hand.
func vampireDefinition() Definition {
	return Definition{
		Kind:        KindVampire,
		DisplayName: "Vampire",
		Description: "Gains periodic bloodlust; must claim a kill before it fades or perish.",
		Difficulty:  "hard",
		Priority:    80,
		Build: func(ctx BuildContext) player.RoleHooks {
			state := &vampireState{nextBloodlustAt: bloodlustIntervalMs}

			hooks := player.RoleHooks{
				Kind:        string(KindVampire),
				DisplayName: "Vampire",
				Description: "Gains periodic bloodlust; must claim a kill before it fades or perish.",
				Difficulty:  "hard",
				Priority:    80,
			}

			hooks.OnAssigned = func(p *player.Player, gameTime int64) {
				state.selfID = p.ID
				if ctx.Bus == nil {
					return
				}
				state.handle = ctx.Bus.OnRound(events.PlayerDeath, func(payload interface{}) {
					deathPayload, ok := payload.(events.PlayerDeathPayload)
					if !ok {
						return
					}
					// No direct-combat model exists — death comes from a
					// player's own movement — so "cause a death" is read as
					// "a death occurs anywhere while bloodlust is active":
					// any other death satisfies the window.
					if state.bloodlustActive && deathPayload.VictimID != state.selfID {
						state.causedDeathInWindow = true
					}
				})
			}

			hooks.OnTick = func(p *player.Player, gameTime int64, deltaTimeMs int64) {
				if state.bloodlustActive {
					if gameTime >= state.bloodlustEndsAt {
						if !state.causedDeathInWindow {
							p.Kill(gameTime)
							return
						}
						state.bloodlustActive = false
						state.causedDeathInWindow = false
						state.nextBloodlustAt = gameTime + bloodlustIntervalMs
						p.ClearEffect(effect.Bloodlust)
					}
					return
				}

				if gameTime >= state.nextBloodlustAt {
					state.bloodlustActive = true
					state.causedDeathInWindow = false
					state.bloodlustEndsAt = gameTime + bloodlustWindowMs
					p.ApplyEffect(effect.Bloodlust, gameTime, bloodlustWindowMs, nil)
				}
			}

			return hooks
		},
	}
}
