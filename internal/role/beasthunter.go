package role

import (
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/player"
)

// beastHunterBonusPoints is the round-score bonus paid when the Beast
// dies, whether or not the Beast Hunter is still alive.
const beastHunterBonusPoints = 2

// beastHunterDefinition registers a round-scoped listener, at assignment
// time, that watches for any player:death whose victim held KindBeast.
func beastHunterDefinition() Definition {
	return Definition{
		Kind:        KindBeastHunter,
		DisplayName: "Beast Hunter",
		Description: "Earns a bonus once the Beast falls.",
		Difficulty:  "medium",
		Priority:    50,
		Build: func(ctx BuildContext) player.RoleHooks {
			hooks := player.RoleHooks{
				Kind:        string(KindBeastHunter),
				DisplayName: "Beast Hunter",
				Description: "Earns a bonus once the Beast falls.",
				Difficulty:  "medium",
				Priority:    50,
			}

			hooks.OnAssigned = func(p *player.Player, gameTime int64) {
				if ctx.Bus == nil {
					return
				}
				ctx.Bus.OnRound(events.PlayerDeath, func(payload interface{}) {
					deathPayload, ok := payload.(events.PlayerDeathPayload)
					if !ok {
						return
					}
					if deathPayload.VictimRoleKind == string(KindBeast) && deathPayload.VictimID != p.ID {
						p.AddPoints(beastHunterBonusPoints)
					}
				})
			}

			return hooks
		},
	}
}
