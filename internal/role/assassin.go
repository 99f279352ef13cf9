package role

import (
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/player"
)

// assassinBonusPoints is the round-score bonus for the Assassin's
// per-round target dying.
const assassinBonusPoints = 3

// assassinDefinition uses BuildContext.TargetID/TargetName, set by the
// role assigner at round start, to track a single victim for the round.
func assassinDefinition() Definition {
	return Definition{
		Kind:        KindAssassin,
		DisplayName: "Assassin",
		Description: "Assigned a single target each round; bonus if they die.",
		Difficulty:  "medium",
		Priority:    70,
		Build: func(ctx BuildContext) player.RoleHooks {
			hooks := player.RoleHooks{
				Kind:        string(KindAssassin),
				DisplayName: "Assassin",
				Description: "Assigned a single target each round; bonus if they die.",
				Difficulty:  "medium",
				Priority:     70,
				TargetID:     ctx.TargetID,
				TargetName:   ctx.TargetName,
				TargetNumber: ctx.TargetNumber,
			}

			hooks.OnAssigned = func(p *player.Player, gameTime int64) {
				if ctx.Bus == nil || ctx.TargetID == "" {
					return
				}
				ctx.Bus.OnRound(events.PlayerDeath, func(payload interface{}) {
					deathPayload, ok := payload.(events.PlayerDeathPayload)
					if !ok {
						return
					}
					if deathPayload.VictimID == ctx.TargetID {
						p.AddPoints(assassinBonusPoints)
					}
				})
			}

			return hooks
		},
	}
}
