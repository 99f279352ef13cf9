package role

import "github.com/motionjam/shakedown/internal/player"

// angelDefinition consumes the Angel's first death as an invulnerability
// window: the first time the Angel would die, BeforeDeath vetoes it once
// and the Angel is otherwise ordinary thereafter.
func angelDefinition() Definition {
	return Definition{
		Kind:        KindAngel,
		DisplayName: "Angel",
		Description: "Survives the first fatal blow of the round.",
		Difficulty:  "easy",
		Priority:    60,
		Build: func(ctx BuildContext) player.RoleHooks {
			consumed := false

			return player.RoleHooks{
				Kind:        string(KindAngel),
				DisplayName: "Angel",
				Description: "Survives the first fatal blow of the round.",
				Difficulty:  "easy",
				Priority:    60,
				BeforeDeath: func(p *player.Player, gameTime int64) bool {
					if consumed {
						return false
					}
					consumed = true
					p.Heal(100)
					return true
				},
			}
		},
	}
}
