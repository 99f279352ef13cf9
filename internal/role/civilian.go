package role

import "github.com/motionjam/shakedown/internal/player"

// civilianDefinition is the filler role a themed pool pads out with
// when it has more players than special roles — pools are fixed sets
// and RolePoolForCount cycles them, so they need a neutral role with no
// hooks to repeat without side effects.
func civilianDefinition() Definition {
	return Definition{
		Kind:        KindCivilian,
		DisplayName: "Civilian",
		Description: "No special ability.",
		Difficulty:  "easy",
		Priority:    0,
		Build: func(ctx BuildContext) player.RoleHooks {
			return player.RoleHooks{
				Kind:        string(KindCivilian),
				DisplayName: "Civilian",
				Description: "No special ability.",
				Difficulty:  "easy",
				Priority:    0,
			}
		},
	}
}
