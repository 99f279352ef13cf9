package role

import "github.com/motionjam/shakedown/internal/player"

// beastDefinition is the plain target role whose death BeastHunter is
// rewarded for. It carries no hooks of its own beyond identity.
func beastDefinition() Definition {
	return Definition{
		Kind:        KindBeast,
		DisplayName: "Beast",
		Description: "A marked target — the Beast Hunter earns a bonus when it dies.",
		Difficulty:  "medium",
		Priority:    40,
		Build: func(ctx BuildContext) player.RoleHooks {
			return player.RoleHooks{
				Kind:        string(KindBeast),
				DisplayName: "Beast",
				Description: "A marked target — the Beast Hunter earns a bonus when it dies.",
				Difficulty:  "medium",
				Priority:    40,
			}
		},
	}
}
