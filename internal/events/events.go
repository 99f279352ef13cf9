// Package events defines the event names and payload shapes carried on
// the EventBus. It is the shared vocabulary between the engine,
// managers, roles/modes, and the socket gateway — none of those
// packages need to import each other just to agree on an event's shape.
package events

// Bus topic names, matching the outbound wire event names one for one
// (the gateway mostly forwards these verbatim).
const (
	GameTick         = "game:tick"
	PlayerDeath      = "player:death"
	RoundStart       = "round:start"
	RoundEnd         = "round:end"
	GameStart        = "game:start"
	GameEnd          = "game:end"
	GameCountdown    = "game:countdown"
	GameStopped      = "game:stopped"
	LobbyUpdate      = "lobby:update"
	ReadyUpdate      = "ready:update"
	ReadyEnabled     = "ready:enabled"
	PlayerReady      = "player:ready"
	RoleAssigned     = "role:assigned"
	ModeEvent        = "mode:event"
	BaseRegistered   = "base:registered"
	BaseCaptured     = "base:captured"
	BasePoint        = "base:point"
	BaseStatus       = "base:status"
	DominationWin    = "domination:win"
	WireError        = "error"
)
