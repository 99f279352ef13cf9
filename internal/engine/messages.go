package engine

import "github.com/motionjam/shakedown/internal/config"

// Messages GameEngine accepts via its actor mailbox. All fields are
// plain values so senders never share mutable state with the engine
// goroutine.

type tickMsg struct{}

// JoinMessage is player:join.
type JoinMessage struct {
	PlayerID string
	SocketID string
	Name     string
}

// ReadyMessage is player:ready.
type ReadyMessage struct {
	PlayerID string
}

// MoveMessage is player:move (intensity already normalized to [0,1] by
// the out-of-scope input-device abstraction).
type MoveMessage struct {
	PlayerID  string
	Intensity float64
}

// TeamSwitchMessage is player:team-switch.
type TeamSwitchMessage struct {
	PlayerID string
}

// DisconnectMessage notifies the engine that a socket dropped.
type DisconnectMessage struct {
	SocketID string
	PlayerID string
}

// ReconnectMessage is player:reconnect, already resolved to a playerID
// by the gateway/ConnectionManager.
type ReconnectMessage struct {
	PlayerID string
	SocketID string
}

// LaunchMessage is POST /api/game/launch.
type LaunchMessage struct {
	Mode             string
	Theme            string
	CountdownSeconds *int
	SkipPreGame      bool
	TestMode         bool
}

// JoinResult answers JoinMessage via ctx.Reply, carrying the session
// token the gateway must hand back to the client for later reconnects.
type JoinResult struct {
	Token  string
	Number int
}

// NextRoundMessage is POST /api/game/next-round.
type NextRoundMessage struct{}

// StopMessage is POST /api/game/stop.
type StopMessage struct{}

// StateQueryMessage requests a full snapshot (GET /api/game/state),
// answered via actor.Ask.
type StateQueryMessage struct{}

// SettingsUpdateMessage notifies the engine that settings changed, so it
// can pick up new team counts / domination parameters before the next
// launch.
type SettingsUpdateMessage struct {
	Settings config.GameSettings
}

// BaseJoinMessage is base:join.
type BaseJoinMessage struct {
	BaseID   string
	SocketID string
}

// BaseTapMessage is base:tap.
type BaseTapMessage struct {
	BaseID string
}

// BaseDisconnectMessage notifies that a base socket dropped.
type BaseDisconnectMessage struct {
	BaseID           string
	OutsideActivePlay bool
}

// DebugFastForwardMessage drives the tick loop synchronously by n
// ticks, bypassing the real-time ticker, for POST /api/debug/fast-forward
// (dev-mode only).
type DebugFastForwardMessage struct {
	Ticks int
}

// DebugResetMessage clears every in-progress round and player back to
// an empty lobby, for POST /api/debug/reset (dev-mode only).
type DebugResetMessage struct{}
